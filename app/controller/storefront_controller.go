package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"commission-catalog/cart"
	"commission-catalog/models"
	"commission-catalog/service"
)

// CartCookie names the cookie that carries the cart session id
const CartCookie = "cart_session"

// StorefrontController handles the public catalog, compose and cart endpoints
type StorefrontController struct {
	reader     *service.CatalogReader
	storefront *service.StorefrontService
	carts      *cart.Registry
	cookieTTL  time.Duration
	secure     bool
	log        *zap.SugaredLogger
}

// NewStorefrontController creates a new StorefrontController. secure marks
// the session cookie Secure.
func NewStorefrontController(reader *service.CatalogReader, storefront *service.StorefrontService, carts *cart.Registry, cookieTTL time.Duration, secure bool, logger *zap.Logger) *StorefrontController {
	return &StorefrontController{
		reader:     reader,
		storefront: storefront,
		carts:      carts,
		cookieTTL:  cookieTTL,
		secure:     secure,
		log:        orNop(logger),
	}
}

// GetCatalog handles GET /api/catalog
// Entity types that failed to load come back empty and are listed in errors.
func (c *StorefrontController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	view := c.reader.View(r.Context())
	if len(view.Errors) > 0 {
		c.log.Warnf("⚠️  GetCatalog: partial catalog: %v", view.Errors)
	}
	writeJSON(w, http.StatusOK, view)
}

// GetServiceExtras handles GET /api/services/{id}/extras
func (c *StorefrontController) GetServiceExtras(w http.ResponseWriter, r *http.Request) {
	extras, err := c.reader.ExtrasForService(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, c.log, "GetServiceExtras", err)
		return
	}
	writeJSON(w, http.StatusOK, extras)
}

// GetServiceEmotes handles GET /api/services/{id}/emotes
// When overrides cannot be read every offered extra is reported available.
func (c *StorefrontController) GetServiceEmotes(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	units, err := c.reader.EmoteUnits(r.Context(), serviceID)
	if units == nil {
		writeError(w, c.log, "GetServiceEmotes", err)
		return
	}
	if err != nil {
		c.log.Warnf("⚠️  GetServiceEmotes: %s served with defaults: %v", serviceID, err)
	}
	writeJSON(w, http.StatusOK, units)
}

// Compose handles POST /api/compose
func (c *StorefrontController) Compose(w http.ResponseWriter, r *http.Request) {
	var req models.SelectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, c.log, "Compose", "invalid JSON body")
		return
	}
	if req.ServiceID == "" {
		badRequest(w, c.log, "Compose", "serviceId is required")
		return
	}

	resp, err := c.storefront.Preview(r.Context(), req)
	if err != nil {
		writeError(w, c.log, "Compose", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// session returns the caller's cart, starting a new session when the cookie
// is missing or expired.
func (c *StorefrontController) session(w http.ResponseWriter, r *http.Request) *cart.Cart {
	var current string
	if cookie, err := r.Cookie(CartCookie); err == nil {
		current = cookie.Value
	}
	id, sessionCart := c.carts.Get(current)
	if id != current {
		http.SetCookie(w, &http.Cookie{
			Name:     CartCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(c.cookieTTL.Seconds()),
			HttpOnly: true,
			Secure:   c.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sessionCart
}

// GetCart handles GET /api/cart
func (c *StorefrontController) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.session(w, r).Snapshot())
}

// AddCartItem handles POST /api/cart/items
func (c *StorefrontController) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req models.SelectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, c.log, "AddCartItem", "invalid JSON body")
		return
	}
	if req.ServiceID == "" {
		badRequest(w, c.log, "AddCartItem", "serviceId is required")
		return
	}

	sessionCart := c.session(w, r)
	if _, err := c.storefront.AddToCart(r.Context(), sessionCart, req); err != nil {
		writeError(w, c.log, "AddCartItem", err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionCart.Snapshot())
}

// RemoveCartItem handles DELETE /api/cart/items/{localID}
// Removing an id that is not in the cart leaves it unchanged.
func (c *StorefrontController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	localID, err := strconv.ParseInt(chi.URLParam(r, "localID"), 10, 64)
	if err != nil {
		badRequest(w, c.log, "RemoveCartItem", "invalid local id")
		return
	}
	sessionCart := c.session(w, r)
	if !sessionCart.Remove(localID) {
		c.log.Debugf("RemoveCartItem: %d not in cart", localID)
	}
	writeJSON(w, http.StatusOK, sessionCart.Snapshot())
}

// ClearCart handles DELETE /api/cart
func (c *StorefrontController) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionCart := c.session(w, r)
	sessionCart.Clear()
	writeJSON(w, http.StatusOK, sessionCart.Snapshot())
}

// Checkout handles POST /api/cart/checkout
func (c *StorefrontController) Checkout(w http.ResponseWriter, r *http.Request) {
	resp, err := c.storefront.Checkout(r.Context(), c.session(w, r))
	if err != nil {
		writeError(w, c.log, "Checkout", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
