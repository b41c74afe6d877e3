package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"commission-catalog/app/controller"
	"commission-catalog/app/middleware"
)

type Controllers struct {
	Storefront *controller.StorefrontController
	Content    *controller.ContentController
	Admin      *controller.AdminController
	Media      *controller.MediaController
	PriceSheet *controller.PriceSheetController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// New builds the HTTP handler. Admin routes require a token accepted by auth.
func New(controllers *Controllers, auth *middleware.AdminAuth, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	r.Use(chiMid.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMid.Recoverer)

	r.Get("/ping", pingHandler)
	r.Get("/blobs/{key}", controllers.Media.ServeBlob)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", controllers.Storefront.GetCatalog)
		r.Get("/services/{id}/extras", controllers.Storefront.GetServiceExtras)
		r.Get("/services/{id}/emotes", controllers.Storefront.GetServiceEmotes)
		r.Post("/compose", controllers.Storefront.Compose)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.Storefront.GetCart)
			r.Delete("/", controllers.Storefront.ClearCart)
			r.Post("/items", controllers.Storefront.AddCartItem)
			r.Delete("/items/{localID}", controllers.Storefront.RemoveCartItem)
			r.Post("/checkout", controllers.Storefront.Checkout)
		})

		r.Get("/announcement", controllers.Content.GetAnnouncement)
		r.Get("/testimonials", controllers.Content.GetTestimonials)
		r.Post("/testimonials", controllers.Content.SubmitTestimonial)
		r.Get("/gallery", controllers.Content.GetGallery)

		// Must match service.PriceSheetPath; Chrome prints the HTML route
		r.Get("/price-sheet", controllers.PriceSheet.GetHTML)
		r.Get("/price-sheet.pdf", controllers.PriceSheet.GetPDF)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.AdminOnly)

		r.Get("/tables/{table}", controllers.Admin.ListRows)
		r.Post("/tables/{table}", controllers.Admin.CreateRow)
		r.Put("/tables/{table}/{id}", controllers.Admin.UpdateRow)
		r.Delete("/tables/{table}/{id}", controllers.Admin.DeleteRow)
		r.Put("/services/{id}/emotes/{unit}/extras/{extraID}", controllers.Admin.SetEmoteAvailability)
		r.Post("/services/{id}/image", controllers.Media.SetServiceImage)

		r.Post("/gallery/upload", controllers.Media.UploadGalleryImage)
		r.Post("/gallery/import", controllers.Media.ImportGallery)
		r.Delete("/gallery/{id}", controllers.Media.DeleteGalleryItem)

		r.Get("/testimonials/pending", controllers.Content.GetPendingTestimonials)
		r.Post("/testimonials/{id}/approve", controllers.Content.ApproveTestimonial)
		r.Delete("/testimonials/{id}", controllers.Content.DeleteTestimonial)
	})

	return r
}
