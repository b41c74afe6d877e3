package controller

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"commission-catalog/models"
	"commission-catalog/repository"
	"commission-catalog/service"
)

// AdminController handles the admin CRUD and availability endpoints
type AdminController struct {
	admin        *service.AdminService
	availability *service.AvailabilityService
	log          *zap.SugaredLogger
}

// NewAdminController creates a new AdminController
func NewAdminController(admin *service.AdminService, availability *service.AvailabilityService, logger *zap.Logger) *AdminController {
	return &AdminController{admin: admin, availability: availability, log: orNop(logger)}
}

// ListRows handles GET /admin/tables/{table}
// Query parameters naming a column filter by equality, e.g. ?service_id=emotes
func (c *AdminController) ListRows(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	schema, err := repository.SchemaFor(table)
	if err != nil {
		writeError(w, c.log, "ListRows", err)
		return
	}

	var filters []repository.Filter
	for key, values := range r.URL.Query() {
		if _, err := schema.Column(key); err != nil {
			badRequest(w, c.log, "ListRows", "unknown filter column: "+key)
			return
		}
		filters = append(filters, repository.Eq(key, values[0]))
	}

	rows, err := c.admin.List(r.Context(), table, filters)
	if err != nil {
		writeError(w, c.log, "ListRows", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// CreateRow handles POST /admin/tables/{table}
func (c *AdminController) CreateRow(w http.ResponseWriter, r *http.Request) {
	var row repository.Row
	if err := decodeJSON(w, r, &row); err != nil || row == nil {
		badRequest(w, c.log, "CreateRow", "invalid JSON body")
		return
	}

	created, err := c.admin.Create(r.Context(), chi.URLParam(r, "table"), row)
	if err != nil {
		writeError(w, c.log, "CreateRow", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateRow handles PUT /admin/tables/{table}/{id}
func (c *AdminController) UpdateRow(w http.ResponseWriter, r *http.Request) {
	var patch repository.Row
	if err := decodeJSON(w, r, &patch); err != nil {
		badRequest(w, c.log, "UpdateRow", "invalid JSON body")
		return
	}

	if err := c.admin.Update(r.Context(), chi.URLParam(r, "table"), chi.URLParam(r, "id"), patch); err != nil {
		writeError(w, c.log, "UpdateRow", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteRow handles DELETE /admin/tables/{table}/{id}
func (c *AdminController) DeleteRow(w http.ResponseWriter, r *http.Request) {
	if err := c.admin.Delete(r.Context(), chi.URLParam(r, "table"), chi.URLParam(r, "id")); err != nil {
		writeError(w, c.log, "DeleteRow", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetEmoteAvailability handles PUT /admin/services/{id}/emotes/{unit}/extras/{extraID}
// Body: {"isAvailable": false}
func (c *AdminController) SetEmoteAvailability(w http.ResponseWriter, r *http.Request) {
	unit, err := strconv.Atoi(chi.URLParam(r, "unit"))
	if err != nil {
		badRequest(w, c.log, "SetEmoteAvailability", "invalid unit number")
		return
	}
	var req models.SetEmoteAvailabilityRequest
	if err := decodeJSON(w, r, &req); err != nil || req.IsAvailable == nil {
		badRequest(w, c.log, "SetEmoteAvailability", "isAvailable is required")
		return
	}

	override, err := c.availability.SetAvailability(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "extraID"), unit, *req.IsAvailable)
	if err != nil {
		writeError(w, c.log, "SetEmoteAvailability", err)
		return
	}
	writeJSON(w, http.StatusOK, override)
}
