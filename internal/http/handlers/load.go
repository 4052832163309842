package handlers

import (
	"net/http"

	"freight-broker-service/internal/domain"
	"freight-broker-service/internal/http/middleware"
	"freight-broker-service/internal/logx"
)

// LoadHandler serves the shipper- and driver-facing load endpoints.
type LoadHandler struct {
	loads    loadUsecase
	assigner assignerUsecase
	logger   logx.Logger
}

// NewLoadHandler creates a LoadHandler.
func NewLoadHandler(loads loadUsecase, assigner assignerUsecase, logger logx.Logger) *LoadHandler {
	return &LoadHandler{loads: loads, assigner: assigner, logger: logger}
}

// Create handles POST /api/loads. Shipper only.
func (h *LoadHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}

	var req createLoadRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	id, err := h.loads.Create(r.Context(), ident.UserID, req.toModel())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, createdResponse{ID: id})
}

// List handles GET /api/loads. A shipper gets their loads with optional
// ?status=, ?limit= and ?offset=; a driver gets their active load.
func (h *LoadHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}

	var status *domain.LoadStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.LoadStatus(s)
		if !st.Valid() {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid status filter")
			return
		}
		status = &st
	}
	limit, ok := queryIntPtr(r, "limit")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, ok := queryIntPtr(r, "offset")
	if !ok {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid offset")
		return
	}

	loads, err := h.loads.ListForUser(r.Context(), ident.UserID, ident.Role, status, limit, offset)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, loadsResponse{Loads: toLoadDTOs(loads)})
}

// GetByID handles GET /api/loads/{id}.
func (h *LoadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid load id")
		return
	}

	l, err := h.loads.GetForUser(r.Context(), ident.UserID, ident.Role, id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toLoadDTO(l))
}

// Update handles PATCH /api/loads/{id}. Shipper only, NEW loads only.
func (h *LoadHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid load id")
		return
	}

	var req updateLoadRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	if err := h.loads.UpdatePartial(r.Context(), ident.UserID, req.toModel(id)); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statusResponse{Status: "Load updated"})
}

// Delete handles DELETE /api/loads/{id}. Shipper only, loads without an
// active assignment only.
func (h *LoadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid load id")
		return
	}

	if err := h.loads.Delete(r.Context(), ident.UserID, id); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statusResponse{Status: "Load deleted"})
}

// Post handles POST /api/loads/{id}/post. Shipper only. The load moves
// NEW -> POSTED and the matcher immediately looks for a truck; when no
// driver fits the load stays POSTED and the response says so.
func (h *LoadHandler) Post(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid load id")
		return
	}

	if err := h.loads.Post(r.Context(), ident.UserID, id); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}

	res, err := h.assigner.Assign(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	if res == nil {
		writeJSON(h.logger, w, r, http.StatusOK, postLoadResponse{Status: "No drivers found"})
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, postLoadResponse{
		Status:     "Load posted successfully",
		AssignedTo: &res.DriverID,
		TruckID:    &res.TruckID,
	})
}

// Advance handles POST /api/loads/{id}/state. Driver only. Moves the
// assigned load to its next delivery phase.
func (h *LoadHandler) Advance(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid load id")
		return
	}

	l, err := h.loads.Advance(r.Context(), ident.UserID, id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toLoadDTO(l))
}

// ShippingLog handles GET /api/loads/{id}/shipping-log.
func (h *LoadHandler) ShippingLog(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid load id")
		return
	}

	entries, err := h.loads.ShippingLog(r.Context(), ident.UserID, ident.Role, id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, shippingLogResponse{Logs: toLogDTOs(entries)})
}
