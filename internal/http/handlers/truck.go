package handlers

import (
	"net/http"

	"freight-broker-service/internal/domain"
	"freight-broker-service/internal/http/middleware"
	"freight-broker-service/internal/logx"
)

// TruckHandler serves the driver-facing fleet endpoints.
type TruckHandler struct {
	trucks truckUsecase
	logger logx.Logger
}

// NewTruckHandler creates a TruckHandler.
func NewTruckHandler(trucks truckUsecase, logger logx.Logger) *TruckHandler {
	return &TruckHandler{trucks: trucks, logger: logger}
}

// Create handles POST /api/trucks. Driver only.
func (h *TruckHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}

	var req createTruckRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	id, err := h.trucks.Create(r.Context(), ident.UserID, req.toModel())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, createdResponse{ID: id})
}

// List handles GET /api/trucks. Driver only, own fleet.
func (h *TruckHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}

	trucks, err := h.trucks.List(r.Context(), ident.UserID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, trucksResponse{Trucks: toTruckDTOs(trucks)})
}

// Update handles PATCH /api/trucks/{id}. Driver only, FREE trucks only.
func (h *TruckHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid truck id")
		return
	}

	var req updateTruckRequest
	if !decodeJSON(h.logger, w, r, &req) {
		return
	}

	u := domain.PartialTruckUpdate{ID: id, Name: req.Name}
	if err := h.trucks.UpdatePartial(r.Context(), ident.UserID, u); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statusResponse{Status: "Truck updated"})
}

// Delete handles DELETE /api/trucks/{id}. Driver only, FREE trucks only.
func (h *TruckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid truck id")
		return
	}

	if err := h.trucks.Delete(r.Context(), ident.UserID, id); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statusResponse{Status: "Truck deleted"})
}

// Assign handles POST /api/trucks/{id}/assign. Driver only: marks the
// truck as the driver's active rig for future assignments.
func (h *TruckHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "missing identity")
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid truck id")
		return
	}

	t, err := h.trucks.Assign(r.Context(), ident.UserID, id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, toTruckDTO(t))
}
