package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/service"
)

type EquipmentHandler struct {
	equipment    service.EquipmentService
	availability service.AvailabilityService
}

func NewEquipmentHandler(equipment service.EquipmentService, availability service.AvailabilityService) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment, availability: availability}
}

func pathID(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	return int32(id), err
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.equipment.ListEquipment(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.Equipment{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid equipment id", "VALIDATION")
		return
	}
	eq, err := h.equipment.GetEquipment(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var eq domain.Equipment
	if err := json.NewDecoder(r.Body).Decode(&eq); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "VALIDATION")
		return
	}
	if err := h.equipment.CreateEquipment(r.Context(), &eq); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid equipment id", "VALIDATION")
		return
	}
	var eq domain.Equipment
	if err := json.NewDecoder(r.Body).Decode(&eq); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "VALIDATION")
		return
	}
	eq.ID = id
	if err := h.equipment.UpdateEquipment(r.Context(), &eq); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid equipment id", "VALIDATION")
		return
	}
	if err := h.equipment.DeleteEquipment(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *EquipmentHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var orders []domain.SortOrderUpdate
	if err := json.NewDecoder(r.Body).Decode(&orders); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "VALIDATION")
		return
	}
	if err := h.equipment.ReorderEquipment(r.Context(), orders); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type availabilityRequest struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

type availabilityResponse struct {
	Available         bool  `json:"available"`
	AvailableQuantity int32 `json:"availableQuantity"`
}

// Availability answers how many units are free across the requested range.
func (h *EquipmentHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid equipment id", "VALIDATION")
		return
	}
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "VALIDATION")
		return
	}
	if req.DateFrom == "" || req.DateTo == "" {
		writeError(w, http.StatusBadRequest, "dateFrom and dateTo are required", "VALIDATION")
		return
	}

	qty, err := h.availability.GetAvailableQuantity(r.Context(), id, req.DateFrom, req.DateTo)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availabilityResponse{Available: qty > 0, AvailableQuantity: qty})
}

// Reservations lists the raw reserved intervals for one piece of equipment,
// for the booking calendar.
func (h *EquipmentHandler) Reservations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid equipment id", "VALIDATION")
		return
	}
	items, err := h.availability.ListEquipmentReservations(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.ReservationItem{}
	}
	writeJSON(w, http.StatusOK, items)
}
