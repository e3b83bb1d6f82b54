package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/service"
)

type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type createReservationRequest struct {
	service.ContactInfo
	Items []domain.CartLine `json:"items"`
}

type createReservationResponse struct {
	Reservation *domain.Reservation      `json:"reservation"`
	Items       []domain.ReservationItem `json:"items"`
	PaymentURL  string                   `json:"paymentUrl"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "VALIDATION")
		return
	}

	res, items, err := h.reservations.CreateReservation(r.Context(), req.ContactInfo, req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createReservationResponse{
		Reservation: res,
		Items:       items,
		PaymentURL:  fmt.Sprintf("/platba/%s", res.OrderNumber),
	})
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.reservations.ListReservations(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if out == nil {
		out = []domain.ReservationWithItems{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReservationHandler) GetByOrderNumber(w http.ResponseWriter, r *http.Request) {
	orderNumber := mux.Vars(r)["orderNumber"]
	res, items, err := h.reservations.GetReservationByOrderNumber(r.Context(), orderNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reservation": res,
		"items":       items,
	})
}

func (h *ReservationHandler) Items(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id", "VALIDATION")
		return
	}
	items, err := h.reservations.GetReservationItems(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []domain.ReservationItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

type updateReservationRequest struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Quantity int32  `json:"quantity"`
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id", "VALIDATION")
		return
	}
	var req updateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "VALIDATION")
		return
	}
	res, err := h.reservations.UpdateReservation(r.Context(), id, req.DateFrom, req.DateTo, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id", "VALIDATION")
		return
	}
	var lines []domain.CartLine
	if err := json.NewDecoder(r.Body).Decode(&lines); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "VALIDATION")
		return
	}
	if err := h.reservations.ReplaceReservationItems(r.Context(), id, lines); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id", "VALIDATION")
		return
	}
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "VALIDATION")
		return
	}
	res, err := h.reservations.UpdateReservationStatus(r.Context(), id, domain.ReservationStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id", "VALIDATION")
		return
	}
	if err := h.reservations.DeleteReservation(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Invoice streams the rental contract PDF for one reservation.
func (h *ReservationHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reservation id", "VALIDATION")
		return
	}
	pdf, filename, err := h.reservations.GenerateContract(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
