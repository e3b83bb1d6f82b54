package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusLoaned    ReservationStatus = "LOANED"
	ReservationStatusReturned  ReservationStatus = "RETURNED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// PickupLocations is the closed set of valid pickup points.
var PickupLocations = []string{"brno", "bilovice", "olomouc"}

func IsValidPickupLocation(loc string) bool {
	for _, l := range PickupLocations {
		if l == loc {
			return true
		}
	}
	return false
}

func IsValidReservationStatus(s string) bool {
	switch ReservationStatus(s) {
	case ReservationStatusPending, ReservationStatusLoaned,
		ReservationStatusReturned, ReservationStatusCancelled:
		return true
	}
	return false
}

// Reservation is a customer booking. EquipmentID, DateFrom, DateTo and
// Quantity mirror the first line item; they are a display projection only,
// the item rows are the source of truth.
type Reservation struct {
	ID              int32             `json:"id"`
	EquipmentID     int32             `json:"equipmentId"`
	DateFrom        string            `json:"dateFrom"`
	DateTo          string            `json:"dateTo"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerPhone   string            `json:"customerPhone"`
	CustomerAddress string            `json:"customerAddress"`
	CustomerNote    string            `json:"customerNote,omitempty"`
	PickupLocation  string            `json:"pickupLocation"`
	TotalPrice      int32             `json:"totalPrice"`
	TotalDeposit    int32             `json:"totalDeposit"`
	OrderNumber     string            `json:"orderNumber"`
	InvoiceNumber   *string           `json:"invoiceNumber,omitempty"`
	Status          ReservationStatus `json:"status"`
	Quantity        int32             `json:"quantity"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// ReservationItem is one equipment-quantity-daterange line of a reservation.
// DailyPrice and Deposit are snapshots taken at creation time so historical
// contracts stay accurate when equipment prices change.
type ReservationItem struct {
	ID            int32  `json:"id"`
	ReservationID int32  `json:"reservationId"`
	EquipmentID   int32  `json:"equipmentId"`
	DateFrom      string `json:"dateFrom"`
	DateTo        string `json:"dateTo"`
	Days          int32  `json:"days"`
	Quantity      int32  `json:"quantity"`
	DailyPrice    int32  `json:"dailyPrice"`
	TotalPrice    int32  `json:"totalPrice"`
	Deposit       int32  `json:"deposit"`
}

// ReservationWithItems is the admin listing shape.
type ReservationWithItems struct {
	Reservation
	Items []ReservationItem `json:"items"`
}

// CartLine is one line of an incoming reservation request. DailyPrice is the
// tier-resolved price claimed by the client; the service re-derives it from
// the equipment record before trusting it.
type CartLine struct {
	EquipmentID int32  `json:"equipmentId"`
	Name        string `json:"name"`
	DateFrom    string `json:"dateFrom"`
	DateTo      string `json:"dateTo"`
	Quantity    int32  `json:"quantity"`
	DailyPrice  int32  `json:"dailyPrice"`
	Deposit     int32  `json:"deposit"`
}

// DeriveStatus applies the wall-clock transition rule to a stored status.
// PENDING becomes LOANED once the rental period has started, and PENDING or
// LOANED become RETURNED once it has ended. CANCELLED is never changed.
// today, dateFrom and dateTo are yyyy-mm-dd strings, which order correctly
// under plain string comparison.
func DeriveStatus(stored ReservationStatus, dateFrom, dateTo, today string) ReservationStatus {
	if stored == ReservationStatusPending && today >= dateFrom {
		stored = ReservationStatusLoaned
	}
	if (stored == ReservationStatusPending || stored == ReservationStatusLoaned) && today > dateTo {
		stored = ReservationStatusReturned
	}
	return stored
}
