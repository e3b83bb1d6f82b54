package service

import (
	"context"

	"pujcovna-backend/internal/domain"
)

type EquipmentService interface {
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error)
	CreateEquipment(ctx context.Context, eq *domain.Equipment) error
	UpdateEquipment(ctx context.Context, eq *domain.Equipment) error
	DeleteEquipment(ctx context.Context, id int32) error
	ReorderEquipment(ctx context.Context, orders []domain.SortOrderUpdate) error
}

type AvailabilityService interface {
	// GetAvailableQuantity returns stock minus the summed quantity of all
	// overlapping reservation items. Unknown equipment yields zero, not an
	// error.
	GetAvailableQuantity(ctx context.Context, equipmentID int32, dateFrom, dateTo string) (int32, error)
	CheckAvailability(ctx context.Context, equipmentID int32, dateFrom, dateTo string) (bool, error)
	ListEquipmentReservations(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error)
}

// ContactInfo is the customer block of an incoming reservation request.
type ContactInfo struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`
	CustomerNote    string `json:"customerNote"`
	PickupLocation  string `json:"pickupLocation"`
}

type ReservationService interface {
	CreateReservation(ctx context.Context, contact ContactInfo, cart []domain.CartLine) (*domain.Reservation, []domain.ReservationItem, error)
	ListReservations(ctx context.Context) ([]domain.ReservationWithItems, error)
	GetReservationByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, []domain.ReservationItem, error)
	GetReservationItems(ctx context.Context, reservationID int32) ([]domain.ReservationItem, error)
	UpdateReservation(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) (*domain.Reservation, error)
	ReplaceReservationItems(ctx context.Context, id int32, lines []domain.CartLine) error
	UpdateReservationStatus(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, id int32) error
	GenerateContract(ctx context.Context, reservationID int32) ([]byte, string, error)
}

// ContractItem is one row of the contract's itemized table.
type ContractItem struct {
	Name       string
	Quantity   int32
	Days       int32
	DailyPrice int32
	Deposit    int32
	TotalPrice int32
}

// ContractData is everything the document generator needs to render one
// rental contract.
type ContractData struct {
	InvoiceNumber   string
	OrderNumber     string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	PickupLocation  string
	DateFrom        string
	DateTo          string
	Items           []ContractItem
}

type ContractGenerator interface {
	Generate(data ContractData) ([]byte, error)
}

// EmailAttachment mirrors the dispatcher boundary: base64 content plus MIME
// metadata.
type EmailAttachment struct {
	Filename      string
	ContentBase64 string
	MIMEType      string
}

type EmailMessage struct {
	To          string
	From        string
	Subject     string
	Text        string
	HTML        string
	Attachments []EmailAttachment
}

type EmailService interface {
	// Send delivers one message, reporting success as a boolean; transport
	// failures are logged by the implementation, never raised.
	Send(ctx context.Context, msg EmailMessage) bool

	// SendContractEmails sends the customer confirmation and the operator
	// notice, both with the contract PDF attached.
	SendContractEmails(ctx context.Context, customerEmail, customerName, orderNumber string, pdf []byte) (customerSent, operatorSent bool)
}
