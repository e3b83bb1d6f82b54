package service

import (
	"context"
	"fmt"
	"net/mail"

	"pujcovna-backend/internal/clock"
	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/logger"
	"pujcovna-backend/internal/repository"
	"pujcovna-backend/internal/utils"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	itemRepo        repository.ReservationItemRepository
	equipmentRepo   repository.EquipmentRepository
	orderNumbers    *utils.OrderNumberGenerator
	contracts       ContractGenerator
	emails          EmailService
	clk             clock.Clock
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	itemRepo repository.ReservationItemRepository,
	equipmentRepo repository.EquipmentRepository,
	orderNumbers *utils.OrderNumberGenerator,
	contracts ContractGenerator,
	emails EmailService,
	clk clock.Clock,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		itemRepo:        itemRepo,
		equipmentRepo:   equipmentRepo,
		orderNumbers:    orderNumbers,
		contracts:       contracts,
		emails:          emails,
		clk:             clk,
	}
}

// SeedOrderNumbers positions the order-number counter from durable history.
// Called once at startup before the service accepts requests.
func SeedOrderNumbers(ctx context.Context, repo repository.ReservationRepository, gen *utils.OrderNumberGenerator) error {
	numbers, err := repo.ListOrderNumbers(ctx)
	if err != nil {
		return fmt.Errorf("seed order numbers: %w", err)
	}
	gen.Seed(numbers)
	return nil
}

func (s *reservationService) CreateReservation(ctx context.Context, contact ContactInfo, cart []domain.CartLine) (*domain.Reservation, []domain.ReservationItem, error) {
	if err := validateContact(contact); err != nil {
		return nil, nil, err
	}
	if len(cart) == 0 {
		return nil, nil, domain.ErrEmptyCart
	}

	// Build the item snapshots. The daily price is re-derived from the
	// equipment record's tier table rather than trusted from the client.
	items := make([]domain.ReservationItem, 0, len(cart))
	for _, line := range cart {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}

		days, err := utils.BillableDaysStr(line.DateFrom, line.DateTo)
		if err != nil {
			return nil, nil, &domain.ValidationError{Field: "dateFrom", Message: err.Error()}
		}

		eq, err := s.equipmentRepo.GetByID(ctx, line.EquipmentID)
		if err != nil {
			return nil, nil, err
		}

		// Fast-path availability check before an order number is spent.
		// The authoritative re-check happens inside CreateWithItems.
		available, err := s.availableQuantity(ctx, eq, line.DateFrom, line.DateTo)
		if err != nil {
			return nil, nil, err
		}
		if available < qty {
			return nil, nil, &domain.AvailabilityError{
				EquipmentName: eq.Name,
				Requested:     qty,
				Available:     available,
			}
		}

		dailyPrice := utils.TierDailyPrice(eq, days)
		totalPrice, _ := utils.LineTotals(dailyPrice, eq.Deposit, days, qty)

		items = append(items, domain.ReservationItem{
			EquipmentID: line.EquipmentID,
			DateFrom:    line.DateFrom,
			DateTo:      line.DateTo,
			Days:        days,
			Quantity:    qty,
			DailyPrice:  dailyPrice,
			TotalPrice:  totalPrice,
			Deposit:     eq.Deposit,
		})
	}

	totalPrice, totalDeposit := utils.ReservationTotals(items)

	res := &domain.Reservation{
		EquipmentID:     items[0].EquipmentID,
		DateFrom:        items[0].DateFrom,
		DateTo:          items[0].DateTo,
		Quantity:        items[0].Quantity,
		CustomerName:    contact.CustomerName,
		CustomerEmail:   contact.CustomerEmail,
		CustomerPhone:   contact.CustomerPhone,
		CustomerAddress: contact.CustomerAddress,
		CustomerNote:    contact.CustomerNote,
		PickupLocation:  contact.PickupLocation,
		TotalPrice:      totalPrice,
		TotalDeposit:    totalDeposit,
		OrderNumber:     s.orderNumbers.Next(),
		Status:          domain.ReservationStatusPending,
	}

	// Availability is checked and the rows written inside one serializable
	// transaction; a losing concurrent request gets an AvailabilityError
	// and leaves nothing behind.
	if err := s.reservationRepo.CreateWithItems(ctx, res, items); err != nil {
		return nil, nil, err
	}

	logger.Info("Reservation created",
		"order_number", res.OrderNumber,
		"customer", res.CustomerName,
		"items", len(items),
		"total_price", res.TotalPrice)

	s.dispatchContract(res, items)

	return res, items, nil
}

func (s *reservationService) availableQuantity(ctx context.Context, eq *domain.Equipment, dateFrom, dateTo string) (int32, error) {
	reqFrom, err := utils.ParseDate(dateFrom)
	if err != nil {
		return 0, &domain.ValidationError{Field: "dateFrom", Message: err.Error()}
	}
	reqTo, err := utils.ParseDate(dateTo)
	if err != nil {
		return 0, &domain.ValidationError{Field: "dateTo", Message: err.Error()}
	}

	items, err := s.itemRepo.ListByEquipment(ctx, eq.ID)
	if err != nil {
		return 0, err
	}

	var reserved int32
	for _, item := range items {
		itemFrom, err := utils.ParseDate(item.DateFrom)
		if err != nil {
			continue
		}
		itemTo, err := utils.ParseDate(item.DateTo)
		if err != nil {
			continue
		}
		if utils.Overlaps(reqFrom, reqTo, itemFrom, itemTo) {
			n := item.Quantity
			if n < 1 {
				n = 1
			}
			reserved += n
		}
	}

	available := eq.Stock - reserved
	if available < 0 {
		available = 0
	}
	return available, nil
}

// dispatchContract renders the contract and emails it to the customer and
// the operator. The reservation is already committed, so failures here are
// logged and swallowed.
func (s *reservationService) dispatchContract(res *domain.Reservation, items []domain.ReservationItem) {
	go func() {
		ctx := context.Background()

		data, err := s.contractData(ctx, res, items)
		if err != nil {
			logger.Error("Failed to assemble contract data", "order_number", res.OrderNumber, "error", err)
			return
		}
		pdf, err := s.contracts.Generate(*data)
		if err != nil {
			logger.Error("Failed to generate contract PDF", "order_number", res.OrderNumber, "error", err)
			return
		}

		customerSent, operatorSent := s.emails.SendContractEmails(ctx, res.CustomerEmail, res.CustomerName, res.OrderNumber, pdf)
		logger.Info("Contract emails dispatched",
			"order_number", res.OrderNumber,
			"customer_sent", customerSent,
			"operator_sent", operatorSent)
	}()
}

func (s *reservationService) contractData(ctx context.Context, res *domain.Reservation, items []domain.ReservationItem) (*ContractData, error) {
	contractItems := make([]ContractItem, 0, len(items))
	for _, it := range items {
		name := fmt.Sprintf("Equipment %d", it.EquipmentID)
		if eq, err := s.equipmentRepo.GetByID(ctx, it.EquipmentID); err == nil {
			name = eq.Name
		}
		contractItems = append(contractItems, ContractItem{
			Name:       name,
			Quantity:   it.Quantity,
			Days:       it.Days,
			DailyPrice: it.DailyPrice,
			Deposit:    it.Deposit,
			TotalPrice: it.TotalPrice,
		})
	}

	invoiceNumber := res.OrderNumber
	if res.InvoiceNumber != nil && *res.InvoiceNumber != "" {
		invoiceNumber = *res.InvoiceNumber
	}

	return &ContractData{
		InvoiceNumber:   invoiceNumber,
		OrderNumber:     res.OrderNumber,
		CustomerName:    res.CustomerName,
		CustomerEmail:   res.CustomerEmail,
		CustomerPhone:   res.CustomerPhone,
		CustomerAddress: res.CustomerAddress,
		PickupLocation:  res.PickupLocation,
		DateFrom:        res.DateFrom,
		DateTo:          res.DateTo,
		Items:           contractItems,
	}, nil
}

// ListReservations lists all reservations with items, applying the
// wall-clock status derivation. A derived change is persisted as a side
// effect of the read; the write is idempotent, so concurrent listers at
// worst repeat it.
func (s *reservationService) ListReservations(ctx context.Context) ([]domain.ReservationWithItems, error) {
	reservations, err := s.reservationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clk)
	out := make([]domain.ReservationWithItems, 0, len(reservations))
	for _, res := range reservations {
		derived := domain.DeriveStatus(res.Status, res.DateFrom, res.DateTo, today)
		if derived != res.Status {
			if err := s.reservationRepo.UpdateStatus(ctx, res.ID, derived); err != nil {
				logger.Error("Failed to persist derived status",
					"reservation_id", res.ID, "status", derived, "error", err)
			} else {
				res.Status = derived
			}
		}

		items, err := s.itemRepo.ListByReservation(ctx, res.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ReservationWithItems{Reservation: res, Items: items})
	}
	return out, nil
}

func (s *reservationService) GetReservationByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, []domain.ReservationItem, error) {
	res, err := s.reservationRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.itemRepo.ListByReservation(ctx, res.ID)
	if err != nil {
		return nil, nil, err
	}
	return res, items, nil
}

func (s *reservationService) GetReservationItems(ctx context.Context, reservationID int32) ([]domain.ReservationItem, error) {
	return s.itemRepo.ListByReservation(ctx, reservationID)
}

func (s *reservationService) UpdateReservation(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) (*domain.Reservation, error) {
	if _, err := utils.BillableDaysStr(dateFrom, dateTo); err != nil {
		return nil, &domain.ValidationError{Field: "dateFrom", Message: err.Error()}
	}
	if quantity < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}
	if err := s.reservationRepo.UpdateDatesQuantity(ctx, id, dateFrom, dateTo, quantity); err != nil {
		return nil, err
	}
	return s.reservationRepo.GetByID(ctx, id)
}

// ReplaceReservationItems rewrites a reservation's lines wholesale. Day
// counts and totals are recomputed from the reservation's date range, and
// the header aggregates are updated to match.
func (s *reservationService) ReplaceReservationItems(ctx context.Context, id int32, lines []domain.CartLine) error {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	days, err := utils.BillableDaysStr(res.DateFrom, res.DateTo)
	if err != nil {
		return err
	}

	items := make([]domain.ReservationItem, 0, len(lines))
	for _, line := range lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		totalPrice, _ := utils.LineTotals(line.DailyPrice, line.Deposit, days, qty)
		items = append(items, domain.ReservationItem{
			ReservationID: id,
			EquipmentID:   line.EquipmentID,
			DateFrom:      res.DateFrom,
			DateTo:        res.DateTo,
			Days:          days,
			Quantity:      qty,
			DailyPrice:    line.DailyPrice,
			TotalPrice:    totalPrice,
			Deposit:       line.Deposit,
		})
	}

	if err := s.itemRepo.ReplaceForReservation(ctx, id, items); err != nil {
		return err
	}

	totalPrice, totalDeposit := utils.ReservationTotals(items)
	return s.reservationRepo.UpdateTotals(ctx, id, totalPrice, totalDeposit)
}

func (s *reservationService) UpdateReservationStatus(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error) {
	if !domain.IsValidReservationStatus(string(status)) {
		return nil, domain.ErrInvalidStatus
	}
	if err := s.reservationRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.reservationRepo.GetByID(ctx, id)
}

func (s *reservationService) DeleteReservation(ctx context.Context, id int32) error {
	return s.reservationRepo.Delete(ctx, id)
}

// GenerateContract renders the contract PDF for an existing reservation and
// returns the bytes plus the download filename.
func (s *reservationService) GenerateContract(ctx context.Context, reservationID int32) ([]byte, string, error) {
	res, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, "", err
	}
	items, err := s.itemRepo.ListByReservation(ctx, res.ID)
	if err != nil {
		return nil, "", err
	}
	if len(items) == 0 {
		return nil, "", fmt.Errorf("reservation %d has no items", reservationID)
	}

	data, err := s.contractData(ctx, res, items)
	if err != nil {
		return nil, "", err
	}
	pdf, err := s.contracts.Generate(*data)
	if err != nil {
		return nil, "", fmt.Errorf("generate contract: %w", err)
	}
	return pdf, fmt.Sprintf("smlouva-%s.pdf", data.InvoiceNumber), nil
}

func validateContact(contact ContactInfo) error {
	if contact.CustomerName == "" {
		return &domain.ValidationError{Field: "customerName", Message: "name is required"}
	}
	if _, err := mail.ParseAddress(contact.CustomerEmail); err != nil {
		return &domain.ValidationError{Field: "customerEmail", Message: "invalid email address"}
	}
	if contact.CustomerPhone == "" {
		return &domain.ValidationError{Field: "customerPhone", Message: "phone is required"}
	}
	if contact.CustomerAddress == "" {
		return &domain.ValidationError{Field: "customerAddress", Message: "address is required"}
	}
	if !domain.IsValidPickupLocation(contact.PickupLocation) {
		return &domain.ValidationError{Field: "pickupLocation", Message: "unknown pickup location"}
	}
	return nil
}
