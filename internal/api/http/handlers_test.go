package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/service"
)

// MockEquipmentService
type MockEquipmentService struct {
	mock.Mock
}

func (m *MockEquipmentService) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentService) CreateEquipment(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentService) UpdateEquipment(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentService) DeleteEquipment(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEquipmentService) ReorderEquipment(ctx context.Context, orders []domain.SortOrderUpdate) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

// MockAvailabilityService
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) GetAvailableQuantity(ctx context.Context, equipmentID int32, dateFrom, dateTo string) (int32, error) {
	args := m.Called(ctx, equipmentID, dateFrom, dateTo)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockAvailabilityService) CheckAvailability(ctx context.Context, equipmentID int32, dateFrom, dateTo string) (bool, error) {
	args := m.Called(ctx, equipmentID, dateFrom, dateTo)
	return args.Bool(0), args.Error(1)
}
func (m *MockAvailabilityService) ListEquipmentReservations(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error) {
	args := m.Called(ctx, equipmentID)
	return args.Get(0).([]domain.ReservationItem), args.Error(1)
}

// MockReservationService
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateReservation(ctx context.Context, contact service.ContactInfo, cart []domain.CartLine) (*domain.Reservation, []domain.ReservationItem, error) {
	args := m.Called(ctx, contact, cart)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Reservation), args.Get(1).([]domain.ReservationItem), args.Error(2)
}
func (m *MockReservationService) ListReservations(ctx context.Context) ([]domain.ReservationWithItems, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ReservationWithItems), args.Error(1)
}
func (m *MockReservationService) GetReservationByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, []domain.ReservationItem, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Reservation), args.Get(1).([]domain.ReservationItem), args.Error(2)
}
func (m *MockReservationService) GetReservationItems(ctx context.Context, reservationID int32) ([]domain.ReservationItem, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]domain.ReservationItem), args.Error(1)
}
func (m *MockReservationService) UpdateReservation(ctx context.Context, id int32, dateFrom, dateTo string, quantity int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id, dateFrom, dateTo, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) ReplaceReservationItems(ctx context.Context, id int32, lines []domain.CartLine) error {
	args := m.Called(ctx, id, lines)
	return args.Error(0)
}
func (m *MockReservationService) UpdateReservationStatus(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) DeleteReservation(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockReservationService) GenerateContract(ctx context.Context, reservationID int32) ([]byte, string, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func testRouter(t *testing.T, eqSvc *MockEquipmentService, availSvc *MockAvailabilityService, resSvc *MockReservationService) http.Handler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("heslo123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	auth := NewAuthHandler("test-secret", "admin", string(hash))
	uploads, err := NewUploadHandler(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRouter(auth,
		NewEquipmentHandler(eqSvc, availSvc),
		NewReservationHandler(resSvc),
		uploads, t.TempDir())
}

func TestEquipmentHandler_List(t *testing.T) {
	eqSvc := new(MockEquipmentService)
	availSvc := new(MockAvailabilityService)
	resSvc := new(MockReservationService)
	router := testRouter(t, eqSvc, availSvc, resSvc)

	eqSvc.On("ListEquipment", mock.Anything).Return([]domain.Equipment{
		{ID: 1, Name: "Stan", Stock: 3},
	}, nil)

	req := httptest.NewRequest("GET", "/api/equipment", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var out []domain.Equipment
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Len(t, out, 1)
	assert.Equal(t, "Stan", out[0].Name)
}

func TestEquipmentHandler_Get(t *testing.T) {
	eqSvc := new(MockEquipmentService)
	availSvc := new(MockAvailabilityService)
	resSvc := new(MockReservationService)
	router := testRouter(t, eqSvc, availSvc, resSvc)

	t.Run("Success", func(t *testing.T) {
		eqSvc.On("GetEquipment", mock.Anything, int32(5)).
			Return(&domain.Equipment{ID: 5, Name: "Karimatka", Stock: 10}, nil).Once()

		req := httptest.NewRequest("GET", "/api/equipment/5", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var out domain.Equipment
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, int32(5), out.ID)
		assert.Equal(t, "Karimatka", out.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		eqSvc.On("GetEquipment", mock.Anything, int32(99)).
			Return(nil, domain.ErrEquipmentNotFound).Once()

		req := httptest.NewRequest("GET", "/api/equipment/99", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var out errorResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, "NOT_FOUND", out.Code)
	})
}

func TestEquipmentHandler_Availability(t *testing.T) {
	eqSvc := new(MockEquipmentService)
	availSvc := new(MockAvailabilityService)
	resSvc := new(MockReservationService)
	router := testRouter(t, eqSvc, availSvc, resSvc)

	availSvc.On("GetAvailableQuantity", mock.Anything, int32(1), "2026-06-01", "2026-06-03").
		Return(int32(2), nil)

	body, _ := json.Marshal(map[string]string{"dateFrom": "2026-06-01", "dateTo": "2026-06-03"})
	req := httptest.NewRequest("POST", "/api/equipment/1/availability", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var out availabilityResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.True(t, out.Available)
	assert.Equal(t, int32(2), out.AvailableQuantity)
}

func TestReservationHandler_Create(t *testing.T) {
	eqSvc := new(MockEquipmentService)
	availSvc := new(MockAvailabilityService)
	resSvc := new(MockReservationService)
	router := testRouter(t, eqSvc, availSvc, resSvc)

	t.Run("Success", func(t *testing.T) {
		resSvc.On("CreateReservation", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.Reservation{ID: 1, OrderNumber: "P2026001"}, []domain.ReservationItem{{ID: 1}}, nil).Once()

		body, _ := json.Marshal(map[string]any{
			"customerName":  "Jan Novák",
			"customerEmail": "jan@example.com",
			"items":         []map[string]any{{"equipmentId": 1}},
		})
		req := httptest.NewRequest("POST", "/api/reservations", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var out createReservationResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, "P2026001", out.Reservation.OrderNumber)
		assert.Equal(t, "/platba/P2026001", out.PaymentURL)
	})

	t.Run("Conflict", func(t *testing.T) {
		resSvc.On("CreateReservation", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil, &domain.AvailabilityError{EquipmentName: "Stan", Requested: 2, Available: 1}).Once()

		body, _ := json.Marshal(map[string]any{"items": []map[string]any{{"equipmentId": 1}}})
		req := httptest.NewRequest("POST", "/api/reservations", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		var out errorResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, "UNAVAILABLE", out.Code)
	})
}

func TestAdminRoutesRequireSession(t *testing.T) {
	eqSvc := new(MockEquipmentService)
	availSvc := new(MockAvailabilityService)
	resSvc := new(MockReservationService)
	router := testRouter(t, eqSvc, availSvc, resSvc)

	req := httptest.NewRequest("GET", "/api/reservations", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthLoginFlow(t *testing.T) {
	eqSvc := new(MockEquipmentService)
	availSvc := new(MockAvailabilityService)
	resSvc := new(MockReservationService)
	router := testRouter(t, eqSvc, availSvc, resSvc)

	t.Run("WrongPassword", func(t *testing.T) {
		body, _ := json.Marshal(loginRequest{Username: "admin", Password: "spatne"})
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("SuccessOpensAdminRoutes", func(t *testing.T) {
		body, _ := json.Marshal(loginRequest{Username: "admin", Password: "heslo123"})
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)

		cookies := rr.Result().Cookies()
		assert.NotEmpty(t, cookies)

		resSvc.On("ListReservations", mock.Anything).Return([]domain.ReservationWithItems{}, nil)
		listReq := httptest.NewRequest("GET", "/api/reservations", nil)
		for _, c := range cookies {
			listReq.AddCookie(c)
		}
		listRR := httptest.NewRecorder()
		router.ServeHTTP(listRR, listReq)
		assert.Equal(t, http.StatusOK, listRR.Code)
	})
}
