package contract

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/money"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, c *domain.Contract) error {
	args := m.Called(ctx, c)
	if c != nil {
		c.ID = 7
	}
	return args.Error(0)
}

func (m *MockContractRepository) Update(ctx context.Context, c *domain.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockContractRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContractRepository) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) List(ctx context.Context, unit string) ([]domain.Contract, error) {
	args := m.Called(ctx, unit)
	return args.Get(0).([]domain.Contract), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
}

func float(v float64) *float64 { return &v }

func TestRender_ReplacesPlaceholders(t *testing.T) {
	c := &domain.Contract{
		Unit:        "101",
		TenantName:  "Ana Souza",
		StartDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		MonthlyRent: 2500,
		Deposit:     5000,
	}

	out := Render("{{inquilino}} ({{documento}}) alugou {{unidade}} de {{inicio}} a {{fim}} por {{aluguel}}, caução {{caucao}}, em {{data}}. {{outro}}", c, fixedNow())

	want := "Ana Souza (-) alugou 101 de 01/06/2024 a 30/06/2024 por " + money.BRL(2500) + ", caução " + money.BRL(5000) + ", em 20/05/2024. {{outro}}"
	assert.Equal(t, want, out)
}

func TestRender_DefaultTemplate(t *testing.T) {
	c := &domain.Contract{Unit: "202", TenantName: "Bruno"}

	out := Render("   ", c, fixedNow())

	assert.True(t, strings.HasPrefix(out, "CONTRATO DE LOCAÇÃO"))
	assert.Contains(t, out, "LOCATÁRIO: Bruno")
	assert.NotContains(t, out, "{{")
}

func TestService_Create_PrefillsFromBooking(t *testing.T) {
	contracts := new(MockContractRepository)
	bookings := new(MockBookingReader)
	svc := NewService(contracts, bookings)
	svc.now = fixedNow
	ctx := context.Background()

	bookings.On("GetByID", ctx, int64(3)).Return(&domain.Booking{
		ID:         3,
		Unit:       "101",
		GuestName:  "Ana",
		GuestPhone: "11999990000",
		CheckIn:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		RentAmount: 600,
	}, nil)
	contracts.On("Create", ctx, mock.AnythingOfType("*domain.Contract")).Return(nil)

	bookingID := int64(3)
	c, err := svc.Create(ctx, ContractRequest{BookingID: &bookingID, TenantDocument: "123.456.789-00", Deposit: float(300)})

	require.NoError(t, err)
	assert.Equal(t, "101", c.Unit)
	assert.Equal(t, "Ana", c.TenantName)
	assert.Equal(t, "11999990000", c.TenantPhone)
	assert.Equal(t, 600.0, c.MonthlyRent)
	assert.Equal(t, domain.ContractDraft, c.Status)
	assert.Contains(t, c.Body, "01/06/2024 a 05/06/2024")
	assert.Contains(t, c.Body, money.BRL(600))
	assert.Contains(t, c.Body, "123.456.789-00")
}

func TestService_Create_Validation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		req  ContractRequest
	}{
		{"missing unit", ContractRequest{TenantName: "Ana", StartDate: "2024-06-01", EndDate: "2024-06-05"}},
		{"missing tenant", ContractRequest{Unit: "101", StartDate: "2024-06-01", EndDate: "2024-06-05"}},
		{"missing dates", ContractRequest{Unit: "101", TenantName: "Ana"}},
		{"inverted dates", ContractRequest{Unit: "101", TenantName: "Ana", StartDate: "2024-06-05", EndDate: "2024-06-01"}},
		{"bad date", ContractRequest{Unit: "101", TenantName: "Ana", StartDate: "01/06/2024", EndDate: "2024-06-05"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			contracts := new(MockContractRepository)
			svc := NewService(contracts, new(MockBookingReader))

			_, err := svc.Create(ctx, tc.req)

			assert.ErrorIs(t, err, ErrValidation)
			contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_UnknownBooking(t *testing.T) {
	ctx := context.Background()
	bookings := new(MockBookingReader)
	bookings.On("GetByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)
	svc := NewService(new(MockContractRepository), bookings)

	id := int64(9)
	_, err := svc.Create(ctx, ContractRequest{BookingID: &id})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_PDF(t *testing.T) {
	ctx := context.Background()
	contracts := new(MockContractRepository)
	contracts.On("GetByID", ctx, int64(1)).Return(&domain.Contract{ID: 1, Unit: "101", Body: "Locação da unidade 101 por R$ 1.000,00"}, nil)
	contracts.On("GetByID", ctx, int64(2)).Return(nil, repository.ErrNotFound)
	svc := NewService(contracts, new(MockBookingReader))

	_, doc, err := svc.PDF(ctx, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), "%PDF"))

	_, _, err = svc.PDF(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}
