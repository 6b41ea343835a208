package report

import (
	"context"
	"testing"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockBlockRepository struct{ mock.Mock }

func (m *MockBlockRepository) List(ctx context.Context, unit string, from, to time.Time) ([]domain.AvailabilityBlock, error) {
	args := m.Called(ctx, unit, from, to)
	return args.Get(0).([]domain.AvailabilityBlock), args.Error(1)
}

type MockExpenseRepository struct{ mock.Mock }

func (m *MockExpenseRepository) List(ctx context.Context, f domain.ExpenseFilter) ([]domain.Expense, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Expense), args.Error(1)
}

type MockApartmentRepository struct{ mock.Mock }

func (m *MockApartmentRepository) List(ctx context.Context, activeOnly bool) ([]domain.Apartment, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.Apartment), args.Error(1)
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

type fixture struct {
	bookings   *MockBookingRepository
	blocks     *MockBlockRepository
	expenses   *MockExpenseRepository
	apartments *MockApartmentRepository
	svc        *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings:   new(MockBookingRepository),
		blocks:     new(MockBlockRepository),
		expenses:   new(MockExpenseRepository),
		apartments: new(MockApartmentRepository),
	}
	f.svc = NewService(f.bookings, f.blocks, f.expenses, f.apartments)
	return f
}

func TestOccupancy(t *testing.T) {
	f := newFixture()
	f.apartments.On("List", mock.Anything, true).Return([]domain.Apartment{{Unit: "101"}, {Unit: "202"}}, nil)
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]domain.Booking{
		{ID: 1, Unit: "101", CheckIn: day("2024-06-01"), CheckOut: day("2024-06-06")},
		{ID: 2, Unit: "202", CheckIn: day("2024-06-09"), CheckOut: day("2024-06-12")},
	}, nil)
	f.blocks.On("List", mock.Anything, "", mock.Anything, mock.Anything).Return([]domain.AvailabilityBlock{
		{ID: 3, Unit: "202", StartDate: day("2024-06-01"), EndDate: day("2024-06-02"), Status: domain.BlockMaintenance},
	}, nil)

	rep, err := f.svc.Occupancy(context.Background(), "", day("2024-06-01"), day("2024-06-10"))
	require.NoError(t, err)

	assert.Equal(t, 10, rep.Days)
	require.Len(t, rep.Units, 2)
	assert.Equal(t, UnitOccupancy{Unit: "101", OccupiedNights: 5, Rate: 0.5}, rep.Units[0])
	assert.Equal(t, UnitOccupancy{Unit: "202", OccupiedNights: 2, BlockedNights: 2, Rate: 0.2}, rep.Units[1])
	assert.Equal(t, 0.35, rep.AverageRate)
}

func TestOccupancy_InvertedRange(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Occupancy(context.Background(), "101", day("2024-06-10"), day("2024-06-01"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFinancial(t *testing.T) {
	f := newFixture()
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]domain.Booking{
		{ID: 1, Unit: "101", CheckIn: day("2024-06-01"), CheckOut: day("2024-06-05"), RentAmount: 1000, CleaningFee: 100, CommissionRate: 10, AmountPaid: 600},
		{ID: 2, Unit: "101", CheckIn: day("2024-05-28"), CheckOut: day("2024-06-02"), RentAmount: 500},
		{ID: 3, Unit: "202", CheckIn: day("2024-06-10"), CheckOut: day("2024-06-12"), RentAmount: 400, CommissionRate: 20, AmountPaid: 400},
	}, nil)
	f.expenses.On("List", mock.Anything, mock.Anything).Return([]domain.Expense{
		{Unit: "101", Amount: 150},
		{Unit: "303", Amount: 50},
	}, nil)

	rep, err := f.svc.Financial(context.Background(), "", day("2024-06-01"), day("2024-06-30"))
	require.NoError(t, err)
	require.Len(t, rep.Units, 3)

	u101 := rep.Units[0]
	assert.Equal(t, "101", u101.Unit)
	assert.Equal(t, 1, u101.Bookings)
	assert.Equal(t, 1100.0, u101.Revenue)
	assert.Equal(t, 500.0, u101.Pending)
	assert.Equal(t, 100.0, u101.Commission)
	assert.Equal(t, 850.0, u101.Net)

	assert.Equal(t, "303", rep.Units[2].Unit)
	assert.Equal(t, -50.0, rep.Units[2].Net)

	assert.Equal(t, 2, rep.Totals.Bookings)
	assert.Equal(t, 1120.0, rep.Totals.Net)
}

func TestMovements(t *testing.T) {
	f := newFixture()
	f.bookings.On("List", mock.Anything, domain.BookingFilter{From: day("2024-06-04"), To: day("2024-06-06")}).Return([]domain.Booking{
		{ID: 1, Unit: "101", GuestName: "Ana", CheckIn: day("2024-06-01"), CheckOut: day("2024-06-05")},
		{ID: 2, Unit: "101", GuestName: "Bruno", CheckIn: day("2024-06-05"), CheckOut: day("2024-06-08")},
		{ID: 3, Unit: "202", GuestName: "Carla", CheckIn: day("2024-06-03"), CheckOut: day("2024-06-09")},
	}, nil)

	rep, err := f.svc.Movements(context.Background(), "", day("2024-06-05"))
	require.NoError(t, err)

	require.Len(t, rep.CheckIns, 1)
	assert.Equal(t, "Bruno", rep.CheckIns[0].GuestName)
	require.Len(t, rep.CheckOuts, 1)
	assert.Equal(t, "Ana", rep.CheckOuts[0].GuestName)

	text, err := RenderMovements(rep)
	require.NoError(t, err)
	assert.Contains(t, text, "05/06/2024")
	assert.Contains(t, text, "Bruno")
}

func TestBuild_UsesScheduleTimezone(t *testing.T) {
	f := newFixture()
	// 01:30 UTC on June 5th is still June 4th in São Paulo.
	f.bookings.On("List", mock.Anything, domain.BookingFilter{From: day("2024-06-03"), To: day("2024-06-05")}).
		Return([]domain.Booking{}, nil)

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	text, err := f.svc.Build(context.Background(), domain.ReportMovements, "", time.Date(2024, 6, 5, 1, 30, 0, 0, time.UTC), loc)
	require.NoError(t, err)
	assert.Contains(t, text, "04/06/2024")
	assert.Contains(t, text, "nenhum")
}

func TestBuild_UnknownType(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Build(context.Background(), domain.ReportType("weather"), "", time.Now(), nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestRenderFinancial(t *testing.T) {
	text, err := RenderFinancial(&FinancialReport{
		From:   day("2024-06-01"),
		To:     day("2024-06-30"),
		Units:  []UnitFinancial{{Unit: "101", Bookings: 2, Revenue: 1234.56, Net: 1000}},
		Totals: UnitFinancial{Net: 1000, Revenue: 1234.56},
	})
	require.NoError(t, err)
	assert.Contains(t, text, "Unidade 101 (2 reservas)")
	assert.Contains(t, text, "R$ ")
}
