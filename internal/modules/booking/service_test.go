package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/realtime"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUnit(ctx context.Context, unit string) ([]domain.Booking, error) {
	args := m.Called(ctx, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdatePayment(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) ListByUnit(ctx context.Context, unit string) ([]domain.AvailabilityBlock, error) {
	args := m.Called(ctx, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityBlock), args.Error(1)
}

type MockApartmentRepository struct {
	mock.Mock
}

func (m *MockApartmentRepository) GetByUnit(ctx context.Context, unit string) (*domain.Apartment, error) {
	args := m.Called(ctx, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Apartment), args.Error(1)
}

type recordingPublisher struct {
	events []realtime.Event
}

func (p *recordingPublisher) Publish(ev realtime.Event) { p.events = append(p.events, ev) }

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

type fixture struct {
	bookings   *MockBookingRepository
	blocks     *MockBlockRepository
	apartments *MockApartmentRepository
	events     *recordingPublisher
	svc        *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings:   new(MockBookingRepository),
		blocks:     new(MockBlockRepository),
		apartments: new(MockApartmentRepository),
		events:     &recordingPublisher{},
	}
	f.svc = NewService(f.bookings, f.blocks, f.apartments, f.events)
	return f
}

var apt101 = &domain.Apartment{ID: 1, Unit: "101", DailyRate: 200, CleaningFee: 80, CommissionRate: 15, Active: true}

func existing101() []domain.Booking {
	return []domain.Booking{
		{ID: 1, Unit: "101", GuestName: "Ana", CheckIn: day("2024-06-01"), CheckOut: day("2024-06-05")},
	}
}

func TestCreate_Success_DefaultsFromApartment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.apartments.On("GetByUnit", ctx, "101").Return(apt101, nil)
	f.bookings.On("ListByUnit", ctx, "101").Return(existing101(), nil)
	f.blocks.On("ListByUnit", ctx, "101").Return([]domain.AvailabilityBlock{}, nil)
	f.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

	b, err := f.svc.Create(ctx, BookingRequest{
		Unit:      "101",
		GuestName: "Carlos",
		CheckIn:   "2024-06-05",
		CheckOut:  "2024-06-08",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, 600.0, b.RentAmount)
	assert.Equal(t, 80.0, b.CleaningFee)
	assert.Equal(t, 15.0, b.CommissionRate)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, realtime.Event{Type: realtime.EventBookingCreated, Unit: "101", ID: 999}, f.events.events[0])
	f.bookings.AssertExpectations(t)
}

func TestCreate_Conflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.apartments.On("GetByUnit", ctx, "101").Return(apt101, nil)
	f.bookings.On("ListByUnit", ctx, "101").Return(existing101(), nil)
	f.blocks.On("ListByUnit", ctx, "101").Return([]domain.AvailabilityBlock{}, nil)

	_, err := f.svc.Create(ctx, BookingRequest{
		Unit:      "101",
		GuestName: "Carlos",
		CheckIn:   "2024-06-03",
		CheckOut:  "2024-06-07",
	})

	require.ErrorIs(t, err, ErrConflict)
	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	require.Len(t, ce.Result.Conflicts, 1)
	assert.Equal(t, int64(1), ce.Result.Conflicts[0].ID)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.events.events)
}

func TestCreate_OccupiedBlockConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.apartments.On("GetByUnit", ctx, "101").Return(apt101, nil)
	f.bookings.On("ListByUnit", ctx, "101").Return([]domain.Booking{}, nil)
	f.blocks.On("ListByUnit", ctx, "101").Return([]domain.AvailabilityBlock{
		{ID: 5, Unit: "101", StartDate: day("2024-07-01"), EndDate: day("2024-07-03"), Status: domain.BlockOccupied},
	}, nil)

	_, err := f.svc.Create(ctx, BookingRequest{Unit: "101", GuestName: "Dora", CheckIn: "2024-07-02", CheckOut: "2024-07-04"})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreate_InvalidRange(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), BookingRequest{
		Unit: "101", GuestName: "X", CheckIn: "2024-06-05", CheckOut: "2024-06-05",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Create(context.Background(), BookingRequest{
		Unit: "101", GuestName: "X", CheckIn: "05/06/2024", CheckOut: "2024-06-09",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_UnknownUnit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.apartments.On("GetByUnit", ctx, "999").Return(nil, repository.ErrNotFound)

	_, err := f.svc.Create(ctx, BookingRequest{Unit: "999", GuestName: "X", CheckIn: "2024-06-01", CheckOut: "2024-06-02"})

	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestCreate_ExclusionConstraintMapsToOverbooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.apartments.On("GetByUnit", ctx, "101").Return(apt101, nil)
	f.bookings.On("ListByUnit", ctx, "101").Return([]domain.Booking{}, nil)
	f.blocks.On("ListByUnit", ctx, "101").Return([]domain.AvailabilityBlock{}, nil)
	f.bookings.On("Create", ctx, mock.Anything).Return(&pgconn.PgError{
		Code:           "23P01",
		ConstraintName: repository.BookingsNoOverlapConstraint,
	})

	_, err := f.svc.Create(ctx, BookingRequest{Unit: "101", GuestName: "X", CheckIn: "2024-06-01", CheckOut: "2024-06-02"})

	assert.ErrorIs(t, err, ErrOverbooking)
}

func TestUpdate_ExcludesItself(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	current := existing101()[0]
	f.bookings.On("GetByID", ctx, int64(1)).Return(&current, nil)
	f.apartments.On("GetByUnit", ctx, "101").Return(apt101, nil)
	f.bookings.On("ListByUnit", ctx, "101").Return(existing101(), nil)
	f.blocks.On("ListByUnit", ctx, "101").Return([]domain.AvailabilityBlock{}, nil)
	f.bookings.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)

	rent := 900.0
	b, err := f.svc.Update(ctx, 1, BookingRequest{
		Unit: "101", GuestName: "Ana", CheckIn: "2024-06-02", CheckOut: "2024-06-06", RentAmount: &rent,
	})

	require.NoError(t, err)
	assert.Equal(t, day("2024-06-02"), b.CheckIn)
	assert.Equal(t, 900.0, b.RentAmount)
	assert.Equal(t, realtime.EventBookingUpdated, f.events.events[0].Type)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("GetByID", ctx, int64(42)).Return(nil, repository.ErrNotFound)

	_, err := f.svc.Update(ctx, 42, BookingRequest{Unit: "101", CheckIn: "2024-06-01", CheckOut: "2024-06-02"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidate_ReportsConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bookings.On("ListByUnit", ctx, "101").Return(existing101(), nil)
	f.blocks.On("ListByUnit", ctx, "101").Return([]domain.AvailabilityBlock{}, nil)

	res, err := f.svc.Validate(ctx, ValidateRequest{Unit: "101", CheckIn: "2024-06-04", CheckOut: "2024-06-06"})
	require.NoError(t, err)
	assert.False(t, res.IsValid)

	res, err = f.svc.Validate(ctx, ValidateRequest{Unit: "101", CheckIn: "2024-06-04", CheckOut: "2024-06-06", ExcludeBookingID: 1})
	require.NoError(t, err)
	assert.True(t, res.IsValid)
}

func TestRegisterPayment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b := &domain.Booking{ID: 3, Unit: "101", RentAmount: 500, CleaningFee: 100, PaymentStatus: domain.PaymentPending}
	f.bookings.On("GetByID", ctx, int64(3)).Return(b, nil)
	f.bookings.On("UpdatePayment", ctx, b).Return(nil)

	got, err := f.svc.RegisterPayment(ctx, 3, 250)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPartial, got.PaymentStatus)
	assert.Equal(t, 350.0, got.Balance())

	got, err = f.svc.RegisterPayment(ctx, 3, 350)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)

	_, err = f.svc.RegisterPayment(ctx, 3, -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	b := existing101()[0]
	f.bookings.On("GetByID", ctx, int64(1)).Return(&b, nil)
	f.bookings.On("Delete", ctx, int64(1)).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, 1))
	assert.Equal(t, realtime.EventBookingDeleted, f.events.events[0].Type)
}
