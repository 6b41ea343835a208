package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) Create(ctx context.Context, b *domain.AvailabilityBlock) error {
	args := m.Called(ctx, b)
	b.ID = 55
	return args.Error(0)
}

func (m *MockBlockRepository) Update(ctx context.Context, b *domain.AvailabilityBlock) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBlockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBlockRepository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityBlock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AvailabilityBlock), args.Error(1)
}

func (m *MockBlockRepository) List(ctx context.Context, unit string, from, to time.Time) ([]domain.AvailabilityBlock, error) {
	args := m.Called(ctx, unit, from, to)
	return args.Get(0).([]domain.AvailabilityBlock), args.Error(1)
}

func (m *MockBlockRepository) ListByUnit(ctx context.Context, unit string) ([]domain.AvailabilityBlock, error) {
	args := m.Called(ctx, unit)
	return args.Get(0).([]domain.AvailabilityBlock), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListByUnit(ctx context.Context, unit string) ([]domain.Booking, error) {
	args := m.Called(ctx, unit)
	return args.Get(0).([]domain.Booking), args.Error(1)
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

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestCreateBlock(t *testing.T) {
	blocks := new(MockBlockRepository)
	apartments := new(MockApartmentRepository)
	svc := NewService(blocks, new(MockBookingRepository), apartments, nil)
	ctx := context.Background()
	apartments.On("GetByUnit", ctx, "101").Return(&domain.Apartment{Unit: "101"}, nil)
	blocks.On("Create", ctx, mock.AnythingOfType("*domain.AvailabilityBlock")).Return(nil)

	b, err := svc.CreateBlock(ctx, BlockRequest{
		Unit: "101", StartDate: "2024-06-10", EndDate: "2024-06-12", Status: "maintenance",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(55), b.ID)
	assert.Equal(t, domain.BlockMaintenance, b.Status)
	assert.Equal(t, day("2024-06-12"), b.EndDate)
}

func TestCreateBlock_Invalid(t *testing.T) {
	svc := NewService(new(MockBlockRepository), new(MockBookingRepository), new(MockApartmentRepository), nil)

	_, err := svc.CreateBlock(context.Background(), BlockRequest{
		Unit: "101", StartDate: "2024-06-10", EndDate: "2024-06-09", Status: "blocked",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateBlock(context.Background(), BlockRequest{
		Unit: "101", StartDate: "2024-06-10", EndDate: "2024-06-10", Status: "reserved",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBlock_UnknownUnit(t *testing.T) {
	blocks := new(MockBlockRepository)
	apartments := new(MockApartmentRepository)
	svc := NewService(blocks, new(MockBookingRepository), apartments, nil)
	apartments.On("GetByUnit", mock.Anything, "999").Return(nil, repository.ErrNotFound)

	_, err := svc.CreateBlock(context.Background(), BlockRequest{
		Unit: "999", StartDate: "2024-06-10", EndDate: "2024-06-12", Status: "blocked",
	})

	assert.ErrorIs(t, err, ErrUnknownUnit)
	blocks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateBlock_MoveToUnknownUnit(t *testing.T) {
	blocks := new(MockBlockRepository)
	apartments := new(MockApartmentRepository)
	svc := NewService(blocks, new(MockBookingRepository), apartments, nil)
	blocks.On("GetByID", mock.Anything, int64(5)).Return(&domain.AvailabilityBlock{
		ID: 5, Unit: "101", StartDate: day("2024-06-10"), EndDate: day("2024-06-12"), Status: domain.BlockBlocked,
	}, nil)
	apartments.On("GetByUnit", mock.Anything, "999").Return(nil, repository.ErrNotFound)

	_, err := svc.UpdateBlock(context.Background(), 5, BlockRequest{
		Unit: "999", StartDate: "2024-06-10", EndDate: "2024-06-12", Status: "blocked",
	})

	assert.ErrorIs(t, err, ErrUnknownUnit)
	blocks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetBlock_NotFound(t *testing.T) {
	blocks := new(MockBlockRepository)
	svc := NewService(blocks, new(MockBookingRepository), new(MockApartmentRepository), nil)
	blocks.On("GetByID", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound)

	_, err := svc.GetBlock(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCalendar_MergesBookingsAndBlocks(t *testing.T) {
	blocks := new(MockBlockRepository)
	bookings := new(MockBookingRepository)
	svc := NewService(blocks, bookings, new(MockApartmentRepository), nil)
	ctx := context.Background()

	bookings.On("ListByUnit", ctx, "101").Return([]domain.Booking{
		{ID: 1, Unit: "101", CheckIn: day("2024-06-01"), CheckOut: day("2024-06-03")},
	}, nil)
	blocks.On("ListByUnit", ctx, "101").Return([]domain.AvailabilityBlock{
		{ID: 2, Unit: "101", StartDate: day("2024-06-04"), EndDate: day("2024-06-04"), Status: domain.BlockBlocked},
	}, nil)

	days, err := svc.Calendar(ctx, "101", "2024-06-01", "2024-06-05", time.Now())
	require.NoError(t, err)
	require.Len(t, days, 5)

	got := make([]domain.BlockStatus, 0, len(days))
	for _, d := range days {
		got = append(got, d.Status)
	}
	assert.Equal(t, []domain.BlockStatus{
		domain.BlockOccupied,
		domain.BlockOccupied,
		domain.BlockAvailable,
		domain.BlockBlocked,
		domain.BlockAvailable,
	}, got)
}

func TestCalendar_DefaultsToCurrentMonth(t *testing.T) {
	blocks := new(MockBlockRepository)
	bookings := new(MockBookingRepository)
	svc := NewService(blocks, bookings, new(MockApartmentRepository), nil)

	bookings.On("ListByUnit", mock.Anything, "101").Return([]domain.Booking{}, nil)
	blocks.On("ListByUnit", mock.Anything, "101").Return([]domain.AvailabilityBlock{}, nil)

	days, err := svc.Calendar(context.Background(), "101", "", "", time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, days, 29)
	assert.Equal(t, day("2024-02-01"), days[0].Date)
}

func TestCalendar_InvertedRange(t *testing.T) {
	svc := NewService(new(MockBlockRepository), new(MockBookingRepository), new(MockApartmentRepository), nil)

	_, err := svc.Calendar(context.Background(), "101", "2024-06-10", "2024-06-01", time.Now())
	assert.ErrorIs(t, err, ErrValidation)
}
