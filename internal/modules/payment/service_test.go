package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) GetByPaymentLinkID(ctx context.Context, linkID string) (*domain.Booking, error) {
	args := m.Called(ctx, linkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) UpdatePayment(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingStore) ApplyPayment(ctx context.Context, b *domain.Booking, receipt *domain.PaymentReceipt) error {
	args := m.Called(ctx, b, receipt)
	return args.Error(0)
}

type MockLinkProvider struct {
	mock.Mock
}

func (m *MockLinkProvider) CreateLink(ctx context.Context, req LinkRequest) (*Link, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Link), args.Error(1)
}

func booking(id int64, rent, paid float64) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		Unit:       "101",
		CheckIn:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		RentAmount: rent,
		AmountPaid: paid,
	}
}

func TestService_CreateLink_ChargesBalance(t *testing.T) {
	store := new(MockBookingStore)
	provider := new(MockLinkProvider)
	svc := NewService(store, provider, "brl", nil, nil)
	ctx := context.Background()

	store.On("GetByID", ctx, int64(1)).Return(booking(1, 600, 100), nil)
	provider.On("CreateLink", ctx, mock.MatchedBy(func(req LinkRequest) bool {
		return req.BookingID == 1 && req.Amount == 500 && req.Currency == "brl" && req.Unit == "101"
	})).Return(&Link{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}, nil)
	store.On("UpdatePayment", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.PaymentLinkID == "cs_1" && b.PaymentLinkURL != ""
	})).Return(nil)

	b, err := svc.CreateLink(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, "cs_1", b.PaymentLinkID)
	store.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestService_CreateLink_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		svc := NewService(new(MockBookingStore), nil, "brl", nil, nil)
		_, err := svc.CreateLink(ctx, 1)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("unknown booking", func(t *testing.T) {
		store := new(MockBookingStore)
		store.On("GetByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)
		svc := NewService(store, new(MockLinkProvider), "brl", nil, nil)

		_, err := svc.CreateLink(ctx, 9)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("fully paid", func(t *testing.T) {
		store := new(MockBookingStore)
		provider := new(MockLinkProvider)
		store.On("GetByID", ctx, int64(1)).Return(booking(1, 600, 600), nil)
		svc := NewService(store, provider, "brl", nil, nil)

		_, err := svc.CreateLink(ctx, 1)
		assert.ErrorIs(t, err, ErrNothingToPay)
		provider.AssertNotCalled(t, "CreateLink", mock.Anything, mock.Anything)
	})

	t.Run("provider failure", func(t *testing.T) {
		store := new(MockBookingStore)
		provider := new(MockLinkProvider)
		store.On("GetByID", ctx, int64(1)).Return(booking(1, 600, 0), nil)
		provider.On("CreateLink", ctx, mock.Anything).Return(nil, errors.New("stripe down"))
		svc := NewService(store, provider, "brl", nil, nil)

		_, err := svc.CreateLink(ctx, 1)
		assert.Error(t, err)
		store.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything)
	})
}

func TestService_HandleCheckoutCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("credits amount and clears link", func(t *testing.T) {
		store := new(MockBookingStore)
		b := booking(1, 600, 100)
		b.PaymentLinkID = "cs_1"
		store.On("GetByPaymentLinkID", ctx, "cs_1").Return(b, nil)
		store.On("ApplyPayment", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.AmountPaid == 600 && b.PaymentStatus == domain.PaymentPaid && b.PaymentLinkID == ""
		}), mock.MatchedBy(func(r *domain.PaymentReceipt) bool {
			return r.BookingID == 1 && r.SessionID == "cs_1" && r.Provider == ProviderStripe && r.Amount == 500
		})).Return(nil)
		svc := NewService(store, nil, "brl", nil, nil)

		applied, err := svc.HandleCheckoutCompleted(ctx, CheckoutCompleted{SessionID: "cs_1", AmountTotal: 50000, Paid: true})

		require.NoError(t, err)
		assert.True(t, applied)
		store.AssertExpectations(t)
	})

	t.Run("superseded link resolves through metadata", func(t *testing.T) {
		store := new(MockBookingStore)
		b := booking(1, 600, 0)
		b.PaymentLinkID = "cs_new"
		store.On("GetByPaymentLinkID", ctx, "cs_old").Return(nil, repository.ErrNotFound)
		store.On("GetByID", ctx, int64(1)).Return(b, nil)
		store.On("ApplyPayment", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.AmountPaid == 400 && b.PaymentStatus == domain.PaymentPartial && b.PaymentLinkID == ""
		}), mock.MatchedBy(func(r *domain.PaymentReceipt) bool {
			return r.SessionID == "cs_old" && r.Amount == 400
		})).Return(nil)
		svc := NewService(store, nil, "brl", nil, nil)

		applied, err := svc.HandleCheckoutCompleted(ctx, CheckoutCompleted{SessionID: "cs_old", BookingID: 1, AmountTotal: 40000, Paid: true})

		require.NoError(t, err)
		assert.True(t, applied)
		store.AssertExpectations(t)
	})

	t.Run("session already credited", func(t *testing.T) {
		store := new(MockBookingStore)
		store.On("GetByPaymentLinkID", ctx, "cs_old").Return(nil, repository.ErrNotFound)
		store.On("GetByID", ctx, int64(1)).Return(booking(1, 600, 400), nil)
		store.On("ApplyPayment", ctx, mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
		svc := NewService(store, nil, "brl", nil, nil)

		applied, err := svc.HandleCheckoutCompleted(ctx, CheckoutCompleted{SessionID: "cs_old", BookingID: 1, AmountTotal: 40000, Paid: true})

		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		store := new(MockBookingStore)
		store.On("GetByPaymentLinkID", ctx, "cs_1").Return(booking(1, 600, 0), nil)
		store.On("ApplyPayment", ctx, mock.Anything, mock.Anything).Return(errors.New("db down"))
		svc := NewService(store, nil, "brl", nil, nil)

		applied, err := svc.HandleCheckoutCompleted(ctx, CheckoutCompleted{SessionID: "cs_1", AmountTotal: 100, Paid: true})

		assert.Error(t, err)
		assert.False(t, applied)
	})

	t.Run("unknown session without metadata is ignored", func(t *testing.T) {
		store := new(MockBookingStore)
		store.On("GetByPaymentLinkID", ctx, "cs_1").Return(nil, repository.ErrNotFound)
		svc := NewService(store, nil, "brl", nil, nil)

		applied, err := svc.HandleCheckoutCompleted(ctx, CheckoutCompleted{SessionID: "cs_1", AmountTotal: 50000, Paid: true})

		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("unpaid session is ignored", func(t *testing.T) {
		store := new(MockBookingStore)
		svc := NewService(store, nil, "brl", nil, nil)

		applied, err := svc.HandleCheckoutCompleted(ctx, CheckoutCompleted{SessionID: "cs_1", AmountTotal: 50000})

		require.NoError(t, err)
		assert.False(t, applied)
		store.AssertNotCalled(t, "GetByPaymentLinkID", mock.Anything, mock.Anything)
	})
}
