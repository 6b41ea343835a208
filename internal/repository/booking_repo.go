package repository

import (
	"context"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Unit           string    `gorm:"column:unit;not null;index"`
	GuestName      string    `gorm:"column:guest_name"`
	GuestPhone     *string   `gorm:"column:guest_phone"`
	GuestEmail     *string   `gorm:"column:guest_email"`
	CheckIn        time.Time `gorm:"column:check_in;type:date;not null;index"`
	CheckOut       time.Time `gorm:"column:check_out;type:date;not null"`
	Source         string    `gorm:"column:source"`
	RentAmount     float64   `gorm:"column:rent_amount"`
	CleaningFee    float64   `gorm:"column:cleaning_fee"`
	CommissionRate float64   `gorm:"column:commission_rate"`
	AmountPaid     float64   `gorm:"column:amount_paid"`
	PaymentStatus  string    `gorm:"column:payment_status"`
	PaymentLinkID  *string   `gorm:"column:payment_link_id"`
	PaymentLinkURL *string   `gorm:"column:payment_link_url"`
	Notes          *string   `gorm:"column:notes;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:             m.ID,
		Unit:           m.Unit,
		GuestName:      m.GuestName,
		GuestPhone:     deref(m.GuestPhone),
		GuestEmail:     deref(m.GuestEmail),
		CheckIn:        dateutil.Day(m.CheckIn),
		CheckOut:       dateutil.Day(m.CheckOut),
		Source:         m.Source,
		RentAmount:     m.RentAmount,
		CleaningFee:    m.CleaningFee,
		CommissionRate: m.CommissionRate,
		AmountPaid:     m.AmountPaid,
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		PaymentLinkID:  deref(m.PaymentLinkID),
		PaymentLinkURL: deref(m.PaymentLinkURL),
		Notes:          deref(m.Notes),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:             b.ID,
		Unit:           b.Unit,
		GuestName:      b.GuestName,
		GuestPhone:     ptr(b.GuestPhone),
		GuestEmail:     ptr(b.GuestEmail),
		CheckIn:        dateutil.Day(b.CheckIn),
		CheckOut:       dateutil.Day(b.CheckOut),
		Source:         b.Source,
		RentAmount:     b.RentAmount,
		CleaningFee:    b.CleaningFee,
		CommissionRate: b.CommissionRate,
		AmountPaid:     b.AmountPaid,
		PaymentStatus:  string(b.PaymentStatus),
		PaymentLinkID:  ptr(b.PaymentLinkID),
		PaymentLinkURL: ptr(b.PaymentLinkURL),
		Notes:          ptr(b.Notes),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByPaymentLinkID(ctx context.Context, linkID string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("payment_link_id = ?", linkID).First(&m)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return toDomainBooking(m), nil
}

// List returns bookings ordered by check-in. A zero From/To leaves that side open.
func (r *BookingRepository) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.Unit != "" {
		q = q.Where("unit = ?", f.Unit)
	}
	if !f.To.IsZero() {
		q = q.Where("check_in < ?", dateutil.Day(f.To))
	}
	if !f.From.IsZero() {
		q = q.Where("check_out > ?", dateutil.Day(f.From))
	}

	var rows []bookingModel
	if err := q.Order("check_in ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListByUnit loads every booking of a unit; the conflict checker sees the whole history.
func (r *BookingRepository) ListByUnit(ctx context.Context, unit string) ([]domain.Booking, error) {
	return r.List(ctx, domain.BookingFilter{Unit: unit})
}

// UpdatePayment stores the paid amount and derived status without touching dates.
func (r *BookingRepository) UpdatePayment(ctx context.Context, b *domain.Booking) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"amount_paid":      b.AmountPaid,
			"payment_status":   string(b.PaymentStatus),
			"payment_link_id":  ptr(b.PaymentLinkID),
			"payment_link_url": ptr(b.PaymentLinkURL),
			"updated_at":       time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyPayment records receipt and stores the booking's payment fields in one
// transaction. ErrDuplicate means the receipt's session was already credited
// and nothing was written.
func (r *BookingRepository) ApplyPayment(ctx context.Context, b *domain.Booking, receipt *domain.PaymentReceipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(receipt)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrDuplicate
		}
		return NewBookingRepository(tx).UpdatePayment(ctx, b)
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
