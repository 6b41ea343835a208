package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/availability"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/dateutil"
)

type Service struct {
	bookings   BookingRepository
	blocks     BlockRepository
	expenses   ExpenseRepository
	apartments ApartmentRepository
}

func NewService(
	bookings BookingRepository,
	blocks BlockRepository,
	expenses ExpenseRepository,
	apartments ApartmentRepository,
) *Service {
	return &Service{
		bookings:   bookings,
		blocks:     blocks,
		expenses:   expenses,
		apartments: apartments,
	}
}

// Occupancy counts, per unit, the days of [from, to] the calendar shows as
// occupied. Blocked and maintenance days are reported apart and still count
// toward the denominator.
func (s *Service) Occupancy(ctx context.Context, unit string, from, to time.Time) (*OccupancyReport, error) {
	from, to, err := checkRange(from, to)
	if err != nil {
		return nil, err
	}

	units, err := s.units(ctx, unit)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.List(ctx, domain.BookingFilter{Unit: unit, From: from, To: to.AddDate(0, 0, 1)})
	if err != nil {
		return nil, err
	}
	blocks, err := s.blocks.List(ctx, unit, from, to)
	if err != nil {
		return nil, err
	}
	snap := availability.Snapshot{Bookings: bookings, Blocks: blocks}

	rep := &OccupancyReport{From: from, To: to, Days: dateutil.Nights(from, to) + 1, Units: make([]UnitOccupancy, 0, len(units))}
	var rateSum float64
	for _, u := range units {
		days := availability.Calendar(snap, u, from, to)

		occ := UnitOccupancy{Unit: u}
		for _, d := range days {
			switch d.Status {
			case domain.BlockOccupied:
				occ.OccupiedNights++
			case domain.BlockBlocked, domain.BlockMaintenance:
				occ.BlockedNights++
			}
		}
		if len(days) > 0 {
			occ.Rate = round4(float64(occ.OccupiedNights) / float64(len(days)))
		}
		rateSum += occ.Rate
		rep.Units = append(rep.Units, occ)
	}
	if len(rep.Units) > 0 {
		rep.AverageRate = round4(rateSum / float64(len(rep.Units)))
	}
	return rep, nil
}

// Financial attributes each booking to the period its check-in falls in, and
// each expense to its date.
func (s *Service) Financial(ctx context.Context, unit string, from, to time.Time) (*FinancialReport, error) {
	from, to, err := checkRange(from, to)
	if err != nil {
		return nil, err
	}
	end := to.AddDate(0, 0, 1)

	bookings, err := s.bookings.List(ctx, domain.BookingFilter{Unit: unit, From: from, To: end})
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.List(ctx, domain.ExpenseFilter{Unit: unit, From: from, To: end})
	if err != nil {
		return nil, err
	}

	byUnit := map[string]*UnitFinancial{}
	get := func(u string) *UnitFinancial {
		if byUnit[u] == nil {
			byUnit[u] = &UnitFinancial{Unit: u}
		}
		return byUnit[u]
	}

	for i := range bookings {
		b := &bookings[i]
		if b.CheckIn.Before(from) || !b.CheckIn.Before(end) {
			continue
		}
		f := get(b.Unit)
		f.Bookings++
		f.Revenue += b.Total()
		f.Received += b.AmountPaid
		f.Pending += math.Max(b.Balance(), 0)
		f.Commission += b.Commission()
	}
	for _, e := range expenses {
		get(e.Unit).Expenses += e.Amount
	}

	rep := &FinancialReport{From: from, To: to, Units: make([]UnitFinancial, 0, len(byUnit))}
	for _, f := range byUnit {
		f.Revenue = round2(f.Revenue)
		f.Received = round2(f.Received)
		f.Pending = round2(f.Pending)
		f.Commission = round2(f.Commission)
		f.Expenses = round2(f.Expenses)
		f.Net = round2(f.Revenue - f.Commission - f.Expenses)
		rep.Units = append(rep.Units, *f)

		rep.Totals.Bookings += f.Bookings
		rep.Totals.Revenue += f.Revenue
		rep.Totals.Received += f.Received
		rep.Totals.Pending += f.Pending
		rep.Totals.Commission += f.Commission
		rep.Totals.Expenses += f.Expenses
		rep.Totals.Net += f.Net
	}
	sort.Slice(rep.Units, func(i, j int) bool { return rep.Units[i].Unit < rep.Units[j].Unit })

	rep.Totals.Unit = "total"
	rep.Totals.Revenue = round2(rep.Totals.Revenue)
	rep.Totals.Received = round2(rep.Totals.Received)
	rep.Totals.Pending = round2(rep.Totals.Pending)
	rep.Totals.Commission = round2(rep.Totals.Commission)
	rep.Totals.Expenses = round2(rep.Totals.Expenses)
	rep.Totals.Net = round2(rep.Totals.Net)
	return rep, nil
}

// Movements lists the check-ins and check-outs happening on day.
func (s *Service) Movements(ctx context.Context, unit string, day time.Time) (*MovementsReport, error) {
	day = dateutil.Day(day)
	bookings, err := s.bookings.List(ctx, domain.BookingFilter{Unit: unit, From: day.AddDate(0, 0, -1), To: day.AddDate(0, 0, 1)})
	if err != nil {
		return nil, err
	}

	rep := &MovementsReport{Day: day, CheckIns: []Movement{}, CheckOuts: []Movement{}}
	for i := range bookings {
		b := &bookings[i]
		m := Movement{BookingID: b.ID, Unit: b.Unit, GuestName: b.GuestName, GuestPhone: b.GuestPhone, Nights: b.Nights()}
		if dateutil.SameDay(b.CheckIn, day) {
			rep.CheckIns = append(rep.CheckIns, m)
		}
		if dateutil.SameDay(b.CheckOut, day) {
			rep.CheckOuts = append(rep.CheckOuts, m)
		}
	}
	return rep, nil
}

// Build produces the text message for a scheduled report as of now in loc:
// movements of the local day, occupancy and financials of the local month.
func (s *Service) Build(ctx context.Context, kind domain.ReportType, unit string, now time.Time, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	first, next := dateutil.MonthRange(today)
	last := next.AddDate(0, 0, -1)

	switch kind {
	case domain.ReportMovements:
		rep, err := s.Movements(ctx, unit, today)
		if err != nil {
			return "", err
		}
		return RenderMovements(rep)
	case domain.ReportOccupancy:
		rep, err := s.Occupancy(ctx, unit, first, last)
		if err != nil {
			return "", err
		}
		return RenderOccupancy(rep)
	case domain.ReportFinancial:
		rep, err := s.Financial(ctx, unit, first, last)
		if err != nil {
			return "", err
		}
		return RenderFinancial(rep)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, kind)
	}
}

func (s *Service) units(ctx context.Context, unit string) ([]string, error) {
	if unit != "" {
		return []string{unit}, nil
	}
	apts, err := s.apartments.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(apts))
	for _, a := range apts {
		out = append(out, a.Unit)
	}
	return out, nil
}

func checkRange(from, to time.Time) (time.Time, time.Time, error) {
	from, to = dateutil.Day(from), dateutil.Day(to)
	if to.Before(from) {
		return from, to, fmt.Errorf("%w: to must not be before from", ErrValidation)
	}
	if dateutil.Nights(from, to) >= availability.MaxCalendarDays {
		return from, to, fmt.Errorf("%w: range longer than %d days", ErrValidation, availability.MaxCalendarDays)
	}
	return from, to, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
