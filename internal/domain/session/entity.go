package session

import (
	"errors"
	"time"

	"rental-pos/internal/domain/catalog"

	"github.com/google/uuid"
)

var (
	ErrSessionClosed        = errors.New("session is closed")
	ErrTimestampBeforeStart = errors.New("timestamp before session start")
	ErrChargeNotFound       = errors.New("product charge not found")
)

// Session is one customer's billable occupancy of a room. The rate history is
// append-only and seeded with the catalog rate at start; every cost the
// session ever reports is reproducible by replaying that history.
type Session struct {
	id             uuid.UUID
	room           string
	customerName   string
	itemRef        ItemRef
	status         Status
	startTime      time.Time
	endTime        *time.Time
	rateHistory    []RateChange
	productCharges []ProductCharge
	note           string
	paymentMethod  string
	finalTotal     *catalog.Money
}

func NewSession(room, customerName string, ref ItemRef, rate catalog.Money, startTime time.Time) (*Session, error) {
	room, err := NormalizeRoom(room)
	if err != nil {
		return nil, err
	}
	customerName, err = normalizeCustomerName(customerName)
	if err != nil {
		return nil, err
	}

	return &Session{
		id:           uuid.New(),
		room:         room,
		customerName: customerName,
		itemRef:      ref,
		status:       StatusActive,
		startTime:    startTime,
		rateHistory:  []RateChange{NewRateChange(startTime, rate)},
	}, nil
}

// ApplyRateOverride appends a rate effective from `at` forward. Earlier
// entries are never touched; they are the audit trail. If the clock stepped
// backward the entry is pinned to the previous effective-from so the history
// stays sorted.
func (s *Session) ApplyRateOverride(rate catalog.Money, at time.Time) error {
	if s.status == StatusClosed {
		return ErrSessionClosed
	}
	if last := s.rateHistory[len(s.rateHistory)-1]; at.Before(last.effectiveFrom) {
		at = last.effectiveFrom
	}
	s.rateHistory = append(s.rateHistory, NewRateChange(at, rate))
	return nil
}

func (s *Session) AddProductCharge(charge ProductCharge) error {
	if s.status == StatusClosed {
		return ErrSessionClosed
	}
	s.productCharges = append(s.productCharges, charge)
	return nil
}

func (s *Session) RemoveProductCharge(index int) error {
	if s.status == StatusClosed {
		return ErrSessionClosed
	}
	if index < 0 || index >= len(s.productCharges) {
		return ErrChargeNotFound
	}
	s.productCharges = append(s.productCharges[:index], s.productCharges[index+1:]...)
	return nil
}

// UpdateDetails edits cosmetic fields only. Allowed after close; nothing here
// affects billing. All inputs are validated before any field is assigned, so
// a rejected edit leaves the session untouched.
func (s *Session) UpdateDetails(customerName, room, note, paymentMethod *string) error {
	var name, newRoom string
	var err error
	if customerName != nil {
		if name, err = normalizeCustomerName(*customerName); err != nil {
			return err
		}
	}
	if room != nil {
		if newRoom, err = NormalizeRoom(*room); err != nil {
			return err
		}
	}

	if customerName != nil {
		s.customerName = name
	}
	if room != nil {
		s.room = newRoom
	}
	if note != nil {
		s.note = *note
	}
	if paymentMethod != nil {
		s.paymentMethod = *paymentMethod
	}
	return nil
}

// AccruedCost reports the cost owed as of the given instant. Pure query.
func (s *Session) AccruedCost(asOf time.Time) (catalog.Money, error) {
	cents, err := s.Snapshot().AccruedCents(asOf)
	if err != nil {
		return catalog.Money{}, err
	}
	return catalog.NewMoney(cents)
}

// Finalize closes the session exactly once, freezing the charge total.
// Calling it on a closed session is an error, not a no-op.
func (s *Session) Finalize(at time.Time) (catalog.Money, error) {
	if s.status == StatusClosed {
		return catalog.Money{}, ErrSessionClosed
	}
	if at.Before(s.startTime) {
		return catalog.Money{}, ErrTimestampBeforeStart
	}

	end := at
	s.endTime = &end
	s.status = StatusClosed

	total, err := s.AccruedCost(end)
	if err != nil {
		return catalog.Money{}, err
	}
	s.finalTotal = &total
	return total, nil
}

func (s *Session) ID() uuid.UUID                   { return s.id }
func (s *Session) Room() string                    { return s.room }
func (s *Session) CustomerName() string            { return s.customerName }
func (s *Session) ItemRef() ItemRef                { return s.itemRef }
func (s *Session) Status() Status                  { return s.status }
func (s *Session) StartTime() time.Time            { return s.startTime }
func (s *Session) EndTime() *time.Time             { return s.endTime }
func (s *Session) RateHistory() []RateChange       { return s.rateHistory }
func (s *Session) ProductCharges() []ProductCharge { return s.productCharges }
func (s *Session) Note() string                    { return s.note }
func (s *Session) PaymentMethod() string           { return s.paymentMethod }
func (s *Session) FinalTotal() *catalog.Money      { return s.finalTotal }

func (s *Session) IsActive() bool {
	return s.status == StatusActive
}
