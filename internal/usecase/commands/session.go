package commands

import (
	"context"
	"errors"
	"time"

	"rental-pos/internal/domain/catalog"
	"rental-pos/internal/domain/session"
	"rental-pos/internal/infra"
	"rental-pos/internal/pkg/clock"
	"rental-pos/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errs.New("session not found")
	ErrSessionClosed    = errs.New("session already closed")
	ErrRoomOccupied     = errs.New("room already occupied")
	ErrInvalidQuantity  = errs.New("invalid quantity")
	ErrChargeNotFound   = errs.New("product charge not found")
	ErrInvalidSession   = errs.New("invalid session data")
	ErrInvalidTimestamp = errs.New("invalid timestamp")
)

type StartSessionInput struct {
	Room         string
	CustomerName string
	ZoneKey      string
	ItemID       uuid.UUID
}

type StartSessionResult struct {
	SessionID uuid.UUID
	StartTime time.Time
	RateCents int64
}

type AddChargeInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type UpdateDetailsInput struct {
	CustomerName  *string
	Room          *string
	Note          *string
	PaymentMethod *string
}

type FinalizeResult struct {
	SessionID  uuid.UUID
	EndTime    time.Time
	TotalCents int64
}

// SessionCommands is the write surface of the billing engine: start a
// session, adjust it while it runs, close it out exactly once.
type SessionCommands interface {
	Start(ctx context.Context, in StartSessionInput) (*StartSessionResult, error)
	OverrideRate(ctx context.Context, id uuid.UUID, rateCents int64) error
	AddCharge(ctx context.Context, id uuid.UUID, in AddChargeInput) error
	RemoveCharge(ctx context.Context, id uuid.UUID, index int) error
	UpdateDetails(ctx context.Context, id uuid.UUID, in UpdateDetailsInput) error
	Finalize(ctx context.Context, id uuid.UUID) (*FinalizeResult, error)
}

type sessionCommandsImpl struct {
	sessions SessionStore
	catalog  CatalogStore
	clock    clock.Clock
}

func NewSessionCommands(sessions SessionStore, catalogStore CatalogStore, clk clock.Clock) SessionCommands {
	return &sessionCommandsImpl{
		sessions: sessions,
		catalog:  catalogStore,
		clock:    clk,
	}
}

// Start resolves the catalog rate, seeds the rate history with it and inserts
// the session. The room-uniqueness check happens inside the store insert, so
// two concurrent starts for one room cannot both succeed.
func (c *sessionCommandsImpl) Start(ctx context.Context, in StartSessionInput) (*StartSessionResult, error) {
	ref, rate, err := c.catalog.ItemRate(ctx, in.ZoneKey, in.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrItemNotFound)
		}
		return nil, err
	}

	sess, err := session.NewSession(in.Room, in.CustomerName, ref, rate, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidSession)
	}

	if err := c.sessions.Insert(ctx, sess); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrRoomOccupied)
		}
		return nil, err
	}

	return &StartSessionResult{
		SessionID: sess.ID(),
		StartTime: sess.StartTime(),
		RateCents: rate.Cents(),
	}, nil
}

// OverrideRate appends to the session's rate history effective now. Earlier
// accrual is untouched; the override is never retroactive.
func (c *sessionCommandsImpl) OverrideRate(ctx context.Context, id uuid.UUID, rateCents int64) error {
	rate, err := catalog.NewMoney(rateCents)
	if err != nil {
		return errs.Mark(err, ErrInvalidPrice)
	}

	err = c.sessions.Mutate(ctx, id, func(sess *session.Session) error {
		return sess.ApplyRateOverride(rate, c.clock.Now())
	})
	return c.mapSessionErr(err)
}

// AddCharge snapshots the product's current price into the charge; later
// catalog edits do not reach recorded charges.
func (c *sessionCommandsImpl) AddCharge(ctx context.Context, id uuid.UUID, in AddChargeInput) error {
	if in.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, err := c.catalog.ProductByID(ctx, in.ProductID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrProductNotFound)
		}
		return err
	}
	price, err := catalog.NewMoney(product.PriceCents)
	if err != nil {
		return errs.Mark(err, ErrInvalidPrice)
	}
	charge, err := session.NewProductCharge(product.ID, product.Name, in.Quantity, price)
	if err != nil {
		return errs.Mark(err, ErrInvalidQuantity)
	}

	err = c.sessions.Mutate(ctx, id, func(sess *session.Session) error {
		return sess.AddProductCharge(charge)
	})
	return c.mapSessionErr(err)
}

func (c *sessionCommandsImpl) RemoveCharge(ctx context.Context, id uuid.UUID, index int) error {
	err := c.sessions.Mutate(ctx, id, func(sess *session.Session) error {
		return sess.RemoveProductCharge(index)
	})
	return c.mapSessionErr(err)
}

// UpdateDetails edits cosmetic fields; allowed on closed sessions. A room
// move on an active session re-checks occupancy atomically.
func (c *sessionCommandsImpl) UpdateDetails(ctx context.Context, id uuid.UUID, in UpdateDetailsInput) error {
	apply := func(sess *session.Session) error {
		return sess.UpdateDetails(in.CustomerName, in.Room, in.Note, in.PaymentMethod)
	}

	var err error
	if in.Room != nil {
		err = c.sessions.MoveRoom(ctx, id, apply, *in.Room)
	} else {
		err = c.sessions.Mutate(ctx, id, apply)
	}
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, ErrRoomOccupied)
		}
		return c.mapSessionErr(err)
	}
	return nil
}

// Finalize closes the session and freezes its charge total. The second call
// for a session fails with ErrSessionClosed; finalization is a one-time event.
func (c *sessionCommandsImpl) Finalize(ctx context.Context, id uuid.UUID) (*FinalizeResult, error) {
	var result FinalizeResult
	err := c.sessions.Mutate(ctx, id, func(sess *session.Session) error {
		total, err := sess.Finalize(c.clock.Now())
		if err != nil {
			return err
		}
		result = FinalizeResult{
			SessionID:  sess.ID(),
			EndTime:    *sess.EndTime(),
			TotalCents: total.Cents(),
		}
		return nil
	})
	if err != nil {
		return nil, c.mapSessionErr(err)
	}
	return &result, nil
}

func (c *sessionCommandsImpl) mapSessionErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrSessionNotFound)
	case errors.Is(err, session.ErrSessionClosed):
		return errs.Mark(err, ErrSessionClosed)
	case errors.Is(err, session.ErrChargeNotFound):
		return errs.Mark(err, ErrChargeNotFound)
	case errors.Is(err, session.ErrTimestampBeforeStart):
		return errs.Mark(err, ErrInvalidTimestamp)
	case errors.Is(err, session.ErrEmptyRoom), errors.Is(err, session.ErrEmptyCustomerName):
		return errs.Mark(err, ErrInvalidSession)
	default:
		return err
	}
}
