package loyalty

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
)

const defaultRewardThreshold = 5

// Identity names whose drink counter an operation targets. Exactly one of
// the two arms is set: registered customers are keyed strictly by account id,
// guests by their lower-cased entered name.
type Identity struct {
	AccountID *uuid.UUID
	GuestName string
}

// AccountIdentity builds the registered-customer arm.
func AccountIdentity(id uuid.UUID) Identity {
	return Identity{AccountID: &id}
}

// GuestIdentity builds the guest arm from the entered order name.
func GuestIdentity(name string) Identity {
	return Identity{GuestName: strings.ToLower(strings.TrimSpace(name))}
}

func (i Identity) valid() bool {
	if i.AccountID != nil {
		return *i.AccountID != uuid.Nil
	}
	return i.GuestName != ""
}

type accountStore interface {
	GetLoyaltyPoints(ctx context.Context, userID uuid.UUID) (int, error)
	SetLoyaltyPoints(ctx context.Context, userID uuid.UUID, points int) error
}

type guestStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	GuestLoyaltyKey(normalizedName string) string
}

// Service is the loyalty ledger: a rolling per-identity drink counter where
// every fifth unit earns a free drink.
type Service interface {
	Counter(ctx context.Context, identity Identity) (int, error)
	EligibleForReward(ctx context.Context, identity Identity, cartUnits int) (bool, error)
	RecordPurchase(ctx context.Context, identity Identity, units int) (int, error)
}

type service struct {
	accounts  accountStore
	guests    guestStore
	threshold int
	guestTTL  time.Duration
}

// Params carries the service dependencies.
type Params struct {
	Accounts        accountStore
	Guests          guestStore
	RewardThreshold int
	GuestTTL        time.Duration
}

// NewService builds the loyalty ledger service.
func NewService(p Params) (Service, error) {
	if p.Accounts == nil {
		return nil, fmt.Errorf("account store required")
	}
	if p.Guests == nil {
		return nil, fmt.Errorf("guest store required")
	}
	threshold := p.RewardThreshold
	if threshold <= 0 {
		threshold = defaultRewardThreshold
	}
	return &service{
		accounts:  p.Accounts,
		guests:    p.Guests,
		threshold: threshold,
		guestTTL:  p.GuestTTL,
	}, nil
}

func (s *service) Counter(ctx context.Context, identity Identity) (int, error) {
	if !identity.valid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "loyalty identity required")
	}

	if identity.AccountID != nil {
		points, err := s.accounts.GetLoyaltyPoints(ctx, *identity.AccountID)
		if err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account loyalty counter")
		}
		return points, nil
	}

	raw, err := s.guests.Get(ctx, s.guests.GuestLoyaltyKey(identity.GuestName))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return 0, nil
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guest loyalty counter")
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0, nil
	}
	return count % s.threshold, nil
}

// EligibleForReward reports whether the next order earns a free drink: the
// counter must sit exactly at zero and the cart must hold at least one unit.
// A fresh identity with no history also has counter zero and qualifies.
func (s *service) EligibleForReward(ctx context.Context, identity Identity, cartUnits int) (bool, error) {
	if cartUnits <= 0 {
		return false, nil
	}
	counter, err := s.Counter(ctx, identity)
	if err != nil {
		return false, err
	}
	return counter == 0, nil
}

// RecordPurchase advances the counter by the purchased units, wrapping at the
// reward threshold, and returns the new counter value.
func (s *service) RecordPurchase(ctx context.Context, identity Identity, units int) (int, error) {
	if !identity.valid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "loyalty identity required")
	}
	if units <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "purchase units must be positive")
	}

	counter, err := s.Counter(ctx, identity)
	if err != nil {
		return 0, err
	}
	next := (counter + units) % s.threshold

	if identity.AccountID != nil {
		if err := s.accounts.SetLoyaltyPoints(ctx, *identity.AccountID, next); err != nil {
			return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store account loyalty counter")
		}
		return next, nil
	}

	key := s.guests.GuestLoyaltyKey(identity.GuestName)
	if err := s.guests.Set(ctx, key, strconv.Itoa(next), s.guestTTL); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store guest loyalty counter")
	}
	return next, nil
}
