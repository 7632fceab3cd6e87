package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/internal/domain/repository"
)

// MergeOutcome reports what login reconciliation did with the anonymous cart.
type MergeOutcome int

const (
	// MergeNoop: no anonymous cart, or it was empty.
	MergeNoop MergeOutcome = iota
	// MergeMerged: every anonymous line matched an existing user line and
	// bumped its quantity.
	MergeMerged
	// MergeReassigned: a line without a match claimed the whole remaining
	// anonymous cart for the user.
	MergeReassigned
)

func (o MergeOutcome) String() string {
	switch o {
	case MergeMerged:
		return "merged"
	case MergeReassigned:
		return "reassigned"
	default:
		return "noop"
	}
}

// CartService reconciles an anonymous session cart with the carts a user
// already owns. It runs exactly once per successful login, before the
// session is established, and is best-effort: callers log its errors and
// proceed with the login regardless.
type CartService struct {
	Repo   repository.CartRepository
	Logger *logrus.Logger
}

func NewCartService(repo repository.CartRepository, logger *logrus.Logger) *CartService {
	return &CartService{Repo: repo, Logger: logger}
}

// MergeOnLogin folds the session cart into the user's cart.
//
// Each anonymous line that matches an existing user line (same product, same
// variation set) bumps the matched line's quantity by exactly one; the
// anonymous quantity is intentionally not summed. The first anonymous line
// without a match short-circuits the loop and reassigns every item still on
// the anonymous cart to the user in one statement.
func (s *CartService) MergeOnLogin(ctx context.Context, sessionKey, userID string) (MergeOutcome, error) {
	if sessionKey == "" {
		return MergeNoop, nil
	}
	cart, err := s.Repo.GetBySessionKey(ctx, sessionKey)
	if errors.Is(err, repository.ErrNotFound) {
		return MergeNoop, nil
	}
	if err != nil {
		return MergeNoop, err
	}

	anonItems, err := s.Repo.ItemsByCart(ctx, cart.ID)
	if err != nil {
		return MergeNoop, err
	}
	if len(anonItems) == 0 {
		return MergeNoop, nil
	}

	owned, err := s.Repo.ItemsByUser(ctx, userID)
	if err != nil {
		return MergeNoop, err
	}
	ownedByLine := make(map[string]*entity.CartItem, len(owned))
	for _, it := range owned {
		ownedByLine[it.LineKey()] = it
	}

	bumped := false
	for _, it := range anonItems {
		match, ok := ownedByLine[it.LineKey()]
		if !ok {
			// Wholesale reassignment claims everything outstanding on the
			// anonymous cart, not just this line.
			if err := s.Repo.ReassignCartToUser(ctx, cart.ID, userID); err != nil {
				return MergeNoop, err
			}
			return MergeReassigned, nil
		}
		if err := s.Repo.BumpQuantity(ctx, match.ID, userID); err != nil {
			return MergeNoop, err
		}
		bumped = true
	}
	if bumped {
		return MergeMerged, nil
	}
	return MergeNoop, nil
}
