package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/internal/domain/repository"
)

// -------- test fakes --------

type fakeCartRepo struct {
	carts map[string]*entity.Cart // by session key
	items map[string]*entity.CartItem

	itemsErr error
	bumpErr  error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts: map[string]*entity.Cart{},
		items: map[string]*entity.CartItem{},
	}
}

func (f *fakeCartRepo) addCart(sessionKey string) *entity.Cart {
	c := &entity.Cart{ID: "cart-" + sessionKey, SessionKey: sessionKey}
	f.carts[sessionKey] = c
	return c
}

func (f *fakeCartRepo) addItem(it *entity.CartItem) *entity.CartItem {
	f.items[it.ID] = it
	return it
}

func (f *fakeCartRepo) GetBySessionKey(ctx context.Context, sessionKey string) (*entity.Cart, error) {
	if c, ok := f.carts[sessionKey]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCartRepo) ItemsByCart(ctx context.Context, cartID string) ([]*entity.CartItem, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	var out []*entity.CartItem
	for _, it := range f.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) ItemsByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	for _, it := range f.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) BumpQuantity(ctx context.Context, itemID, userID string) error {
	if f.bumpErr != nil {
		return f.bumpErr
	}
	it, ok := f.items[itemID]
	if !ok {
		return repository.ErrNotFound
	}
	it.Quantity++
	it.UserID = userID
	return nil
}

func (f *fakeCartRepo) ReassignCartToUser(ctx context.Context, cartID, userID string) error {
	for _, it := range f.items {
		if it.CartID == cartID {
			it.UserID = userID
		}
	}
	return nil
}

var _ repository.CartRepository = (*fakeCartRepo)(nil)

// -------- helpers --------

func sizeM() []entity.Variation {
	return []entity.Variation{{ID: "var-size-m", Category: "size", Value: "M"}}
}

func userItems(t *testing.T, repo *fakeCartRepo, userID string) []*entity.CartItem {
	t.Helper()
	items, err := repo.ItemsByUser(context.Background(), userID)
	require.NoError(t, err)
	return items
}

// -------- tests --------

func TestMergeNoopWithoutSessionKey(t *testing.T) {
	svc := NewCartService(newFakeCartRepo(), nil)

	outcome, err := svc.MergeOnLogin(context.Background(), "", "user-1")
	require.NoError(t, err)
	assert.Equal(t, MergeNoop, outcome)
}

func TestMergeNoopWithoutCart(t *testing.T) {
	svc := NewCartService(newFakeCartRepo(), nil)

	outcome, err := svc.MergeOnLogin(context.Background(), "sess-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, MergeNoop, outcome)
}

func TestMergeNoopWithEmptyCart(t *testing.T) {
	repo := newFakeCartRepo()
	repo.addCart("sess-1")
	svc := NewCartService(repo, nil)

	outcome, err := svc.MergeOnLogin(context.Background(), "sess-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, MergeNoop, outcome)
}

func TestMergeWholesaleReassignmentWhenNoMatch(t *testing.T) {
	repo := newFakeCartRepo()
	cart := repo.addCart("sess-1")
	repo.addItem(&entity.CartItem{
		ID: "item-1", CartID: cart.ID, ProductID: "product-a",
		Quantity: 3, Variations: sizeM(),
	})
	svc := NewCartService(repo, nil)

	outcome, err := svc.MergeOnLogin(context.Background(), "sess-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, MergeReassigned, outcome)

	items := userItems(t, repo, "user-1")
	require.Len(t, items, 1)
	assert.Equal(t, "product-a", items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity) // moved wholesale, quantity untouched
}

func TestMergeBumpsMatchedLineByOne(t *testing.T) {
	repo := newFakeCartRepo()
	cart := repo.addCart("sess-1")
	repo.addItem(&entity.CartItem{
		ID: "anon-1", CartID: cart.ID, ProductID: "product-a",
		Quantity: 5, Variations: sizeM(),
	})
	owned := repo.addItem(&entity.CartItem{
		ID: "owned-1", UserID: "user-1", ProductID: "product-a",
		Quantity: 1, Variations: sizeM(),
	})
	svc := NewCartService(repo, nil)

	outcome, err := svc.MergeOnLogin(context.Background(), "sess-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, MergeMerged, outcome)

	// bumped by exactly one, not summed to six
	assert.Equal(t, 2, owned.Quantity)
}

func TestMergeMatchIsVariationOrderIndependent(t *testing.T) {
	repo := newFakeCartRepo()
	cart := repo.addCart("sess-1")
	repo.addItem(&entity.CartItem{
		ID: "anon-1", CartID: cart.ID, ProductID: "product-a", Quantity: 1,
		Variations: []entity.Variation{
			{ID: "var-size-m", Category: "size", Value: "M"},
			{ID: "var-color-red", Category: "color", Value: "red"},
		},
	})
	owned := repo.addItem(&entity.CartItem{
		ID: "owned-1", UserID: "user-1", ProductID: "product-a", Quantity: 2,
		Variations: []entity.Variation{
			{ID: "var-color-red", Category: "color", Value: "red"},
			{ID: "var-size-m", Category: "size", Value: "M"},
		},
	})
	svc := NewCartService(repo, nil)

	outcome, err := svc.MergeOnLogin(context.Background(), "sess-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, MergeMerged, outcome)
	assert.Equal(t, 3, owned.Quantity)
}

func TestMergeFirstNonMatchClaimsEverythingOutstanding(t *testing.T) {
	repo := newFakeCartRepo()
	cart := repo.addCart("sess-1")
	// L2 has no match and must trigger wholesale reassignment of all items
	// still on the anonymous cart.
	repo.addItem(&entity.CartItem{
		ID: "anon-l2", CartID: cart.ID, ProductID: "product-b",
		Quantity: 2, Variations: nil,
	})
	svc := NewCartService(repo, nil)

	outcome, err := svc.MergeOnLogin(context.Background(), "sess-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, MergeReassigned, outcome)

	items := userItems(t, repo, "user-1")
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity) // not duplicated, not dropped
}

func TestMergeMixedMatchAndNonMatch(t *testing.T) {
	repo := newFakeCartRepo()
	cart := repo.addCart("sess-1")
	anonMatch := repo.addItem(&entity.CartItem{
		ID: "anon-l1", CartID: cart.ID, ProductID: "product-a",
		Quantity: 4, Variations: sizeM(),
	})
	anonNew := repo.addItem(&entity.CartItem{
		ID: "anon-l2", CartID: cart.ID, ProductID: "product-b",
		Quantity: 2, Variations: nil,
	})
	owned := repo.addItem(&entity.CartItem{
		ID: "owned-1", UserID: "user-1", ProductID: "product-a",
		Quantity: 1, Variations: sizeM(),
	})
	svc := NewCartService(repo, nil)

	outcome, err := svc.MergeOnLogin(context.Background(), "sess-1", "user-1")
	require.NoError(t, err)

	// A line without a match always ends in wholesale reassignment; whichever
	// line is visited first, everything anonymous ends up owned by the user
	// and the matched line was bumped at most once.
	assert.Equal(t, MergeReassigned, outcome)
	assert.Equal(t, "user-1", anonNew.UserID)
	assert.Equal(t, "user-1", anonMatch.UserID)
	assert.LessOrEqual(t, owned.Quantity, 2)
}

func TestMergeSurfacesRepoErrorsForCallerToSwallow(t *testing.T) {
	repo := newFakeCartRepo()
	repo.addCart("sess-1")
	repo.itemsErr = errors.New("connection reset")
	svc := NewCartService(repo, nil)

	outcome, err := svc.MergeOnLogin(context.Background(), "sess-1", "user-1")
	assert.Error(t, err)
	assert.Equal(t, MergeNoop, outcome)
}

func TestMergeOutcomeString(t *testing.T) {
	assert.Equal(t, "noop", MergeNoop.String())
	assert.Equal(t, "merged", MergeMerged.String())
	assert.Equal(t, "reassigned", MergeReassigned.String())
}
