package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogswara/gearzone/pkg/helpers"
)

type fakeResetSlots struct {
	slots map[string]string
}

func newFakeResetSlots() *fakeResetSlots {
	return &fakeResetSlots{slots: map[string]string{}}
}

func (f *fakeResetSlots) Stash(ctx context.Context, sid, userID string) error {
	f.slots[sid] = userID
	return nil
}

func (f *fakeResetSlots) Get(ctx context.Context, sid string) (string, error) {
	return f.slots[sid], nil
}

func (f *fakeResetSlots) Clear(ctx context.Context, sid string) error {
	delete(f.slots, sid)
	return nil
}

var _ ResetSlotStore = (*fakeResetSlots)(nil)

func newSessionService(repo *fakeUserRepo, slots ResetSlotStore) *SessionService {
	accounts := newAccountService(repo)
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewSessionService(accounts, jwt, nil, slots, nil)
}

func TestIssueTokensProducesParseablePair(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newSessionService(repo, newFakeResetSlots())
	u := registerUser(t, svc.Accounts, "dian@example.com")

	pair, err := svc.IssueTokens(context.Background(), u)
	require.NoError(t, err)

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.NotEmpty(t, claims.SessionID)

	rclaims, err := svc.JWT.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, claims.SessionID, rclaims.SessionID)
}

func TestResetPasswordMismatch(t *testing.T) {
	svc := newSessionService(newFakeUserRepo(), newFakeResetSlots())

	err := svc.ResetPassword(context.Background(), "sid-1", "new password", "different password")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestResetPasswordWithoutPendingSlot(t *testing.T) {
	svc := newSessionService(newFakeUserRepo(), newFakeResetSlots())

	err := svc.ResetPassword(context.Background(), "sid-1", "new password", "new password")
	assert.ErrorIs(t, err, ErrNoPendingReset)
}

func TestResetPasswordHappyPath(t *testing.T) {
	repo := newFakeUserRepo()
	slots := newFakeResetSlots()
	svc := newSessionService(repo, slots)
	u := registerUser(t, svc.Accounts, "dian@example.com")

	require.NoError(t, svc.StashPendingReset(context.Background(), "sid-1", u.ID))
	require.NoError(t, svc.ResetPassword(context.Background(), "sid-1", "new password", "new password"))

	assert.True(t, helpers.CompareHashAndPassword(repo.users[u.ID].PasswordHash, "new password"))

	// Slot is single-use.
	err := svc.ResetPassword(context.Background(), "sid-1", "another one", "another one")
	assert.ErrorIs(t, err, ErrNoPendingReset)
}
