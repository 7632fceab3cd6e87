package application

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/internal/domain/repository"
	"github.com/yogswara/gearzone/pkg/helpers"
	"github.com/yogswara/gearzone/pkg/token"
)

// -------- test fakes --------

type fakeUserRepo struct {
	users    map[string]*entity.User // by id
	profiles map[string]*entity.UserProfile
	nextID   int
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[string]*entity.User{},
		profiles: map[string]*entity.UserProfile{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User, p *entity.UserProfile) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	u.ID = "user-" + strconv.Itoa(f.nextID)
	f.users[u.ID] = u
	p.UserID = u.ID
	f.profiles[u.ID] = p
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsActive = true
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, p *entity.UserProfile) error {
	if _, ok := f.profiles[p.UserID]; !ok {
		return repository.ErrNotFound
	}
	f.profiles[p.UserID] = p
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// -------- helpers --------

func newAccountService(repo repository.UserRepository) *AccountService {
	return NewAccountService(repo, token.NewGenerator("test-secret"), nil, "", nil)
}

func registerUser(t *testing.T, svc *AccountService, email string) *entity.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		FirstName:   "Dian",
		LastName:    "Putra",
		Email:       email,
		PhoneNumber: "+6281234567890",
		Password:    "correct horse",
	})
	require.NoError(t, err)
	return u
}

// -------- tests --------

func TestRegisterDerivesUsernameAndCreatesProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAccountService(repo)

	u := registerUser(t, svc, "dian.putra@example.com")

	assert.Equal(t, "dian.putra", u.Username)
	assert.False(t, u.IsActive)
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.True(t, helpers.CompareHashAndPassword(u.PasswordHash, "correct horse"))

	p, err := repo.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())

	registerUser(t, svc, "dian@example.com")
	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Other",
		Email:     "dian@example.com",
		Password:  "another password",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAccountService(repo)
	u := registerUser(t, svc, "dian@example.com")
	require.NoError(t, svc.Activate(context.Background(), u.ID))

	_, unknownErr := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")
	_, wrongErr := svc.Authenticate(context.Background(), "dian@example.com", "wrong password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestAuthenticateSucceedsForActiveUser(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	u := registerUser(t, svc, "dian@example.com")

	// inactive accounts cannot log in
	_, err := svc.Authenticate(context.Background(), "dian@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.Activate(context.Background(), u.ID))
	got, err := svc.Authenticate(context.Background(), "dian@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestActivateIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAccountService(repo)
	u := registerUser(t, svc, "dian@example.com")

	require.NoError(t, svc.Activate(context.Background(), u.ID))
	require.NoError(t, svc.Activate(context.Background(), u.ID))
	assert.True(t, repo.users[u.ID].IsActive)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAccountService(repo)
	u := registerUser(t, svc, "dian@example.com")

	err := svc.ChangePassword(context.Background(), u.ID, "not the password", "new password!")
	assert.ErrorIs(t, err, ErrInvalidCurrentPassword)

	require.NoError(t, svc.ChangePassword(context.Background(), u.ID, "correct horse", "new password!"))
	assert.True(t, helpers.CompareHashAndPassword(repo.users[u.ID].PasswordHash, "new password!"))
}

func TestAccountTokenRoundTrip(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	u := registerUser(t, svc, "dian@example.com")

	uid, tok := svc.IssueAccountToken(u)
	got, err := svc.ResolveAccountToken(context.Background(), uid, tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestAccountTokenInvalidatedByPasswordChange(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	u := registerUser(t, svc, "dian@example.com")

	uid, tok := svc.IssueAccountToken(u)
	require.NoError(t, svc.SetPassword(context.Background(), u.ID, "fresh password"))

	_, err := svc.ResolveAccountToken(context.Background(), uid, tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestAccountTokenInvalidatedByActivation(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	u := registerUser(t, svc, "dian@example.com")

	uid, tok := svc.IssueAccountToken(u)
	require.NoError(t, svc.Activate(context.Background(), u.ID))

	_, err := svc.ResolveAccountToken(context.Background(), uid, tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestResolveAccountTokenRejectsGarbage(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	u := registerUser(t, svc, "dian@example.com")
	uid, tok := svc.IssueAccountToken(u)

	_, err := svc.ResolveAccountToken(context.Background(), "!!notbase64!!", tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = svc.ResolveAccountToken(context.Background(), token.EncodeUID("ghost"), tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = svc.ResolveAccountToken(context.Background(), uid, "tampered.token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())

	// Unlike login this path does report the missing account.
	_, _, _, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestRequestPasswordResetIssuesToken(t *testing.T) {
	svc := newAccountService(newFakeUserRepo())
	u := registerUser(t, svc, "dian@example.com")

	got, uid, tok, err := svc.RequestPasswordReset(context.Background(), "dian@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, token.EncodeUID(u.ID), uid)

	resolved, err := svc.ResolveAccountToken(context.Background(), uid, tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, resolved.ID)
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAccountService(repo)
	u := registerUser(t, svc, "dian@example.com")

	user, profile, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{
		FirstName:    "Diana",
		AddressLine1: "Jl. Sudirman 12",
		City:         "Jakarta",
		Country:      "ID",
	})
	require.NoError(t, err)
	assert.Equal(t, "Diana", user.FirstName)
	assert.Equal(t, "Putra", user.LastName) // empty input keeps old value
	assert.Equal(t, "Jl. Sudirman 12", profile.AddressLine1)
	assert.Equal(t, "Jakarta", profile.City)
}
