package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/internal/domain/repository"
	"github.com/yogswara/gearzone/pkg/helpers"
	"github.com/yogswara/gearzone/pkg/token"
)

var (
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountNotFound        = errors.New("account not found")
	ErrInvalidCurrentPassword = errors.New("invalid current password")
)

// AccountService owns user identity records: registration, authentication,
// activation, and password changes. Token issuing is bound to a fingerprint
// of the user's mutable state, so changing the password or activating the
// account invalidates previously issued tokens.
type AccountService struct {
	Repo      repository.UserRepository
	Tokens    *token.Generator
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewAccountService(repo repository.UserRepository, tokens *token.Generator, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *AccountService {
	return &AccountService{Repo: repo, Tokens: tokens, GCS: gcs, GCSBucket: gcsBucket, Logger: logger}
}

type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
}

// Register creates an inactive user with an empty profile. The username is
// the email local-part; collisions are not deduplicated.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        in.Email,
		Username:     entity.UsernameFromEmail(in.Email),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, u, &entity.UserProfile{}); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies email and password. Unknown email, wrong password,
// and an inactive account all collapse to ErrInvalidCredentials so callers
// cannot enumerate users.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Activate marks the account active. Calling it twice is harmless.
func (s *AccountService) Activate(ctx context.Context, userID string) error {
	if err := s.Repo.SetActive(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

// SetPassword replaces the password hash. This changes the state fingerprint
// and therefore invalidates every previously issued reset token.
func (s *AccountService) SetPassword(ctx context.Context, userID, newPassword string) error {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

// ChangePassword verifies the current password before delegating to
// SetPassword.
func (s *AccountService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrAccountNotFound
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, currentPassword) {
		return ErrInvalidCurrentPassword
	}
	return s.SetPassword(ctx, userID, newPassword)
}

// StateFingerprint derives the token fingerprint from the user's mutable
// state. Password and active flag are included so that a reset or an
// activation self-invalidates outstanding tokens.
func (s *AccountService) StateFingerprint(u *entity.User) string {
	return token.Fingerprint(u.ID, u.Email, u.PasswordHash, strconv.FormatBool(u.IsActive))
}

// IssueAccountToken returns the url-safe uid and signed token used in
// activation and reset links.
func (s *AccountService) IssueAccountToken(u *entity.User) (uid, tok string) {
	return token.EncodeUID(u.ID), s.Tokens.Issue(u.ID, s.StateFingerprint(u))
}

// ResolveAccountToken loads the user referenced by an encoded uid and checks
// the token against the user's current state. Every failure mode returns
// token.ErrInvalidToken.
func (s *AccountService) ResolveAccountToken(ctx context.Context, encodedUID, tok string) (*entity.User, error) {
	userID, err := token.DecodeUID(encodedUID)
	if err != nil {
		return nil, token.ErrInvalidToken
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, token.ErrInvalidToken
	}
	embedded, err := s.Tokens.Validate(tok, s.StateFingerprint(u))
	if err != nil || embedded != u.ID {
		return nil, token.ErrInvalidToken
	}
	return u, nil
}

// RequestPasswordReset looks up the account and issues a reset token.
// Unlike Authenticate this deliberately reports an unknown email; the
// storefront has always distinguished this case.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) (*entity.User, string, string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", "", ErrAccountNotFound
	}
	uid, tok := s.IssueAccountToken(u)
	return u, uid, tok, nil
}

func (s *AccountService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrAccountNotFound
	}
	return u, nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID string) (*entity.UserProfile, error) {
	p, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return p, nil
}

type UpdateProfileInput struct {
	FirstName    string
	LastName     string
	PhoneNumber  string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Country      string
}

// UpdateProfile edits the user row and its profile row. Empty user fields
// keep their current values.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, *entity.UserProfile, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, nil, ErrAccountNotFound
	}
	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	if in.PhoneNumber != "" {
		u.PhoneNumber = in.PhoneNumber
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, nil, err
	}

	p, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	p.AddressLine1 = in.AddressLine1
	p.AddressLine2 = in.AddressLine2
	p.City = in.City
	p.State = in.State
	p.Country = in.Country
	if err := s.Repo.UpdateProfile(ctx, p); err != nil {
		return nil, nil, err
	}
	return u, p, nil
}

// UploadProfilePicture stores the image in GCS and records its URL on the
// profile.
func (s *AccountService) UploadProfilePicture(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	p, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profiles", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	p.ProfilePicture = url
	if err := s.Repo.UpdateProfile(ctx, p); err != nil {
		return "", err
	}
	return url, nil
}
