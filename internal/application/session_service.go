package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/pkg/helpers"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNoPendingReset   = errors.New("no pending password reset")
)

// ResetSlotStore is the server-side pending-reset slot: between a validated
// reset link and the new password submission it holds the resolved user id,
// keyed by a short-lived reset session.
type ResetSlotStore interface {
	Stash(ctx context.Context, sid, userID string) error
	Get(ctx context.Context, sid string) (string, error) // empty string when unset
	Clear(ctx context.Context, sid string) error
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// SessionService establishes and tears down authenticated sessions and owns
// the password-reset slot.
type SessionService struct {
	Accounts *AccountService
	JWT      *helpers.JWTManager
	Redis    *redis.Client
	Slots    ResetSlotStore
	Logger   *logrus.Logger
}

func NewSessionService(accounts *AccountService, jwt *helpers.JWTManager, rdb *redis.Client, slots ResetSlotStore, logger *logrus.Logger) *SessionService {
	return &SessionService{Accounts: accounts, JWT: jwt, Redis: rdb, Slots: slots, Logger: logger}
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *SessionService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.FullName(),
			"sid":        sid,
			"logged_in":  true,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and token pair when the refresh token and
// stored session still agree.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Accounts.GetUser(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Destroy removes the server-side session. Cookie clearing is up to the
// transport layer.
func (s *SessionService) Destroy(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}

// StashPendingReset records the user id resolved from a valid reset token.
func (s *SessionService) StashPendingReset(ctx context.Context, sid, userID string) error {
	return s.Slots.Stash(ctx, sid, userID)
}

// ResetPassword completes the reset flow: both passwords must agree and a
// pending-reset slot must have been populated by a validated token. The slot
// is cleared after use.
func (s *SessionService) ResetPassword(ctx context.Context, sid, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	userID, err := s.Slots.Get(ctx, sid)
	if err != nil {
		return err
	}
	if userID == "" {
		return ErrNoPendingReset
	}
	if err := s.Accounts.SetPassword(ctx, userID, newPassword); err != nil {
		return err
	}
	if err := s.Slots.Clear(ctx, sid); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("pending reset slot clear failed")
	}
	return nil
}
