package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yogswara/gearzone/config"
	"github.com/yogswara/gearzone/internal/application"
	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/pkg/helpers"
	"github.com/yogswara/gearzone/pkg/mailer"
	tpl "github.com/yogswara/gearzone/pkg/mailer/templates"
	"github.com/yogswara/gearzone/pkg/response"
	"github.com/yogswara/gearzone/pkg/validation"
)

// AuthHandler orchestrates registration, activation, login/logout, and the
// password reset flow.
type AuthHandler struct {
	Accounts *application.AccountService
	Carts    *application.CartService
	Sessions *application.SessionService
	Cfg      *config.Config
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
	Cookies  *helpers.CookieManager
}

func NewAuthHandler(accounts *application.AccountService, carts *application.CartService, sessions *application.SessionService, cfg *config.Config, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		Accounts: accounts,
		Carts:    carts,
		Sessions: sessions,
		Cfg:      cfg,
		Pub:      pub,
		Logger:   logger,
		Cookies:  helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}
}

type registerRequest struct {
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phone_number" binding:"required"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/accounts/register
// Creates an inactive account and dispatches the activation email.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Accounts.Register(c.Request.Context(), application.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, application.ErrDuplicateEmail) {
			response.Error[any](c, http.StatusConflict, "email already registered", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	h.enqueueAccountEmail(c, tpl.AccountActivation, u, h.Cfg.ActivationURL)

	response.Success(c, http.StatusCreated, gin.H{"email": u.Email}, "we have sent you a verification email", nil)
}

// Activate GET /api/accounts/activate/:uid/:token
func (h *AuthHandler) Activate(c *gin.Context) {
	u, err := h.Accounts.ResolveAccountToken(c.Request.Context(), c.Param("uid"), c.Param("token"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid activation link", nil)
		return
	}
	if err := h.Accounts.Activate(c.Request.Context(), u.ID); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid activation link", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"activated": true}, "your account is activated", nil)
}

// Login POST /api/accounts/login
// On success the anonymous cart is reconciled before the session is
// established, and the response carries the post-login redirect target.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid login credentials", nil)
		return
	}

	// Best-effort: a failed merge must never block the login.
	sessionKey, _ := c.Cookie("cart_session")
	outcome, mergeErr := h.Carts.MergeOnLogin(c.Request.Context(), sessionKey, u.ID)
	if mergeErr != nil && h.Logger != nil {
		h.Logger.WithError(mergeErr).WithField("user_id", u.ID).Warn("cart merge failed, continuing login")
	}

	pair, err := h.Sessions.IssueTokens(c.Request.Context(), u)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)

	next := helpers.NextTarget(c.GetHeader("Referer"), h.Cfg.DashboardURL)
	response.Success(c, http.StatusOK, gin.H{
		"user_id":  u.ID,
		"email":    u.Email,
		"name":     u.FullName(),
		"redirect": next,
		"cart":     outcome.String(),
	}, "you are now logged in", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Logout POST /api/accounts/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString("userID")
	h.Sessions.Destroy(c.Request.Context(), uid)
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "you are logged out", nil)
}

// Refresh POST /api/accounts/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Sessions.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", nil)
}

// ForgotPassword POST /api/accounts/password/forgot {email}
// This path deliberately reports an unknown account, matching the behavior
// the storefront has always had.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, _, _, err := h.Accounts.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "account does not exist", nil)
		return
	}

	h.enqueueAccountEmail(c, tpl.PasswordReset, u, h.Cfg.ResetPasswordURL)

	response.Success[any](c, http.StatusOK, gin.H{"email": u.Email}, "password reset email has been sent", nil)
}

// ResetValidate GET /api/accounts/reset/validate/:uid/:token
// A valid link populates the server-side pending-reset slot; the user is not
// authenticated by this step.
func (h *AuthHandler) ResetValidate(c *gin.Context) {
	u, err := h.Accounts.ResolveAccountToken(c.Request.Context(), c.Param("uid"), c.Param("token"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "this link has expired", nil)
		return
	}

	sid := uuid.NewString()
	if err := h.Sessions.StashPendingReset(c.Request.Context(), sid, u.ID); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "password reset unavailable", nil)
		return
	}
	h.Cookies.SetResetSession(c, sid, h.Cfg.PendingResetTTL)
	response.Success[any](c, http.StatusOK, gin.H{"reset": "pending"}, "please reset your password", nil)
}

// ResetPassword POST /api/accounts/password/reset {password, confirm_password}
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Password        string `json:"password" binding:"required,pwd"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	sid, _ := c.Cookie("reset_session")
	err := h.Sessions.ResetPassword(c.Request.Context(), sid, req.Password, req.ConfirmPassword)
	switch {
	case errors.Is(err, application.ErrPasswordMismatch):
		response.Error[any](c, http.StatusBadRequest, "passwords do not match", nil)
		return
	case errors.Is(err, application.ErrNoPendingReset):
		response.Error[any](c, http.StatusBadRequest, "no pending password reset", nil)
		return
	case err != nil:
		response.Error[any](c, http.StatusInternalServerError, "password reset failed", nil)
		return
	}
	h.Cookies.ClearResetSession(c)
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password successfully reset", nil)
}

// enqueueAccountEmail publishes the activation/reset email job. Delivery is
// fire-and-forget; a dead broker never rolls back the account change.
func (h *AuthHandler) enqueueAccountEmail(c *gin.Context, template string, u *entity.User, baseURL string) {
	if h.Pub == nil || h.Cfg == nil || !h.Cfg.MailSendEnabled {
		return
	}
	uid, tok := h.Accounts.IssueAccountToken(u)
	data := tpl.EmailData{
		Name:   u.FullName(),
		Domain: h.Cfg.SiteDomain,
		UID:    uid,
		Token:  tok,
		Link:   baseURL + "/" + uid + "/" + tok,
	}
	job := mailer.EmailJob{To: u.Email, Template: template, Data: tpl.ToMap(data)}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("template", template).Warn("failed to publish email job")
	}
}
