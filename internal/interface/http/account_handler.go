package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yogswara/gearzone/internal/application"
	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/pkg/response"
	"github.com/yogswara/gearzone/pkg/validation"
)

// AccountHandler serves the authenticated account pages: dashboard, profile
// editing, and password change.
type AccountHandler struct {
	Accounts *application.AccountService
	Orders   *application.OrderService
	Logger   *logrus.Logger
}

func NewAccountHandler(accounts *application.AccountService, orders *application.OrderService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Accounts: accounts, Orders: orders, Logger: logger}
}

func profileView(u *entity.User, p *entity.UserProfile) gin.H {
	return gin.H{
		"id":              u.ID,
		"email":           u.Email,
		"username":        u.Username,
		"first_name":      u.FirstName,
		"last_name":       u.LastName,
		"phone_number":    u.PhoneNumber,
		"address_line_1":  p.AddressLine1,
		"address_line_2":  p.AddressLine2,
		"city":            p.City,
		"state":           p.State,
		"country":         p.Country,
		"profile_picture": p.ProfilePicture,
	}
}

// Dashboard GET /api/dashboard
func (h *AccountHandler) Dashboard(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Accounts.GetUser(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "account not found", nil)
		return
	}
	p, err := h.Accounts.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "account not found", nil)
		return
	}
	count, err := h.Orders.CompletedCount(c.Request.Context(), uid)
	if err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Warn("order count failed")
	}
	response.Success(c, http.StatusOK, gin.H{
		"orders_count": count,
		"userprofile":  profileView(u, p),
	}, "dashboard", nil)
}

// GetProfile GET /api/profile
func (h *AccountHandler) GetProfile(c *gin.Context) {
	uid := c.GetString("userID")
	u, err := h.Accounts.GetUser(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "account not found", nil)
		return
	}
	p, err := h.Accounts.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "account not found", nil)
		return
	}
	response.Success(c, http.StatusOK, profileView(u, p), "profile", nil)
}

type updateProfileRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

// UpdateProfile PUT /api/profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString("userID")
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, p, err := h.Accounts.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
	})
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, profileView(u, p), "your profile has been updated", nil)
}

// UploadProfilePicture POST /api/profile/picture (multipart)
func (h *AccountHandler) UploadProfilePicture(c *gin.Context) {
	uid := c.GetString("userID")
	file, header, err := c.Request.FormFile("profile_picture")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "profile_picture file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Accounts.UploadProfilePicture(c.Request.Context(), uid, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Warn("profile picture upload failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "upload failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile_picture": url}, "profile picture updated", nil)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// ChangePassword POST /api/password/change
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	uid := c.GetString("userID")
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Accounts.ChangePassword(c.Request.Context(), uid, req.CurrentPassword, req.NewPassword)
	switch {
	case errors.Is(err, application.ErrInvalidCurrentPassword):
		response.Error[any](c, http.StatusBadRequest, "invalid current password", nil)
		return
	case err != nil:
		response.Error[any](c, http.StatusInternalServerError, "password update failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password updated successfully", nil)
}
