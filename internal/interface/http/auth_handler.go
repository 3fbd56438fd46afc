package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/okasatria/go-auth-api/internal/application"
	"github.com/okasatria/go-auth-api/internal/domain/entity"
	"github.com/okasatria/go-auth-api/internal/interface/middleware"
	"github.com/okasatria/go-auth-api/pkg/helpers"
	"github.com/okasatria/go-auth-api/pkg/response"
	"github.com/okasatria/go-auth-api/pkg/validation"
)

// Error wording is part of the wire contract; clients key off these.
const (
	msgEmailRequired     = "Email is required."
	msgPasswordRequired  = "Password is required."
	msgBadCredentials    = "Email or password is incorrect."
	msgEmailRegistered   = "This email address is already registered."
	msgEmailExists       = "Email already exists."
	msgEmailInvalid      = "Please enter a valid email address."
	msgRefreshInvalid    = "Token is invalid or expired."
	msgInternal          = "Internal server error."
)

// UserService is the consumer-side contract the handlers need from the
// application layer.
type UserService interface {
	Register(ctx context.Context, email, password string) (*entity.User, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	Login(ctx context.Context, email, password string) (*entity.User, helpers.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (helpers.TokenPair, error)
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	UpdateEmail(ctx context.Context, userID, newEmail string) (*entity.User, error)
	SearchUsers(ctx context.Context, q string) ([]entity.PublicUser, error)
}

// AuthHandler serves the account endpoints: registration, login, token
// refresh, profile read/update and bounded user search.
type AuthHandler struct {
	Svc    UserService
	Logger *logrus.Logger
}

func NewAuthHandler(svc UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type updateProfileRequest struct {
	Email *string `json:"email" binding:"omitempty,email"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Register handles POST /api/auth/register/. Every violated field is
// reported together in one 400 body; on success exactly one user row is
// created and returned as {id, email}.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	details := response.FieldErrors{}
	if err := c.ShouldBindJSON(&req); err != nil {
		details = validation.ToDetails(err)
	}
	// Advisory duplicate check so the violation is reported alongside the
	// other field errors; the unique constraint below remains the
	// authority under races.
	if _, bad := details["email"]; !bad && req.Email != "" {
		if taken, err := h.Svc.EmailTaken(c.Request.Context(), req.Email, ""); err == nil && taken {
			details["email"] = msgEmailRegistered
		}
	}
	if len(details) > 0 {
		response.Fields(c, http.StatusBadRequest, details)
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Fields(c, http.StatusBadRequest, response.FieldErrors{"email": msgEmailRegistered})
			return
		}
		h.Logger.WithError(err).WithField("real_ip", c.GetString("real_ip")).Error("registration failed")
		response.WithDetail(c, http.StatusInternalServerError, msgInternal)
		return
	}
	h.Logger.WithFields(logrus.Fields{"user_id": u.ID, "real_ip": c.GetString("real_ip")}).Info("user registered")
	c.JSON(http.StatusCreated, u.Public())
}

// Login handles POST /api/auth/login/. Unknown email and wrong password
// produce byte-identical 401 responses so accounts cannot be enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		response.Fields(c, http.StatusBadRequest, response.FieldErrors{"email": msgEmailRequired})
		return
	}
	if req.Password == "" {
		response.Fields(c, http.StatusBadRequest, response.FieldErrors{"password": msgPasswordRequired})
		return
	}

	u, pair, err := h.Svc.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			h.Logger.WithField("real_ip", c.GetString("real_ip")).Warn("login rejected")
			response.WithDetail(c, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.WithDetail(c, http.StatusInternalServerError, msgInternal)
		return
	}
	h.Logger.WithFields(logrus.Fields{"user_id": u.ID, "real_ip": c.GetString("real_ip")}).Info("user logged in")
	c.JSON(http.StatusOK, tokenResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// Refresh handles POST /api/auth/refresh/: a valid refresh token yields
// a rotated access/refresh pair. Previously issued refresh tokens are
// not tracked.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, validation.ToDetails(err))
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		response.WithDetail(c, http.StatusUnauthorized, msgRefreshInvalid)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// GetProfile handles GET /api/auth/profile/ for the authenticated
// identity only; there is no path to another user's record.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		// A verified token for a vanished account is still unauthorized.
		response.WithDetail(c, http.StatusUnauthorized, msgRefreshInvalid)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// UpdateProfile handles PUT /api/auth/profile/. The payload is partial:
// an absent email leaves the record untouched, the current email is a
// no-op success, and another user's email is rejected without mutation.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fields(c, http.StatusBadRequest, response.FieldErrors{"email": msgEmailInvalid})
		return
	}

	if req.Email == nil {
		u, err := h.Svc.GetProfile(c.Request.Context(), uid)
		if err != nil {
			response.WithDetail(c, http.StatusUnauthorized, msgRefreshInvalid)
			return
		}
		c.JSON(http.StatusOK, u.Public())
		return
	}
	if entity.NormalizeEmail(*req.Email) == "" {
		response.Fields(c, http.StatusBadRequest, response.FieldErrors{"email": msgEmailInvalid})
		return
	}

	u, err := h.Svc.UpdateEmail(c.Request.Context(), uid, *req.Email)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Fields(c, http.StatusBadRequest, response.FieldErrors{"email": msgEmailExists})
		case errors.Is(err, application.ErrUserNotFound):
			response.WithDetail(c, http.StatusUnauthorized, msgRefreshInvalid)
		default:
			h.Logger.WithError(err).WithField("user_id", uid).Error("profile update failed")
			response.WithDetail(c, http.StatusInternalServerError, msgInternal)
		}
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// SearchUsers handles GET /api/auth/search-users/?q=. Queries shorter
// than two characters return an empty list rather than an error.
func (h *AuthHandler) SearchUsers(c *gin.Context) {
	results, err := h.Svc.SearchUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.WithDetail(c, http.StatusInternalServerError, msgInternal)
		return
	}
	c.JSON(http.StatusOK, results)
}
