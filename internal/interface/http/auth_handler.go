package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acara-auth/internal/application"
	"github.com/oksasatya/acara-auth/internal/interface/middleware"
	"github.com/oksasatya/acara-auth/pkg/helpers"
	"github.com/oksasatya/acara-auth/pkg/response"
	"github.com/oksasatya/acara-auth/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.As(err, &verr):
			response.Error(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, application.ErrConflict):
			response.Error(c, http.StatusConflict, err.Error())
		default:
			h.fail(c, "register", err)
		}
		return
	}
	response.Success(c, http.StatusOK, user, "Success registering user")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	token, exp, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusForbidden, err.Error())
		case errors.As(err, &verr):
			response.Error(c, http.StatusBadRequest, verr.Message)
		default:
			h.fail(c, "login", err)
		}
		return
	}
	h.Cookies.SetAccess(c, token, exp)
	response.Success(c, http.StatusOK, token, "Success login")
}

// Me GET /api/auth/me (auth required)
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.UserIDKey)
	user, err := h.Svc.Me(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusForbidden, err.Error())
			return
		}
		h.fail(c, "me", err)
		return
	}
	response.Success(c, http.StatusOK, user, "Success get user profile")
}

func (h *AuthHandler) fail(c *gin.Context, op string, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("op", op).Error("auth request failed")
	}
	response.Error(c, http.StatusBadRequest, err.Error())
}
