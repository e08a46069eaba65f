package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskboard/taskboard/internal/application"
	repo "github.com/taskboard/taskboard/internal/domain/repository"
	"github.com/taskboard/taskboard/pkg/validation"
)

type AuthHandler struct {
	Service *application.AuthService
	Logger  *logrus.Logger
}

func NewAuthHandler(service *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register POST /register {username, password}
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": validation.ToDetails(err)})
		return
	}
	u, err := h.Service.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username already registered"})
			return
		}
		h.Logger.WithError(err).Error("register failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": u.Username})
}

type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Login POST /login, form-encoded username/password.
// Success returns a bearer token; every failure is the same generic 401 so
// responses cannot reveal whether the username exists.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": validation.ToDetails(err)})
		return
	}
	raw, _, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
			return
		}
		h.Logger.WithError(err).Error("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": raw, "token_type": "bearer"})
}
