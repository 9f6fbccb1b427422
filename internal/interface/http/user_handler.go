package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/internal/interface/middleware"
	"github.com/oksasatya/go-account-service/pkg/response"
	"github.com/oksasatya/go-account-service/pkg/validation"
)

const msgInvalidUserData = "Invalid user data"

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,personname"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// nil and empty fields are left untouched
type updateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Password *string `json:"password" binding:"omitempty,pwd"`
}

type searchQuery struct {
	Q    string `form:"q"`
	Size int    `form:"size"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidUserData, err, validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, res)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidUserData, err, validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	res, err := h.Svc.GetProfile(id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, msgInvalidUserData, err, validation.ToDetails(err))
		return
	}
	res, err := h.Svc.UpdateProfile(c.Request.Context(), id, userapp.UpdateProfileInput{Name: req.Name, Password: req.Password})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *UserHandler) DeleteProfile(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	if err := h.Svc.DeleteProfile(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "User deleted"})
}

// Search queries the user directory by name or email.
func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid search query", err, map[string]string{"size": "must be a number"})
		return
	}
	res, err := h.Svc.SearchUsers(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// writeError maps service errors to statuses; anything unknown is a 500.
func (h *UserHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userapp.ErrDuplicateEmail):
		response.Error(c, http.StatusBadRequest, "User already exists", err, nil)
	case errors.Is(err, userapp.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid email or password", err, nil)
	case errors.Is(err, userapp.ErrMissingToken):
		response.Error(c, http.StatusUnauthorized, "Not authorized, no token", err, nil)
	case errors.Is(err, userapp.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, "Not authorized, token failed", err, nil)
	case errors.Is(err, userapp.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "Not authorized", err, nil)
	case errors.Is(err, userapp.ErrNotFound):
		response.Error(c, http.StatusNotFound, "User not found", err, nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.Request.URL.Path,
			}).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "Internal Server Error", err, nil)
	}
}
