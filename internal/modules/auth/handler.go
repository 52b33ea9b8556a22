package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"servicehub/internal/middleware"
	"servicehub/internal/pkg/response"
	"servicehub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/signin", h.Signin)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)
}

// Signup registers a customer or provider account.
// @Summary		Sign up
// @Tags		Auth
// @Param		request	body	SignupRequest	true	"Account data"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Router		/auth/signup [POST]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, http.StatusBadRequest, validator.FromError(err))
		return
	}

	res, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "User already exists")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   res.Token,
		"user":    res.User,
	})
}

// Signin exchanges credentials for a bearer token.
// @Summary		Sign in
// @Tags		Auth
// @Param		request	body	SigninRequest	true	"Credentials"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/signin [POST]
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErrors(c, http.StatusBadRequest, validator.FromError(err))
		return
	}

	res, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
