package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"artportfolio/internal/pkg/response"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/auth/login", h.Login)
}

// Login exchanges username/password for a bearer token.
// Unknown user and wrong password both answer 401 with the same message.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username and password are required")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
			return
		}
		log.Printf("login_error username=%q error=%v", req.Username, err)
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Server error during authentication")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Authentication successful",
		"token":   result.Token,
		"userId":  result.UserID,
	})
}
