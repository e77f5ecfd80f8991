package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"artportfolio/internal/middleware"
	"artportfolio/internal/pkg/response"
	"artportfolio/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/user", h.GetMe)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/users", h.ListUsers)
}

// GetMe returns the caller's profile and the artworks they created.
func (h *Handler) GetMe(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "TOKEN_REQUIRED", "Access token required")
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		log.Printf("get_user_error user_id=%d error=%v", identity.ID, err)
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Server error while fetching user information")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": profile})
}

func (h *Handler) ListUsers(c *gin.Context) {
	accounts, err := h.service.Accounts(c.Request.Context())
	if err != nil {
		log.Printf("list_users_error error=%v", err)
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Server error while fetching users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": accounts})
}
