package artwork

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artportfolio/internal/middleware"
	"artportfolio/internal/pkg/response"
	"artportfolio/internal/repository"
	"artportfolio/internal/upload"
)

// formOverhead is the room left for text fields on top of the image limit.
const formOverhead = 1 << 20

type Handler struct {
	service       *Service
	maxUploadSize int64
}

func NewHandler(service *Service, maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = upload.DefaultMaxFileSize
	}
	return &Handler{service: service, maxUploadSize: maxUploadSize}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/artworks", h.List)
	api.GET("/artworks/:id", h.GetByID)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/artworks", h.Create)
}

func (h *Handler) List(c *gin.Context) {
	artworks, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("list_artworks_error error=%v", err)
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Server error while fetching artworks")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"artworks": artworks})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "ID must be a valid number")
		return
	}

	artwork, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtworkNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Artwork with ID %d not found", id))
			return
		}
		log.Printf("get_artwork_error id=%d error=%v", id, err)
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Server error while fetching artwork")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"artwork": artwork})
}

func (h *Handler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "TOKEN_REQUIRED", "Access token required")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+formOverhead)
	if err := c.Request.ParseMultipartForm(formOverhead); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Image exceeds maximum allowed size")
			return
		}
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Invalid form data")
		return
	}

	req := CreateRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Medium:      c.PostForm("medium"),
		Dimensions:  c.PostForm("dimensions"),
		YearCreated: c.PostForm("yearCreated"),
		ArtistName:  c.PostForm("artistName"),
		ArtistBio:   c.PostForm("artistBio"),
	}
	if fh, err := c.FormFile("image"); err == nil {
		req.Image = fh
	}

	artwork, err := h.service.Create(c.Request.Context(), req, identity.ID)
	if err != nil {
		var ve *repository.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Message)
		case errors.Is(err, upload.ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", "Image file is empty")
		case errors.Is(err, upload.ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Image must be a JPEG, PNG, GIF or WebP file")
		case errors.Is(err, upload.ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Image exceeds maximum allowed size")
		default:
			log.Printf("create_artwork_error user_id=%d title=%q error=%v", identity.ID, req.Title, err)
			response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Server error while creating artwork")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Artwork %q created successfully with ID %d.", artwork.Title, artwork.ID),
		"artwork": artwork,
	})
}
