package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"contact-intake/pkg/config"
	"contact-intake/pkg/logger"
	"contact-intake/pkg/models"
	"contact-intake/pkg/services"
	"contact-intake/pkg/utils"
)

// Client-facing error messages.
const (
	MsgMethodNotAllowed = "Method not allowed."
	MsgNotConfigured    = "Storage is not configured."
	MsgSaveFailed       = "Unable to save your message right now."
	MsgUnableToProcess  = "Unable to process submission."
	MsgMissingRequired  = "First name, last name, and email are required."
	MsgInvalidEmail     = "Please provide a valid email address."
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	submissionService services.ContactSubmissionService
}

// NewHandlers creates a new Handlers instance
func NewHandlers(submissionService services.ContactSubmissionService) *Handlers {
	return &Handlers{
		submissionService: submissionService,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleContactSubmission accepts the contact form as JSON and stores it.
// A body that is not a JSON object is treated as an empty one, so it fails
// validation rather than parsing.
func (h *Handlers) HandleContactSubmission(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		fail(c, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
		return
	}

	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.Warn(ctx, "contact request body too large", "limit", maxErr.Limit)
			fail(c, http.StatusRequestEntityTooLarge, MsgUnableToProcess)
			return
		}
		logger.Warn(ctx, "error reading contact request body", "error", err)
		body = nil
	}

	raw := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
			logger.Info(ctx, "contact request body is not a JSON object")
			raw = map[string]any{}
		}
	}

	meta := models.RequestMeta{
		Source:    utils.CleanText(firstNonEmpty(c.GetHeader("Origin"), c.GetHeader("Referer"))),
		UserAgent: utils.CleanText(c.GetHeader("User-Agent")),
	}

	result, err := h.submissionService.ProcessContactSubmission(ctx, models.InputFromMap(raw), meta)
	if err != nil {
		status, msg := errorResponse(err)
		fail(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, models.ContactResponse{
		OK:   true,
		ID:   result.ID,
		Path: result.Path,
		URL:  result.URL,
	})
}

func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, config.ErrStorageNotConfigured):
		return http.StatusInternalServerError, MsgNotConfigured
	case errors.Is(err, services.ErrUnableToProcess):
		return http.StatusBadRequest, MsgUnableToProcess
	case errors.Is(err, services.ErrMissingRequired):
		return http.StatusBadRequest, MsgMissingRequired
	case errors.Is(err, services.ErrInvalidEmail):
		return http.StatusBadRequest, MsgInvalidEmail
	default:
		return http.StatusInternalServerError, MsgSaveFailed
	}
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, models.ContactResponse{OK: false, Error: msg})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
