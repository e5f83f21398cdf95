package api

import (
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExportHandler holds the export service dependency.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type ExportRequest struct {
	UserID string `form:"userId" json:"userId"`
}

type ExportResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Key      string `json:"key"`
	URL      string `json:"url"`
}

// ExportLog uploads the user's log to object storage and returns a download link.
// POST /api/exercise/export
func (h *ExportHandler) ExportLog(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	res, err := h.exportService.ExportLog(c.Request.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.String(http.StatusOK, msgUnknownID)
		case errors.Is(err, service.ErrExportDisabled):
			_ = c.Error(NewHTTPError(http.StatusServiceUnavailable, "export disabled"))
		default:
			_ = c.Error(err)
		}
		return
	}

	c.JSON(http.StatusOK, ExportResponse{
		ID:       res.UserID.Hex(),
		Username: res.Username,
		Key:      res.Key,
		URL:      res.URL,
	})
}
