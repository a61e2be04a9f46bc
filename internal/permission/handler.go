package permission

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/aevon-lab/footprint/internal/core/errors"
	"github.com/aevon-lab/footprint/internal/core/storage"
)

// AdminService exposes the host side of the permission flow over HTTP:
// recording the user's decision and listing pending settings requests.
type AdminService struct {
	store storage.PermissionStore
}

func NewAdminService(store storage.PermissionStore) *AdminService {
	if store == nil {
		panic("permission: store must not be nil")
	}
	return &AdminService{store: store}
}

type setPermissionRequest struct {
	Granted *bool `json:"granted"`
}

// RegisterRoutes registers the permission admin routes.
func (s *AdminService) RegisterRoutes(r gin.IRouter) {
	r.PUT("/v1/permission", s.SetPermissionHandler)
	r.GET("/v1/settings/requests", s.PendingRequestsHandler)
}

// SetPermissionHandler handles PUT /v1/permission with body {"granted": bool}.
func (s *AdminService) SetPermissionHandler(c *gin.Context) {
	var req setPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Granted == nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   `body must be {"granted": true|false}`,
		})
		return
	}

	if err := s.store.SetUsagePermission(c.Request.Context(), *req.Granted); err != nil {
		slog.Error("[Permission] Failed to record decision", "granted", *req.Granted, "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to record permission",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"granted": *req.Granted})
}

// PendingRequestsHandler handles GET /v1/settings/requests.
func (s *AdminService) PendingRequestsHandler(c *gin.Context) {
	requests, err := s.store.PendingSettingsRequests(c.Request.Context())
	if err != nil {
		slog.Error("[Permission] Failed to list settings requests", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to list settings requests",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
