package ingestion

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aevon-lab/footprint/internal/core/storage"
)

type Service struct {
	store            storage.ReportStore
	maxBodySizeBytes int
	nowFn            func() time.Time
	newID            func() string
}

func NewService(store storage.ReportStore, maxBodySizeMB int) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		newID: uuid.NewString,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/usage", s.IngestHandler)
}
