package ingestion

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playground-analytics/aggview/internal/core/storage"
)

const (
	defaultListLimit = 1000
	maxListLimit     = 10000
)

// Service is the recording path into the raw activity log.
type Service struct {
	store            storage.ActivityStore
	maxBodySizeBytes int
	nowFn            func() time.Time
}

func NewService(repo storage.ActivityStore, maxBodySizeMB int) *Service {
	if repo == nil {
		panic("ingestion: store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            repo,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// RegisterRoutes registers the activity recording routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/activity", s.RecordHandler)
	r.GET("/v1/activity", s.ListActivityHandler)
}
