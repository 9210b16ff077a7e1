package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/cloudhire/cloudhire-backend/internal/apperr"
	"github.com/cloudhire/cloudhire-backend/internal/auth"
	"github.com/cloudhire/cloudhire-backend/internal/store"
	"github.com/cloudhire/cloudhire-backend/internal/uploads"
)

// NewRouter wires the full HTTP surface. The CORS layer answers OPTIONS
// preflights by itself, so no route handles that method.
func NewRouter(st store.RecordStore, presigner *uploads.Presigner) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsCfg.MaxAge = 24 * time.Hour
	r.Use(cors.New(corsCfg))

	r.Use(auth.BearerSubject())

	// A matched path with the wrong method is 405, not 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(apperr.MethodNotAllowed.HTTPStatus(), gin.H{
			"error": "method not allowed",
			"code":  apperr.MethodNotAllowed.Code(),
		})
	})

	jobs := NewJobHandler(st)
	ups := NewUploadHandler(presigner)

	r.GET("/health", HealthCheck)

	r.GET("/jobs", jobs.ListOrGet)
	r.GET("/jobs/:id", jobs.GetByID)
	r.POST("/jobs", jobs.Create)
	r.PUT("/jobs", jobs.Update)
	r.PUT("/jobs/:id", jobs.Update)
	r.DELETE("/jobs", jobs.Delete)
	r.DELETE("/jobs/:id", jobs.Delete)
	r.POST("/jobs/:id/apply", jobs.Apply)

	r.POST("/uploads/cv", ups.PresignCV)

	return r
}

// HealthCheck is the GET /health endpoint.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RequestID tags every request with a uuid, echoed in the X-Request-ID
// header and attached to the request log line.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", id)

		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"requestId": id,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  time.Since(start).String(),
		})
		if sub, ok := c.Get(auth.SubjectKey); ok {
			entry = entry.WithField("subject", sub)
		}
		entry.Info("request handled")
	}
}
