package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/margadarshak/margadarshak-api/internal"
	"github.com/margadarshak/margadarshak-api/internal/auth"
	"github.com/margadarshak/margadarshak-api/internal/chat"
	"github.com/margadarshak/margadarshak-api/internal/profile"
)

// Resolver produces chat replies.
type Resolver interface {
	Resolve(ctx context.Context, history []internal.Message, latest string) chat.Result
	Status() internal.ChatStatus
}

// CollegeBackend is the external prediction/comparison service.
type CollegeBackend interface {
	Predict(ctx context.Context, req internal.PredictRequest) (json.RawMessage, error)
	Compare(ctx context.Context, req internal.CompareRequest) (json.RawMessage, error)
	Autocomplete(ctx context.Context, query string, limit int) (internal.AutocompleteResponse, error)
}

// Deps are the collaborators the router hands to its handlers; nil Auth disables token checks.
type Deps struct {
	Resolver    Resolver
	Profiles    *profile.Service
	Colleges    CollegeBackend
	Auth        *auth.Verifier
	CORSOrigins []string
	Log         zerolog.Logger
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Log))
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC().Format(time.RFC3339)})
	})

	api := r.Group("/api")

	ch := &chatHandler{resolver: d.Resolver, log: d.Log}
	api.POST("/chat", ch.handleChat)
	api.GET("/chat/status", ch.handleStatus)

	if d.Profiles != nil {
		ph := &profileHandler{profiles: d.Profiles, log: d.Log}
		owner := d.Auth.RequireOwner("userId")
		api.POST("/profiles/:userId", owner, ph.handleCreate)
		api.GET("/profiles/:userId", owner, ph.handleGet)
		api.PATCH("/profiles/:userId", owner, ph.handleUpdate)
	}

	if d.Colleges != nil {
		colh := &collegeHandler{colleges: d.Colleges, profiles: d.Profiles, auth: d.Auth, log: d.Log}
		api.POST("/predict-colleges", colh.handlePredict)
		api.POST("/colleges/compare", colh.handleCompare)
		api.GET("/colleges/autocomplete", colh.handleAutocomplete)
	}

	return r
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-ID", reqID)

		c.Next()

		ev := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = log.Error()
		}
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		ev.Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}
