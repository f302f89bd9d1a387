// Package router assembles the gin engine of the API server.
package router

import (
	"fmt"
	"log/slog"
	"net/http"

	"titlehub/internal/microservices/http-api/handler"
	"titlehub/internal/microservices/http-api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers are the resource handlers mounted under /api/v1.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Categories *handler.CategoryHandler
	Genres     *handler.GenreHandler
	Titles     *handler.TitleHandler
	Reviews    *handler.ReviewHandler
	Comments   *handler.CommentHandler
}

// Options carry the cross-cutting pieces of the engine. Metrics may be nil.
type Options struct {
	Logger      *slog.Logger
	Tokens      middleware.TokenValidator
	Users       middleware.UserLookup
	Limiter     middleware.Limiter
	Metrics     *middleware.Metrics
	CORSOrigins []string
	// TrustedProxies may set the client IP through X-Forwarded-For. Nil trusts none.
	TrustedProxies []string
}

func New(h Handlers, opts Options) (*gin.Engine, error) {
	r := gin.New()
	// rate limit keys are client IPs, so only listed proxies may rewrite them
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", opts.Metrics.Handler())
	}
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.Authenticate(opts.Tokens, opts.Users))

	r.GET("/check-conn", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "API is alive"})
	})

	api := r.Group("/api/v1")
	h.Auth.RegisterRoutes(api, middleware.RateLimit(opts.Limiter, opts.Logger))
	h.Users.RegisterRoutes(api)
	h.Categories.RegisterRoutes(api)
	h.Genres.RegisterRoutes(api)
	h.Titles.RegisterRoutes(api)
	h.Reviews.RegisterRoutes(api)
	h.Comments.RegisterRoutes(api)

	return r, nil
}
