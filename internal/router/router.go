package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/placebook/internal/container"
	"github.com/oksasatya/placebook/internal/interface/middleware"
	"github.com/oksasatya/placebook/internal/router/modules"
	"github.com/oksasatya/placebook/pkg/validation"
)

const metricsVar = "http"

// NewEngine builds the gin engine with global middleware and every module
// mounted under /api.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.DebugMetricsEnabled {
		// outside ErrorHandler so the final status is counted
		r.Use(middleware.Metrics(middleware.NewMetricsMap(metricsVar)))
	}
	r.Use(
		middleware.ErrorHandler(c.Logger),
		middleware.RequestIDMiddleware(),
		middleware.RealIP(),
		cors.New(corsConfig(cfg.CORSOrigins())),
	)
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := NewRegistry(r, "/api")
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

// InitModules adds every feature module built from the container.
func InitModules(reg *Registry, c *container.Container) {
	guard := modules.Guard{
		JWT:       c.JWT,
		Redis:     c.Redis,
		RateLimit: c.Config.RateLimitEnabled,
	}
	if c.Config.IsDevelopment() {
		guard.Allow = middleware.AllowPrivateIP()
	}

	reg.Add(
		modules.NewUserModule(c.UserHandler, guard),
		modules.NewPlaceModule(c.PlaceHandler, guard),
		modules.NewProfileModule(c.ProfileHandler, guard),
		modules.NewPostModule(c.PostHandler, guard),
	)
	if c.Config.DebugMetricsEnabled {
		reg.Add(modules.NewDebugModule(guard))
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:  []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
