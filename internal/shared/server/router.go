package server

import (
	"github.com/gin-gonic/gin"

	"transcript-backend/internal/shared/config"
	"transcript-backend/internal/shared/metrics"
	"transcript-backend/internal/shared/server/middleware"
)

// RouteRegistrar is implemented by handlers that mount browser and API routes.
type RouteRegistrar interface {
	RegisterRoutes(r gin.IRoutes)
	RegisterAPIRoutes(rg *gin.RouterGroup)
}

// RouterDeps lists the handlers mounted on the engine.
type RouterDeps struct {
	Config            config.Config
	TranscriptHandler RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// Form parsing only; uploads are streamed by the handler and never spooled.
	if deps.Config.UploadMemoryBytes > 0 {
		r.MaxMultipartMemory = deps.Config.UploadMemoryBytes
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	if deps.TranscriptHandler != nil {
		deps.TranscriptHandler.RegisterRoutes(r)
		deps.TranscriptHandler.RegisterAPIRoutes(r.Group("/api/v1"))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
