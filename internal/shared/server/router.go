package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"resumeforge/internal/interview"
	"resumeforge/internal/keywords"
	"resumeforge/internal/orchestrator"
	"resumeforge/internal/parsing"
	"resumeforge/internal/polish"
	"resumeforge/internal/resumes"
	"resumeforge/internal/shared/config"
	"resumeforge/internal/shared/metrics"
	"resumeforge/internal/shared/server/middleware"
	"resumeforge/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config           config.Config
	ParseHandler     *parsing.Handler
	KeywordsHandler  *keywords.Handler
	InterviewHandler *interview.Handler
	PolishHandler    *polish.Handler
	SessionHandler   *orchestrator.Handler
	ResumesHandler   *resumes.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		corsMiddleware(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.JWTSecret),
		middleware.RateLimit(llmRateLimit()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	deps.ParseHandler.RegisterRoutes(api)
	deps.KeywordsHandler.RegisterRoutes(api)
	deps.InterviewHandler.RegisterRoutes(api)
	deps.PolishHandler.RegisterRoutes(api)
	deps.SessionHandler.RegisterRoutes(api)
	deps.ResumesHandler.RegisterRoutes(api)

	return r
}

func corsMiddleware(allowOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Guest-Id", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "Content-Disposition"},
		AllowCredentials: true,
	}
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = allowOrigins
	}
	return cors.New(cfg)
}

// llmRateLimit throttles the model-backed routes per principal. CRUD and
// export routes stay unthrottled.
func llmRateLimit() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"LLM": {Rate: 1, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			path := c.FullPath()
			switch {
			case strings.HasPrefix(path, "/api/v1/resumes/parse"),
				strings.HasPrefix(path, "/api/v1/interview/"),
				strings.HasPrefix(path, "/api/v1/polish/"),
				strings.HasSuffix(path, "/generate"),
				strings.HasSuffix(path, "/revamp"),
				strings.HasSuffix(path, "/answers"),
				strings.HasSuffix(path, "/skip"),
				strings.HasSuffix(path, "/optimize"):
				return "LLM"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
