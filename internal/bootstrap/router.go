package bootstrap

import (
	"net/http"
	"time"

	httpapi "github.com/accessguide/accessguide-backend/internal/api/http"
	"github.com/accessguide/accessguide-backend/internal/api/http/middleware"
	contacthttp "github.com/accessguide/accessguide-backend/internal/contact/http"
	contactservice "github.com/accessguide/accessguide-backend/internal/contact/service"
	contrasthttp "github.com/accessguide/accessguide-backend/internal/contrast/http"
	documenthttp "github.com/accessguide/accessguide-backend/internal/document/http"
	"github.com/accessguide/accessguide-backend/internal/logging"
	quizhttp "github.com/accessguide/accessguide-backend/internal/quiz/http"
	quizservice "github.com/accessguide/accessguide-backend/internal/quiz/service"
	sitemaphttp "github.com/accessguide/accessguide-backend/internal/sitemap/http"
	sitemapservice "github.com/accessguide/accessguide-backend/internal/sitemap/service"
	sdhttp "github.com/accessguide/accessguide-backend/internal/structureddata/http"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	CORSOrigins  []string
	HealthChecks map[string]httpapi.Pinger

	// TrustedProxies lists the proxies whose X-Forwarded-For is honored.
	// Nil trusts none, so the client IP is the connection's remote address.
	TrustedProxies []string

	Sitemaps *sitemapservice.SitemapService
	// Quiz and Contact are optional; their routes are skipped when nil.
	Quiz           *quizservice.QuizService
	Contact        *contactservice.ContactService
	ContactLimiter *middleware.ClientRateLimiter
	AdminAuth      gin.HandlerFunc
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(dep.TrustedProxies); err != nil {
		logging.L().Warn("invalid trusted proxies, trusting none",
			zap.Strings("trusted_proxies", dep.TrustedProxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.HealthChecks)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	contrasthttp.New().Register(api)
	sdhttp.New().Register(api)
	documenthttp.New().Register(api)

	admin := dep.AdminAuth
	if admin == nil {
		admin = func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin access is not configured"})
		}
	}

	if dep.Sitemaps == nil {
		dep.Sitemaps = sitemapservice.NewSitemapService(nil, nil)
	}
	sitemaphttp.New(dep.Sitemaps).Register(api, admin)

	if dep.Quiz != nil {
		quizhttp.New(dep.Quiz).Register(api)
	}

	if dep.Contact != nil {
		limiter := dep.ContactLimiter
		if limiter == nil {
			limiter = middleware.NewClientRateLimiter(5, 3, 10*time.Minute)
		}
		contacthttp.New(dep.Contact).Register(api, middleware.RateLimitMiddleware(limiter), admin)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// SetGinMode picks the gin mode for the APP_ENV value.
func SetGinMode(env string) {
	switch env {
	case "production", "staging":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
