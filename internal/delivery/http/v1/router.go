package v1

import (
	"net/http"

	"go-jobmatch-bot/internal/delivery/http/middleware"
	"go-jobmatch-bot/internal/delivery/http/response"
	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	HealthUC       usecase.HealthUsecase
	ComplaintUC    domain.ComplaintUsecase
	SettingsUC     domain.SettingsUsecase
	ReferralUC     domain.ReferralUsecase
	RateLimiter    *middleware.RateLimiter
	AdminJWTSecret string
	HTTPS          bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.SecurityHeadersMiddleware(deps.HTTPS))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		status, ok := deps.HealthUC.Check(c)
		if !ok {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	protected := v1.Group("")
	protected.Use(middleware.AdminAuth(deps.AdminJWTSecret))
	{
		NewAdminHandler(protected, deps.ComplaintUC, deps.SettingsUC, deps.ReferralUC)
	}

	return r
}
