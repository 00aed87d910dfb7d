package handlers

import (
	"github.com/candenizkocak/procurementsystem/cmd/docs"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/middleware"
	"github.com/candenizkocak/procurementsystem/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires every HTTP route onto the engine: public auth and
// status routes, the authenticated /api/v1 surface, and swagger outside
// of production.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	registerStatusRoutes(r)
	registerAuthRoutes(r, cfg, services)
	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	// AuthMiddleware applies to the entire v1 group.
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerRequestRoutes(v1, services.Request, services.Approval, services.Steps, services.History)
	registerUserRoutes(v1, services.User, services.Department)
	registerBudgetRoutes(v1, services.Budget, services.User)
	registerCurrencyRoutes(v1, services.Currency, services.User)
	registerExchangeRateRoutes(v1, services.ExchangeRate, services.User)
	registerNotificationRoutes(v1, services.Notification)
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
