package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/erp-migrator/internal/app/controllers"
	"github.com/yigit/erp-migrator/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	migrationController *controllers.MigrationController,
	gatherer prometheus.Gatherer,
) {
	// Legacy migration
	oldData := router.Group("/old-data")
	{
		oldData.GET("", migrationController.RunMigration)
		oldData.GET("/status", migrationController.GetMigrationStatus)
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Liveness
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, dto.StatusSuccess, nil, "pong"))
	})
}
