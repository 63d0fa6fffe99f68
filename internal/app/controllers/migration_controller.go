package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/erp-migrator/internal/app/models"
	"github.com/yigit/erp-migrator/internal/app/models/dto"
	"github.com/yigit/erp-migrator/internal/app/services"
	"github.com/yigit/erp-migrator/internal/middleware"
)

// MigrationService is the part of services.MigrationService the controller needs
type MigrationService interface {
	Run(ctx context.Context, req services.RunRequest) (*models.MigrationReport, error)
	Status() (*models.MigrationReport, error)
	Running() bool
}

// MigrationController exposes the legacy migration over HTTP
type MigrationController struct {
	migrationService MigrationService
}

// NewMigrationController creates a new MigrationController
func NewMigrationController(migrationService MigrationService) *MigrationController {
	return &MigrationController{
		migrationService: migrationService,
	}
}

// RunMigration migrates the legacy student table synchronously
// @Summary Migrate legacy student data
// @Description Reads studentpersonaldetails in batches and writes the normalized student graph. Row failures are listed in payload.errors.
// @Tags migration
// @Produce json
// @Param resume query bool false "Continue from the stored checkpoint"
// @Param batchSize query int false "Rows per batch"
// @Param concurrency query int false "Rows processed in parallel within a batch"
// @Success 201 {object} dto.APIResponse{payload=models.MigrationReport} "Migration finished"
// @Failure 400 {object} dto.APIResponse{payload=dto.ErrorDetail} "Invalid query parameters"
// @Failure 409 {object} dto.APIResponse{payload=dto.ErrorDetail} "A run is already in progress"
// @Failure 500 {object} dto.APIResponse{payload=dto.ErrorDetail} "Legacy source failure"
// @Router /old-data [get]
func (c *MigrationController) RunMigration(ctx *gin.Context) {
	var query dto.RunMigrationQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	report, err := c.migrationService.Run(ctx.Request.Context(), services.RunRequest{
		Resume:      query.Resume,
		BatchSize:   query.BatchSize,
		Concurrency: query.Concurrency,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Migration completed"
	if report.Cancelled {
		message = "Migration cancelled"
	} else if report.Failed > 0 {
		message = "Migration completed with row errors"
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(http.StatusCreated, dto.StatusSuccess, report, message))
}

// GetMigrationStatus returns the report of the current or last run
// @Summary Migration status
// @Tags migration
// @Produce json
// @Success 200 {object} dto.APIResponse{payload=dto.MigrationStatusResponse} "Current or last run"
// @Failure 404 {object} dto.APIResponse{payload=dto.ErrorDetail} "No run yet"
// @Router /old-data/status [get]
func (c *MigrationController) GetMigrationStatus(ctx *gin.Context) {
	report, err := c.migrationService.Status()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(http.StatusOK, dto.StatusSuccess, dto.MigrationStatusResponse{
		Running: c.migrationService.Running(),
		Report:  report,
	}, "Migration status retrieved"))
}
