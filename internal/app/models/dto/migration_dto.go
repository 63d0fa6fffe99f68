package dto

import "github.com/yigit/erp-migrator/internal/app/models"

// RunMigrationQuery holds the query parameters of GET /old-data
type RunMigrationQuery struct {
	Resume      bool `form:"resume"`
	BatchSize   int  `form:"batchSize" binding:"omitempty,min=1,max=10000"`
	Concurrency int  `form:"concurrency" binding:"omitempty,min=1,max=64"`
}

// MigrationStatusResponse is the payload of GET /old-data/status
type MigrationStatusResponse struct {
	Running bool                    `json:"running" example:"false"`
	Report  *models.MigrationReport `json:"report"`
}
