package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/erp-migrator/internal/app/models/dto"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
	"github.com/yigit/erp-migrator/internal/pkg/logger"
)

// HandleAPIError maps err to a status code and writes exactly one error
// envelope. Callers must return right after calling it.
func HandleAPIError(c *gin.Context, err error) {
	var details interface{}
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		details = custom.Details
	}

	switch {
	case errors.Is(err, apperrors.ErrMigrationRunning):
		respondError(c, http.StatusConflict, dto.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeMigrationRunning, "A migration run is already in progress"))
	case errors.Is(err, apperrors.ErrNoMigrationRun):
		respondError(c, http.StatusNotFound, dto.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeNoMigrationRun, "No migration run has been started"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()).WithDetails(details))
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, err.Error()).WithDetails(details))
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respondError(c, http.StatusConflict, dto.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()))
	case errors.Is(err, apperrors.ErrSourceUnavailable):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Legacy source failure")
		respondError(c, http.StatusInternalServerError, dto.StatusError,
			dto.NewErrorDetail(dto.ErrorCodeSourceUnavailable, "Legacy database is unavailable"))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.StatusError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"))
	}
}

func respondError(c *gin.Context, code int, status dto.ResponseStatus, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(code, dto.NewAPIResponse(code, status, detail, detail.Message))
}
