package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/erp-migrator/internal/pkg/apperrors"
	"github.com/yigit/erp-migrator/internal/pkg/validation"
)

// BindQuery binds the query string into obj. On failure it writes a 400
// envelope and returns false; the caller must return without responding.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		HandleAPIError(c, queryError(err))
		return false
	}
	return true
}

func queryError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewBadRequestError("Invalid query parameters: " + err.Error())
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = validation.FormatFieldError(e)
	}
	return apperrors.NewValidationError("Invalid query parameters", fields)
}
