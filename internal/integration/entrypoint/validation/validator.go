// Package validation registers custom validators with Gin's binding engine.
package validation

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bill-center/backend/internal/domain/entity"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("direction", validateDirection)
	}
}

// validateDirection accepts INCOME or EXPENSE in any letter case.
func validateDirection(fl validator.FieldLevel) bool {
	return entity.Direction(strings.ToUpper(fl.Field().String())).IsValid()
}
