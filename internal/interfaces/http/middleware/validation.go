package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/motodesk/backend/internal/domain/shared/valueobject"
	"github.com/motodesk/backend/internal/interfaces/http/dto"
)

// SetupValidator registers custom binding tags and makes validation
// errors report JSON field names instead of Go struct fields.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Use JSON tag names for field names in errors
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})

		// paymentchannel validates money movement channel fields
		_ = v.RegisterValidation("paymentchannel", func(fl validator.FieldLevel) bool {
			return valueobject.PaymentChannel(fl.Field().String()).IsValid()
		})
	}
}

// FormatValidationErrors flattens binding errors into one error response.
func FormatValidationErrors(err error) dto.Response {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			parts = append(parts, e.Field()+": "+getValidationMessage(e))
		}
		return dto.NewErrorResponse(dto.CodeInvalidInput, strings.Join(parts, "; "))
	}
	return dto.NewErrorResponse(dto.CodeBadRequest, "Invalid request body")
}

// HandleValidationError writes a validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "lt":
		return "Must be less than " + e.Param()
	case "paymentchannel":
		return "Must be a valid payment channel (CASH or ONLINE)"
	case "numeric":
		return "Must be numeric"
	default:
		return "Invalid value"
	}
}
