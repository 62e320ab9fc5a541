package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// ValidationMessage is the top-level message of every 422 response
const ValidationMessage = "The given data was invalid."

// SetupValidator makes validation errors report JSON (or form) field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
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
	}
}

// ValidationDetails converts validator errors into per-field details; other
// errors yield nil
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: getValidationMessage(e),
		})
	}
	return details
}

// FormatValidationErrors formats validation errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	return dto.NewValidationErrorResponse(ValidationMessage, requestID, ValidationDetails(err))
}

// HandleValidationError answers a failed bind. Validation failures answer 422
// with details; malformed bodies answer 400.
func HandleValidationError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	if details := ValidationDetails(err); details != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(ValidationMessage, requestID, details))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeBadRequest, "Malformed request body", requestID))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	field := strings.ReplaceAll(e.Field(), "_", " ")
	isString := e.Kind() == reflect.String

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min", "gte":
		if isString {
			return fmt.Sprintf("The %s must be at least %s characters.", field, e.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", field, e.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, e.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", field, e.Param())
	case "uuid":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "oneof":
		return fmt.Sprintf("The %s must be one of: %s.", field, e.Param())
	case "datetime":
		return fmt.Sprintf("The %s does not match the format %s.", field, e.Param())
	case "numeric", "number":
		return fmt.Sprintf("The %s must be a number.", field)
	case "url":
		return fmt.Sprintf("The %s format is invalid.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}
