// Package validation declares the request schemas for every operation
// and turns binding failures into per-field error messages callers can
// render individually.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	apierrors "github.com/emrecancorapci/chingu-backend/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("password", validPassword)
}

// validPassword requires at least one lowercase letter, one uppercase
// letter, and one digit.
func validPassword(fl validator.FieldLevel) bool {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// BindJSON binds the request body into obj. On failure it returns a
// validation error carrying one "<field> is <reason>" message per
// offending field, or a bad-request error for bodies that are not
// parseable at all.
func BindJSON(c *gin.Context, obj interface{}) *apierrors.APIError {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apierrors.Validation(FieldMessages(verrs))
		}
		return apierrors.BadRequest("Invalid request body")
	}
	return nil
}

// FieldMessages renders validator failures as "<field> is <reason>".
func FieldMessages(verrs validator.ValidationErrors) []string {
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, fmt.Sprintf("%s is %s", fe.Field(), reason(fe)))
	}
	return messages
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "not a valid email address"
	case "min":
		return fmt.Sprintf("shorter than %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("longer than %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("not one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "password":
		return "missing a lowercase letter, an uppercase letter, or a digit"
	case "uuid":
		return "not a valid id"
	default:
		return "invalid"
	}
}

// ParseID checks that a path parameter is a syntactically valid UUID
// before it reaches any query.
func ParseID(raw string) (string, *apierrors.APIError) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apierrors.BadRequest("Invalid id")
	}
	return id.String(), nil
}
