package serverutils

import (
	"fmt"
	"strings"

	"notesum-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and converts violations into a 400 AppError.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var violations []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			violations = append(violations, fmt.Sprintf("%s is %s", strings.ToLower(fieldErr.Field()), fieldErr.Tag()))
		}
		return apperrors.WithMessage(apperrors.ErrInvalidInput, strings.Join(violations, ", "))
	}
	return nil
}
