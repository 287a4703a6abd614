package validators

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so clients see the keys they sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct validates a payload against its `validate` tags. Failures come
// back as a validation_error listing the offending fields.
func Struct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return httperr.ErrInternal("Payload validation failed", err)
	}

	fields := make([]string, 0, len(verrs))
	missingOnly := true
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		if fe.Tag() != "required" {
			missingOnly = false
		}
	}

	if missingOnly {
		return httperr.ErrValidation("Missing required fields: "+strings.Join(fields, ", "), fields)
	}
	return httperr.ErrValidation("Missing or invalid fields: "+strings.Join(fields, ", "), fields)
}
