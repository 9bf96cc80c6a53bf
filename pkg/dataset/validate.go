package dataset

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so errors match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("assignmentlevel", func(fl validator.FieldLevel) bool {
		_, ok := ParseAssignmentLevel(fl.Field().String())
		return ok
	})
	return v
}

// check validates a request struct and converts the first failure into a
// *ValidationError.
func (s *Store) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: fe.Field(), Message: "is required"}
	case "assignmentlevel":
		return &ValidationError{Field: fe.Field(), Message: "must be one of CARRIER, ACCOUNT, GROUP"}
	default:
		return &ValidationError{Field: fe.Field(), Message: "failed " + fe.Tag() + " check"}
	}
}
