package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	aadharPattern = regexp.MustCompile(`^\d{12}$`)
	panPattern    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the aadhar and pan tags registered.
// Field names in errors follow the json tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("aadhar", func(fl validator.FieldLevel) bool {
			return aadharPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
			return panPattern.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidationError lists the fields that failed struct validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Message is the client facing text.
func (e *ValidationError) Message() string {
	return "Invalid value for: " + strings.Join(e.Fields, ", ")
}

// ValidateStruct runs the shared validator. Failures come back as *ValidationError.
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}
