package proxy

import (
	"fmt"
	"strings"

	"github.com/AlexTLDR/wedding/internal/models"
	"github.com/AlexTLDR/wedding/internal/utils"
)

// ValidationError is reported to the caller as a 400 with its message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// fields is a decoded JSON request body.
type fields map[string]any

// required returns the trimmed value of a string field that must be present
// and non-blank.
func (f fields) required(name, message string) (string, error) {
	s, ok := f[name].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", invalid("%s", message)
	}
	return strings.TrimSpace(s), nil
}

// optional returns the trimmed value of a string field, "" when absent or
// null.
func (f fields) optional(name string) (string, error) {
	v, present := f[name]
	if !present || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid("%s must be a string", name)
	}
	return strings.TrimSpace(s), nil
}

// email returns the trimmed address, or the "Pending" placeholder when blank.
// A real address must look like one.
func (f fields) email(name string) (string, error) {
	s, err := f.optional(name)
	if err != nil {
		return "", err
	}
	if s == "" || s == models.EmailPending {
		return models.EmailPending, nil
	}
	if !utils.IsValidEmail(s) {
		return "", invalid("Invalid email format")
	}
	return s, nil
}

// requiredEmail is email for collections where the address is mandatory.
func (f fields) requiredEmail(name string) (string, error) {
	s, err := f.required(name, "Email is required")
	if err != nil {
		return "", err
	}
	if !utils.IsValidEmail(s) {
		return "", invalid("Invalid email format")
	}
	return s, nil
}

// collect runs the extractors in order and stops at the first error.
func collect(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func into(dst *string, get func() (string, error)) func() error {
	return func() error {
		v, err := get()
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}
