// Package validate checks drafts and patches before anything is written,
// using the validator/v10 library.
package validate

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/backendren/Web-Directory/internal/errs"
	"github.com/backendren/Web-Directory/internal/model"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	return &Validator{v: v}
}

// Draft validates a create input.
func (v *Validator) Draft(d model.Draft) error {
	if err := v.check(d); err != nil {
		return err
	}
	return checkAbsoluteURL(d.URL)
}

// Patch validates an update input, including the optional createdAt
// override, which must be in the canonical layout when supplied.
func (v *Validator) Patch(p model.Patch) error {
	if err := v.check(p); err != nil {
		return err
	}
	if err := checkAbsoluteURL(p.URL); err != nil {
		return err
	}
	if p.CreatedAt != "" {
		if _, err := model.ParseTime(p.CreatedAt); err != nil {
			return errs.ValidationFields("validation failed", map[string]string{
				"createdAt": fmt.Sprintf("must match %s", model.TimeLayout),
			})
		}
	}
	return nil
}

// checkAbsoluteURL enforces scheme + authority. The url struct tag alone
// lets through scheme-only values like "mailto:x".
func checkAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errs.ValidationFields("validation failed", map[string]string{
			"url": "must be an absolute URL with scheme and host",
		})
	}
	return nil
}

func (v *Validator) check(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errs.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return errs.ValidationFields("validation failed", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	default:
		return "is invalid"
	}
}
