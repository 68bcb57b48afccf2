// Package validation checks request payloads before they reach the database.
//
// Payload structs declare their rules with go-playground/validator tags and may
// implement Messenger to replace the generic messages with their own wording:
//
//	type signUpRequest struct {
//	    Name string `json:"name" validate:"required,max=32"`
//	}
//
//	func (signUpRequest) ValidationMessages() map[string]string {
//	    return map[string]string{"name.required": "Name is required"}
//	}
//
// Issues are reported in struct field order so callers can surface the first one.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// SlugPattern is the shape of URL-safe identifiers: lowercase words joined by single hyphens.
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Messenger lets a payload override issue messages, keyed by "<jsonField>.<tag>".
type Messenger interface {
	ValidationMessages() map[string]string
}

// Issue is a single field-level failure.
type Issue struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Error is returned when a payload fails validation. It is never empty.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	messages := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		messages[i] = issue.Message
	}
	return strings.Join(messages, "; ")
}

// First returns the issue a client should see.
func (e *Error) First() Issue {
	return e.Issues[0]
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json names so messages line up with the request body
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return SlugPattern.MatchString(fl.Field().String())
		})
	})

	return validate
}

// Struct validates s and returns *Error when any rule fails.
func Struct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &Error{Issues: []Issue{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	var overrides map[string]string
	if m, ok := s.(Messenger); ok {
		overrides = m.ValidationMessages()
	}

	issues := make([]Issue, len(validationErrs))
	for i, fe := range validationErrs {
		issue := Issue{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()}
		if msg, ok := overrides[fe.Field()+"."+fe.Tag()]; ok {
			issue.Message = msg
		} else {
			issue.Message = translateError(fe)
		}
		issues[i] = issue
	}
	return &Error{Issues: issues}
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"url":      "%s must be a valid URL",
	"slug":     "%s can only contain lowercase letters, numbers, and hyphens",
	"uuid":     "%s must be a valid id",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
