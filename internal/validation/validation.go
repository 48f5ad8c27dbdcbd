// Package validation declares the form schemas for every authentication flow.
// Schemas are pure: they take a raw field bag and return either a normalized
// record or a field-keyed set of messages, never an error value to propagate.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Errors maps a form field to the messages explaining why it was rejected
type Errors map[string][]string

// Any reports whether at least one field failed validation
func (e Errors) Any() bool { return len(e) > 0 }

// Field returns the messages attached to a single field
func (e Errors) Field(name string) []string { return e[name] }

// First returns one human-readable message, for compact surfaces
func (e Errors) First() string {
	for _, messages := range e {
		if len(messages) > 0 {
			return messages[0]
		}
	}
	return ""
}

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their json names so errors line up with the form.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return len(passwordProblems(fl.Field().String())) == 0
	}); err != nil {
		panic(err)
	}

	return v
}

// passwordProblems returns one message per unmet strong-password condition
func passwordProblems(password string) []string {
	var problems []string
	if len(password) < 8 {
		problems = append(problems, "must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper {
		problems = append(problems, "must contain an uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "must contain a lowercase letter")
	}
	if !hasDigit {
		problems = append(problems, "must contain a digit")
	}
	if !hasSpecial {
		problems = append(problems, "must contain a special character")
	}
	return problems
}

// check runs the schema rules for input and translates failures into Errors
func check(input any) Errors {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-struct input; schemas are always structs, so this is a
		// programming error surfaced as a generic failure, not a panic.
		return Errors{"_": {"invalid input"}}
	}

	errs := make(Errors, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "strongpassword":
			for _, problem := range passwordProblems(fe.Value().(string)) {
				errs.add(fe.Field(), problem)
			}
		default:
			errs.add(fe.Field(), message(fe))
		}
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "eq":
		if fe.Kind() == reflect.Bool {
			return "you must accept the terms and conditions"
		}
		return fmt.Sprintf("must equal %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
