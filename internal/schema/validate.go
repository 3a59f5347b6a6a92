package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Clock returns the current time. Injected so the future-year rule can be tested.
type Clock func() time.Time

// Validator checks book payloads against the field constraints.
type Validator struct {
	validate *validator.Validate
	now      Clock
}

// NewValidator creates a validator. A nil clock falls back to time.Now.
func NewValidator(now Clock) *Validator {
	if now == nil {
		now = time.Now
	}

	v := &Validator{
		validate: validator.New(),
		now:      now,
	}

	// Report json names instead of Go field names.
	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or a nil func.
	_ = v.validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(v.CurrentYear())
	})

	return v
}

// CurrentYear returns the calendar year according to the validator's clock.
func (v *Validator) CurrentYear() int {
	return v.now().Year()
}

// ValidateCreate checks a create payload.
func (v *Validator) ValidateCreate(req BookCreate) error {
	if err := v.validate.Struct(req); err != nil {
		return v.translate(err)
	}
	return nil
}

// ValidateUpdate checks every field present in an update payload. Title and
// author cannot be cleared; year can.
func (v *Validator) ValidateUpdate(req BookUpdate) error {
	ve := &ValidationError{}

	if req.Title.Set {
		if req.Title.Null {
			ve.add(LocationBody, "title", "may not be null")
		} else if err := v.validate.Var(req.Title.Value, "min=1,max=200"); err != nil {
			v.appendFieldErrors(ve, "title", err)
		}
	}

	if req.Author.Set {
		if req.Author.Null {
			ve.add(LocationBody, "author", "may not be null")
		} else if err := v.validate.Var(req.Author.Value, "min=1,max=100"); err != nil {
			v.appendFieldErrors(ve, "author", err)
		}
	}

	if req.Year.HasValue() {
		if err := v.validate.Var(req.Year.Value, "gte=1000,notfuture"); err != nil {
			v.appendFieldErrors(ve, "year", err)
		}
	}

	return ve.errOrNil()
}

func (v *Validator) translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate request: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range fieldErrs {
		ve.add(LocationBody, fe.Field(), v.message(fe))
	}
	return ve
}

func (v *Validator) appendFieldErrors(ve *ValidationError, field string, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve.add(LocationBody, field, err.Error())
		return
	}
	for _, fe := range fieldErrs {
		ve.add(LocationBody, field, v.message(fe))
	}
}

func (v *Validator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return fmt.Sprintf("must be at least %s character(s) long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "notfuture":
		return fmt.Sprintf("Year cannot be in the future. Current year: %d", v.CurrentYear())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
