// Package validation gates write payloads before they reach persistence.
//
// Column constraints (enums, ranges, foreign keys) are enforced by the database.
// Records that identify an animal by tag number or branding id carry a
// struct-level rule: exactly one of the two identifiers must be present.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mamadbah2/flockbook/internal/domain/models"
)

// AnimalRefMessage is returned verbatim when the tag_number/branding_id rule fails.
const AnimalRefMessage = "Provide either tag_number or branding_id (not both or none)"

const animalRefTag = "animal_ref"

// Error is a rejected payload. Message is safe to return to the caller.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsValidationError reports whether err is (or wraps) a validation failure.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterStructValidation(animalRefLevel,
			models.GrowthRecord{}, models.HealthEvent{}, models.MortalityRecord{})
		instance = v
	})
	return instance
}

// Struct validates a write payload. It returns nil or an *Error describing the
// first failing rule.
func Struct(payload any) error {
	err := get().Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate payload: %w", err)
	}

	first := fieldErrs[0]
	if first.Tag() == animalRefTag {
		return &Error{Field: "tag_number", Message: AnimalRefMessage}
	}
	return &Error{Field: first.Field(), Message: translate(first)}
}

// NormalizeAnimalRef turns empty identifiers into nulls so that an empty string
// is stored the same way as an absent value.
func NormalizeAnimalRef(rec models.AnimalReference) {
	tag, branding := rec.AnimalRef()
	rec.SetAnimalRef(nonEmpty(tag), nonEmpty(branding))
}

// HasExactlyOneRef is the tag_number XOR branding_id predicate.
func HasExactlyOneRef(tagNumber, brandingID *string) bool {
	return (nonEmpty(tagNumber) != nil) != (nonEmpty(brandingID) != nil)
}

func animalRefLevel(sl validator.StructLevel) {
	cur := sl.Current()
	ptr := reflect.New(cur.Type())
	ptr.Elem().Set(cur)

	ref, ok := ptr.Interface().(models.AnimalReference)
	if !ok {
		return
	}
	tag, branding := ref.AnimalRef()
	if !HasExactlyOneRef(tag, branding) {
		sl.ReportError(tag, "tag_number", "TagNumber", animalRefTag, "")
	}
}

func translate(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
