package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator checks request structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

// participantPattern accepts EVM addresses and the plain handles the memory
// ledger is seeded with
var participantPattern = regexp.MustCompile(`^(0x[0-9a-fA-F]{40}|[A-Za-z0-9_.\-]{1,64})$`)

// GetValidator returns the shared request validator
var GetValidator = sync.OnceValue(newValidator)

func newValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON name so clients see what they sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("participant", func(fl validator.FieldLevel) bool {
		return participantPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// ValidateStruct validates s using its tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

var validationMessages = map[string]string{
	"required":    "This field is required",
	"participant": "Must be a wallet address or a handle without spaces",
}

// FormatValidationError maps validation failures to per-field messages
// without exposing Go struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch msg, ok := validationMessages[fe.Tag()]; {
		case ok:
			out[field] = msg
		case fe.Tag() == "max":
			out[field] = fmt.Sprintf("Must be at most %s characters", fe.Param())
		default:
			out[field] = "Invalid value"
		}
	}
	return out
}
