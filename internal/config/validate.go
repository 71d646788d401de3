package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mobil-koeln/placepicker/internal/api"
	"github.com/mobil-koeln/placepicker/internal/autocomplete"
	"github.com/mobil-koeln/placepicker/internal/geo"
)

var validate = newValidator()

// newValidator reports fields by their config key rather than the Go name
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"koanf", "json"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Validate checks the decoded values. Struct tags cover ranges and
// enumerations; names with aliases go through their parsers.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}

	if _, err := api.ParseNearbyAPI(c.NearbyAPI); err != nil {
		return err
	}
	if _, err := autocomplete.ParseListView(c.ListView); err != nil {
		return err
	}
	if c.Position != "" {
		if _, err := geo.ParsePoint(c.Position); err != nil {
			return api.NewValidationError("position", err.Error())
		}
	}
	return nil
}

// fieldError converts a validator failure into the API's validation error,
// keyed by the config path (e.g. predefined_places[1].description).
func fieldError(fe validator.FieldError) error {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return api.ErrMissingField(field)
	case "oneof":
		return api.NewValidationError(field, fmt.Sprintf("invalid value %v, expected one of: %s", fe.Value(), fe.Param()))
	default:
		return api.NewValidationError(field, fmt.Sprintf("invalid value %v, must be %s %s", fe.Value(), fe.Tag(), fe.Param()))
	}
}
