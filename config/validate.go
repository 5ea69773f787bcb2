package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/crossgrid/grid"
)

// ErrConfiguration is matched by every configuration failure.
var ErrConfiguration = errors.New("config: invalid configuration")

// Error reports one option outside its allowed range.
type Error struct {
	Field string // YAML key
	Value any
	Rule  string // validator tag, e.g. "gte=1"
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s=%v violates %s", e.Field, e.Value, e.Rule)
}

// Unwrap returns ErrConfiguration.
func (e *Error) Unwrap() error { return ErrConfiguration }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		x := fl.Field().Float()
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		c := sl.Current().Interface().(Config)
		if c.PlaceWeight <= 0 {
			sl.ReportError(c.PlaceWeight, "place_weight", "PlaceWeight", "gt=0", "")
		}
		if c.Adjacency != grid.AdjacencyStrict && c.Adjacency != grid.AdjacencySharedCrossing {
			sl.ReportError(c.Adjacency, "adjacency", "Adjacency", "oneof=strict shared-crossing", "")
		}
	}, Config{})
	return v
}

// Validate checks every option. All violations are returned joined, in
// field order; each is an *Error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	errs := make([]error, 0, len(ves))
	for _, fe := range ves {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		errs = append(errs, &Error{Field: fe.Field(), Value: fe.Value(), Rule: rule})
	}
	return errors.Join(errs...)
}
