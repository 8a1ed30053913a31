package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

const (
	DefaultTitle  = "API Reference"
	DefaultOutput = "docs/api.md"

	// OrderSource keeps entities in declaration order; OrderAlpha sorts
	// classes and functions alphabetically, with class members ordered
	// constructor, properties, methods.
	OrderSource = "source"
	OrderAlpha  = "a-z"
)

func DefaultInclude() []string {
	return []string{"**/*.py"}
}

// Config is the decoded doksit.toml. Everything is optional; a missing
// config file yields the zero config plus defaults, since the tool is
// expected to work in an unconfigured checkout.
type Config struct {
	Package  string            `koanf:"package"`
	Title    string            `koanf:"title"`
	Output   string            `koanf:"output"`
	Order    string            `koanf:"order"    validate:"omitempty,doc_order"`
	BaseURL  string            `koanf:"base_url" validate:"omitempty,url"`
	Template string            `koanf:"template"`
	Include  []string          `koanf:"include"`
	Exclude  []string          `koanf:"exclude"`
	Links    map[string]string `koanf:"links"    validate:"omitempty,dive,url"`

	ConfigDir string `koanf:"-"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("doc_order", func(fl validator.FieldLevel) bool {
		return isValidOrder(fl.Field().String())
	})

	return v
}

func (c *Config) ApplyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}

	if c.Output == "" {
		c.Output = DefaultOutput
	}

	if c.Order == "" {
		c.Order = OrderSource
	}

	if len(c.Include) == 0 {
		c.Include = DefaultInclude()
	}
}

// Alphabetical reports whether output should be sorted, honoring both
// spellings the original config format accepted.
func (c *Config) Alphabetical() bool {
	return c.Order == OrderAlpha || c.Order == "alphabetically"
}

func (c *Config) Validate() error {
	v := newValidator()

	valErr := v.Struct(c)
	if valErr == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(valErr, &validationErrors) {
		return oops.
			Code("CONFIG_INVALID").
			Wrapf(valErr, "validating config")
	}

	for _, fe := range validationErrors {
		return mapValidationError(c, fe)
	}

	return nil
}

func mapValidationError(c *Config, fe validator.FieldError) error {
	field := strings.ToLower(fe.Field())

	switch {
	case fe.Tag() == "doc_order":
		return oops.
			Code("CONFIG_INVALID").
			With("field", "order").
			With("value", c.Order).
			Hint(`Supported orders: "source", "a-z", "alphabetically"`).
			Errorf("unknown order %q", c.Order)

	case fe.Tag() == "url" && field == "baseurl":
		return oops.
			Code("CONFIG_INVALID").
			With("field", "base_url").
			With("value", c.BaseURL).
			Hint("Set base_url to the repository blob URL, e.g. https://github.com/owner/repo/blob/master/").
			Errorf("invalid base_url %q", c.BaseURL)

	case fe.Tag() == "url":
		return oops.
			Code("CONFIG_INVALID").
			With("field", field).
			Hint("Reference links must be absolute URLs").
			Errorf("invalid url in %q", field)

	default:
		return oops.
			Code("CONFIG_INVALID").
			With("field", field).
			With("tag", fe.Tag()).
			Errorf("validation failed for field %q", field)
	}
}

func isValidOrder(order string) bool {
	switch order {
	case OrderSource, OrderAlpha, "alphabetically":
		return true
	default:
		return false
	}
}
