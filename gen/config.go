package gen

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds the configuration for stub generation.
type Config struct {
	// DefaultModule is the root Python module name. Descriptors that do
	// not name a module are placed here.
	DefaultModule string `validate:"required"`

	// PythonRoot is the directory stub files are written under.
	// e.g. "./python" for a project with a python source layout.
	PythonRoot string `validate:"required"`

	// ModuleFilter, when non-empty, keeps only descriptors whose
	// effective module name starts with it. The match is a literal string
	// prefix on the full dotted name, not segment-aware: filter "a.b"
	// matches module "a.bc".
	ModuleFilter string

	// OriginFilters, when non-empty, keeps only descriptors whose origin
	// path starts with at least one entry.
	OriginFilters []string

	// Logger receives one info record per written stub file.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// validateConfig checks required fields and converts validator errors to a
// readable message.
func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) && len(valErrs) > 0 {
		return fmt.Errorf("invalid config: field %s is %s", valErrs[0].Field(), valErrs[0].Tag())
	}
	return fmt.Errorf("invalid config: %w", err)
}

// logger returns the configured logger or the process default.
func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
