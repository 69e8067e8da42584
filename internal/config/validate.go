package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrEmptyStylesheet indicates a missing stylesheet href
	ErrEmptyStylesheet = errors.New("empty stylesheet")

	// ErrInvalidPattern indicates a source glob that does not compile
	ErrInvalidPattern = errors.New("invalid source pattern")

	// ErrInvalidDebounce indicates a non-positive watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

// Validate checks that the configuration is usable.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Stylesheet) == "" {
		errs = append(errs, fmt.Errorf("%w: stylesheet is required", ErrEmptyStylesheet))
	}

	for _, p := range append(append([]string{}, cfg.Sources.Include...), cfg.Sources.Ignore...) {
		if _, err := glob.Compile(p, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, p, err))
		}
	}

	if cfg.Watch.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("%w: debounce must be positive, got %s", ErrInvalidDebounce, cfg.Watch.Debounce))
	}

	return joinErrors(errs)
}

// joinErrors combines multiple errors into one, keeping every cause
// reachable through errors.Is.
func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}

	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return &validationError{msg: "validation failed:\n  - " + strings.Join(msgs, "\n  - "), errs: errs}
}

type validationError struct {
	msg  string
	errs []error
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }
