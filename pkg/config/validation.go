package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct tags first and then the rules tags cannot express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return validateCustomRules(cfg)
}

func validateCustomRules(cfg *Config) error {
	if cfg.Sizes.QueueSize < cfg.Sizes.Workers {
		return fmt.Errorf("sizes: queue_size (%d) must not be smaller than workers (%d)",
			cfg.Sizes.QueueSize, cfg.Sizes.Workers)
	}
	seen := make(map[string]int, len(cfg.Browser.Roots))
	for i, root := range cfg.Browser.Roots {
		if j, ok := seen[root]; ok {
			return fmt.Errorf("browser.roots[%d]: duplicate of roots[%d] %q", i, j, root)
		}
		seen[root] = i
	}
	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
