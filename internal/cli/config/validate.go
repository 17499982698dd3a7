package config

import "errors"

// Validate checks that every setting can be interpreted. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Dialect(); err != nil {
		errs = append(errs, err)
	}
	if _, _, err := c.SortDefaults(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.OutputMode(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
