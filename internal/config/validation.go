package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
// The destination database is only checked by ValidateExport, since reading
// and printing documents does not need it.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSchema()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateExport runs Validate plus the checks needed to write rows to MySQL.
func (c *Config) ValidateExport() error {
	var errors ValidationErrors
	if err := c.Validate(); err != nil {
		if verrs, ok := err.(ValidationErrors); ok {
			errors = append(errors, verrs...)
		}
	}

	errors = append(errors, c.validateDatabase("destination", &c.Destination)...)
	errors = append(errors, c.validateExport()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSchema() ValidationErrors {
	var errors ValidationErrors

	if len(c.Schema.Types) == 0 {
		errors = append(errors, ValidationError{
			Field:   "schema.types",
			Message: "at least one record type must be defined",
		})
	}

	seen := make(map[string]bool)
	for i, t := range c.Schema.Types {
		prefix := fmt.Sprintf("schema.types[%d]", i)
		if t.Name == "" {
			errors = append(errors, ValidationError{
				Field:   prefix + ".name",
				Message: "name is required",
			})
		} else if seen[t.Name] {
			errors = append(errors, ValidationError{
				Field:   prefix + ".name",
				Message: fmt.Sprintf("type %q is declared more than once", t.Name),
			})
		}
		seen[t.Name] = true

		fieldSeen := make(map[string]bool)
		for j, f := range t.Fields {
			fieldPrefix := fmt.Sprintf("%s.fields[%d]", prefix, j)
			if f.Name == "" {
				errors = append(errors, ValidationError{
					Field:   fieldPrefix + ".name",
					Message: "name is required",
				})
			} else if fieldSeen[f.Name] {
				errors = append(errors, ValidationError{
					Field:   fieldPrefix + ".name",
					Message: fmt.Sprintf("field %q is declared more than once", f.Name),
				})
			}
			fieldSeen[f.Name] = true

			if f.Type == "" {
				errors = append(errors, ValidationError{
					Field:   fieldPrefix + ".type",
					Message: "type is required",
				})
			}
		}
	}

	for i, s := range c.Schema.Scalars {
		if seen[s] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("schema.scalars[%d]", i),
				Message: fmt.Sprintf("%q is declared both as a scalar and as a record type", s),
			})
		}
	}

	return errors
}

func (c *Config) validateDatabase(prefix string, db *DatabaseConfig) ValidationErrors {
	var errors ValidationErrors

	if db.Host == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".host",
			Message: "host is required",
		})
	}

	if db.Port <= 0 || db.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".port",
			Message: "port must be between 1 and 65535",
		})
	}

	if db.User == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".user",
			Message: "user is required",
		})
	}

	if db.Database == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".database",
			Message: "database name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[db.TLS] {
		errors = append(errors, ValidationError{
			Field:   prefix + ".tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	if db.MaxConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_connections",
			Message: "max_connections cannot be negative",
		})
	}

	if db.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".max_idle_connections",
			Message: "max_idle_connections cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateExport() ValidationErrors {
	var errors ValidationErrors

	if c.Export.Table == "" {
		errors = append(errors, ValidationError{
			Field:   "export.table",
			Message: "table is required",
		})
	}

	if c.Export.BatchSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "export.batch_size",
			Message: "batch_size must be positive",
		})
	}

	return errors
}

func (c *Config) validateOutput() ValidationErrors {
	var errors ValidationErrors

	validFormats := map[string]bool{"table": true, "json": true, "csv": true, "": true}
	if !validFormats[c.Output.Format] {
		errors = append(errors, ValidationError{
			Field:   "output.format",
			Message: "format must be 'table', 'json', or 'csv'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
