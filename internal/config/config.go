// Package config provides configuration structures and loading for FieldWalk.
package config

// Config represents the complete application configuration.
type Config struct {
	Schema      SchemaConfig   `yaml:"schema" mapstructure:"schema"`
	Destination DatabaseConfig `yaml:"destination" mapstructure:"destination"`
	Export      ExportConfig   `yaml:"export" mapstructure:"export"`
	Output      OutputConfig   `yaml:"output" mapstructure:"output"`
	Logging     LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// SchemaConfig declares the record types the walker can expand.
// Types and their fields are lists so that declaration order survives loading.
type SchemaConfig struct {
	ScalarPrefixes []string     `yaml:"scalar_prefixes" mapstructure:"scalar_prefixes"` // extra leaf namespaces, e.g. "github.com/shopspring/decimal."
	Scalars        []string     `yaml:"scalars" mapstructure:"scalars"`                 // user-defined leaf types (enums, named strings)
	Types          []TypeConfig `yaml:"types" mapstructure:"types"`
}

// TypeConfig declares one record type.
type TypeConfig struct {
	Name   string        `yaml:"name" mapstructure:"name"`
	Fields []FieldConfig `yaml:"fields" mapstructure:"fields"`
}

// FieldConfig declares one field of a record type.
type FieldConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
	Type string `yaml:"type" mapstructure:"type"` // "int64", "time.Time", "Customer", "[]Line"
}

// DatabaseConfig represents a MySQL database connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// ExportConfig represents settings for writing flattened rows to MySQL.
type ExportConfig struct {
	Table       string `yaml:"table" mapstructure:"table"`
	BatchSize   int    `yaml:"batch_size" mapstructure:"batch_size"` // rows per INSERT statement
	CreateTable bool   `yaml:"create_table" mapstructure:"create_table"`
}

// OutputConfig represents terminal output settings.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // table, json or csv
	Color  bool   `yaml:"color" mapstructure:"color"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Destination: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Export: ExportConfig{
			BatchSize:   500,
			CreateTable: false,
		},
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// ListTypes returns all declared record type names in declaration order.
func (c *Config) ListTypes() []string {
	names := make([]string, 0, len(c.Schema.Types))
	for _, t := range c.Schema.Types {
		names = append(names, t.Name)
	}
	return names
}
