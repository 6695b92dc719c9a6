// Package sqlutil provides identifier and placeholder helpers for the SQL
// generated by the exporter.
package sqlutil

import (
	"regexp"
	"strings"
)

// MaxIdentifierLength is the MySQL limit for table and column names.
const MaxIdentifierLength = 64

// QuoteIdentifier quotes a MySQL identifier with backticks, doubling any
// backtick inside it.
// Example: "my`table" -> "`my``table`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// validIdentifierRegex restricts identifiers to alphanumerics and underscore.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks that name only contains alphanumeric characters
// and underscores and fits the MySQL length limit.
func IsValidIdentifier(name string) bool {
	return len(name) <= MaxIdentifierLength && validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe quotes a MySQL identifier after validating it.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// InvalidIdentifierError is returned when an identifier cannot be used in
// generated SQL.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name +
		" (must be 1-64 alphanumeric characters or underscores)"
}

var columnReplacer = regexp.MustCompile("[^a-zA-Z0-9_]+")

// ColumnName turns a dotted field path into a column name:
// "customer.address.city" becomes "customer_address_city". The result may
// still be invalid, e.g. when the path is longer than the identifier limit.
func ColumnName(path string) string {
	return columnReplacer.ReplaceAllString(path, "_")
}

// Placeholders returns "(?, ?, ?)" with n markers.
func Placeholders(n int) string {
	if n <= 0 {
		return "()"
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", n), ", ") + ")"
}
