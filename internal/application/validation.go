package application

import (
	"fmt"
	"os"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "collectionID" -> "collection ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"collectionID": "collection ID",
		"itemPath":     "item path",
		"destination":  "destination directory",
		"query":        "search query",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateDirectory checks that path is either missing (it will be created)
// or an existing directory
func ValidateDirectory(fieldName, path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &ValidationError{Field: fieldName, Message: err.Error()}
	}
	if !info.IsDir() {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is not a directory: %s", formatFieldName(fieldName), path),
		}
	}
	return nil
}

// ValidateCollectionID rejects identifiers that cannot name an archive item
func ValidateCollectionID(id string) error {
	if err := ValidateRequired("collectionID", id); err != nil {
		return err
	}
	if strings.ContainsAny(id, "/?#% ") {
		return &ValidationError{
			Field:   "collectionID",
			Message: fmt.Sprintf("invalid collection ID: %q", id),
		}
	}
	return nil
}
