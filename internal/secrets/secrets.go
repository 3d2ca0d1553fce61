// Package secrets resolves secret values from files or inline configuration.
// File always wins over an inline value so keys can be kept out of configs.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Resolve returns the secret named name, reading file when set, falling back
// to the inline value otherwise. The result is trimmed; empty is an error.
func Resolve(name, file, inline string) (string, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = "secret"
	}

	if file = strings.TrimSpace(file); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		inline = string(data)
	}

	value := strings.TrimSpace(inline)
	if value == "" {
		if file != "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return value, nil
}
