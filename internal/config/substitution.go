package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// envPattern matches ${env://VAR} and ${env://VAR:-default} placeholders.
var envPattern = regexp.MustCompile(`\$\{env://([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// ExpandEnv replaces ${env://VAR} and ${env://VAR:-default} placeholders in a
// config document with values from the environment. A placeholder without a
// default whose variable is unset is an error; all missing variables are
// reported together.
func ExpandEnv(content string) (string, error) {
	var missing []string

	expanded := envPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		name, def, hasDefault := groups[1], groups[3], groups[2] != ""

		if v := os.Getenv(name); v != "" {
			return v
		}
		if hasDefault {
			return def
		}
		missing = append(missing, name)
		return match
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("environment variable substitution failed: %s not set", strings.Join(missing, ", "))
	}
	return expanded, nil
}

// HasEnvPlaceholders reports whether content contains ${env://...} patterns.
func HasEnvPlaceholders(content string) bool {
	return envPattern.MatchString(content)
}
