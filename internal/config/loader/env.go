package loader

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvLoader loads configuration overrides from environment variables.
type EnvLoader struct {
	prefix  string            // e.g., "REVEALKIT_"
	mapping map[string]string // env var -> config path
}

// NewEnvLoader creates a new environment variable loader. The prefix
// should include the trailing underscore (e.g., "REVEALKIT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
	}
}

// NewEnvLoaderWithMapping creates a loader with custom mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
	}
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"REVEALKIT_LOG_LEVEL":       "logging.level",
		"REVEALKIT_MODE":            "reveal.mode",
		"REVEALKIT_SETTLE_DURATION": "reveal.settle_duration",
		"REVEALKIT_LEFT_ENABLED":    "edges.left.enabled",
		"REVEALKIT_RIGHT_ENABLED":   "edges.right.enabled",
	}
}

// Load reads environment variables into a configuration map. Empty
// string values are valid values, not unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	// Explicitly mapped variables first.
	for env, path := range l.mapping {
		if val, ok := os.LookupEnv(env); ok {
			setByPath(config, path, parseValue(val))
		}
	}

	// Then any other prefixed variables: REVEALKIT_REVEAL_FLING_VELOCITY
	// becomes reveal.fling_velocity.
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, l.prefix) {
			continue
		}

		name, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if _, mapped := l.mapping[name]; mapped {
			continue
		}

		setByPath(config, l.envToPath(name), parseValue(value))
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts REVEALKIT_REVEAL_FLING_VELOCITY to
// reveal.fling_velocity: the first underscore-delimited word after the
// prefix is the section, the rest is the snake_case setting name.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, rest, ok := strings.Cut(name, "_")
	if !ok {
		return section
	}
	return section + "." + rest
}

// parseValue parses a string value into its most specific type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d.String()
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
