package resource

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

const defaultPropertiesPath = "configs/application.yml"

var envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)

// init loads application properties when the default file is reachable from the
// working directory. Binaries call MustInit explicitly; tests run without a file.
func init() {
	path, ok := os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		path = defaultPropertiesPath
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := Init(path); err != nil {
		log.Printf("Fail to read properties: %v", err)
	}
}

// MustInit loads the properties file and aborts the process on failure.
func MustInit(path string) {
	if path == "" {
		path = defaultPropertiesPath
		if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
			path = value
		}
	}
	if err := Init(path); err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
}

// Init reads a YAML properties file into the global viper instance and resolves
// ${ENV:default} placeholders in string values.
func Init(path string) error {
	viper.SetConfigFile(path)
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	properties := make(map[string]any)
	parsePropertiesMap("", viper.AllSettings(), properties)

	for key, value := range properties {
		viper.Set(key, value)
	}
	return nil
}

// parsePropertiesMap flattens nested maps into dotted keys. Lists are left to
// viper and read back with UnmarshalKey.
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			if resolved, ok := resolveEnvVariable(v); ok {
				result[fullKey] = resolved
			}
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		}
	}
}

// resolveEnvVariable expands a ${NAME:default} placeholder. Plain strings are
// returned untouched and report false so the original value is kept.
func resolveEnvVariable(value string) (string, bool) {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return "", false
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envPattern.ReplaceAllString(value, envValue), true
	}
	return envPattern.ReplaceAllString(value, matches[2]), true
}

// Set overrides a property, mostly useful for tests and command line flags.
func Set(key string, value any) {
	viper.Set(key, value)
}

func IsSet(key string) bool {
	return viper.IsSet(key)
}

func Get(key string) any {
	return viper.Get(key)
}

func GetString(key string) string {
	return viper.GetString(key)
}

// GetStringOrDefault returns the property or defaultValue when it is empty.
func GetStringOrDefault(key, defaultValue string) string {
	if value := viper.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetDurationOrDefault returns the property or defaultValue when it is unset or not positive.
func GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := viper.GetDuration(key); value > 0 {
		return value
	}
	return defaultValue
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetIntOrDefault returns the property or defaultValue when it is unset or zero.
func GetIntOrDefault(key string, defaultValue int) int {
	if value := viper.GetInt(key); value != 0 {
		return value
	}
	return defaultValue
}

func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}

// UnmarshalKey decodes a structured property (for example a list of maps) into out.
func UnmarshalKey(key string, out any) error {
	if !viper.IsSet(key) {
		return errors.New("property not set: " + key)
	}
	if err := viper.UnmarshalKey(key, out); err != nil {
		return fmt.Errorf("failed to decode property %s: %w", key, err)
	}
	return nil
}
