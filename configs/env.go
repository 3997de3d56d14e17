package configs

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type EnvConfig struct {
	ApplicationName string
	ContextPath     string
}

// Secrets are credentials that never live in application.yml
type Secrets struct {
	AsanaToken     string `envconfig:"ASANA_TOKEN" required:"true"`
	OpenWeatherKey string `envconfig:"OPENWEATHER_KEY" required:"true"`
	ProjectID      string `envconfig:"PROJECT_ID" required:"true"`
	SectionID      string `envconfig:"SECTION_ID"`
}

var Env *EnvConfig

func init() {
	// A missing .env is normal outside local development
	_ = LoadDotEnv()

	viper.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: getStringOrDefault("APPLICATION_NAME", "rainwatch"),
		ContextPath:     getStringOrDefault("CONTEXT_PATH", "/rainwatch"),
	}
}

// LoadDotEnv loads the given files, .env by default. Variables already set in
// the environment win.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadSecrets reads the credentials from the environment
func LoadSecrets() (*Secrets, error) {
	var secrets Secrets
	if err := envconfig.Process("", &secrets); err != nil {
		return nil, err
	}
	return &secrets, nil
}

func getStringOrDefault(key, defaultValue string) string {
	value := viper.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
