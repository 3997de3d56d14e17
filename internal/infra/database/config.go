package database

import (
	"fmt"
	"net/url"

	"rainwatch/pkg/resource"
)

// Config holds the postgres connection properties shared by both drivers
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
	Schema   string
	SSLMode  string
}

// ConfigFromProperties reads app.db.* properties
func ConfigFromProperties() Config {
	return Config{
		Host:     resource.GetStringOrDefault("app.db.host", "localhost"),
		Port:     resource.GetIntOrDefault("app.db.port", 5432),
		Username: resource.GetString("app.db.username"),
		Password: resource.GetString("app.db.password"),
		Database: resource.GetString("app.db.database"),
		Schema:   resource.GetStringOrDefault("app.db.schema", "public"),
		SSLMode:  resource.GetStringOrDefault("app.db.ssl-mode", "disable"),
	}
}

// Enabled reports whether a database was configured
func (c Config) Enabled() bool {
	return c.Host != "" && c.Database != ""
}

// DSN renders a postgres URL understood by lib/pq and pgx
func (c Config) DSN() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	query := url.Values{}
	query.Set("sslmode", c.SSLMode)
	if c.Schema != "" {
		query.Set("search_path", c.Schema)
	}
	dsn.RawQuery = query.Encode()
	return dsn.String()
}
