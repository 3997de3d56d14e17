package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: 5432, Username: "rain", Password: "p@ss word", Database: "rainwatch", Schema: "alerts", SSLMode: "disable"}

	assert.Equal(t, "postgres://rain:p%40ss%20word@db:5432/rainwatch?search_path=alerts&sslmode=disable", cfg.DSN())
	assert.True(t, cfg.Enabled())
	assert.False(t, Config{Host: "db"}.Enabled())
}
