package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db.internal",
		Port:     "5432",
		User:     "pizza",
		Password: "secret",
		Name:     "orders",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal user=pizza password=secret dbname=orders port=5432 sslmode=require",
		cfg.postgresDSN())
}

func TestPostgresDSNDefaultsSSLMode(t *testing.T) {
	cfg := DatabaseConfig{Host: "localhost", Port: "5432", User: "pizza", Password: "pw", Name: "orders"}
	assert.Contains(t, cfg.postgresDSN(), "sslmode=disable")
}

func TestInitDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := InitDatabase(DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
