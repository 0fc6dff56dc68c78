package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, []byte("defaultsecret"), cfg.JWTKey)
	assert.Equal(t, 24*time.Hour, cfg.JWTExp)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "myflixDB", cfg.MongoDatabase)
	assert.Equal(t, 5*time.Minute, cfg.MovieCacheTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("JWT_SECRET", "supersecret")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("MONGO_DATABASE", "testDB")
	t.Setenv("MOVIE_CACHE_TTL_SECONDS", "60")

	cfg := Load()

	assert.Equal(t, "9090", cfg.APIPort)
	assert.Equal(t, []byte("supersecret"), cfg.JWTKey)
	assert.Equal(t, 2*time.Hour, cfg.JWTExp)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "testDB", cfg.MongoDatabase)
	assert.Equal(t, time.Minute, cfg.MovieCacheTTL)
}

func TestLoad_IgnoresUnparsableInt(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.JWTExp)
}
