package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	t.Setenv("RYP_CONFIG_FILE", "testdata/config.yaml")
	t.Setenv("RYP_JWT_PRIVATE_KEY", "private2.key")

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("postgres://localhost:5432/ruleyourpoker?sslmode=disable", cfg.PGDSN)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal(60, cfg.Recovery.SweepInterval)
	a.Equal(120, cfg.Recovery.MaxAge)

	// ensure that it's only loaded once
	_ = os.Setenv("RYP_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestLoad_missingFile(t *testing.T) {
	t.Setenv("RYP_CONFIG_FILE", "testdata/nope.yaml")
	assert.Error(t, Load())
}
