package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	setDefaults()
	// Tests run against throwaway in-memory maps
	viper.Set("DATABASE_DRIVER", "memory")
	code := m.Run()
	os.Exit(code)
}

func TestAppWiring(t *testing.T) {
	app, err := newApp(nil)
	assert.NoError(t, err)

	// Health endpoint is up
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"status":"healthy"`)
	resp.Body.Close()

	// Record routes sit behind the identity middleware
	req = httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Identity minting is public
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/identity", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var identityResp map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&identityResp))
	assert.NotEmpty(t, identityResp["token"])
	assert.NotEmpty(t, identityResp["principal"])
	resp.Body.Close()
}

func TestOpenMapsRejectsUnknownDriver(t *testing.T) {
	viper.Set("DATABASE_DRIVER", "oracle")
	defer viper.Set("DATABASE_DRIVER", "memory")

	_, _, err := openMaps()
	assert.Error(t, err)
}
