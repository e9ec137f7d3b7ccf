package app

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skycast.app/providers/cache"
)

func TestNewApplication(t *testing.T) {
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			pair := strings.SplitN(env, "=", 2)
			if len(pair) == 2 && pair[0] != "" {
				_ = os.Setenv(pair[0], pair[1])
			}
		}
	}()

	t.Run("MissingRequiredConfig", func(t *testing.T) {
		os.Clearenv()

		app, err := NewApplication()
		assert.Error(t, err)
		assert.Nil(t, app)
	})
}

func TestConfigDisplayer(t *testing.T) {
	t.Run("MaskString", func(t *testing.T) {
		displayer := NewConfigDisplayer()

		assert.Equal(t, "****", displayer.maskString("abc"))
		assert.Equal(t, "****", displayer.maskString(""))

		masked := displayer.maskString("verylongpassword")
		assert.Equal(t, "very************", masked)
		assert.Len(t, masked, len("verylongpassword"))
	})

	t.Run("IsSensitive", func(t *testing.T) {
		displayer := NewConfigDisplayer()

		assert.True(t, displayer.isSensitive("API_KEY"))
		assert.True(t, displayer.isSensitive("JWT_SECRET"))
		assert.True(t, displayer.isSensitive("email_smtp_password"))
		assert.True(t, displayer.isSensitive("STORAGE_ACCESS_KEY"))

		assert.False(t, displayer.isSensitive("PORT"))
		assert.False(t, displayer.isSensitive("HOST"))
		assert.False(t, displayer.isSensitive("DATABASE"))
	})

	t.Run("PrintAllEnvVars", func(t *testing.T) {
		require.NoError(t, os.Setenv("TEST_VAR", "test_value"))
		require.NoError(t, os.Setenv("TEST_PASSWORD", "secret_value"))
		defer func() {
			_ = os.Unsetenv("TEST_VAR")
			_ = os.Unsetenv("TEST_PASSWORD")
		}()

		assert.NotPanics(t, func() {
			NewConfigDisplayer().PrintAllEnvVars()
		})
	})
}

func TestApplicationLifecycle(t *testing.T) {
	t.Run("ShutdownWithNilDependencies", func(t *testing.T) {
		app := &Application{}

		assert.NotPanics(t, func() {
			err := app.Shutdown()
			assert.NoError(t, err)
		})
	})

	t.Run("ShutdownStopsMemoryCache", func(t *testing.T) {
		app := &Application{memCache: cache.NewMemoryCache()}

		assert.NotPanics(t, func() {
			err := app.Shutdown()
			assert.NoError(t, err)
		})
	})

	t.Run("ConfigGetter", func(t *testing.T) {
		app := &Application{}
		assert.Nil(t, app.Config())
	})
}
