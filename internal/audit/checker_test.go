package audit

import (
	"errors"
	"testing"

	"github.com/aleister1102/lhbatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolChecker_Found(t *testing.T) {
	var asked string
	checker := NewToolChecker("lighthouse", "npm i --location=global lighthouse", func(file string) (string, error) {
		asked = file
		return "/usr/local/bin/lighthouse", nil
	}, zerolog.Nop())

	path, err := checker.Check()

	require.NoError(t, err)
	assert.Equal(t, "lighthouse", asked)
	assert.Equal(t, "/usr/local/bin/lighthouse", path)
}

func TestToolChecker_Missing(t *testing.T) {
	checker := NewToolChecker("lighthouse", "npm i --location=global lighthouse", func(string) (string, error) {
		return "", errors.New("executable file not found in $PATH")
	}, zerolog.Nop())

	path, err := checker.Check()

	assert.Empty(t, path)
	assert.ErrorIs(t, err, models.ErrToolNotInstalled)
	assert.Contains(t, err.Error(), "npm i --location=global lighthouse")
}

func TestBrowserEnv(t *testing.T) {
	found := func() (string, bool) { return "/opt/chromium/chrome", true }
	missing := func() (string, bool) { return "", false }

	assert.Equal(t, []string{"CHROME_PATH=/usr/bin/google-chrome"},
		BrowserEnv("/usr/bin/google-chrome", true, found, zerolog.Nop()))
	assert.Equal(t, []string{"CHROME_PATH=/opt/chromium/chrome"},
		BrowserEnv("", true, found, zerolog.Nop()))
	assert.Nil(t, BrowserEnv("", true, missing, zerolog.Nop()))
	assert.Nil(t, BrowserEnv("", false, found, zerolog.Nop()))
}
