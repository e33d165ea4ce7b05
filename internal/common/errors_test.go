package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		expected string
	}{
		{"nil error", nil, "context", ""},
		{"wrapped", errors.New("permission denied"), "failed to open urls.txt", "failed to open urls.txt: permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.message)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			require.Error(t, got)
			assert.Equal(t, tt.expected, got.Error())
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestWrapErrorf(t *testing.T) {
	err := WrapErrorf(ErrNotFound, "file not found: %s", "urls.txt")

	assert.Equal(t, "file not found: urls.txt: not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, WrapErrorf(nil, "unused %d", 1))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("summary_config.mode", "fast", "must be batch or stream")

	assert.Equal(t, "validation failed for field 'summary_config.mode': must be batch or stream (value: fast)", err.Error())

	var vErr *ValidationError
	assert.True(t, errors.As(WrapError(err, "config"), &vErr))
	assert.Equal(t, "summary_config.mode", vErr.Field)
}

func TestCombineErrors(t *testing.T) {
	first := errors.New("first")

	assert.NoError(t, CombineErrors(nil))
	assert.Equal(t, first, CombineErrors([]error{first}))
	assert.Equal(t, "multiple errors occurred: [first; second]", CombineErrors([]error{first, errors.New("second")}).Error())
}

func TestErrorCollector(t *testing.T) {
	ec := NewErrorCollector()
	ec.Add(nil)
	assert.False(t, ec.HasErrors())
	assert.NoError(t, ec.Error())

	ec.Add(errors.New("bad timeout"))
	ec.AddWithContext(errors.New("bad mode"), "summary_config")

	assert.True(t, ec.HasErrors())
	assert.Equal(t, 2, ec.Count())
	assert.Contains(t, ec.Error().Error(), "summary_config: bad mode")
}
