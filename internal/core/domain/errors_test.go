package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrFileParsing", ErrFileParsing},
		{"ErrStoreClosed", ErrStoreClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("decoding /tmp/a.fit: %w", ErrFileParsing)

	assert.True(t, errors.Is(wrapped, ErrFileParsing))
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))
	assert.Contains(t, wrapped.Error(), "file parsing failed")
}
