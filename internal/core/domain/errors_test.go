package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrMissingISBN", ErrMissingISBN},
		{"ErrUnresolvableOffset", ErrUnresolvableOffset},
		{"ErrUnsupportedBackend", ErrUnsupportedBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrNotImplemented,
		ErrMissingISBN,
		ErrUnresolvableOffset,
		ErrUnsupportedBackend,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

// TestErrors_DataErrors tests data-related error messages
func TestErrors_DataErrors(t *testing.T) {
	dataErrors := map[string]error{
		"not found":     ErrNotFound,
		"invalid input": ErrInvalidInput,
	}

	for expectedMsg, err := range dataErrors {
		assert.Equal(t, expectedMsg, err.Error())
	}
}

// TestErrors_WithWrapping tests error wrapping behavior
func TestErrors_WithWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get book %s: %w", "978", ErrNotFound)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Contains(t, wrapped.Error(), "not found")

	// Two sentinels in one chain stay identifiable.
	double := fmt.Errorf("%w: decode books: %w", ErrInvalidInput, errors.New("unexpected EOF"))
	assert.True(t, errors.Is(double, ErrInvalidInput))
	assert.False(t, errors.Is(double, ErrNotFound))
}
