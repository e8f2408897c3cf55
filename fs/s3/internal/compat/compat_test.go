package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/objfs/errors"
)

func TestRequiresValidation_DefaultThreshold(t *testing.T) {
	p, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultThreshold, p.Threshold())

	tests := []struct {
		version string
		want    bool
	}{
		{"2.2.0", true},
		{"2.3.0", true},
		{"2.24.9", true},
		{"2.25.0", false},
		{"2.25.1", false},
		{"2.100.0", false},
		{"3.0", false},
		{"v7.0.95", false},
		{"1.40.1", true},
		{"", true},
		{"not-a-version", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, p.RequiresValidation(tt.version))
		})
	}
}

func TestRequiresValidation_Numeric(t *testing.T) {
	// a string comparison would put "3.0" after "25.0"
	p, err := New("25.0")
	require.NoError(t, err)
	assert.True(t, p.RequiresValidation("3.0"))
	assert.False(t, p.RequiresValidation("25.0"))
}

func TestNew_CustomThreshold(t *testing.T) {
	p, err := New("7.0.0")
	require.NoError(t, err)
	assert.True(t, p.RequiresValidation("6.9.9"))
	assert.False(t, p.RequiresValidation("7.0.95"))
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("two.twenty-five")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}
