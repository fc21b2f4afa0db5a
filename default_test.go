package pstr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())

	a, err := Intern([]byte("process-wide"))
	require.NoError(t, err)
	b, err := InternString("process-wide")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, a, MustIntern("process-wide"))

	h, ok := Default().Lookup([]byte("process-wide"))
	assert.True(t, ok)
	assert.Equal(t, a, h)
}

func TestDefault_LengthExceeded(t *testing.T) {
	_, err := Intern(make([]byte, MaxLength+1))
	assert.ErrorIs(t, err, ErrLengthExceeded)
}
