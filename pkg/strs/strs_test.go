package strs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank("\t\n"))
	assert.False(t, IsBlank("x"))
	assert.False(t, IsBlank(" x "))
}

func TestAnyBlank(t *testing.T) {
	assert.False(t, AnyBlank("a", "b"))
	assert.True(t, AnyBlank("a", ""))
	assert.True(t, AnyBlank(" ", "b"))
	assert.False(t, AnyBlank())
}
