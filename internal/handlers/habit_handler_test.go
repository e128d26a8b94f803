package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayTarget(t *testing.T) {
	assert.Equal(t, 7, displayTarget(7.0))
	assert.Equal(t, 7, displayTarget(7.233))
	assert.Equal(t, 8, displayTarget(7.5))
	assert.Equal(t, 0, displayTarget(0))
	assert.Equal(t, -2, displayTarget(-1.5))
}
