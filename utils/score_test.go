package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound4(t *testing.T) {
	assert.Equal(t, 0.6667, Round4(2.0/3.0))
	assert.Equal(t, 0.3333, Round4(1.0/3.0))
	assert.Equal(t, 0.5, Round4(0.5))
	assert.Equal(t, 1.0, Round4(1))
	assert.Equal(t, 0.0, Round4(0))
}
