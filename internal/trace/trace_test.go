package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetLogLevel(t *testing.T) {
	defer SetLogLevel(INFO)

	SetLogLevel(WARNING)
	assert.Equal(t, WARNING, GetLogLevel())
}

func TestLevelOrdering(t *testing.T) {
	assert.True(t, SEVERE > WARNING)
	assert.True(t, WARNING > INFO)
	assert.True(t, INFO > CONFIG)
	assert.True(t, CONFIG > FINE)
}

func TestEnabledRespectsCurrentLevel(t *testing.T) {
	defer SetLogLevel(INFO)

	SetLogLevel(WARNING)
	assert.False(t, enabled(INFO))
	assert.True(t, enabled(SEVERE))
}
