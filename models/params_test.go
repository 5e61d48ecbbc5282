package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewerAnonymousSentinel(t *testing.T) {
	assert.True(t, Anonymous.IsAnonymous())
	assert.True(t, Viewer{}.IsAnonymous())
	assert.False(t, Viewer{UserId: 1}.IsAnonymous())
}
