package buildinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.True(t, strings.HasPrefix(info.GoVersion, "go"))
}

func TestString(t *testing.T) {
	s := String()
	assert.Contains(t, s, Version)
	assert.Contains(t, s, Commit)
}
