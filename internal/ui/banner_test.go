package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderBannerContainsSubtitle(t *testing.T) {
	out := RenderBanner()
	assert.Contains(t, out, "Böttcher Fahrradwerke")
	assert.Contains(t, out, "Wissensarchiv")
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"", "x"}, splitLines("\nx"))
}
