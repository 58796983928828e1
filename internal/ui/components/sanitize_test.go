package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTextStripsANSIAndControls(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("\x1b[31mhello\x1b[0m"))
	assert.Equal(t, "ab", SanitizeText("a\x00\x07b"))
	assert.Equal(t, "keep\nlines\tand tabs", SanitizeText("keep\nlines\tand tabs"))
	assert.Equal(t, "", SanitizeText(""))
}

func TestSanitizeTextStripsBidiControls(t *testing.T) {
	assert.Equal(t, "Ölwechsel", SanitizeText("‮Ölwechsel‬"))
}

func TestSanitizeOneLineCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Kette ölen und prüfen", SanitizeOneLine("Kette ölen\nund\tprüfen"))
	assert.Equal(t, "a b", SanitizeOneLine("  a   b  "))
}
