package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusBarRendersHints(t *testing.T) {
	out := StatusBar([]string{Hint("enter", "Öffnen"), Hint("q", "Beenden")}, 120)
	assert.Contains(t, out, "enter")
	assert.Contains(t, out, "Öffnen")
	assert.Contains(t, out, "Beenden")
}

func TestStatusBarZeroWidth(t *testing.T) {
	out := StatusBar([]string{Hint("q", "Beenden")}, 0)
	assert.Contains(t, out, "q")
}

func TestStatusBarWrapsNarrowWidth(t *testing.T) {
	hints := []string{
		Hint("enter", "Öffnen"),
		Hint("a", "Antworten"),
		Hint("n", "Neue Frage"),
		Hint("q", "Beenden"),
	}
	out := StatusBar(hints, 30)
	assert.NotEmpty(t, out)
}
