package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateDescription(t *testing.T) {
	t.Run("short descriptions pass through", func(t *testing.T) {
		assert.Equal(t, "lint Go code", truncateDescription("lint Go code", 60))
		assert.Equal(t, "", truncateDescription("", 60))
	})

	t.Run("long descriptions get an ellipsis", func(t *testing.T) {
		long := strings.Repeat("a", 80)
		got := truncateDescription(long, 60)
		assert.Equal(t, strings.Repeat("a", 57)+"...", got)
		assert.Equal(t, 60, utf8.RuneCountInString(got))
	})

	t.Run("multibyte runes are never split", func(t *testing.T) {
		long := strings.Repeat("é", 80)
		got := truncateDescription(long, 60)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, strings.Repeat("é", 57)+"...", got)
	})

	t.Run("boundary length is kept intact", func(t *testing.T) {
		exact := strings.Repeat("日", 60)
		assert.Equal(t, exact, truncateDescription(exact, 60))
	})
}
