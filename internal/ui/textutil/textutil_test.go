package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 8, "hello w…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.width)
		assert.Equal(t, tt.want, got, "Truncate(%q, %d)", tt.in, tt.width)
		assert.LessOrEqual(t, VisualWidth(got), max(tt.width, 0))
	}
}

func TestSquash(t *testing.T) {
	assert.Equal(t, "a b c", Squash("  a \n b\t\tc "))
	assert.Equal(t, "", Squash(" \n "))
}

func TestClampLines_FitsWithoutEllipsis(t *testing.T) {
	got := ClampLines("I love hiking", 20, 2)
	assert.Equal(t, []string{"I love hiking"}, got)
}

func TestClampLines_TwoLinesWithEllipsis(t *testing.T) {
	bio := "Language lover from Seoul who enjoys cooking, hiking and long conversations about films"
	got := ClampLines(bio, 20, 2)
	if assert.Len(t, got, 2) {
		assert.True(t, strings.HasSuffix(got[1], TruncateEllipsis), "last line %q", got[1])
		for _, l := range got {
			assert.LessOrEqual(t, VisualWidth(l), 20)
		}
	}
	assert.True(t, strings.HasPrefix(got[0], "Language lover"))
}

func TestClampLines_LongWordTruncated(t *testing.T) {
	got := ClampLines("supercalifragilisticexpialidocious", 10, 2)
	if assert.Len(t, got, 1) {
		assert.Equal(t, 10, VisualWidth(got[0]))
	}
}

func TestClampLines_Empty(t *testing.T) {
	assert.Nil(t, ClampLines("   ", 10, 2))
	assert.Nil(t, ClampLines("text", 0, 2))
	assert.Nil(t, ClampLines("text", 10, 0))
}

func TestVisualWidthStyled_IgnoresEscapes(t *testing.T) {
	styled := "\x1b[1;38;5;86mAG\x1b[0m"
	assert.Equal(t, 2, VisualWidthStyled(styled))
	assert.Equal(t, 4, VisualWidthStyled("日本"))
}
