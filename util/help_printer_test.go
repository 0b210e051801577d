package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapText(t *testing.T) {
	as := require.New(t)

	as.Equal([]string{""}, wrapText("", 10))
	as.Equal([]string{"one two", "three"}, wrapText("one two three", 8))
	as.Equal([]string{"first", "", "second"}, wrapText("first\n\nsecond", 20))
}
