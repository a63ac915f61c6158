package envflag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]bool{
		"true":   true,
		"TRUE":   true,
		"1":      true,
		"yes":    true,
		"on":     true,
		"=yes":   true,
		" On ":   true,
		"":       false,
		"false":  false,
		"nope":   false,
		"==yes":  false,
		"yes!":   false,
		"t":      false,
		"0":      false,
		" =on  ": true,
	}
	for input, want := range cases {
		require.Equal(t, want, Parse(input), "input %q", input)
	}
}
