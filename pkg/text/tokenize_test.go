package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "mixed case", input: "What Is GO?", want: []string{"what", "is", "go?"}},
		{name: "tabs and newlines", input: " a\tb\n\nc  ", want: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				require.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestUniqueDropsStopwords(t *testing.T) {
	stops := NewSet("the", "is")
	set := Unique(Tokenize("the cat is the cat"), stops)
	require.Equal(t, NewSet("cat"), set)

	require.Len(t, Unique(Tokenize("the cat"), nil), 2)
}

func TestCountKeepsMultiplicity(t *testing.T) {
	bag := Count(Tokenize("b a b the c b"), NewSet("the"))
	require.Equal(t, []string{"b", "a", "c"}, bag.Keys)
	require.Equal(t, 3, bag.Counts["b"])
	require.Equal(t, 5, bag.Total())
	require.True(t, bag.Contains("a"))
	require.False(t, bag.Contains("the"))
}

func TestLoadStopwords(t *testing.T) {
	set, err := LoadStopwords(strings.NewReader("# comment\nThe\n\n  of \n"))
	require.NoError(t, err)
	require.Equal(t, NewSet("the", "of"), set)
}

func TestEnglishIsCopy(t *testing.T) {
	a := English()
	delete(a, "the")
	require.True(t, English().Contains("the"))
}
