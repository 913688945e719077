package mdcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/mdtangle/internal/mdcode"
)

func fragment(name string, lang mdcode.Language, indent string, cont bool, lines ...string) *mdcode.Block {
	b := &mdcode.Block{
		Name:     name,
		Lang:     lang.String(),
		Language: lang,
		Indent:   indent,
		Options:  mdcode.Options{Continue: cont},
	}

	for i, line := range lines {
		b.Lines = append(b.Lines, mdcode.Line{Row: i + 1, Text: line})
	}

	return b
}

func TestNewIndexContinuation(t *testing.T) {
	a := fragment("A", mdcode.Python, "  ", false, "a1", "a2")

	_, err := mdcode.NewIndex(mdcode.Blocks{a, fragment("", mdcode.C, "  ", true, "b")})
	assert.ErrorIs(t, err, mdcode.ErrLanguageMismatch)

	b := fragment("", mdcode.Python, "  ", true, "b1")

	idx, err := mdcode.NewIndex(mdcode.Blocks{a, b})
	require.NoError(t, err)

	chain, ok := idx.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, mdcode.Blocks{a, b}, chain)

	var texts []string
	for _, frag := range chain {
		for _, line := range frag.Lines {
			texts = append(texts, line.Text)
		}
	}

	assert.Equal(t, []string{"a1", "a2", "b1"}, texts)
}

func TestNewIndexErrors(t *testing.T) {
	tests := []struct {
		name   string
		blocks mdcode.Blocks
		kind   error
	}{
		{
			name:   "orphan",
			blocks: mdcode.Blocks{fragment("", mdcode.Python, "", true)},
			kind:   mdcode.ErrOrphanBlock,
		},
		{
			name: "missing continue",
			blocks: mdcode.Blocks{
				fragment("A", mdcode.Python, "", false),
				fragment("", mdcode.Python, "", false),
			},
			kind: mdcode.ErrMissingContinue,
		},
		{
			name: "indentation",
			blocks: mdcode.Blocks{
				fragment("A", mdcode.Python, "  ", false),
				fragment("", mdcode.Python, "    ", true),
			},
			kind: mdcode.ErrIndentMismatch,
		},
		{
			name: "language",
			blocks: mdcode.Blocks{
				fragment("A", mdcode.Go, "", false),
				fragment("", mdcode.Text, "", true),
			},
			kind: mdcode.ErrLanguageMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mdcode.NewIndex(tt.blocks)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestNewIndexDuplicateName(t *testing.T) {
	first := fragment("A", mdcode.Python, "", false, "first")
	second := fragment("A", mdcode.Python, "", false, "second")
	cont := fragment("", mdcode.Python, "", true, "continued")
	other := fragment("B", mdcode.Python, "", false)

	idx, err := mdcode.NewIndex(mdcode.Blocks{first, second, cont, other})
	require.NoError(t, err)

	chain, ok := idx.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, mdcode.Blocks{first}, chain)
	assert.Equal(t, []string{"A", "B"}, idx.Names())
}
