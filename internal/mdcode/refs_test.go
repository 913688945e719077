package mdcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/mdtangle/internal/mdcode"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		name string
		lang mdcode.Language
		line string
		want *mdcode.Reference
	}{
		{
			name: "python",
			lang: mdcode.Python,
			line: "    # <<Body>>",
			want: &mdcode.Reference{Indent: "    ", Target: "Body"},
		},
		{
			name: "spaced name",
			lang: mdcode.Python,
			line: "#<< spaced name >>  ",
			want: &mdcode.Reference{Target: "spaced name"},
		},
		{
			name: "trailing code",
			lang: mdcode.Python,
			line: "x = 1 # <<Body>>",
		},
		{
			name: "wrong leader",
			lang: mdcode.Python,
			line: "// <<Body>>",
		},
		{
			name: "go",
			lang: mdcode.Go,
			line: "\t// <<Imports>>",
			want: &mdcode.Reference{Indent: "\t", Target: "Imports"},
		},
		{
			name: "arguments",
			lang: mdcode.C,
			line: "  //<<P|--lit-arg 'a b' --ref-arg Q --prefix '{' --suffix '}'>>",
			want: &mdcode.Reference{
				Indent: "  ",
				Target: "P",
				Args: []mdcode.Arg{
					{Kind: mdcode.Literal, Value: "a b"},
					{Kind: mdcode.BlockRef, Value: "Q"},
				},
				Prefix: []string{"{"},
				Suffix: []string{"}"},
			},
		},
		{
			name: "argument order",
			lang: mdcode.Python,
			line: "# <<P | --ref-arg A --lit-arg b --ref-arg=C>>",
			want: &mdcode.Reference{
				Target: "P",
				Args: []mdcode.Arg{
					{Kind: mdcode.BlockRef, Value: "A"},
					{Kind: mdcode.Literal, Value: "b"},
					{Kind: mdcode.BlockRef, Value: "C"},
				},
			},
		},
		{
			name: "inline text",
			lang: mdcode.Text,
			line: "Hello, <<Name>>!",
			want: &mdcode.Reference{Indent: "Hello, ", Target: "Name", Trail: "!"},
		},
		{
			name: "empty name",
			lang: mdcode.Python,
			line: "# <<  >>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := mdcode.ParseReference(tt.lang, tt.line, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestParseReferenceErrors(t *testing.T) {
	for _, line := range []string{
		"# <<P|--bogus>>",
		"# <<P|extra>>",
		"# <<P|--lit-arg 'unterminated>>",
		"# <<P|--ref-arg>>",
	} {
		_, err := mdcode.ParseReference(mdcode.Python, line, 3)
		require.Error(t, err, line)
		assert.ErrorIs(t, err, mdcode.ErrReferenceArgument, line)
		assert.Contains(t, err.Error(), "--lit-arg", line)
	}

	_, err := mdcode.ParseReference(mdcode.NoLanguage, "# <<P>>", 1)
	assert.ErrorIs(t, err, mdcode.ErrUnsupportedLanguage)
}

func TestParseReferenceTwoMarkers(t *testing.T) {
	for _, line := range []string{
		"<<B>> and <<C>>",
		"x <<B|--lit-arg 1>> <<C>>!",
	} {
		_, err := mdcode.ParseReference(mdcode.Text, line, 5)
		require.ErrorIs(t, err, mdcode.ErrReferenceArgument, line)

		var target *mdcode.Error
		require.ErrorAs(t, err, &target, line)
		assert.Equal(t, 5, target.Line, line)
	}

	ref, err := mdcode.ParseReference(mdcode.Text, "a << b and <<C>> >> d", 5)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "C", ref.Target)
}

func TestLanguages(t *testing.T) {
	tests := []struct {
		tag       string
		lang      mdcode.Language
		comment   string
		directive string
	}{
		{tag: "python", lang: mdcode.Python, comment: "# x", directive: "#line doc.md:7"},
		{tag: "PY", lang: mdcode.Python, comment: "# x", directive: "#line doc.md:7"},
		{tag: "cpp", lang: mdcode.C, comment: "// x", directive: `#line 7 "doc.md"`},
		{tag: "go", lang: mdcode.Go, comment: "// x", directive: "//line doc.md:7"},
		{tag: "text", lang: mdcode.Text},
	}

	for _, tt := range tests {
		lang, err := mdcode.LookupLanguage(tt.tag)
		require.NoError(t, err, tt.tag)
		assert.Equal(t, tt.lang, lang, tt.tag)
		assert.Equal(t, tt.comment, lang.Comment("x"), tt.tag)
		assert.Equal(t, tt.directive, lang.Directive("doc.md", 7), tt.tag)
	}

	_, err := mdcode.LookupLanguage("cobol")
	assert.ErrorIs(t, err, mdcode.ErrUnsupportedLanguage)
}
