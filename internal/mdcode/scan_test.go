package mdcode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/mdtangle/internal/mdcode"
)

func doc(lines ...string) []byte {
	return []byte(strings.Join(lines, "\n") + "\n")
}

func scanAll(t *testing.T, scan mdcode.Scanner, source []byte) []mdcode.Token {
	t.Helper()

	var toks []mdcode.Token

	require.NoError(t, scan(source, func(tok mdcode.Token) error {
		toks = append(toks, tok)

		return nil
	}))

	return toks
}

func kinds(toks []mdcode.Token) []mdcode.TokenKind {
	res := make([]mdcode.TokenKind, len(toks))
	for i, tok := range toks {
		res[i] = tok.Kind
	}

	return res
}

func TestScanFences(t *testing.T) {
	toks := scanAll(t, mdcode.ScanFences, doc(
		"# Title",
		"",
		"## main.py",
		"",
		"~~~ python --prefix 'x y'",
		"import os",
		"~~~",
		"```python",
		"# not a heading",
		"```",
		"Some text",
	))

	assert.Equal(t, []mdcode.TokenKind{
		mdcode.TokenHeading,
		mdcode.TokenText,
		mdcode.TokenHeading,
		mdcode.TokenText,
		mdcode.TokenBegin,
		mdcode.TokenCode,
		mdcode.TokenEnd,
		mdcode.TokenText,
		mdcode.TokenText,
		mdcode.TokenText,
		mdcode.TokenText,
	}, kinds(toks))

	assert.Equal(t, "Title", toks[0].Heading)
	assert.Equal(t, "main.py", toks[2].Heading)

	begin := toks[4]
	assert.Equal(t, 5, begin.Line)
	assert.Equal(t, "python", begin.Lang)
	assert.Equal(t, "--prefix 'x y'", begin.Info)
	assert.Equal(t, "", begin.Indent)

	assert.Equal(t, "import os", toks[5].Raw)
	assert.Equal(t, 6, toks[5].Line)
}

func TestScanFencesIgnoredTilde(t *testing.T) {
	toks := scanAll(t, mdcode.ScanFences, doc(
		"~~~",
		"~~~ python",
		"~~~",
		"~~~ go",
		"x",
		"~~~",
	))

	assert.Equal(t, []mdcode.TokenKind{
		mdcode.TokenText,
		mdcode.TokenText,
		mdcode.TokenText,
		mdcode.TokenBegin,
		mdcode.TokenCode,
		mdcode.TokenEnd,
	}, kinds(toks))
}

func TestScanFencesBackticksInsideBlock(t *testing.T) {
	toks := scanAll(t, mdcode.ScanFences, doc(
		"  ~~~~ text",
		"  ```",
		"  ~~~",
		"  ~~~~",
	))

	assert.Equal(t, []mdcode.TokenKind{
		mdcode.TokenBegin,
		mdcode.TokenCode,
		mdcode.TokenCode,
		mdcode.TokenEnd,
	}, kinds(toks))
	assert.Equal(t, "  ", toks[0].Indent)
}

func TestScanFencesHeadings(t *testing.T) {
	tests := []struct {
		line    string
		heading bool
		name    string
	}{
		{line: "## Name", heading: true, name: "Name"},
		{line: "### Name ###", heading: true, name: "Name"},
		{line: "## `main.go`", heading: true, name: "main.go"},
		{line: "   # Indented", heading: true, name: "Indented"},
		{line: "#", heading: true, name: ""},
		{line: "#hashtag", heading: false},
		{line: "####### seven", heading: false},
		{line: "    # code", heading: false},
	}

	for _, tt := range tests {
		toks := scanAll(t, mdcode.ScanFences, []byte(tt.line+"\r\n"))
		require.Len(t, toks, 1, tt.line)

		if !tt.heading {
			assert.Equal(t, mdcode.TokenText, toks[0].Kind, tt.line)

			continue
		}

		assert.Equal(t, mdcode.TokenHeading, toks[0].Kind, tt.line)
		assert.Equal(t, tt.name, toks[0].Heading, tt.line)
		assert.Equal(t, tt.line, toks[0].Raw, tt.line)
	}
}
