package mdcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/mdtangle/internal/mdcode"
)

func TestScanCommonMark(t *testing.T) {
	source := doc(
		"# Example",
		"",
		"Setext name",
		"-----------",
		"",
		"~~~ go --prefix x",
		"package main",
		"",
		"// <<Body>>",
		"~~~",
		"",
		"```go",
		"ignored()",
		"```",
		"",
		"- item",
		"",
		"  ## Body",
		"",
		"  ~~~ go",
		"  func main() {}",
		"  ~~~",
	)

	blocks, err := mdcode.Unfence(source, mdcode.ScanCommonMark)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	main := blocks[0]
	assert.Equal(t, "Setext name", main.Name)
	assert.Equal(t, 6, main.StartLine)
	assert.Equal(t, []string{"x"}, main.Options.Prefix)
	require.Len(t, main.Lines, 3)
	assert.Equal(t, "package main", main.Lines[0].Text)
	assert.Equal(t, 7, main.Lines[0].Row)
	require.NotNil(t, main.Lines[2].Ref)
	assert.Equal(t, "Body", main.Lines[2].Ref.Target)

	body := blocks[1]
	assert.Equal(t, "Body", body.Name)
	assert.Equal(t, "  ", body.Indent)
	require.Len(t, body.Lines, 1)
	assert.Equal(t, "func main() {}", body.Lines[0].Text)
	assert.Equal(t, 21, body.Lines[0].Row)
}

func TestScanCommonMarkCommentedBlock(t *testing.T) {
	source := doc(
		"## hidden.py",
		"",
		`<script type="text/markdown">`,
		"~~~ python",
		"print('hidden')",
		"~~~",
		"</script>",
	)

	blocks, err := mdcode.Unfence(source, mdcode.ScanCommonMark)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	assert.Equal(t, "hidden.py", blocks[0].Name)
	assert.Equal(t, mdcode.Python, blocks[0].Language)
	require.Len(t, blocks[0].Lines, 1)
	assert.Equal(t, "print('hidden')", blocks[0].Lines[0].Text)
}

func TestScanCommonMarkMatchesFences(t *testing.T) {
	source := doc(
		"## main.py",
		"",
		"~~~ python",
		"import os",
		"    # <<Body>>",
		"~~~",
		"",
		"## Body",
		"",
		"~~~ python --continue",
		"pass",
		"~~~",
	)

	fromFences, err := mdcode.Unfence(source, mdcode.ScanFences)
	require.NoError(t, err)

	fromTree, err := mdcode.Unfence(source, mdcode.ScanCommonMark)
	require.NoError(t, err)

	assert.Equal(t, fromFences, fromTree)
}

func TestScanCommonMarkNestedFence(t *testing.T) {
	source := doc(
		"## A",
		"~~~ python",
		"x = 1",
		"~~~ python",
		"y = 2",
		"~~~",
	)

	for name, scan := range map[string]mdcode.Scanner{
		"fences":     mdcode.ScanFences,
		"commonmark": mdcode.ScanCommonMark,
	} {
		_, err := mdcode.Unfence(source, scan)
		require.ErrorIs(t, err, mdcode.ErrStructural, name)

		var target *mdcode.Error
		require.ErrorAs(t, err, &target, name)
		assert.Equal(t, 4, target.Line, name)
	}
}
