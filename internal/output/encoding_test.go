package output_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/mdtangle/internal/output"
)

func TestEncoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8", "utf_8"} {
		enc, err := output.Encoding(name)
		require.NoError(t, err)
		assert.Nil(t, enc, name)
	}

	_, err := output.Encoding("no-such-encoding")
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	enc, err := output.Encoding("latin1")
	require.NoError(t, err)
	require.NotNil(t, enc)

	encoded, err := output.Encode([]byte("café"), enc)
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, encoded)

	decoded, err := output.Decode(encoded, enc)
	require.NoError(t, err)
	assert.Equal(t, "café", string(decoded))
}

func TestEncoded(t *testing.T) {
	enc, err := output.Encoding("windows-1252")
	require.NoError(t, err)

	sink := output.NewMemory()

	f, err := sink.Create("out.txt")
	require.NoError(t, err)

	f = output.Encoded(f, enc)

	_, err = io.WriteString(f, "é\n")
	require.NoError(t, err)
	require.NoError(t, f.Commit())

	data, err := sink.ReadFile("out.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xe9, '\n'}, data)
}
