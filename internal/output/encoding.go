package output

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Encoding returns the text encoding registered under name. An empty name
// or any spelling of UTF-8 returns nil, meaning no conversion.
func Encoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}

	return enc, nil
}

// Decode converts src from enc to UTF-8.
func Decode(src []byte, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return src, nil
	}

	return enc.NewDecoder().Bytes(src)
}

// Encode converts UTF-8 src to enc.
func Encode(src []byte, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return src, nil
	}

	return enc.NewEncoder().Bytes(src)
}

// Encoded wraps f so that UTF-8 text written to it is stored in enc.
func Encoded(f File, enc encoding.Encoding) File {
	if enc == nil {
		return f
	}

	return &encodedFile{File: f, w: transform.NewWriter(f, enc.NewEncoder())}
}

type encodedFile struct {
	File
	w *transform.Writer
}

func (e *encodedFile) Write(p []byte) (int, error) {
	return e.w.Write(p)
}

func (e *encodedFile) Commit() error {
	if err := e.w.Close(); err != nil {
		_ = e.File.Discard()

		return err
	}

	return e.File.Commit()
}
