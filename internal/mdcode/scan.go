package mdcode

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

var (
	reFence   = regexp.MustCompile("^([ \t]*)(`{3,}|~{3,})(.*)$")
	reHeading = regexp.MustCompile(`^ {0,3}#{1,6}(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)
	reInfo    = regexp.MustCompile(`^\s*(\S+)\s*(.*?)\s*$`)
)

type scanState int

const (
	stateText scanState = iota
	stateIgnored
	stateOpen
)

type fence struct {
	indent string
	char   byte
	width  int
	info   string
}

func parseFence(line string) (fence, bool) {
	m := reFence.FindStringSubmatch(line)
	if m == nil {
		return fence{}, false
	}

	return fence{indent: m[1], char: m[2][0], width: len(m[2]), info: strings.TrimSpace(m[3])}, true
}

// closes reports whether f is a bare fence closing a fence opened by open.
func (f fence) closes(open fence) bool {
	return f.char == open.char && f.width >= open.width && len(f.info) == 0
}

// fenceScanner is the line classifier. Only ~~~ fences with a language open
// blocks; other fences are passed through as text together with their
// content.
type fenceScanner struct {
	state scanState
	open  fence
}

func (s *fenceScanner) next(raw string, line int) Token {
	tok := Token{Kind: TokenText, Raw: raw, Line: line}
	f, isFence := parseFence(raw)

	switch s.state {
	case stateText:
		if isFence {
			s.open = f

			lang, info := splitInfo(f.info)
			if f.char == '~' && len(lang) != 0 {
				s.state = stateOpen
				tok.Kind = TokenBegin
				tok.Indent, tok.Lang, tok.Info = f.indent, lang, info

				return tok
			}

			s.state = stateIgnored

			return tok
		}

		if m := reHeading.FindStringSubmatch(raw); m != nil {
			tok.Kind = TokenHeading
			tok.Heading = headingName(m[1])
		}
	case stateIgnored:
		if isFence && f.closes(s.open) {
			s.state = stateText
		}
	case stateOpen:
		switch {
		case isFence && f.closes(s.open):
			s.state = stateText
			tok.Kind = TokenEnd
		case isFence && f.char == '~' && len(f.info) != 0:
			lang, info := splitInfo(f.info)
			tok.Kind = TokenBegin
			tok.Indent, tok.Lang, tok.Info = f.indent, lang, info
		default:
			tok.Kind = TokenCode
		}
	}

	return tok
}

func splitInfo(info string) (string, string) {
	m := reInfo.FindStringSubmatch(info)
	if m == nil {
		return "", ""
	}

	return m[1], m[2]
}

func headingName(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > 1 && strings.HasPrefix(text, "`") && strings.HasSuffix(text, "`") &&
		!strings.Contains(text[1:len(text)-1], "`") {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}

	return text
}

// ScanFences classifies the lines of source and passes them to emit.
func ScanFences(source []byte, emit Emitter) error {
	var scanner fenceScanner

	lines := bufio.NewScanner(bytes.NewReader(source))
	lines.Buffer(make([]byte, 0, 64*1024), len(source)+1)

	for line := 1; lines.Scan(); line++ {
		raw := strings.TrimSuffix(lines.Text(), "\r")

		if err := emit(scanner.next(raw, line)); err != nil {
			return err
		}
	}

	return lines.Err()
}
