package mdcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Language selects the reference syntax, comment style and location
// directive format of a block.
type Language int

const (
	NoLanguage Language = iota
	Text
	Python
	C
	Go
)

type langInfo struct {
	name      string
	leader    string
	directive func(file string, line int) string
	refs      *regexp.Regexp
}

const (
	reMarker = `<<([^|]+?)(?:\|(.*))?>>`
	reTail   = `[ \t]*$`
)

var languages = map[Language]langInfo{
	Text: {
		name: "text",
		refs: regexp.MustCompile(`^(.*?)<<([^|<>]+?)(?:\|(.*?))?>>(.*)$`),
	},
	Python: {
		name:   "python",
		leader: "#",
		directive: func(file string, line int) string {
			return fmt.Sprintf("#line %s:%d", file, line)
		},
		refs: regexp.MustCompile(`^([ \t]*)#[ \t]*` + reMarker + reTail),
	},
	C: {
		name:   "c",
		leader: "//",
		directive: func(file string, line int) string {
			return fmt.Sprintf("#line %d %s", line, strconv.Quote(file))
		},
		refs: regexp.MustCompile(`^([ \t]*)//[ \t]*` + reMarker + reTail),
	},
	Go: {
		name:   "go",
		leader: "//",
		directive: func(file string, line int) string {
			return fmt.Sprintf("//line %s:%d", file, line)
		},
		refs: regexp.MustCompile(`^([ \t]*)//[ \t]*` + reMarker + reTail),
	},
}

var languageTags = map[string]Language{
	"text":   Text,
	"txt":    Text,
	"python": Python,
	"py":     Python,
	"c":      C,
	"cpp":    C,
	"c++":    C,
	"h":      C,
	"go":     Go,
	"golang": Go,
}

// LookupLanguage maps a fence language tag to its Language.
func LookupLanguage(tag string) (Language, error) {
	if lang, ok := languageTags[strings.ToLower(tag)]; ok {
		return lang, nil
	}

	return NoLanguage, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
}

func (l Language) String() string {
	if info, ok := languages[l]; ok {
		return info.name
	}

	return "none"
}

// Comment formats text as a line comment. Languages without a comment
// leader return an empty string.
func (l Language) Comment(text string) string {
	leader := languages[l].leader
	if len(leader) == 0 {
		return ""
	}

	return leader + " " + text
}

// Directive formats a location directive pointing at line of file. It
// returns an empty string for languages without one.
func (l Language) Directive(file string, line int) string {
	info, ok := languages[l]
	if !ok || info.directive == nil {
		return ""
	}

	return info.directive(file, line)
}

// Inline reports whether references may share a line with other text.
func (l Language) Inline() bool {
	return l == Text
}
