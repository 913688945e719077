package mdcode

// TokenKind classifies a line of a Markdown document.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenHeading
	TokenBegin
	TokenCode
	TokenEnd
)

var tokenNames = [...]string{
	TokenText:    "text",
	TokenHeading: "heading",
	TokenBegin:   "begin",
	TokenCode:    "code",
	TokenEnd:     "end",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}

	return "unknown"
}

// Token is one classified line. Raw is the line without its terminator and
// Line its 1-based number. Heading tokens carry the heading text in Heading;
// begin tokens carry the fence indentation, language and option string.
type Token struct {
	Kind    TokenKind
	Raw     string
	Line    int
	Heading string
	Indent  string
	Lang    string
	Info    string
}

// Emitter receives tokens in document order.
type Emitter func(tok Token) error

// Scanner turns a document into a token stream.
type Scanner func(source []byte, emit Emitter) error
