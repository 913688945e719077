package mdcode

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// lineIndex maps byte offsets of a document to 1-based line numbers.
type lineIndex struct {
	source []byte
	starts []int
}

func newLineIndex(source []byte) *lineIndex {
	starts := []int{0}

	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &lineIndex{source: source, starts: starts}
}

func (l *lineIndex) lineAt(offset int) int {
	return sort.SearchInts(l.starts, offset+1)
}

// raw returns the full source line containing offset, without terminator.
func (l *lineIndex) raw(offset int) string {
	line := l.lineAt(offset)
	start := l.starts[line-1]

	end := len(l.source)
	if line < len(l.starts) {
		end = l.starts[line] - 1
	}

	return strings.TrimSuffix(string(l.source[start:end]), "\r")
}

// ScanCommonMark classifies a document with a CommonMark parser instead of
// the line scanner used by [ScanFences]. Headings, paragraphs and fenced
// code blocks are taken from the syntax tree, so fences inside lists or
// block quotes are recognized as well.
func ScanCommonMark(source []byte, emit Emitter) error {
	parser := goldmark.DefaultParser()
	reader := text.NewReader(source)
	root := parser.Parse(reader).OwnerDocument()
	lines := newLineIndex(source)

	return ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		node = transformCommentedCodeBlock(node, source)

		switch n := node.(type) {
		case *ast.Heading:
			return ast.WalkSkipChildren, emitHeading(n, lines, emit)
		case *ast.FencedCodeBlock:
			return ast.WalkSkipChildren, emitFencedCodeBlock(n, lines, emit)
		case *ast.Paragraph, *ast.HTMLBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, emitText(n, lines, emit)
		}

		return ast.WalkContinue, nil
	})
}

func emitHeading(h *ast.Heading, lines *lineIndex, emit Emitter) error {
	segs := h.Lines()
	if segs.Len() == 0 {
		return nil
	}

	var buff bytes.Buffer

	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buff.Write(seg.Value(lines.source))
	}

	first := segs.At(0)

	return emit(Token{
		Kind:    TokenHeading,
		Raw:     lines.raw(first.Start),
		Line:    lines.lineAt(first.Start),
		Heading: headingName(buff.String()),
	})
}

func emitText(node ast.Node, lines *lineIndex, emit Emitter) error {
	segs := node.Lines()
	if segs.Len() == 0 {
		return nil
	}

	first := segs.At(0)

	return emit(Token{Kind: TokenText, Raw: lines.raw(first.Start), Line: lines.lineAt(first.Start)})
}

func emitFencedCodeBlock(fcb *ast.FencedCodeBlock, lines *lineIndex, emit Emitter) error {
	if fcb.Info == nil {
		return emitText(fcb, lines, emit)
	}

	start := fcb.Info.Segment.Start
	raw := lines.raw(start)
	indent := raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))]
	lang, info := splitInfo(string(fcb.Info.Segment.Value(lines.source)))

	if !strings.HasPrefix(raw[len(indent):], "~") || len(lang) == 0 {
		return emit(Token{Kind: TokenText, Raw: raw, Line: lines.lineAt(start)})
	}

	begin := Token{Kind: TokenBegin, Raw: raw, Line: lines.lineAt(start), Indent: indent, Lang: lang, Info: info}
	if err := emit(begin); err != nil {
		return err
	}

	end := begin.Line + 1

	segs := fcb.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		tok := codeToken(lines.raw(seg.Start), lines.lineAt(seg.Start))

		if err := emit(tok); err != nil {
			return err
		}

		end = tok.Line + 1
	}

	return emit(Token{Kind: TokenEnd, Line: end})
}

// codeToken classifies a line inside a fenced block. A ~~~ fence with a
// language is a begin token so that nested blocks are reported as with
// ScanFences.
func codeToken(raw string, line int) Token {
	tok := Token{Kind: TokenCode, Raw: raw, Line: line}

	if f, ok := parseFence(raw); ok && f.char == '~' && len(f.info) != 0 {
		tok.Kind = TokenBegin
		tok.Indent = f.indent
		tok.Lang, tok.Info = splitInfo(f.info)
	}

	return tok
}

var (
	reCommentedCodeBlock = regexp.MustCompile(`^\s*(<!--)?\s*<script\s*type=["']text/markdown["']\s*>\s*$`)
	reFences             = regexp.MustCompile("^\\s*(```|~~~)")
)

// transformCommentedCodeBlock turns a fenced code block hidden in a
// <script type="text/markdown"> HTML block into a FencedCodeBlock node.
func transformCommentedCodeBlock(node ast.Node, source []byte) ast.Node { //nolint:ireturn
	html, ok := node.(*ast.HTMLBlock)
	if !ok {
		return node
	}

	const minLines = 3

	lines := html.Lines()
	if lines.Len() < minLines {
		return node
	}

	seg := lines.At(0)
	if !reCommentedCodeBlock.Match(seg.Value(source)) {
		return node
	}

	seg = lines.At(1)

	loc := reFences.FindIndex(seg.Value(source))
	if loc == nil {
		return node
	}

	last := lines.At(lines.Len() - 1)
	if !reFences.Match(last.Value(source)) {
		return node
	}

	info := ast.NewTextSegment(text.NewSegment(seg.Start+loc[1], seg.Stop-1))
	fcb := ast.NewFencedCodeBlock(info)

	segs := text.NewSegments()

	for i := 2; i < lines.Len()-1; i++ {
		segs.Append(lines.At(i))
	}

	fcb.SetLines(segs)

	return fcb
}
