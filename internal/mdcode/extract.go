package mdcode

import "strings"

// Extractor groups a token stream into blocks. Feed it with Push and collect
// the blocks with Close.
type Extractor struct {
	pending string
	block   *Block
	blocks  Blocks
}

// Push consumes the next token.
func (x *Extractor) Push(tok Token) error {
	switch tok.Kind {
	case TokenHeading:
		x.pending = tok.Heading
	case TokenText:
		if len(strings.TrimSpace(tok.Raw)) != 0 {
			x.pending = ""
		}
	case TokenBegin:
		if x.block != nil {
			return Errorf(ErrStructural, tok.Line, "block opened inside the block started at line %d", x.block.StartLine)
		}

		opts, meta, err := parseOptions(tok.Info, tok.Line)
		if err != nil {
			return err
		}

		x.block = &Block{
			Name:      x.pending,
			Lang:      tok.Lang,
			Indent:    tok.Indent,
			Options:   opts,
			Meta:      meta,
			StartLine: tok.Line,
		}
		x.pending = ""
	case TokenCode:
		if x.block == nil {
			return Errorf(ErrStructural, tok.Line, "code line outside of a block")
		}

		x.block.Lines = append(x.block.Lines, Line{Row: tok.Line, Text: strings.TrimPrefix(tok.Raw, x.block.Indent)})
	case TokenEnd:
		if x.block == nil {
			return Errorf(ErrStructural, tok.Line, "block closed without being opened")
		}

		x.block.EndLine = tok.Line
		x.blocks = append(x.blocks, x.block)
		x.block = nil
	}

	return nil
}

// Close returns the extracted blocks in document order.
func (x *Extractor) Close() (Blocks, error) {
	if x.block != nil {
		return nil, Errorf(ErrStructural, x.block.StartLine, "block is never closed")
	}

	return x.blocks, nil
}
