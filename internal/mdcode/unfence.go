package mdcode

// Unfence scans a Markdown document and returns all of its code blocks with
// their references parsed, in document order.
func Unfence(source []byte, scan Scanner) (Blocks, error) {
	var x Extractor

	if scan == nil {
		scan = ScanFences
	}

	if err := scan(source, x.Push); err != nil {
		return nil, err
	}

	blocks, err := x.Close()
	if err != nil {
		return nil, err
	}

	for _, block := range blocks {
		if err := ParseReferences(block); err != nil {
			return nil, err
		}
	}

	return blocks, nil
}

// Parse scans a Markdown document and indexes its blocks by name.
func Parse(source []byte, scan Scanner) (*Index, error) {
	blocks, err := Unfence(source, scan)
	if err != nil {
		return nil, err
	}

	return NewIndex(blocks)
}
