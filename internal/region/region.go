// Package region reads and replaces named #region/#endregion sections in source files.
package region

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	reSpec      = `[!"#$%%&'()*+,\-./:;<=>?@[\\\]^_{|}~]`
	reLineBegin = `(?m)^[[:blank:]]*`
	reLineEnd   = `*[[:blank:]]*\r?\n`
	beginFormat = reLineBegin + reSpec +
		`+[[:blank:]]*#region[[:blank:]]+%s[[:blank:]]*` +
		reSpec + reLineEnd
	namedEndFormat = reLineBegin + reSpec +
		`+[[:blank:]]*#endregion[[:blank:]]+%s[[:blank:]]*` +
		reSpec + reLineEnd
)

var (
	reName = regexp.MustCompile(`^[\w.\-]+$`)
	reEnd  = regexp.MustCompile(reLineBegin + reSpec +
		`+[[:blank:]]*#endregion[[:blank:]]*` +
		reSpec + reLineEnd)
)

// Span locates the body of a region: source[Begin:End] lies between the
// marker lines.
type Span struct {
	Begin int
	End   int
}

func marker(format string, name string) (*regexp.Regexp, error) {
	return regexp.Compile(fmt.Sprintf(format, regexp.QuoteMeta(name)))
}

// Find locates the region with the given name. The bool return indicates
// whether the region was found.
func Find(source []byte, name string) (Span, bool, error) {
	if !reName.MatchString(name) {
		return Span{}, false, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	reBegin, err := marker(beginFormat, name)
	if err != nil {
		return Span{}, false, err
	}

	idxBegin := reBegin.FindIndex(source)
	if idxBegin == nil {
		return Span{}, false, nil
	}

	namedEnd, err := marker(namedEndFormat, name)
	if err != nil {
		return Span{}, false, err
	}

	idxEnd := namedEnd.FindIndex(source[idxBegin[1]:])
	if idxEnd == nil {
		idxEnd = reEnd.FindIndex(source[idxBegin[1]:])
	}

	if idxEnd == nil {
		return Span{}, false, fmt.Errorf("%w: %q", ErrMissingEndregion, name)
	}

	return Span{Begin: idxBegin[1], End: idxBegin[1] + idxEnd[0]}, true, nil
}

// Read returns the content between the #region and #endregion markers with the
// given name. The bool return indicates whether the named region was found.
func Read(source []byte, name string) ([]byte, bool, error) {
	span, found, err := Find(source, name)
	if err != nil || !found {
		return nil, false, err
	}

	return source[span.Begin:span.End], true, nil
}

// Replace substitutes the content of the named region with value and returns
// the updated source. The bool return indicates whether the named region was found.
func Replace(source []byte, name string, value []byte) ([]byte, bool, error) {
	span, found, err := Find(source, name)
	if err != nil || !found {
		return nil, false, err
	}

	res := make([]byte, 0, len(source)-(span.End-span.Begin)+len(value))
	res = append(res, source[:span.Begin]...)
	res = append(res, value...)
	res = append(res, source[span.End:]...)

	return res, true, nil
}

// Split separates a block name of the form PATH#REGION. The bool return
// reports whether name designates a region.
func Split(name string) (string, string, bool) {
	idx := strings.LastIndexByte(name, '#')
	if idx <= 0 || idx == len(name)-1 {
		return name, "", false
	}

	return name[:idx], name[idx+1:], true
}

var (
	// ErrMissingEndregion is returned when a #region marker has no matching
	// #endregion.
	ErrMissingEndregion = errors.New("missing #endregion")
	// ErrInvalidName is returned for region names that can not appear in a
	// marker line.
	ErrInvalidName = errors.New("invalid region name")
)
