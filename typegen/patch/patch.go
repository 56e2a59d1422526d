// Package patch splices generated fragments into existing text documents at
// marker lines.
package patch

import (
	"os"
	"strings"

	"github.com/teranos/rbxtypes/am"
	"github.com/teranos/rbxtypes/errors"
	"github.com/teranos/rbxtypes/logger"
)

// Document is a text split into lines. Every line keeps its own terminator,
// so String reproduces the input exactly.
type Document []string

// Strategy selects how fragments are spliced in after the anchor line
type Strategy int

const (
	// StrategyTruncate keeps lines up to and including the anchor, then the
	// fragments. Everything after the anchor is dropped.
	StrategyTruncate Strategy = iota

	// StrategyReplacePlaceholder keeps lines up to and including the anchor,
	// then the fragments, then everything after the line that follows the
	// anchor. That following line is the placeholder and is replaced.
	StrategyReplacePlaceholder
)

func (s Strategy) String() string {
	switch s {
	case StrategyTruncate:
		return "truncate"
	case StrategyReplacePlaceholder:
		return "replace-placeholder"
	default:
		return "unknown"
	}
}

// Split breaks text into lines, each ending in "\n" except possibly the last
func Split(text string) Document {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// String joins the lines back together
func (d Document) String() string {
	return strings.Join(d, "")
}

// FindAnchor returns the index of the first line containing marker
func FindAnchor(doc Document, marker string) (int, error) {
	for i, line := range doc {
		if strings.Contains(line, marker) {
			return i, nil
		}
	}
	return -1, errors.WithHintf(
		errors.Wrapf(errors.ErrAnchorNotFound, "marker %q", marker),
		"add a line containing %q to the document", marker)
}

// Apply splices fragments in after the anchor line. The input document is not
// modified.
func Apply(doc Document, marker string, fragments []string, strategy Strategy) (Document, error) {
	i, err := FindAnchor(doc, marker)
	if err != nil {
		return nil, err
	}

	out := make(Document, 0, len(doc)+len(fragments))
	out = append(out, doc[:i+1]...)
	if len(fragments) > 0 && !strings.HasSuffix(out[i], "\n") {
		// anchor is the unterminated last line
		out[i] += "\n"
	}
	out = append(out, fragments...)

	switch strategy {
	case StrategyTruncate:
	case StrategyReplacePlaceholder:
		if i+2 < len(doc) {
			out = append(out, doc[i+2:]...)
		}
	default:
		return nil, errors.Newf("unknown patch strategy %d", int(strategy))
	}
	return out, nil
}

// ReadFile reads a whole document from disk
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return Split(string(data)), nil
}

// WriteFile replaces the file at path with the document
func WriteFile(path string, doc Document) error {
	if err := os.WriteFile(path, []byte(doc.String()), am.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// Prepare reads the whole file at path and returns it with fragments applied at
// marker. The file is closed before Prepare returns, so the result can be
// written back to the same path with WriteFile.
func Prepare(path, marker string, fragments []string, strategy Strategy) (Document, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	patched, err := Apply(doc, marker, fragments, strategy)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to patch %s", path)
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputPatchOps) {
		logger.ComponentLogger("typegen.patch").Debugw("Prepared patch",
			logger.FieldOutput, logger.CategoryName(logger.OutputPatchOps),
			logger.FieldFile, path,
			logger.FieldAnchor, marker,
			logger.FieldStrategy, strategy.String(),
			logger.FieldCount, len(fragments),
			"lines_before", len(doc),
			"lines_after", len(patched))
	}
	return patched, nil
}
