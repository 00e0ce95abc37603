package node

import (
	"bytes"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasedit/oaserrors"
)

// ParseOption configures a Parse call.
type ParseOption func(*parseConfig)

type parseConfig struct {
	source string
}

// WithSource records a source identifier (typically the file path) used in
// error messages and available later via Document.Source.
func WithSource(source string) ParseOption {
	return func(cfg *parseConfig) {
		cfg.source = source
	}
}

// DetectFormat sniffs whether data is JSON or YAML. A document whose first
// non-whitespace byte opens a JSON object or array is treated as JSON;
// everything else is YAML.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Parse builds a Document from raw text.
//
// JSON input is parsed through the YAML reader (JSON is a YAML subset), so
// both formats produce the same provenance-carrying node tree; the format
// tag only controls how Serialize writes the document back out.
//
// Parse fails with an [oaserrors.ParseError] of kind ParseSyntax for
// malformed input and kind ParseDuplicateKey when any mapping declares the
// same key twice. No schema validation happens here: an arbitrary mapping
// document parses fine, and structural expectations are checked lazily by
// the specview package.
func Parse(data []byte, format Format, opts ...ParseOption) (*Document, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if format == FormatAuto || format == "" {
		format = DetectFormat(data)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, syntaxError(cfg.source, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &oaserrors.ParseError{
			Source:  cfg.source,
			Kind:    oaserrors.ParseSyntax,
			Message: "document is empty",
		}
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{
			Source:  cfg.source,
			Kind:    oaserrors.ParseSyntax,
			Line:    root.Content[0].Line,
			Column:  root.Content[0].Column,
			Message: "document root must be a mapping",
		}
	}

	if err := checkDuplicateKeys(cfg.source, root.Content[0]); err != nil {
		return nil, err
	}

	return &Document{doc: &root, format: format, source: cfg.source}, nil
}

// checkDuplicateKeys walks the tree rejecting mappings that declare the same
// key twice. The YAML reader accepts duplicates silently when producing a
// node tree, so the check has to happen here; overwriting one entry with
// another would violate the model's uniqueness invariant without the author
// ever noticing.
func checkDuplicateKeys(source string, yn *yaml.Node) error {
	switch yn.Kind {
	case yaml.MappingNode:
		seen := make(map[string]bool, len(yn.Content)/2)
		for i := 0; i+1 < len(yn.Content); i += 2 {
			k := yn.Content[i]
			if k.Kind == yaml.ScalarNode {
				if seen[k.Value] {
					return &oaserrors.ParseError{
						Source: source,
						Kind:   oaserrors.ParseDuplicateKey,
						Line:   k.Line,
						Column: k.Column,
						Key:    k.Value,
					}
				}
				seen[k.Value] = true
			}
			if err := checkDuplicateKeys(source, yn.Content[i+1]); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, item := range yn.Content {
			if err := checkDuplicateKeys(source, item); err != nil {
				return err
			}
		}
	}
	return nil
}

// syntaxError converts a YAML reader error into a ParseError, recovering the
// line number from the conventional "yaml: line N:" message prefix when
// present.
func syntaxError(source string, err error) error {
	pe := &oaserrors.ParseError{
		Source: source,
		Kind:   oaserrors.ParseSyntax,
		Cause:  err,
	}
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, "yaml: line "); ok {
		if num, _, found := strings.Cut(rest, ":"); found {
			if line, convErr := strconv.Atoi(num); convErr == nil {
				pe.Line = line
			}
		}
	}
	return pe
}
