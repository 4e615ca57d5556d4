// Package gltf implements a loader and decoder for glTF 2.0 assets: the
// JSON document model, cross-reference validation, and a lazy accessor
// reading engine over caller-resolved buffer bytes.
//
// Parsing, validation, and decoding are pure functions over immutable
// input. The package performs no I/O of its own except in the explicit
// LoadFile/ParseFile convenience entry points; buffer resolution is
// injected into the accessor reader as a callback.
package gltf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Faultbox/gltfkit/pkg/glb"
)

// Document decode errors.
var (
	ErrDocumentSyntax     = errors.New("gltf: malformed JSON document")
	ErrUnsupportedVersion = errors.New("gltf: unsupported asset version")
)

// Options controls document decoding.
type Options struct {
	// SkipValidation disables the cross-reference validation pass that
	// normally runs after decoding.
	SkipValidation bool

	// DisallowUnknownFields makes decoding fail on JSON fields outside
	// the schema instead of preserving them opaquely.
	DisallowUnknownFields bool

	// SkipExternalReferences stops Load from reading file-backed buffer
	// and image URIs; their Resources entries stay nil. Embedded
	// payloads and data URIs are still resolved. Parse ignores this.
	SkipExternalReferences bool
}

// Parse decodes a glTF asset from bytes, auto-detecting the GLB container
// versus a bare JSON document, and validates it. The second return value
// is the embedded binary payload, nil for bare JSON documents and GLB
// files without a BIN chunk.
func Parse(data []byte) (*Document, []byte, error) {
	return ParseWithOptions(data, Options{})
}

// ParseWithOptions is Parse with explicit decode options.
func ParseWithOptions(data []byte, opts Options) (*Document, []byte, error) {
	jsonBytes := data
	var bin []byte
	if glb.IsBinary(data) {
		container, err := glb.Parse(data)
		if err != nil {
			return nil, nil, err
		}
		jsonBytes = container.JSON
		bin = container.BIN
	}

	doc, err := decodeDocument(jsonBytes, opts)
	if err != nil {
		return nil, nil, err
	}
	if !opts.SkipValidation {
		if err := doc.Validate(); err != nil {
			return nil, nil, err
		}
	}
	return doc, bin, nil
}

// ParseReader reads a complete glTF or GLB stream and decodes it.
func ParseReader(r io.Reader, opts Options) (*Document, []byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("gltf: reading stream: %w", err)
	}
	return ParseWithOptions(data, opts)
}

// ParseFile decodes a .gltf or .glb file from disk. External buffers and
// images are not followed; use LoadFile for that.
func ParseFile(path string) (*Document, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("gltf: reading file: %w", err)
	}
	return Parse(data)
}

func decodeDocument(jsonBytes []byte, opts Options) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	if opts.DisallowUnknownFields {
		dec.DisallowUnknownFields()
	}

	doc := &Document{}
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentSyntax, err)
	}
	// Decode stops at the end of the first value; the whole input must
	// be the document.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrDocumentSyntax)
	}

	if major, _, _ := strings.Cut(doc.Asset.Version, "."); major != "2" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, doc.Asset.Version)
	}

	doc.assignDefaults()
	return doc, nil
}
