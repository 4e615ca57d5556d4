package gltf

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Buffer and image resolution errors.
var (
	ErrMissingPayload     = errors.New("gltf: buffer refers to a missing GLB payload")
	ErrBufferSizeMismatch = errors.New("gltf: resolved buffer shorter than declared byteLength")
	ErrInvalidURI         = errors.New("gltf: invalid resource URI")
	ErrExternalReference  = errors.New("gltf: external reference not followed")
)

// Resources holds resolved buffer and image bytes, indexed like the
// document's Buffers and Images arrays. Entries stay nil when external
// resolution was skipped.
type Resources struct {
	Buffers [][]byte
	Images  [][]byte
}

// Buffer returns the resolved bytes of a buffer. It satisfies
// BufferResolver via Resolver.
func (r *Resources) Buffer(idx Index[Buffer]) ([]byte, error) {
	if int(idx) >= len(r.Buffers) {
		return nil, fmt.Errorf("%w: buffer %d of %d", ErrIndexOutOfRange, idx, len(r.Buffers))
	}
	data := r.Buffers[idx]
	if data == nil {
		return nil, fmt.Errorf("%w: buffer %d", ErrExternalReference, idx)
	}
	return data, nil
}

// Resolver adapts the resources to the accessor reader's callback.
func (r *Resources) Resolver() BufferResolver {
	return r.Buffer
}

// Load parses a glTF or GLB byte slice and resolves every buffer and
// image to owned bytes. Relative URIs resolve against baseDir; data URIs
// decode in place; a URI-less buffer binds to the GLB payload. With
// opts.SkipExternalReferences set, file-backed entries are left nil
// instead of read from disk.
func Load(data []byte, baseDir string, opts Options) (*Document, *Resources, error) {
	doc, bin, err := ParseWithOptions(data, opts)
	if err != nil {
		return nil, nil, err
	}

	res := &Resources{
		Buffers: make([][]byte, len(doc.Buffers)),
		Images:  make([][]byte, len(doc.Images)),
	}

	for i := range doc.Buffers {
		buffer := &doc.Buffers[i]
		payload, err := resolveBuffer(buffer, i, bin, baseDir, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("buffers[%d]: %w", i, err)
		}
		if payload != nil {
			if uint64(len(payload)) < buffer.ByteLength {
				return nil, nil, fmt.Errorf("buffers[%d]: %w: have %d, declared %d",
					i, ErrBufferSizeMismatch, len(payload), buffer.ByteLength)
			}
			// Trailing padding beyond byteLength is not buffer data.
			payload = payload[:buffer.ByteLength]
		}
		res.Buffers[i] = payload
	}

	for i := range doc.Images {
		image := &doc.Images[i]
		pixels, err := resolveImage(doc, image, res, baseDir, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("images[%d]: %w", i, err)
		}
		res.Images[i] = pixels
	}

	return doc, res, nil
}

// LoadFile reads a .gltf or .glb file and resolves its resources
// relative to the file's directory.
func LoadFile(path string) (*Document, *Resources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("gltf: reading file: %w", err)
	}
	return Load(data, filepath.Dir(path), Options{})
}

func resolveBuffer(buffer *Buffer, i int, bin []byte, baseDir string, opts Options) ([]byte, error) {
	switch {
	case buffer.Embedded():
		// The format allows exactly one payload-backed buffer and it
		// must be the first.
		if i != 0 || bin == nil {
			return nil, ErrMissingPayload
		}
		return bin, nil
	case isDataURI(buffer.URI):
		return decodeDataURI(buffer.URI)
	default:
		if opts.SkipExternalReferences {
			return nil, nil
		}
		return readRelative(baseDir, buffer.URI)
	}
}

func resolveImage(doc *Document, image *Image, res *Resources, baseDir string, opts Options) ([]byte, error) {
	switch {
	case image.BufferView != nil:
		view, err := Resolve(*image.BufferView, doc.BufferViews)
		if err != nil {
			return nil, err
		}
		data, err := viewBytes(view, res.Buffer)
		if err != nil {
			// A view over a skipped external buffer makes the image a
			// skipped entry too, not a failure.
			if opts.SkipExternalReferences && errors.Is(err, ErrExternalReference) {
				return nil, nil
			}
			return nil, err
		}
		return data, nil
	case isDataURI(image.URI):
		return decodeDataURI(image.URI)
	case image.URI != "":
		if opts.SkipExternalReferences {
			return nil, nil
		}
		return readRelative(baseDir, image.URI)
	default:
		return nil, nil
	}
}

func readRelative(baseDir, uri string) ([]byte, error) {
	rel, err := url.PathUnescape(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidURI, uri, err)
	}
	data, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	return data, nil
}

func isDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}

// decodeDataURI decodes base64 and percent-encoded data URIs.
func decodeDataURI(uri string) ([]byte, error) {
	meta, encoded, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI without comma", ErrInvalidURI)
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
		}
		return data, nil
	}
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	return []byte(decoded), nil
}
