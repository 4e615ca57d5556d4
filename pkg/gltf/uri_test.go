package gltf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/gltfkit/pkg/glb"
)

func TestLoadDataURIBase64(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"buffers":[{"uri":"data:application/octet-stream;base64,AQIDBA==","byteLength":4}]}`

	_, res, err := Load([]byte(doc), "", Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(res.Buffers[0], []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected buffer bytes: %v", res.Buffers[0])
	}
}

func TestLoadDataURIPercentEncoded(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"buffers":[{"uri":"data:,Hello%2C%20World","byteLength":12}]}`

	_, res, err := Load([]byte(doc), "", Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(res.Buffers[0]) != "Hello, World" {
		t.Errorf("unexpected buffer bytes: %q", res.Buffers[0])
	}
}

func TestLoadDataURIMalformed(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"no comma", "data:application/octet-stream;base64"},
		{"bad base64", "data:;base64,!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"asset":{"version":"2.0"},"buffers":[{"uri":"` + tt.uri + `","byteLength":4}]}`
			_, _, err := Load([]byte(doc), "", Options{})
			if !errors.Is(err, ErrInvalidURI) {
				t.Errorf("expected ErrInvalidURI, got %v", err)
			}
		})
	}
}

func TestLoadEmbeddedPayload(t *testing.T) {
	c := &glb.Container{
		JSON: []byte(`{"asset":{"version":"2.0"},"buffers":[{"byteLength":4}]}`),
		BIN:  []byte{1, 2, 3, 4},
	}
	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, res, err := Load(data, "", Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(res.Buffers[0], []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected buffer bytes: %v", res.Buffers[0])
	}
}

func TestLoadEmbeddedPayloadTruncatesPadding(t *testing.T) {
	// Payload is padded to 4 bytes but the buffer declares 3
	c := &glb.Container{
		JSON: []byte(`{"asset":{"version":"2.0"},"buffers":[{"byteLength":3}]}`),
		BIN:  []byte{1, 2, 3},
	}
	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, res, err := Load(data, "", Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(res.Buffers[0]) != 3 {
		t.Errorf("expected 3 buffer bytes after trimming padding, got %d", len(res.Buffers[0]))
	}
}

func TestLoadMissingPayload(t *testing.T) {
	// URI-less buffer in a bare JSON document has nothing to bind to
	doc := `{"asset":{"version":"2.0"},"buffers":[{"byteLength":4}]}`

	_, _, err := Load([]byte(doc), "", Options{})
	if !errors.Is(err, ErrMissingPayload) {
		t.Errorf("expected ErrMissingPayload, got %v", err)
	}
}

func TestLoadPayloadMustBeFirstBuffer(t *testing.T) {
	c := &glb.Container{
		JSON: []byte(`{"asset":{"version":"2.0"},"buffers":[` +
			`{"uri":"data:;base64,AQIDBA==","byteLength":4},` +
			`{"byteLength":4}]}`),
		BIN: []byte{1, 2, 3, 4},
	}
	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, _, err = Load(data, "", Options{})
	if !errors.Is(err, ErrMissingPayload) {
		t.Errorf("expected ErrMissingPayload for payload buffer at index 1, got %v", err)
	}
}

func TestLoadShortBuffer(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"buffers":[{"uri":"data:;base64,AQIDBA==","byteLength":10}]}`

	_, _, err := Load([]byte(doc), "", Options{})
	if !errors.Is(err, ErrBufferSizeMismatch) {
		t.Errorf("expected ErrBufferSizeMismatch, got %v", err)
	}
}

func TestLoadExternalFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.bin"), []byte{9, 8, 7, 6}, 0644); err != nil {
		t.Fatalf("failed to write test buffer: %v", err)
	}

	doc := `{"asset":{"version":"2.0"},"buffers":[{"uri":"data.bin","byteLength":4}]}`

	_, res, err := Load([]byte(doc), dir, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(res.Buffers[0], []byte{9, 8, 7, 6}) {
		t.Errorf("unexpected buffer bytes: %v", res.Buffers[0])
	}
}

func TestLoadExternalFileEscapedURI(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "my data.bin"), []byte{1, 2}, 0644); err != nil {
		t.Fatalf("failed to write test buffer: %v", err)
	}

	doc := `{"asset":{"version":"2.0"},"buffers":[{"uri":"my%20data.bin","byteLength":2}]}`

	_, res, err := Load([]byte(doc), dir, Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(res.Buffers[0], []byte{1, 2}) {
		t.Errorf("unexpected buffer bytes: %v", res.Buffers[0])
	}
}

func TestLoadSkipExternalReferences(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"buffers":[{"uri":"does-not-exist.bin","byteLength":4}]}`

	_, res, err := Load([]byte(doc), "", Options{SkipExternalReferences: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.Buffers[0] != nil {
		t.Errorf("expected nil entry for skipped external buffer, got %v", res.Buffers[0])
	}

	// The resolver surfaces the skip as a typed error
	if _, err := res.Buffer(0); !errors.Is(err, ErrExternalReference) {
		t.Errorf("expected ErrExternalReference, got %v", err)
	}
}

func TestLoadSkipExternalImageFromBufferView(t *testing.T) {
	// An image backed by a view over a skipped external buffer is itself
	// a skipped entry, not a load failure
	doc := `{
		"asset": {"version": "2.0"},
		"buffers": [{"uri": "does-not-exist.bin", "byteLength": 4}],
		"bufferViews": [{"buffer": 0, "byteLength": 4}],
		"images": [{"bufferView": 0, "mimeType": "image/png"}]
	}`

	_, res, err := Load([]byte(doc), "", Options{SkipExternalReferences: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.Buffers[0] != nil {
		t.Errorf("expected nil entry for skipped external buffer, got %v", res.Buffers[0])
	}
	if res.Images[0] != nil {
		t.Errorf("expected nil entry for image over skipped buffer, got %v", res.Images[0])
	}
}

func TestResourcesBufferOutOfRange(t *testing.T) {
	res := &Resources{Buffers: [][]byte{{1}}}
	if _, err := res.Buffer(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestLoadImageDataURI(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"images":[{"uri":"data:image/png;base64,AQIDBA=="}]}`

	_, res, err := Load([]byte(doc), "", Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(res.Images[0], []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected image bytes: %v", res.Images[0])
	}
}

func TestLoadImageFromBufferView(t *testing.T) {
	doc := `{
		"asset": {"version": "2.0"},
		"buffers": [{"uri": "data:;base64,AQIDBA==", "byteLength": 4}],
		"bufferViews": [{"buffer": 0, "byteOffset": 1, "byteLength": 2}],
		"images": [{"bufferView": 0, "mimeType": "image/png"}]
	}`

	_, res, err := Load([]byte(doc), "", Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(res.Images[0], []byte{2, 3}) {
		t.Errorf("unexpected image bytes: %v", res.Images[0])
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "geom.bin"), []byte{1, 2, 3, 4}, 0644); err != nil {
		t.Fatalf("failed to write test buffer: %v", err)
	}
	doc := `{"asset":{"version":"2.0"},"buffers":[{"uri":"geom.bin","byteLength":4}]}`
	path := filepath.Join(dir, "scene.gltf")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write test document: %v", err)
	}

	// Buffers resolve relative to the document's directory
	_, res, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !bytes.Equal(res.Buffers[0], []byte{1, 2, 3, 4}) {
		t.Errorf("unexpected buffer bytes: %v", res.Buffers[0])
	}
}
