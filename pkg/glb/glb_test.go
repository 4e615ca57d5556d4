package glb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildGLB assembles raw container bytes from (chunkType, body) pairs,
// writing the declared lengths verbatim so tests can craft corrupt files.
type rawChunk struct {
	length    uint32
	chunkType uint32
	body      []byte
}

func buildGLB(version uint32, chunks ...rawChunk) []byte {
	var buf bytes.Buffer
	u32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf.Write(b[:])
	}

	total := uint32(12)
	for _, c := range chunks {
		total += 8 + uint32(len(c.body))
	}

	u32(Magic)
	u32(version)
	u32(total)
	for _, c := range chunks {
		u32(c.length)
		u32(c.chunkType)
		buf.Write(c.body)
	}
	return buf.Bytes()
}

func paddedJSON(doc string) []byte {
	body := []byte(doc)
	for len(body)%4 != 0 {
		body = append(body, 0x20)
	}
	return body
}

func TestIsBinary(t *testing.T) {
	json := paddedJSON(`{"asset":{"version":"2.0"}}`)
	data := buildGLB(Version, rawChunk{uint32(len(json)), ChunkJSON, json})

	if !IsBinary(data) {
		t.Error("expected GLB bytes to be detected as binary")
	}
	if IsBinary([]byte(`{"asset":{"version":"2.0"}}`)) {
		t.Error("expected JSON bytes to not be detected as binary")
	}
	if IsBinary([]byte{0x67, 0x6C}) {
		t.Error("expected short input to not be detected as binary")
	}
}

func TestParse(t *testing.T) {
	json := paddedJSON(`{"asset":{"version":"2.0"}}`)
	bin := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	data := buildGLB(Version,
		rawChunk{uint32(len(json)), ChunkJSON, json},
		rawChunk{uint32(len(bin)), ChunkBIN, bin},
	)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Trailing space padding must be stripped from the JSON chunk
	if got := string(c.JSON); got != `{"asset":{"version":"2.0"}}` {
		t.Errorf("unexpected JSON chunk: %q", got)
	}
	if !bytes.Equal(c.BIN, bin) {
		t.Errorf("unexpected BIN chunk: %v", c.BIN)
	}
}

func TestParseWithoutBIN(t *testing.T) {
	json := paddedJSON(`{"asset":{"version":"2.0"}}`)
	data := buildGLB(Version, rawChunk{uint32(len(json)), ChunkJSON, json})

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.BIN != nil {
		t.Errorf("expected nil BIN for container without binary chunk, got %v", c.BIN)
	}
}

func TestParseUnpaddedChunkLength(t *testing.T) {
	// Some writers declare chunkLength without the alignment padding.
	// The parser rounds the cursor up to the next 4-byte boundary.
	doc := `{"asset":{"version":"2.0"}} ` // 28 bytes, 27 declared
	body := []byte(doc)
	bin := []byte{9, 9, 9, 9}

	data := buildGLB(Version,
		rawChunk{uint32(len(body)) - 1, ChunkJSON, body},
		rawChunk{uint32(len(bin)), ChunkBIN, bin},
	)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !bytes.Equal(c.BIN, bin) {
		t.Errorf("unexpected BIN chunk: %v", c.BIN)
	}
}

func TestParseErrors(t *testing.T) {
	json := paddedJSON(`{"asset":{"version":"2.0"}}`)
	bin := []byte{1, 2, 3, 4}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{
			name: "not binary",
			data: []byte(`{"asset":{"version":"2.0"}}`),
			want: ErrNotBinary,
		},
		{
			name: "unsupported version",
			data: buildGLB(1, rawChunk{uint32(len(json)), ChunkJSON, json}),
			want: ErrUnsupportedVersion,
		},
		{
			name: "missing JSON chunk",
			data: buildGLB(Version),
			want: ErrMissingJSONChunk,
		},
		{
			name: "BIN before JSON",
			data: buildGLB(Version,
				rawChunk{uint32(len(bin)), ChunkBIN, bin},
				rawChunk{uint32(len(json)), ChunkJSON, json},
			),
			want: ErrChunkOutOfOrder,
		},
		{
			name: "duplicate BIN chunk",
			data: buildGLB(Version,
				rawChunk{uint32(len(json)), ChunkJSON, json},
				rawChunk{uint32(len(bin)), ChunkBIN, bin},
				rawChunk{uint32(len(bin)), ChunkBIN, bin},
			),
			want: ErrChunkOutOfOrder,
		},
		{
			name: "duplicate JSON chunk",
			data: buildGLB(Version,
				rawChunk{uint32(len(json)), ChunkJSON, json},
				rawChunk{uint32(len(json)), ChunkJSON, json},
			),
			want: ErrChunkOutOfOrder,
		},
		{
			name: "unknown chunk type",
			data: buildGLB(Version,
				rawChunk{uint32(len(json)), ChunkJSON, json},
				rawChunk{uint32(len(bin)), 0xDEADBEEF, bin},
			),
			want: ErrUnknownChunkType,
		},
		{
			name: "chunk length past end",
			data: buildGLB(Version,
				rawChunk{uint32(len(json)) + 100, ChunkJSON, json},
			),
			want: ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseLengthMismatch(t *testing.T) {
	json := paddedJSON(`{"asset":{"version":"2.0"}}`)
	data := buildGLB(Version, rawChunk{uint32(len(json)), ChunkJSON, json})

	// Shorter than the header claims
	if _, err := Parse(data[:len(data)-4]); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch for short file, got %v", err)
	}

	// Longer than the header claims
	if _, err := Parse(append(data, 0, 0, 0, 0)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch for long file, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	orig := &Container{
		JSON: []byte(`{"asset":{"version":"2.0"}}`),
		BIN:  []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}

	data, err := orig.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(data)%4 != 0 {
		t.Errorf("encoded length %d not 4-byte aligned", len(data))
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !bytes.Equal(got.JSON, orig.JSON) {
		t.Errorf("JSON round trip mismatch: %q", got.JSON)
	}
	if !bytes.Equal(got.BIN, orig.BIN) {
		t.Errorf("BIN round trip mismatch: %v", got.BIN)
	}
}

func TestEncodePadding(t *testing.T) {
	// 27-byte JSON pads to 28 with spaces, 3-byte BIN pads to 4 with zeroes
	c := &Container{
		JSON: []byte(`{"asset":{"version":"2.0"}}`),
		BIN:  []byte{1, 2, 3},
	}

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	jsonLen := binary.LittleEndian.Uint32(data[12:16])
	if jsonLen != 28 {
		t.Errorf("expected padded JSON chunk length 28, got %d", jsonLen)
	}
	if data[12+8+27] != 0x20 {
		t.Errorf("expected space padding after JSON, got 0x%02x", data[12+8+27])
	}

	binChunk := 12 + 8 + 28
	binLen := binary.LittleEndian.Uint32(data[binChunk : binChunk+4])
	if binLen != 4 {
		t.Errorf("expected padded BIN chunk length 4, got %d", binLen)
	}
	if data[binChunk+8+3] != 0x00 {
		t.Errorf("expected zero padding after BIN, got 0x%02x", data[binChunk+8+3])
	}
}

func TestEncodeEmptyBINPreserved(t *testing.T) {
	c := &Container{
		JSON: []byte(`{"asset":{"version":"2.0"}} `),
		BIN:  []byte{},
	}

	data, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got.BIN == nil {
		t.Error("expected empty BIN chunk to survive a round trip")
	}
	if len(got.BIN) != 0 {
		t.Errorf("expected empty BIN chunk, got %d bytes", len(got.BIN))
	}
}

func TestWriteTo(t *testing.T) {
	c := &Container{
		JSON: []byte(`{"asset":{"version":"2.0"}}`),
		BIN:  []byte{1, 2, 3, 4},
	}

	encoded, err := c.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo returned %d, wrote %d bytes", n, buf.Len())
	}
	if !bytes.Equal(buf.Bytes(), encoded) {
		t.Error("WriteTo output differs from Encode")
	}
}

func TestParseReader(t *testing.T) {
	json := paddedJSON(`{"asset":{"version":"2.0"}}`)
	data := buildGLB(Version, rawChunk{uint32(len(json)), ChunkJSON, json})

	c, err := ParseReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}
	if string(c.JSON) != `{"asset":{"version":"2.0"}}` {
		t.Errorf("unexpected JSON chunk: %q", c.JSON)
	}
}
