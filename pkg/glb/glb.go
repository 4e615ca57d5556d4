// Package glb reads and writes the binary glTF (GLB) container format.
//
// A GLB file is a 12-byte header followed by a sequence of chunks. The
// first chunk holds the JSON document and is mandatory; a single optional
// BIN chunk holding raw buffer data may follow it. All integers are
// little-endian.
package glb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Magic is the 4-byte token that opens every GLB file ("glTF").
const Magic uint32 = 0x46546C67

// Version is the container version this package reads and writes.
const Version uint32 = 2

// Chunk type tokens.
const (
	ChunkJSON uint32 = 0x4E4F534A // "JSON"
	ChunkBIN  uint32 = 0x004E4942 // "BIN\0"
)

const (
	headerSize      = 12
	chunkHeaderSize = 8
)

// GLB container errors.
var (
	ErrNotBinary          = errors.New("glb: missing glTF magic")
	ErrTruncated          = errors.New("glb: truncated data")
	ErrUnsupportedVersion = errors.New("glb: unsupported container version")
	ErrLengthMismatch     = errors.New("glb: header length does not match file length")
	ErrMissingJSONChunk   = errors.New("glb: missing JSON chunk")
	ErrChunkOutOfOrder    = errors.New("glb: chunk out of order")
	ErrUnknownChunkType   = errors.New("glb: unknown chunk type")
	ErrTooLarge           = errors.New("glb: encoded length exceeds uint32 range")
)

// Container holds the demultiplexed chunks of a GLB file.
//
// BIN is nil when the file carries no binary chunk. An empty but present
// BIN chunk is represented by a non-nil empty slice and is preserved on
// re-encode.
type Container struct {
	JSON []byte
	BIN  []byte
}

// IsBinary reports whether data starts with the GLB magic token.
func IsBinary(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data) == Magic
}

// Parse demultiplexes a GLB byte slice into its JSON and BIN chunks.
//
// Trailing space padding is stripped from the JSON chunk. BIN padding is
// left in place since only buffer.byteLength in the document can tell
// payload bytes from padding.
func Parse(data []byte) (*Container, error) {
	if !IsBinary(data) {
		return nil, ErrNotBinary
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d byte header", ErrTruncated, len(data))
	}

	version := binary.LittleEndian.Uint32(data[4:8])
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	total := binary.LittleEndian.Uint32(data[8:12])
	if uint64(total) != uint64(len(data)) {
		return nil, fmt.Errorf("%w: header says %d, have %d", ErrLengthMismatch, total, len(data))
	}

	c := &Container{}
	seenJSON := false
	seenBIN := false

	offset := headerSize
	for offset < len(data) {
		if len(data)-offset < chunkHeaderSize {
			return nil, fmt.Errorf("%w: %d trailing bytes", ErrTruncated, len(data)-offset)
		}
		length := binary.LittleEndian.Uint32(data[offset:])
		chunkType := binary.LittleEndian.Uint32(data[offset+4:])
		offset += chunkHeaderSize

		if uint64(length) > uint64(len(data)-offset) {
			return nil, fmt.Errorf("%w: chunk %s wants %d bytes, %d remain",
				ErrTruncated, chunkTypeString(chunkType), length, len(data)-offset)
		}
		body := data[offset : offset+int(length)]

		switch chunkType {
		case ChunkJSON:
			if seenBIN {
				return nil, fmt.Errorf("%w: JSON chunk after BIN", ErrChunkOutOfOrder)
			}
			if seenJSON {
				return nil, fmt.Errorf("%w: multiple JSON chunks", ErrChunkOutOfOrder)
			}
			c.JSON = bytes.TrimRight(body, "\x20")
			seenJSON = true
		case ChunkBIN:
			if !seenJSON {
				return nil, fmt.Errorf("%w: BIN chunk before JSON", ErrChunkOutOfOrder)
			}
			if seenBIN {
				return nil, fmt.Errorf("%w: multiple BIN chunks", ErrChunkOutOfOrder)
			}
			c.BIN = body
			seenBIN = true
		default:
			return nil, fmt.Errorf("%w: 0x%08x", ErrUnknownChunkType, chunkType)
		}

		offset += int(length)
		// Tolerate writers that exclude alignment padding from chunkLength.
		if rem := offset % 4; rem != 0 {
			offset += 4 - rem
		}
	}

	if !seenJSON {
		return nil, ErrMissingJSONChunk
	}
	return c, nil
}

// ParseReader reads an entire GLB stream and demultiplexes it.
func ParseReader(r io.Reader) (*Container, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("glb: reading stream: %w", err)
	}
	return Parse(data)
}

// ParseFile reads a GLB file from disk.
func ParseFile(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glb: reading file: %w", err)
	}
	return Parse(data)
}

// Encode serializes the container back to GLB bytes, re-adding alignment
// padding (spaces for JSON, zero bytes for BIN).
func (c *Container) Encode() ([]byte, error) {
	total, err := c.encodedLength()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, total))
	if _, err := c.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the container in GLB form to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	total, err := c.encodedLength()
	if err != nil {
		return 0, err
	}

	var written int64
	put := func(p []byte) error {
		n, err := w.Write(p)
		written += int64(n)
		return err
	}
	putU32 := func(v uint32) error {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		return put(b[:])
	}

	if err := putU32(Magic); err != nil {
		return written, err
	}
	if err := putU32(Version); err != nil {
		return written, err
	}
	if err := putU32(uint32(total)); err != nil {
		return written, err
	}

	if err := writeChunk(putU32, put, ChunkJSON, c.JSON, 0x20); err != nil {
		return written, err
	}
	if c.BIN != nil {
		if err := writeChunk(putU32, put, ChunkBIN, c.BIN, 0x00); err != nil {
			return written, err
		}
	}
	return written, nil
}

func writeChunk(putU32 func(uint32) error, put func([]byte) error, chunkType uint32, body []byte, pad byte) error {
	padded := alignUp(uint64(len(body)))
	if err := putU32(uint32(padded)); err != nil {
		return err
	}
	if err := putU32(chunkType); err != nil {
		return err
	}
	if err := put(body); err != nil {
		return err
	}
	for i := uint64(len(body)); i < padded; i++ {
		if err := put([]byte{pad}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) encodedLength() (uint64, error) {
	total := uint64(headerSize) + chunkHeaderSize + alignUp(uint64(len(c.JSON)))
	if c.BIN != nil {
		total += chunkHeaderSize + alignUp(uint64(len(c.BIN)))
	}
	if total > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, total)
	}
	return total, nil
}

func alignUp(n uint64) uint64 {
	return (n + 3) &^ 3
}

func chunkTypeString(t uint32) string {
	switch t {
	case ChunkJSON:
		return "JSON"
	case ChunkBIN:
		return "BIN"
	default:
		return fmt.Sprintf("0x%08x", t)
	}
}
