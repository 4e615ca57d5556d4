package gltf

// Buffer is a raw byte blob. A buffer with no URI refers to the binary
// chunk of the enclosing GLB container (at most one such buffer per
// document, and it must be buffer 0).
type Buffer struct {
	URI        string     `json:"uri,omitempty"`
	ByteLength uint64     `json:"byteLength"`
	Name       string     `json:"name,omitempty"`
	Extensions Extensions `json:"extensions,omitempty"`
	Extras     Extras     `json:"extras,omitempty"`
}

// Embedded reports whether the buffer's bytes live in the GLB binary
// chunk rather than behind a URI.
func (b *Buffer) Embedded() bool {
	return b.URI == ""
}

// BufferView is a contiguous sub-range of a buffer, optionally with an
// interleaving stride for vertex attributes.
type BufferView struct {
	Buffer     Index[Buffer] `json:"buffer"`
	ByteOffset uint64        `json:"byteOffset,omitempty"`
	ByteLength uint64        `json:"byteLength"`
	ByteStride *uint64       `json:"byteStride,omitempty"`
	Target     *BufferTarget `json:"target,omitempty"`
	Name       string        `json:"name,omitempty"`
	Extensions Extensions    `json:"extensions,omitempty"`
	Extras     Extras        `json:"extras,omitempty"`
}
