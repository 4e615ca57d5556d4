package gltf

// Accessor describes how a byte range is reinterpreted as a sequence of
// typed numeric elements. An accessor with no buffer view reads as all
// zeroes; the format uses that as the implicit base of fully sparse
// accessors.
type Accessor struct {
	BufferView    *Index[BufferView] `json:"bufferView,omitempty"`
	ByteOffset    uint64             `json:"byteOffset,omitempty"`
	ComponentType ComponentType      `json:"componentType"`
	Normalized    bool               `json:"normalized,omitempty"`
	Count         uint64             `json:"count"`
	Type          ElementType        `json:"type"`
	Max           []float64          `json:"max,omitempty"`
	Min           []float64          `json:"min,omitempty"`
	Sparse        *Sparse            `json:"sparse,omitempty"`
	Name          string             `json:"name,omitempty"`
	Extensions    Extensions         `json:"extensions,omitempty"`
	Extras        Extras             `json:"extras,omitempty"`
}

// ElementSize returns the packed size of one element in bytes.
func (a *Accessor) ElementSize() int {
	return a.ComponentType.Size() * a.Type.Components()
}

// Sparse overlays a small set of index/value overrides onto an accessor's
// base sequence.
type Sparse struct {
	Count      uint64        `json:"count"`
	Indices    SparseIndices `json:"indices"`
	Values     SparseValues  `json:"values"`
	Extensions Extensions    `json:"extensions,omitempty"`
	Extras     Extras        `json:"extras,omitempty"`
}

// SparseIndices locates the override target indices. The component type
// must be one of the unsigned integer formats.
type SparseIndices struct {
	BufferView    Index[BufferView] `json:"bufferView"`
	ByteOffset    uint64            `json:"byteOffset,omitempty"`
	ComponentType ComponentType     `json:"componentType"`
	Extensions    Extensions        `json:"extensions,omitempty"`
	Extras        Extras            `json:"extras,omitempty"`
}

// SparseValues locates the override values, laid out like the enclosing
// accessor's elements.
type SparseValues struct {
	BufferView Index[BufferView] `json:"bufferView"`
	ByteOffset uint64            `json:"byteOffset,omitempty"`
	Extensions Extensions        `json:"extensions,omitempty"`
	Extras     Extras            `json:"extras,omitempty"`
}
