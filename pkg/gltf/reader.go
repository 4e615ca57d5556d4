package gltf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Accessor decoding errors.
var (
	ErrAccessorBounds        = errors.New("gltf: accessor out of bounds")
	ErrSizeOverflow          = errors.New("gltf: size computation overflow")
	ErrUnsupportedConversion = errors.New("gltf: unsupported conversion")
)

// BufferResolver maps a buffer index to its resolved bytes. Resolution
// (file reads, data URIs, the GLB payload) is the caller's concern; the
// reader only borrows the returned slice for the duration of its calls.
type BufferResolver func(Index[Buffer]) ([]byte, error)

// AccessorReader lazily decodes the elements of one accessor. Every
// element is computed from its byte offset on demand; nothing is
// expanded eagerly, so an adversarial count costs no allocation beyond
// the bounds checks done at construction. A reader is restartable and
// safe for concurrent use once constructed.
type AccessorReader struct {
	compType   ComponentType
	elemType   ElementType
	normalized bool

	count     int
	compSize  int
	compCount int
	elemSize  int

	// base is the accessor's byte window, nil for the implicit all-zero
	// base of fully sparse accessors. stride is the distance between
	// element starts within base.
	base   []byte
	stride int

	// sparse maps an element index to its entry in sparseValues; built
	// in encounter order so duplicate indices resolve last-write-wins.
	sparse       map[uint64]int
	sparseValues []byte
}

// NewAccessorReader binds an accessor to resolved buffer bytes, proving
// every byte range it will touch before the first element is read. All
// bounds arithmetic is 64-bit and overflow-checked.
func NewAccessorReader(doc *Document, idx Index[Accessor], resolve BufferResolver) (*AccessorReader, error) {
	accessor, err := Resolve(idx, doc.Accessors)
	if err != nil {
		return nil, err
	}

	compSize := accessor.ComponentType.Size()
	compCount := accessor.Type.Components()
	if compSize == 0 || compCount == 0 {
		return nil, fmt.Errorf("%w: %s of %s", ErrInvalidCombination, accessor.Type, accessor.ComponentType)
	}
	if accessor.Normalized &&
		(!accessor.ComponentType.Integer() || accessor.ComponentType == ComponentUnsignedInt) {
		return nil, fmt.Errorf("%w: normalized %s", ErrInvalidCombination, accessor.ComponentType)
	}
	if accessor.Count > math.MaxInt32 {
		return nil, fmt.Errorf("%w: count %d", ErrSizeOverflow, accessor.Count)
	}

	r := &AccessorReader{
		compType:   accessor.ComponentType,
		elemType:   accessor.Type,
		normalized: accessor.Normalized,
		count:      int(accessor.Count),
		compSize:   compSize,
		compCount:  compCount,
		elemSize:   compSize * compCount,
	}

	if accessor.BufferView != nil {
		view, err := Resolve(*accessor.BufferView, doc.BufferViews)
		if err != nil {
			return nil, err
		}

		stride := uint64(r.elemSize)
		if view.ByteStride != nil {
			stride = *view.ByteStride
			if stride < uint64(r.elemSize) {
				return nil, fmt.Errorf("%w: byteStride %d below element size %d",
					ErrInvalidCombination, stride, r.elemSize)
			}
		}
		need, err := spanBytes(accessor.ByteOffset, stride, accessor.Count, uint64(r.elemSize))
		if err != nil {
			return nil, err
		}
		if need > view.ByteLength {
			return nil, fmt.Errorf("%w: accessor needs %d bytes, view has %d",
				ErrAccessorBounds, need, view.ByteLength)
		}

		window, err := viewBytes(view, resolve)
		if err != nil {
			return nil, err
		}
		r.base = window[accessor.ByteOffset:]
		r.stride = int(stride)
	}

	if accessor.Sparse != nil {
		if err := r.bindSparse(doc, accessor, resolve); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// viewBytes resolves a buffer view against the real resolved bytes,
// which may be shorter than the buffer's declared byteLength.
func viewBytes(view *BufferView, resolve BufferResolver) ([]byte, error) {
	data, err := resolve(view.Buffer)
	if err != nil {
		return nil, err
	}
	end, ok := addU64(view.ByteOffset, view.ByteLength)
	if !ok {
		return nil, fmt.Errorf("%w: view offset %d + length %d", ErrSizeOverflow, view.ByteOffset, view.ByteLength)
	}
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: view ends at %d, buffer has %d bytes", ErrAccessorBounds, end, len(data))
	}
	return data[view.ByteOffset:end], nil
}

func (r *AccessorReader) bindSparse(doc *Document, accessor *Accessor, resolve BufferResolver) error {
	sparse := accessor.Sparse
	if sparse.Count > accessor.Count {
		return fmt.Errorf("%w: sparse count %d exceeds accessor count %d",
			ErrAccessorBounds, sparse.Count, accessor.Count)
	}
	if !sparse.Indices.ComponentType.Unsigned() {
		return fmt.Errorf("%w: sparse indices of %s", ErrInvalidCombination, sparse.Indices.ComponentType)
	}

	indexSize := uint64(sparse.Indices.ComponentType.Size())
	indexBytes, err := r.substream(doc, sparse.Indices.BufferView, sparse.Indices.ByteOffset, sparse.Count, indexSize, resolve)
	if err != nil {
		return fmt.Errorf("sparse indices: %w", err)
	}
	valueBytes, err := r.substream(doc, sparse.Values.BufferView, sparse.Values.ByteOffset, sparse.Count, uint64(r.elemSize), resolve)
	if err != nil {
		return fmt.Errorf("sparse values: %w", err)
	}

	overlay := make(map[uint64]int, sparse.Count)
	for k := 0; k < int(sparse.Count); k++ {
		target := readUnsigned(indexBytes[k*int(indexSize):], sparse.Indices.ComponentType)
		if target >= accessor.Count {
			return fmt.Errorf("%w: sparse index %d outside count %d", ErrAccessorBounds, target, accessor.Count)
		}
		overlay[target] = k
	}
	r.sparse = overlay
	r.sparseValues = valueBytes
	return nil
}

// substream binds a packed sparse indices/values stream.
func (r *AccessorReader) substream(doc *Document, viewIdx Index[BufferView], offset, count, itemSize uint64, resolve BufferResolver) ([]byte, error) {
	view, err := Resolve(viewIdx, doc.BufferViews)
	if err != nil {
		return nil, err
	}
	need, err := spanBytes(offset, itemSize, count, itemSize)
	if err != nil {
		return nil, err
	}
	if need > view.ByteLength {
		return nil, fmt.Errorf("%w: needs %d bytes, view has %d", ErrAccessorBounds, need, view.ByteLength)
	}
	window, err := viewBytes(view, resolve)
	if err != nil {
		return nil, err
	}
	return window[offset:], nil
}

// Count returns the number of elements the reader produces.
func (r *AccessorReader) Count() int { return r.count }

// Components returns the number of components per element.
func (r *AccessorReader) Components() int { return r.compCount }

// ComponentType returns the accessor's component format.
func (r *AccessorReader) ComponentType() ComponentType { return r.compType }

// Type returns the accessor's element layout.
func (r *AccessorReader) Type() ElementType { return r.elemType }

// Normalized reports whether integer components map to a canonical float
// range.
func (r *AccessorReader) Normalized() bool { return r.normalized }

// elemBytes returns the raw bytes of element i, or nil when the element
// reads as all zeroes (implicit base with no sparse override).
func (r *AccessorReader) elemBytes(i int) []byte {
	if r.sparse != nil {
		if k, ok := r.sparse[uint64(i)]; ok {
			return r.sparseValues[k*r.elemSize : k*r.elemSize+r.elemSize]
		}
	}
	if r.base == nil {
		return nil
	}
	off := i * r.stride
	return r.base[off : off+r.elemSize]
}

func (r *AccessorReader) checkIndex(i int) error {
	if i < 0 || i >= r.count {
		return fmt.Errorf("%w: element %d of %d", ErrAccessorBounds, i, r.count)
	}
	return nil
}

// FloatAt decodes element i into float64 components. Normalized integer
// components map onto [0,1] or [-1,1]; non-normalized integers are cast
// without scaling. dst is reused when it has capacity.
func (r *AccessorReader) FloatAt(i int, dst []float64) ([]float64, error) {
	if err := r.checkIndex(i); err != nil {
		return nil, err
	}
	dst = growFloats(dst, r.compCount)

	raw := r.elemBytes(i)
	if raw == nil {
		for j := range dst {
			dst[j] = 0
		}
		return dst, nil
	}
	for j := 0; j < r.compCount; j++ {
		dst[j] = r.floatComponent(raw[j*r.compSize:])
	}
	return dst, nil
}

// UintAt decodes element i as native unsigned integer components. It
// fails for float and signed component types.
func (r *AccessorReader) UintAt(i int, dst []uint32) ([]uint32, error) {
	if !r.compType.Unsigned() {
		return nil, fmt.Errorf("%w: %s as unsigned", ErrUnsupportedConversion, r.compType)
	}
	if err := r.checkIndex(i); err != nil {
		return nil, err
	}
	dst = growUints(dst, r.compCount)

	raw := r.elemBytes(i)
	if raw == nil {
		for j := range dst {
			dst[j] = 0
		}
		return dst, nil
	}
	for j := 0; j < r.compCount; j++ {
		dst[j] = uint32(readUnsigned(raw[j*r.compSize:], r.compType))
	}
	return dst, nil
}

// IntAt decodes element i as native integer components, signed or
// unsigned. It fails for float component types.
func (r *AccessorReader) IntAt(i int, dst []int64) ([]int64, error) {
	if !r.compType.Integer() {
		return nil, fmt.Errorf("%w: %s as integer", ErrUnsupportedConversion, r.compType)
	}
	if err := r.checkIndex(i); err != nil {
		return nil, err
	}
	dst = growInts(dst, r.compCount)

	raw := r.elemBytes(i)
	if raw == nil {
		for j := range dst {
			dst[j] = 0
		}
		return dst, nil
	}
	for j := 0; j < r.compCount; j++ {
		dst[j] = readSigned(raw[j*r.compSize:], r.compType)
	}
	return dst, nil
}

func (r *AccessorReader) floatComponent(b []byte) float64 {
	switch r.compType {
	case ComponentFloat:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case ComponentUnsignedByte:
		v := float64(b[0])
		if r.normalized {
			return v / 255
		}
		return v
	case ComponentUnsignedShort:
		v := float64(binary.LittleEndian.Uint16(b))
		if r.normalized {
			return v / 65535
		}
		return v
	case ComponentUnsignedInt:
		return float64(binary.LittleEndian.Uint32(b))
	case ComponentByte:
		v := float64(int8(b[0]))
		if r.normalized {
			return math.Max(v/127, -1)
		}
		return v
	case ComponentShort:
		v := float64(int16(binary.LittleEndian.Uint16(b)))
		if r.normalized {
			return math.Max(v/32767, -1)
		}
		return v
	default:
		return 0
	}
}

func readUnsigned(b []byte, c ComponentType) uint64 {
	switch c {
	case ComponentUnsignedByte:
		return uint64(b[0])
	case ComponentUnsignedShort:
		return uint64(binary.LittleEndian.Uint16(b))
	case ComponentUnsignedInt:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return 0
	}
}

func readSigned(b []byte, c ComponentType) int64 {
	switch c {
	case ComponentByte:
		return int64(int8(b[0]))
	case ComponentShort:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	default:
		return int64(readUnsigned(b, c))
	}
}

func growFloats(dst []float64, n int) []float64 {
	if cap(dst) < n {
		return make([]float64, n)
	}
	return dst[:n]
}

func growUints(dst []uint32, n int) []uint32 {
	if cap(dst) < n {
		return make([]uint32, n)
	}
	return dst[:n]
}

func growInts(dst []int64, n int) []int64 {
	if cap(dst) < n {
		return make([]int64, n)
	}
	return dst[:n]
}

// spanBytes computes offset + stride*(count-1) + elemSize with overflow
// checking. Wrapping here would turn a bounds check into a false pass,
// so any overflow fails with ErrSizeOverflow.
func spanBytes(offset, stride, count, elemSize uint64) (uint64, error) {
	if count == 0 {
		return offset, nil
	}
	span, ok := mulU64(stride, count-1)
	if !ok {
		return 0, fmt.Errorf("%w: stride %d * count %d", ErrSizeOverflow, stride, count)
	}
	span, ok = addU64(span, elemSize)
	if !ok {
		return 0, fmt.Errorf("%w: span + element size %d", ErrSizeOverflow, elemSize)
	}
	span, ok = addU64(span, offset)
	if !ok {
		return 0, fmt.Errorf("%w: offset %d + span", ErrSizeOverflow, offset)
	}
	return span, nil
}

func addU64(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum >= a
}

func mulU64(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	return product, product/a == b
}
