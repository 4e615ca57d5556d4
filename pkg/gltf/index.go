package gltf

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange reports an entity index that does not resolve within
// its target array.
var ErrIndexOutOfRange = errors.New("gltf: index out of range")

// Index refers to an element of one of the document-level entity arrays.
// The type parameter records which array the index targets; the value owns
// nothing and is only meaningful against a specific Document.
type Index[T any] uint32

// Int returns the index as an int for slice access.
func (i Index[T]) Int() int { return int(i) }

// Resolve returns the element i points at within items, or
// ErrIndexOutOfRange when i is out of bounds.
func Resolve[T any](i Index[T], items []T) (*T, error) {
	if int(i) >= len(items) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(items))
	}
	return &items[i], nil
}
