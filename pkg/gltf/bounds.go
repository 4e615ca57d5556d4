package gltf

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// ErrBoundsMismatch reports declared accessor min/max values that do not
// match the decoded data.
var ErrBoundsMismatch = errors.New("gltf: declared min/max do not match data")

const boundsTolerance = 1e-6

// ComputeBounds decodes every element of the reader and returns the
// per-component minimum and maximum. Both slices are nil when the
// accessor is empty.
func ComputeBounds(r *AccessorReader) (min, max []float64, err error) {
	n := r.Count()
	c := r.Components()
	if n == 0 {
		return nil, nil, nil
	}

	cols := make([][]float64, c)
	for j := range cols {
		cols[j] = make([]float64, n)
	}

	elem := make([]float64, c)
	for i := 0; i < n; i++ {
		elem, err = r.FloatAt(i, elem)
		if err != nil {
			return nil, nil, err
		}
		for j := 0; j < c; j++ {
			cols[j][i] = elem[j]
		}
	}

	min = make([]float64, c)
	max = make([]float64, c)
	for j := 0; j < c; j++ {
		min[j] = floats.Min(cols[j])
		max[j] = floats.Max(cols[j])
	}
	return min, max, nil
}

// VerifyBounds checks an accessor's declared min/max against the decoded
// data. Accessors without declared bounds pass trivially.
func VerifyBounds(doc *Document, idx Index[Accessor], resolve BufferResolver) error {
	accessor, err := Resolve(idx, doc.Accessors)
	if err != nil {
		return err
	}
	if accessor.Min == nil && accessor.Max == nil {
		return nil
	}

	reader, err := NewAccessorReader(doc, idx, resolve)
	if err != nil {
		return err
	}
	min, max, err := ComputeBounds(reader)
	if err != nil {
		return err
	}

	if err := compareBounds("min", accessor.Min, min); err != nil {
		return err
	}
	return compareBounds("max", accessor.Max, max)
}

func compareBounds(field string, declared, actual []float64) error {
	if declared == nil {
		return nil
	}
	if len(declared) != len(actual) {
		return fmt.Errorf("%w: %s has %d components, data has %d",
			ErrBoundsMismatch, field, len(declared), len(actual))
	}
	for j := range declared {
		if !scalar.EqualWithinAbsOrRel(declared[j], actual[j], boundsTolerance, boundsTolerance) {
			return fmt.Errorf("%w: %s[%d] declared %g, data %g",
				ErrBoundsMismatch, field, j, declared[j], actual[j])
		}
	}
	return nil
}
