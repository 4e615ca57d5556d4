package gltf

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidEnum reports a wire value outside an enumeration's closed set.
var ErrInvalidEnum = errors.New("gltf: invalid enumeration value")

// ComponentType identifies the numeric format of a single accessor
// component, using the format's GL-derived wire codes.
type ComponentType uint32

const (
	ComponentByte          ComponentType = 5120
	ComponentUnsignedByte  ComponentType = 5121
	ComponentShort         ComponentType = 5122
	ComponentUnsignedShort ComponentType = 5123
	ComponentUnsignedInt   ComponentType = 5125
	ComponentFloat         ComponentType = 5126
)

// Size returns the component width in bytes.
func (c ComponentType) Size() int {
	switch c {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentUnsignedInt, ComponentFloat:
		return 4
	default:
		return 0
	}
}

// Integer reports whether the component is an integer format.
func (c ComponentType) Integer() bool {
	return c != ComponentFloat && c.Size() != 0
}

// Signed reports whether the component is a signed integer format.
func (c ComponentType) Signed() bool {
	return c == ComponentByte || c == ComponentShort
}

// Unsigned reports whether the component is an unsigned integer format.
func (c ComponentType) Unsigned() bool {
	return c == ComponentUnsignedByte || c == ComponentUnsignedShort || c == ComponentUnsignedInt
}

func (c ComponentType) String() string {
	switch c {
	case ComponentByte:
		return "BYTE"
	case ComponentUnsignedByte:
		return "UNSIGNED_BYTE"
	case ComponentShort:
		return "SHORT"
	case ComponentUnsignedShort:
		return "UNSIGNED_SHORT"
	case ComponentUnsignedInt:
		return "UNSIGNED_INT"
	case ComponentFloat:
		return "FLOAT"
	default:
		return fmt.Sprintf("ComponentType(%d)", uint32(c))
	}
}

func (c *ComponentType) UnmarshalJSON(b []byte) error {
	var v uint32
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch ComponentType(v) {
	case ComponentByte, ComponentUnsignedByte, ComponentShort,
		ComponentUnsignedShort, ComponentUnsignedInt, ComponentFloat:
		*c = ComponentType(v)
		return nil
	default:
		return fmt.Errorf("%w: componentType %d", ErrInvalidEnum, v)
	}
}

func (c ComponentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint32(c))
}

// ElementType identifies the per-element component layout of an accessor.
type ElementType uint8

const (
	Scalar ElementType = iota
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
)

// Components returns the number of components per element.
func (t ElementType) Components() int {
	switch t {
	case Scalar:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4, Mat2:
		return 4
	case Mat3:
		return 9
	case Mat4:
		return 16
	default:
		return 0
	}
}

// Matrix reports whether the element type is one of the matrix layouts.
func (t ElementType) Matrix() bool {
	return t == Mat2 || t == Mat3 || t == Mat4
}

func (t ElementType) String() string {
	switch t {
	case Scalar:
		return "SCALAR"
	case Vec2:
		return "VEC2"
	case Vec3:
		return "VEC3"
	case Vec4:
		return "VEC4"
	case Mat2:
		return "MAT2"
	case Mat3:
		return "MAT3"
	case Mat4:
		return "MAT4"
	default:
		return fmt.Sprintf("ElementType(%d)", uint8(t))
	}
}

func (t *ElementType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "SCALAR":
		*t = Scalar
	case "VEC2":
		*t = Vec2
	case "VEC3":
		*t = Vec3
	case "VEC4":
		*t = Vec4
	case "MAT2":
		*t = Mat2
	case "MAT3":
		*t = Mat3
	case "MAT4":
		*t = Mat4
	default:
		return fmt.Errorf("%w: type %q", ErrInvalidEnum, s)
	}
	return nil
}

func (t ElementType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// PrimitiveMode is the topology of a mesh primitive. Defaults to
// ModeTriangles when absent.
type PrimitiveMode uint32

const (
	ModePoints PrimitiveMode = iota
	ModeLines
	ModeLineLoop
	ModeLineStrip
	ModeTriangles
	ModeTriangleStrip
	ModeTriangleFan
)

func (m PrimitiveMode) String() string {
	switch m {
	case ModePoints:
		return "POINTS"
	case ModeLines:
		return "LINES"
	case ModeLineLoop:
		return "LINE_LOOP"
	case ModeLineStrip:
		return "LINE_STRIP"
	case ModeTriangles:
		return "TRIANGLES"
	case ModeTriangleStrip:
		return "TRIANGLE_STRIP"
	case ModeTriangleFan:
		return "TRIANGLE_FAN"
	default:
		return fmt.Sprintf("PrimitiveMode(%d)", uint32(m))
	}
}

func (m *PrimitiveMode) UnmarshalJSON(b []byte) error {
	var v uint32
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v > uint32(ModeTriangleFan) {
		return fmt.Errorf("%w: mode %d", ErrInvalidEnum, v)
	}
	*m = PrimitiveMode(v)
	return nil
}

func (m PrimitiveMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint32(m))
}

// Filter is a sampler filtering mode. Zero means unset: the format leaves
// filter selection to the renderer when the field is absent.
type Filter uint32

const (
	FilterNearest              Filter = 9728
	FilterLinear               Filter = 9729
	FilterNearestMipmapNearest Filter = 9984
	FilterLinearMipmapNearest  Filter = 9985
	FilterNearestMipmapLinear  Filter = 9986
	FilterLinearMipmapLinear   Filter = 9987
)

func (f *Filter) UnmarshalJSON(b []byte) error {
	var v uint32
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch Filter(v) {
	case FilterNearest, FilterLinear, FilterNearestMipmapNearest,
		FilterLinearMipmapNearest, FilterNearestMipmapLinear, FilterLinearMipmapLinear:
		*f = Filter(v)
		return nil
	default:
		return fmt.Errorf("%w: filter %d", ErrInvalidEnum, v)
	}
}

func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint32(f))
}

// Wrap is a sampler texture wrapping mode. Defaults to WrapRepeat.
type Wrap uint32

const (
	WrapClampToEdge    Wrap = 33071
	WrapMirroredRepeat Wrap = 33648
	WrapRepeat         Wrap = 10497
)

func (w *Wrap) UnmarshalJSON(b []byte) error {
	var v uint32
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch Wrap(v) {
	case WrapClampToEdge, WrapMirroredRepeat, WrapRepeat:
		*w = Wrap(v)
		return nil
	default:
		return fmt.Errorf("%w: wrap %d", ErrInvalidEnum, v)
	}
}

func (w Wrap) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint32(w))
}

// BufferTarget hints the intended GPU binding of a buffer view.
type BufferTarget uint32

const (
	TargetArrayBuffer        BufferTarget = 34962
	TargetElementArrayBuffer BufferTarget = 34963
)

func (t *BufferTarget) UnmarshalJSON(b []byte) error {
	var v uint32
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch BufferTarget(v) {
	case TargetArrayBuffer, TargetElementArrayBuffer:
		*t = BufferTarget(v)
		return nil
	default:
		return fmt.Errorf("%w: target %d", ErrInvalidEnum, v)
	}
}

func (t BufferTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint32(t))
}

// AlphaMode selects how a material's alpha channel is interpreted.
type AlphaMode string

const (
	AlphaOpaque AlphaMode = "OPAQUE"
	AlphaMask   AlphaMode = "MASK"
	AlphaBlend  AlphaMode = "BLEND"
)

func (m *AlphaMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch AlphaMode(s) {
	case AlphaOpaque, AlphaMask, AlphaBlend:
		*m = AlphaMode(s)
		return nil
	default:
		return fmt.Errorf("%w: alphaMode %q", ErrInvalidEnum, s)
	}
}

// Interpolation selects the keyframe interpolation of an animation sampler.
type Interpolation string

const (
	InterpolationLinear      Interpolation = "LINEAR"
	InterpolationStep        Interpolation = "STEP"
	InterpolationCubicSpline Interpolation = "CUBICSPLINE"
)

func (i *Interpolation) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch Interpolation(s) {
	case InterpolationLinear, InterpolationStep, InterpolationCubicSpline:
		*i = Interpolation(s)
		return nil
	default:
		return fmt.Errorf("%w: interpolation %q", ErrInvalidEnum, s)
	}
}

// AnimationPath names the node property an animation channel drives.
type AnimationPath string

const (
	PathTranslation AnimationPath = "translation"
	PathRotation    AnimationPath = "rotation"
	PathScale       AnimationPath = "scale"
	PathWeights     AnimationPath = "weights"
)

func (p *AnimationPath) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch AnimationPath(s) {
	case PathTranslation, PathRotation, PathScale, PathWeights:
		*p = AnimationPath(s)
		return nil
	default:
		return fmt.Errorf("%w: channel path %q", ErrInvalidEnum, s)
	}
}

// CameraType discriminates the camera projection union.
type CameraType string

const (
	CameraPerspective  CameraType = "perspective"
	CameraOrthographic CameraType = "orthographic"
)

func (t *CameraType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch CameraType(s) {
	case CameraPerspective, CameraOrthographic:
		*t = CameraType(s)
		return nil
	default:
		return fmt.Errorf("%w: camera type %q", ErrInvalidEnum, s)
	}
}
