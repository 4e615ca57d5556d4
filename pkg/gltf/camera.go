package gltf

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a projection attached to a node. Exactly one of Perspective
// or Orthographic is set, discriminated by Type.
type Camera struct {
	Type         CameraType    `json:"type"`
	Perspective  *Perspective  `json:"perspective,omitempty"`
	Orthographic *Orthographic `json:"orthographic,omitempty"`
	Name         string        `json:"name,omitempty"`
	Extensions   Extensions    `json:"extensions,omitempty"`
	Extras       Extras        `json:"extras,omitempty"`
}

// Perspective holds a perspective projection. Zfar is optional; when
// absent the projection extends to infinity.
type Perspective struct {
	AspectRatio *float64   `json:"aspectRatio,omitempty"`
	Yfov        float64    `json:"yfov"`
	Zfar        *float64   `json:"zfar,omitempty"`
	Znear       float64    `json:"znear"`
	Extensions  Extensions `json:"extensions,omitempty"`
	Extras      Extras     `json:"extras,omitempty"`
}

// Orthographic holds an orthographic projection.
type Orthographic struct {
	Xmag       float64    `json:"xmag"`
	Ymag       float64    `json:"ymag"`
	Zfar       float64    `json:"zfar"`
	Znear      float64    `json:"znear"`
	Extensions Extensions `json:"extensions,omitempty"`
	Extras     Extras     `json:"extras,omitempty"`
}

// Projection returns the camera's projection matrix. fallbackAspect is
// used for perspective cameras that leave aspectRatio to the viewer.
func (c *Camera) Projection(fallbackAspect float64) mgl64.Mat4 {
	switch c.Type {
	case CameraPerspective:
		if c.Perspective == nil {
			return mgl64.Ident4()
		}
		p := c.Perspective
		aspect := fallbackAspect
		if p.AspectRatio != nil {
			aspect = *p.AspectRatio
		}
		if p.Zfar != nil {
			return mgl64.Perspective(p.Yfov, aspect, p.Znear, *p.Zfar)
		}
		return infinitePerspective(p.Yfov, aspect, p.Znear)
	case CameraOrthographic:
		if c.Orthographic == nil {
			return mgl64.Ident4()
		}
		o := c.Orthographic
		return mgl64.Ortho(-o.Xmag, o.Xmag, -o.Ymag, o.Ymag, o.Znear, o.Zfar)
	default:
		return mgl64.Ident4()
	}
}

// infinitePerspective is the zfar→∞ limit of the standard perspective
// matrix.
func infinitePerspective(yfov, aspect, znear float64) mgl64.Mat4 {
	f := 1 / math.Tan(yfov/2)
	m := mgl64.Mat4{}
	m.Set(0, 0, f/aspect)
	m.Set(1, 1, f)
	m.Set(2, 2, -1)
	m.Set(3, 2, -1)
	m.Set(2, 3, -2*znear)
	return m
}
