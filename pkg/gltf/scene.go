package gltf

import "github.com/go-gl/mathgl/mgl64"

// Scene is a set of root nodes.
type Scene struct {
	Nodes      []Index[Node] `json:"nodes,omitempty"`
	Name       string        `json:"name,omitempty"`
	Extensions Extensions    `json:"extensions,omitempty"`
	Extras     Extras        `json:"extras,omitempty"`
}

// Node is an element of the node hierarchy. Its local transform is either
// an explicit column-major matrix or a translation/rotation/scale triple;
// the format forbids mixing the two.
type Node struct {
	Camera      *Index[Camera] `json:"camera,omitempty"`
	Children    []Index[Node]  `json:"children,omitempty"`
	Skin        *Index[Skin]   `json:"skin,omitempty"`
	Matrix      *[16]float64   `json:"matrix,omitempty"`
	Mesh        *Index[Mesh]   `json:"mesh,omitempty"`
	Rotation    *[4]float64    `json:"rotation,omitempty"` // quaternion x, y, z, w
	Scale       *[3]float64    `json:"scale,omitempty"`
	Translation *[3]float64    `json:"translation,omitempty"`
	Weights     []float64      `json:"weights,omitempty"`
	Name        string         `json:"name,omitempty"`
	Extensions  Extensions     `json:"extensions,omitempty"`
	Extras      Extras         `json:"extras,omitempty"`
}

// LocalMatrix returns the node's local transform as a 4x4 matrix,
// composing translation * rotation * scale when no explicit matrix is
// set. Absent TRS components use the format's identity defaults.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	if n.Matrix != nil {
		var m mgl64.Mat4
		copy(m[:], n.Matrix[:]) // both are column-major
		return m
	}

	m := mgl64.Ident4()
	if n.Translation != nil {
		t := n.Translation
		m = mgl64.Translate3D(t[0], t[1], t[2])
	}
	if n.Rotation != nil {
		r := n.Rotation
		q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
		m = m.Mul4(q.Normalize().Mat4())
	}
	if n.Scale != nil {
		s := n.Scale
		m = m.Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
	}
	return m
}
