package gltf

// Attribute semantic names used by mesh primitives.
const (
	AttrPosition  = "POSITION"
	AttrNormal    = "NORMAL"
	AttrTangent   = "TANGENT"
	AttrTexCoord0 = "TEXCOORD_0"
	AttrColor0    = "COLOR_0"
	AttrJoints0   = "JOINTS_0"
	AttrWeights0  = "WEIGHTS_0"
)

// Mesh is a set of primitives to be rendered under one node.
type Mesh struct {
	Primitives []Primitive `json:"primitives"`
	Weights    []float64   `json:"weights,omitempty"`
	Name       string      `json:"name,omitempty"`
	Extensions Extensions  `json:"extensions,omitempty"`
	Extras     Extras      `json:"extras,omitempty"`
}

// Primitive maps attribute semantics to accessors and selects material
// and topology. Mode defaults to ModeTriangles.
type Primitive struct {
	Attributes map[string]Index[Accessor]   `json:"attributes"`
	Indices    *Index[Accessor]             `json:"indices,omitempty"`
	Material   *Index[Material]             `json:"material,omitempty"`
	Mode       *PrimitiveMode               `json:"mode,omitempty"`
	Targets    []map[string]Index[Accessor] `json:"targets,omitempty"`
	Extensions Extensions                   `json:"extensions,omitempty"`
	Extras     Extras                       `json:"extras,omitempty"`
}

// Position returns the primitive's POSITION accessor index, if declared.
func (p *Primitive) Position() (Index[Accessor], bool) {
	idx, ok := p.Attributes[AttrPosition]
	return idx, ok
}

func (p *Primitive) assignDefaults() {
	if p.Mode == nil {
		mode := ModeTriangles
		p.Mode = &mode
	}
}
