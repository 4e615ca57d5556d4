package gltf

// Skin binds a mesh to a set of joint nodes via inverse bind matrices.
type Skin struct {
	InverseBindMatrices *Index[Accessor] `json:"inverseBindMatrices,omitempty"`
	Skeleton            *Index[Node]     `json:"skeleton,omitempty"`
	Joints              []Index[Node]    `json:"joints"`
	Name                string           `json:"name,omitempty"`
	Extensions          Extensions       `json:"extensions,omitempty"`
	Extras              Extras           `json:"extras,omitempty"`
}
