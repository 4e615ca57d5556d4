package gltf

// Asset is the document's version and provenance header. Version must
// have major version 2.
type Asset struct {
	Copyright  string     `json:"copyright,omitempty"`
	Generator  string     `json:"generator,omitempty"`
	Version    string     `json:"version"`
	MinVersion string     `json:"minVersion,omitempty"`
	Extensions Extensions `json:"extensions,omitempty"`
	Extras     Extras     `json:"extras,omitempty"`
}

// Document is the deserialized JSON tree of a glTF asset. The entity
// arrays are append-only once parsed: indices held by other entities stay
// stable for the document's lifetime, and a Document is safe for
// concurrent readers.
type Document struct {
	ExtensionsUsed     []string      `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string      `json:"extensionsRequired,omitempty"`
	Accessors          []Accessor    `json:"accessors,omitempty"`
	Animations         []Animation   `json:"animations,omitempty"`
	Asset              Asset         `json:"asset"`
	Buffers            []Buffer      `json:"buffers,omitempty"`
	BufferViews        []BufferView  `json:"bufferViews,omitempty"`
	Cameras            []Camera      `json:"cameras,omitempty"`
	Images             []Image       `json:"images,omitempty"`
	Materials          []Material    `json:"materials,omitempty"`
	Meshes             []Mesh        `json:"meshes,omitempty"`
	Nodes              []Node        `json:"nodes,omitempty"`
	Samplers           []Sampler     `json:"samplers,omitempty"`
	Scene              *Index[Scene] `json:"scene,omitempty"`
	Scenes             []Scene       `json:"scenes,omitempty"`
	Skins              []Skin        `json:"skins,omitempty"`
	Textures           []Texture     `json:"textures,omitempty"`
	Extensions         Extensions    `json:"extensions,omitempty"`
	Extras             Extras        `json:"extras,omitempty"`
}

// assignDefaults fills the format's documented default values once after
// deserialization. The document is not mutated afterwards.
func (doc *Document) assignDefaults() {
	for i := range doc.Samplers {
		doc.Samplers[i].assignDefaults()
	}
	for i := range doc.Materials {
		doc.Materials[i].assignDefaults()
	}
	for i := range doc.Meshes {
		for j := range doc.Meshes[i].Primitives {
			doc.Meshes[i].Primitives[j].assignDefaults()
		}
	}
	for i := range doc.Animations {
		for j := range doc.Animations[i].Samplers {
			doc.Animations[i].Samplers[j].assignDefaults()
		}
	}
}

// DefaultScene returns the document's default scene, or nil when none is
// declared.
func (doc *Document) DefaultScene() *Scene {
	if doc.Scene == nil {
		return nil
	}
	scene, err := Resolve(*doc.Scene, doc.Scenes)
	if err != nil {
		return nil
	}
	return scene
}

// TotalPrimitiveCount returns the number of primitives across all meshes.
func (doc *Document) TotalPrimitiveCount() int {
	total := 0
	for i := range doc.Meshes {
		total += len(doc.Meshes[i].Primitives)
	}
	return total
}

// TotalVertexCount sums the counts of every POSITION accessor referenced
// by a primitive.
func (doc *Document) TotalVertexCount() uint64 {
	var total uint64
	for i := range doc.Meshes {
		for j := range doc.Meshes[i].Primitives {
			idx, ok := doc.Meshes[i].Primitives[j].Position()
			if !ok {
				continue
			}
			accessor, err := Resolve(idx, doc.Accessors)
			if err != nil {
				continue
			}
			total += accessor.Count
		}
	}
	return total
}

// HasAnimation reports whether any animation declares a channel.
func (doc *Document) HasAnimation() bool {
	for i := range doc.Animations {
		if len(doc.Animations[i].Channels) > 0 {
			return true
		}
	}
	return false
}
