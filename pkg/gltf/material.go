package gltf

// Material describes the metallic-roughness shading model of the core
// format.
type Material struct {
	Name                 string                `json:"name,omitempty"`
	PbrMetallicRoughness *PbrMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *NormalTextureInfo    `json:"normalTexture,omitempty"`
	OcclusionTexture     *OcclusionTextureInfo `json:"occlusionTexture,omitempty"`
	EmissiveTexture      *TextureInfo          `json:"emissiveTexture,omitempty"`
	EmissiveFactor       [3]float64            `json:"emissiveFactor,omitempty"`
	AlphaMode            AlphaMode             `json:"alphaMode,omitempty"`
	AlphaCutoff          *float64              `json:"alphaCutoff,omitempty"`
	DoubleSided          bool                  `json:"doubleSided,omitempty"`
	Extensions           Extensions            `json:"extensions,omitempty"`
	Extras               Extras                `json:"extras,omitempty"`
}

// Unlit reports whether the material opts out of shading via
// KHR_materials_unlit.
func (m *Material) Unlit() bool {
	return m.Extensions.Has(ExtMaterialsUnlit)
}

func (m *Material) assignDefaults() {
	if m.AlphaMode == "" {
		m.AlphaMode = AlphaOpaque
	}
	if m.AlphaCutoff == nil {
		cutoff := 0.5
		m.AlphaCutoff = &cutoff
	}
	if m.PbrMetallicRoughness == nil {
		m.PbrMetallicRoughness = &PbrMetallicRoughness{}
	}
	m.PbrMetallicRoughness.assignDefaults()
	if m.NormalTexture != nil && m.NormalTexture.Scale == nil {
		scale := 1.0
		m.NormalTexture.Scale = &scale
	}
	if m.OcclusionTexture != nil && m.OcclusionTexture.Strength == nil {
		strength := 1.0
		m.OcclusionTexture.Strength = &strength
	}
}

// PbrMetallicRoughness holds the base factors and textures of the
// metallic-roughness model.
type PbrMetallicRoughness struct {
	BaseColorFactor          *[4]float64  `json:"baseColorFactor,omitempty"`
	BaseColorTexture         *TextureInfo `json:"baseColorTexture,omitempty"`
	MetallicFactor           *float64     `json:"metallicFactor,omitempty"`
	RoughnessFactor          *float64     `json:"roughnessFactor,omitempty"`
	MetallicRoughnessTexture *TextureInfo `json:"metallicRoughnessTexture,omitempty"`
	Extensions               Extensions   `json:"extensions,omitempty"`
	Extras                   Extras       `json:"extras,omitempty"`
}

func (p *PbrMetallicRoughness) assignDefaults() {
	if p.BaseColorFactor == nil {
		p.BaseColorFactor = &[4]float64{1, 1, 1, 1}
	}
	if p.MetallicFactor == nil {
		metallic := 1.0
		p.MetallicFactor = &metallic
	}
	if p.RoughnessFactor == nil {
		roughness := 1.0
		p.RoughnessFactor = &roughness
	}
}

// TextureInfo references a texture and the texture coordinate set it
// samples.
type TextureInfo struct {
	Index      Index[Texture] `json:"index"`
	TexCoord   uint32         `json:"texCoord,omitempty"`
	Extensions Extensions     `json:"extensions,omitempty"`
	Extras     Extras         `json:"extras,omitempty"`
}

// TextureTransform decodes the KHR_texture_transform payload, when
// present. The second return value reports presence.
func (t *TextureInfo) TextureTransform() (*TextureTransform, bool, error) {
	tt := &TextureTransform{Scale: [2]float64{1, 1}}
	ok, err := decodeExtension(t.Extensions, ExtTextureTransform, tt)
	if !ok || err != nil {
		return nil, false, err
	}
	return tt, true, nil
}

// NormalTextureInfo is a TextureInfo with a normal-map scale factor
// (default 1).
type NormalTextureInfo struct {
	Index      Index[Texture] `json:"index"`
	TexCoord   uint32         `json:"texCoord,omitempty"`
	Scale      *float64       `json:"scale,omitempty"`
	Extensions Extensions     `json:"extensions,omitempty"`
	Extras     Extras         `json:"extras,omitempty"`
}

// OcclusionTextureInfo is a TextureInfo with an occlusion strength factor
// (default 1).
type OcclusionTextureInfo struct {
	Index      Index[Texture] `json:"index"`
	TexCoord   uint32         `json:"texCoord,omitempty"`
	Strength   *float64       `json:"strength,omitempty"`
	Extensions Extensions     `json:"extensions,omitempty"`
	Extras     Extras         `json:"extras,omitempty"`
}
