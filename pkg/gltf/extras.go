package gltf

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Extras is application-specific metadata carried verbatim. It is kept as
// raw JSON so unknown payloads survive a decode/encode round trip.
type Extras = json.RawMessage

// Extensions maps extension names to their unparsed JSON payloads. Typed
// readers below decode the payloads this module understands; everything
// else stays opaque.
type Extensions map[string]json.RawMessage

// Has reports whether an extension block with the given name is present.
func (e Extensions) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Extension names understood by this module. extensionsRequired entries
// outside this set fail validation.
const (
	ExtMaterialsUnlit   = "KHR_materials_unlit"
	ExtTextureTransform = "KHR_texture_transform"
	ExtTextureWebP      = "EXT_texture_webp"
)

var supportedExtensions = map[string]bool{
	ExtMaterialsUnlit:   true,
	ExtTextureTransform: true,
	ExtTextureWebP:      true,
}

// SupportedExtensions returns the sorted names of extensions this module
// understands.
func SupportedExtensions() []string {
	names := make([]string, 0, len(supportedExtensions))
	for name := range supportedExtensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtensionSupported reports whether name is in the compiled-in set.
func ExtensionSupported(name string) bool {
	return supportedExtensions[name]
}

// TextureTransform is the KHR_texture_transform payload of a TextureInfo.
type TextureTransform struct {
	Offset   [2]float64 `json:"offset"`
	Rotation float64    `json:"rotation"`
	Scale    [2]float64 `json:"scale"`
	TexCoord *uint32    `json:"texCoord,omitempty"`
}

func decodeExtension(e Extensions, name string, v any) (bool, error) {
	raw, ok := e[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("gltf: decoding %s: %w", name, err)
	}
	return true, nil
}
