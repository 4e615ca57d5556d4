package gltf

// Texture pairs an image source with sampling state. An absent sampler
// means repeat wrapping with renderer-chosen filtering.
type Texture struct {
	Sampler    *Index[Sampler] `json:"sampler,omitempty"`
	Source     *Index[Image]   `json:"source,omitempty"`
	Name       string          `json:"name,omitempty"`
	Extensions Extensions      `json:"extensions,omitempty"`
	Extras     Extras          `json:"extras,omitempty"`
}

// WebPSource returns the image index supplied by EXT_texture_webp, when
// the texture carries one.
func (t *Texture) WebPSource() (Index[Image], bool, error) {
	var payload struct {
		Source Index[Image] `json:"source"`
	}
	ok, err := decodeExtension(t.Extensions, ExtTextureWebP, &payload)
	if !ok || err != nil {
		return 0, false, err
	}
	return payload.Source, true, nil
}

// Sampler holds texture filtering and wrapping state. Wrap modes default
// to WrapRepeat; filters are left unset (zero) when absent, as the format
// delegates filter choice to the renderer.
type Sampler struct {
	MagFilter  Filter     `json:"magFilter,omitempty"`
	MinFilter  Filter     `json:"minFilter,omitempty"`
	WrapS      Wrap       `json:"wrapS,omitempty"`
	WrapT      Wrap       `json:"wrapT,omitempty"`
	Name       string     `json:"name,omitempty"`
	Extensions Extensions `json:"extensions,omitempty"`
	Extras     Extras     `json:"extras,omitempty"`
}

func (s *Sampler) assignDefaults() {
	if s.WrapS == 0 {
		s.WrapS = WrapRepeat
	}
	if s.WrapT == 0 {
		s.WrapT = WrapRepeat
	}
}

// Image locates encoded pixel data, either behind a URI or inside a
// buffer view (in which case MimeType is required by the format).
type Image struct {
	URI        string             `json:"uri,omitempty"`
	MimeType   string             `json:"mimeType,omitempty"`
	BufferView *Index[BufferView] `json:"bufferView,omitempty"`
	Name       string             `json:"name,omitempty"`
	Extensions Extensions         `json:"extensions,omitempty"`
	Extras     Extras             `json:"extras,omitempty"`
}
