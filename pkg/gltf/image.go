package gltf

import (
	"bytes"
	"fmt"
	"image"

	// Registered codecs for the formats the core and the
	// EXT_texture_webp extension allow.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DecodeImage decodes resolved image bytes (PNG, JPEG, or WebP) into a
// pixel buffer. The returned string is the detected format name.
func DecodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("gltf: decoding image: %w", err)
	}
	return img, format, nil
}

// DecodeImageConfig decodes only the dimensions and color model, without
// expanding the pixels.
func DecodeImageConfig(data []byte) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("gltf: decoding image config: %w", err)
	}
	return cfg, format, nil
}
