package gltf

import (
	"errors"
	"fmt"
	"strings"
)

// Validation error kinds. ValidationError wraps one of these (or
// ErrIndexOutOfRange / ErrSizeOverflow) so callers can test with
// errors.Is.
var (
	ErrUnsupportedRequiredExtension = errors.New("gltf: unsupported required extension")
	ErrInvalidValue                 = errors.New("gltf: invalid value")
	ErrMissingData                  = errors.New("gltf: missing data")
	ErrInvalidCombination           = errors.New("gltf: unsupported component/type combination")
)

// ValidationError is a single structural defect, located by a JSON-style
// path into the document ("meshes[0].primitives[1].indices").
type ValidationError struct {
	Path   string
	Err    error
	Detail string
}

func (e ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Path, e.Err, e.Detail)
}

func (e ValidationError) Unwrap() error { return e.Err }

// ValidationErrors aggregates every structural defect found in one pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	switch len(errs) {
	case 0:
		return "gltf: validation failed"
	case 1:
		return errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", errs[0].Error(), len(errs)-1)
	}
}

// Unwrap exposes the individual defects to errors.Is and errors.As.
func (errs ValidationErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// Validate checks every cross-entity reference and invariant of the
// document. The required-extension gate runs first and unconditionally;
// structural defects are collected and returned together as
// ValidationErrors so callers get the complete list.
func (doc *Document) Validate() error {
	var unsupported []string
	for _, name := range doc.ExtensionsRequired {
		if !ExtensionSupported(name) {
			unsupported = append(unsupported, name)
		}
	}
	if len(unsupported) > 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedRequiredExtension, strings.Join(unsupported, ", "))
	}

	v := &validator{doc: doc}
	v.bufferViews()
	v.accessors()
	v.images()
	v.textures()
	v.materials()
	v.meshes()
	v.nodes()
	v.scenes()
	v.skins()
	v.animations()
	v.cameras()
	if doc.Scene != nil {
		checkIndex(v, "scene", *doc.Scene, doc.Scenes)
	}

	if len(v.errs) > 0 {
		return v.errs
	}
	return nil
}

type validator struct {
	doc  *Document
	errs ValidationErrors
}

func (v *validator) report(path string, err error, format string, args ...any) {
	v.errs = append(v.errs, ValidationError{
		Path:   path,
		Err:    err,
		Detail: fmt.Sprintf(format, args...),
	})
}

func checkIndex[T any](v *validator, path string, idx Index[T], items []T) bool {
	if int(idx) >= len(items) {
		v.report(path, ErrIndexOutOfRange, "%d of %d", idx, len(items))
		return false
	}
	return true
}

func checkOptIndex[T any](v *validator, path string, idx *Index[T], items []T) bool {
	if idx == nil {
		return true
	}
	return checkIndex(v, path, *idx, items)
}

func (v *validator) bufferViews() {
	for i := range v.doc.BufferViews {
		view := &v.doc.BufferViews[i]
		path := fmt.Sprintf("bufferViews[%d]", i)

		if !checkIndex(v, path+".buffer", view.Buffer, v.doc.Buffers) {
			continue
		}
		buffer := &v.doc.Buffers[view.Buffer]

		end, ok := addU64(view.ByteOffset, view.ByteLength)
		if !ok {
			v.report(path, ErrSizeOverflow, "byteOffset %d + byteLength %d", view.ByteOffset, view.ByteLength)
			continue
		}
		if end > buffer.ByteLength {
			v.report(path, ErrInvalidValue, "range end %d exceeds buffer byteLength %d", end, buffer.ByteLength)
		}
		if view.ByteStride != nil {
			stride := *view.ByteStride
			if stride < 4 || stride > 252 || stride%4 != 0 {
				v.report(path+".byteStride", ErrInvalidValue, "%d", stride)
			}
		}
	}
}

func (v *validator) accessors() {
	for i := range v.doc.Accessors {
		accessor := &v.doc.Accessors[i]
		path := fmt.Sprintf("accessors[%d]", i)

		if accessor.Count == 0 {
			v.report(path+".count", ErrInvalidValue, "count must be positive")
		}
		if accessor.Normalized && !accessor.ComponentType.Integer() {
			v.report(path, ErrInvalidCombination, "normalized %s", accessor.ComponentType)
		}
		if accessor.Normalized && accessor.ComponentType == ComponentUnsignedInt {
			v.report(path, ErrInvalidCombination, "normalized UNSIGNED_INT")
		}
		if accessor.Type.Matrix() &&
			accessor.ComponentType != ComponentFloat &&
			!(accessor.ComponentType.Integer() && accessor.Normalized) {
			v.report(path, ErrInvalidCombination, "%s of %s", accessor.Type, accessor.ComponentType)
		}
		if accessor.Min != nil && len(accessor.Min) != accessor.Type.Components() {
			v.report(path+".min", ErrInvalidValue, "%d values for %s", len(accessor.Min), accessor.Type)
		}
		if accessor.Max != nil && len(accessor.Max) != accessor.Type.Components() {
			v.report(path+".max", ErrInvalidValue, "%d values for %s", len(accessor.Max), accessor.Type)
		}

		if accessor.BufferView != nil {
			v.accessorRange(path, accessor)
		}
		if accessor.Sparse != nil {
			v.sparse(path+".sparse", accessor)
		}
	}
}

// accessorRange proves count elements fit inside the referenced view.
func (v *validator) accessorRange(path string, accessor *Accessor) {
	if !checkIndex(v, path+".bufferView", *accessor.BufferView, v.doc.BufferViews) {
		return
	}
	view := &v.doc.BufferViews[*accessor.BufferView]

	elemSize := uint64(accessor.ElementSize())
	stride := elemSize
	if view.ByteStride != nil {
		stride = *view.ByteStride
		if stride < elemSize {
			v.report(path, ErrInvalidValue, "byteStride %d below element size %d", stride, elemSize)
			return
		}
	}

	need, err := spanBytes(accessor.ByteOffset, stride, accessor.Count, elemSize)
	if err != nil {
		v.report(path, ErrSizeOverflow, "count %d, stride %d", accessor.Count, stride)
		return
	}
	if need > view.ByteLength {
		v.report(path, ErrInvalidValue, "needs %d bytes, view has %d", need, view.ByteLength)
	}
}

func (v *validator) sparse(path string, accessor *Accessor) {
	sparse := accessor.Sparse
	if sparse.Count == 0 || sparse.Count > accessor.Count {
		v.report(path+".count", ErrInvalidValue, "%d of %d", sparse.Count, accessor.Count)
	}
	if !sparse.Indices.ComponentType.Unsigned() {
		v.report(path+".indices.componentType", ErrInvalidCombination, "%s", sparse.Indices.ComponentType)
	}

	if checkIndex(v, path+".indices.bufferView", sparse.Indices.BufferView, v.doc.BufferViews) {
		view := &v.doc.BufferViews[sparse.Indices.BufferView]
		if view.ByteStride != nil {
			v.report(path+".indices.bufferView", ErrInvalidValue, "sparse view must not define byteStride")
		}
		indexSize := uint64(sparse.Indices.ComponentType.Size())
		v.substreamRange(path+".indices", view, sparse.Indices.ByteOffset, sparse.Count, indexSize)
	}
	if checkIndex(v, path+".values.bufferView", sparse.Values.BufferView, v.doc.BufferViews) {
		view := &v.doc.BufferViews[sparse.Values.BufferView]
		if view.ByteStride != nil {
			v.report(path+".values.bufferView", ErrInvalidValue, "sparse view must not define byteStride")
		}
		v.substreamRange(path+".values", view, sparse.Values.ByteOffset, sparse.Count, uint64(accessor.ElementSize()))
	}
}

func (v *validator) substreamRange(path string, view *BufferView, offset, count, itemSize uint64) {
	need, err := spanBytes(offset, itemSize, count, itemSize)
	if err != nil {
		v.report(path, ErrSizeOverflow, "count %d, item size %d", count, itemSize)
		return
	}
	if need > view.ByteLength {
		v.report(path, ErrInvalidValue, "needs %d bytes, view has %d", need, view.ByteLength)
	}
}

func (v *validator) images() {
	for i := range v.doc.Images {
		image := &v.doc.Images[i]
		path := fmt.Sprintf("images[%d]", i)

		checkOptIndex(v, path+".bufferView", image.BufferView, v.doc.BufferViews)
		switch {
		case image.URI == "" && image.BufferView == nil:
			v.report(path, ErrMissingData, "neither uri nor bufferView")
		case image.URI != "" && image.BufferView != nil:
			v.report(path, ErrInvalidValue, "both uri and bufferView")
		case image.BufferView != nil && image.MimeType == "":
			v.report(path+".mimeType", ErrMissingData, "required with bufferView")
		}
	}
}

func (v *validator) textures() {
	for i := range v.doc.Textures {
		texture := &v.doc.Textures[i]
		path := fmt.Sprintf("textures[%d]", i)
		checkOptIndex(v, path+".sampler", texture.Sampler, v.doc.Samplers)
		checkOptIndex(v, path+".source", texture.Source, v.doc.Images)
	}
}

func (v *validator) textureInfo(path string, info *TextureInfo) {
	if info != nil {
		checkIndex(v, path+".index", info.Index, v.doc.Textures)
	}
}

func (v *validator) materials() {
	for i := range v.doc.Materials {
		material := &v.doc.Materials[i]
		path := fmt.Sprintf("materials[%d]", i)

		if pbr := material.PbrMetallicRoughness; pbr != nil {
			v.textureInfo(path+".pbrMetallicRoughness.baseColorTexture", pbr.BaseColorTexture)
			v.textureInfo(path+".pbrMetallicRoughness.metallicRoughnessTexture", pbr.MetallicRoughnessTexture)
		}
		if material.NormalTexture != nil {
			checkIndex(v, path+".normalTexture.index", material.NormalTexture.Index, v.doc.Textures)
		}
		if material.OcclusionTexture != nil {
			checkIndex(v, path+".occlusionTexture.index", material.OcclusionTexture.Index, v.doc.Textures)
		}
		v.textureInfo(path+".emissiveTexture", material.EmissiveTexture)
	}
}

func (v *validator) meshes() {
	for i := range v.doc.Meshes {
		mesh := &v.doc.Meshes[i]
		path := fmt.Sprintf("meshes[%d]", i)

		if len(mesh.Primitives) == 0 {
			v.report(path+".primitives", ErrMissingData, "at least one primitive required")
		}
		for j := range mesh.Primitives {
			v.primitive(fmt.Sprintf("%s.primitives[%d]", path, j), &mesh.Primitives[j])
		}
	}
}

func (v *validator) primitive(path string, prim *Primitive) {
	if _, ok := prim.Position(); !ok {
		v.report(path+".attributes", ErrMissingData, "POSITION attribute required")
	}
	for semantic, idx := range prim.Attributes {
		checkIndex(v, fmt.Sprintf("%s.attributes[%q]", path, semantic), idx, v.doc.Accessors)
	}

	if prim.Indices != nil && checkIndex(v, path+".indices", *prim.Indices, v.doc.Accessors) {
		accessor := &v.doc.Accessors[*prim.Indices]
		if !accessor.ComponentType.Unsigned() || accessor.Type != Scalar {
			v.report(path+".indices", ErrInvalidCombination, "%s of %s", accessor.Type, accessor.ComponentType)
		}
	}
	checkOptIndex(v, path+".material", prim.Material, v.doc.Materials)
	for j, target := range prim.Targets {
		for semantic, idx := range target {
			checkIndex(v, fmt.Sprintf("%s.targets[%d][%q]", path, j, semantic), idx, v.doc.Accessors)
		}
	}
}

func (v *validator) nodes() {
	for i := range v.doc.Nodes {
		node := &v.doc.Nodes[i]
		path := fmt.Sprintf("nodes[%d]", i)

		checkOptIndex(v, path+".camera", node.Camera, v.doc.Cameras)
		checkOptIndex(v, path+".mesh", node.Mesh, v.doc.Meshes)
		checkOptIndex(v, path+".skin", node.Skin, v.doc.Skins)
		for j, child := range node.Children {
			checkIndex(v, fmt.Sprintf("%s.children[%d]", path, j), child, v.doc.Nodes)
		}
		if node.Matrix != nil && (node.Translation != nil || node.Rotation != nil || node.Scale != nil) {
			v.report(path, ErrInvalidValue, "matrix combined with translation/rotation/scale")
		}
		if node.Skin != nil && node.Mesh == nil {
			v.report(path+".skin", ErrInvalidValue, "skin without mesh")
		}
	}
}

func (v *validator) scenes() {
	for i := range v.doc.Scenes {
		for j, idx := range v.doc.Scenes[i].Nodes {
			checkIndex(v, fmt.Sprintf("scenes[%d].nodes[%d]", i, j), idx, v.doc.Nodes)
		}
	}
}

func (v *validator) skins() {
	for i := range v.doc.Skins {
		skin := &v.doc.Skins[i]
		path := fmt.Sprintf("skins[%d]", i)

		if len(skin.Joints) == 0 {
			v.report(path+".joints", ErrMissingData, "at least one joint required")
		}
		for j, joint := range skin.Joints {
			checkIndex(v, fmt.Sprintf("%s.joints[%d]", path, j), joint, v.doc.Nodes)
		}
		checkOptIndex(v, path+".skeleton", skin.Skeleton, v.doc.Nodes)

		if skin.InverseBindMatrices != nil &&
			checkIndex(v, path+".inverseBindMatrices", *skin.InverseBindMatrices, v.doc.Accessors) {
			accessor := &v.doc.Accessors[*skin.InverseBindMatrices]
			if accessor.Type != Mat4 || accessor.ComponentType != ComponentFloat {
				v.report(path+".inverseBindMatrices", ErrInvalidCombination, "%s of %s", accessor.Type, accessor.ComponentType)
			}
		}
	}
}

func (v *validator) animations() {
	for i := range v.doc.Animations {
		animation := &v.doc.Animations[i]
		path := fmt.Sprintf("animations[%d]", i)

		for j := range animation.Channels {
			channel := &animation.Channels[j]
			chPath := fmt.Sprintf("%s.channels[%d]", path, j)
			checkIndex(v, chPath+".sampler", channel.Sampler, animation.Samplers)
			checkOptIndex(v, chPath+".target.node", channel.Target.Node, v.doc.Nodes)
		}
		for j := range animation.Samplers {
			sampler := &animation.Samplers[j]
			sPath := fmt.Sprintf("%s.samplers[%d]", path, j)

			if checkIndex(v, sPath+".input", sampler.Input, v.doc.Accessors) {
				input := &v.doc.Accessors[sampler.Input]
				if input.Type != Scalar || input.ComponentType != ComponentFloat {
					v.report(sPath+".input", ErrInvalidCombination, "%s of %s", input.Type, input.ComponentType)
				}
			}
			checkIndex(v, sPath+".output", sampler.Output, v.doc.Accessors)
		}
	}
}

func (v *validator) cameras() {
	for i := range v.doc.Cameras {
		camera := &v.doc.Cameras[i]
		path := fmt.Sprintf("cameras[%d]", i)

		switch camera.Type {
		case CameraPerspective:
			if camera.Perspective == nil {
				v.report(path+".perspective", ErrMissingData, "required for perspective cameras")
			}
		case CameraOrthographic:
			if camera.Orthographic == nil {
				v.report(path+".orthographic", ErrMissingData, "required for orthographic cameras")
			}
		}
	}
}
