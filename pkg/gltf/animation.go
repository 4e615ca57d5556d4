package gltf

// Animation drives node properties over time through sampler/channel
// pairs.
type Animation struct {
	Channels   []Channel          `json:"channels"`
	Samplers   []AnimationSampler `json:"samplers"`
	Name       string             `json:"name,omitempty"`
	Extensions Extensions         `json:"extensions,omitempty"`
	Extras     Extras             `json:"extras,omitempty"`
}

// Channel connects a sampler's output to a node property. The sampler
// index is local to the enclosing animation's Samplers array.
type Channel struct {
	Sampler    Index[AnimationSampler] `json:"sampler"`
	Target     ChannelTarget           `json:"target"`
	Extensions Extensions              `json:"extensions,omitempty"`
	Extras     Extras                  `json:"extras,omitempty"`
}

// ChannelTarget names the driven node and property. Node may be absent
// when an extension supplies the target.
type ChannelTarget struct {
	Node       *Index[Node]  `json:"node,omitempty"`
	Path       AnimationPath `json:"path"`
	Extensions Extensions    `json:"extensions,omitempty"`
	Extras     Extras        `json:"extras,omitempty"`
}

// AnimationSampler pairs a keyframe time accessor (input) with a value
// accessor (output). Interpolation defaults to LINEAR.
type AnimationSampler struct {
	Input         Index[Accessor] `json:"input"`
	Interpolation Interpolation   `json:"interpolation,omitempty"`
	Output        Index[Accessor] `json:"output"`
	Extensions    Extensions      `json:"extensions,omitempty"`
	Extras        Extras          `json:"extras,omitempty"`
}

func (s *AnimationSampler) assignDefaults() {
	if s.Interpolation == "" {
		s.Interpolation = InterpolationLinear
	}
}
