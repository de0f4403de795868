package gbuffer

import "github.com/gogpu/forge/gputypes"

// Parameter is one named, typed value a lighting model reads from or
// writes to the G-Buffer, e.g. {"normal", Format{SFLOAT32, 3}}.
type Parameter struct {
	Name   string
	Format gputypes.Format
}

// LightingModel is an ordered list of parameters that must all be
// readable from the same fragment shader invocation. Parameters within
// one model are pairwise dependent: none of them may share a texture
// channel range with another, since a single draw using this model
// writes all of them in the same pass.
type LightingModel struct {
	Parameters []Parameter
}
