package gputypes

// PipelineStage is a bitmask of GPU pipeline stages, used on both sides of
// a Barrier. Values are additive flags, mirroring a Vulkan-style
// PipelineStageFlags bitmask.
type PipelineStage uint32

const (
	StageTopOfPipe PipelineStage = 1 << iota
	StageVertexShader
	StageTessellationControl
	StageTessellationEvaluation
	StageGeometryShader
	StageFragmentShader
	StageComputeShader
	StageEarlyFragmentTests
	StageLateFragmentTests
	StageColorAttachmentOutput
	StageTransfer
	StageAllCommands
)

// Access is a bitmask of memory access types a pipeline stage performs.
type Access uint32

const (
	AccessColorAttachmentRead Access = 1 << iota
	AccessColorAttachmentWrite
	AccessDepthStencilAttachmentRead
	AccessDepthStencilAttachmentWrite
	AccessInputAttachmentRead
	AccessShaderRead
	AccessShaderWrite
)

// ImageLayout is the layout an image must be in to be used by a given
// pipeline stage/access combination.
type ImageLayout uint8

const (
	LayoutUndefined ImageLayout = iota
	LayoutAttachment
	LayoutShaderRead
	LayoutPresent
)

// ShaderStage identifies a single programmable stage of a shader program,
// tagging an entry function declaration and a pass's sampled-texture
// bindings.
type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = 1 << iota
	ShaderStageFragment
	ShaderStageCompute
	ShaderStageTessellationControl
	ShaderStageTessellationEvaluation
	ShaderStageGeometry
)

// String renders the canonical lowercase stage name used in shader source
// (e.g. "vertex", "fragment") and in entry-point tagging.
func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	case ShaderStageCompute:
		return "compute"
	case ShaderStageTessellationControl:
		return "tesscontrol"
	case ShaderStageTessellationEvaluation:
		return "tesseval"
	case ShaderStageGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// PipelineStages returns the set of pipeline stages a shader runs at for
// each bit set in s.
func (s ShaderStage) PipelineStages() PipelineStage {
	var out PipelineStage
	if s&ShaderStageVertex != 0 {
		out |= StageVertexShader
	}
	if s&ShaderStageTessellationControl != 0 {
		out |= StageTessellationControl
	}
	if s&ShaderStageTessellationEvaluation != 0 {
		out |= StageTessellationEvaluation
	}
	if s&ShaderStageGeometry != 0 {
		out |= StageGeometryShader
	}
	if s&ShaderStageFragment != 0 {
		out |= StageFragmentShader
	}
	if s&ShaderStageCompute != 0 {
		out |= StageComputeShader
	}
	return out
}
