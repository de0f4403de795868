package framegraph

import (
	"github.com/gogpu/forge/driver"
	"github.com/gogpu/forge/gputypes"
	"github.com/gogpu/forge/internal/workerpool"
)

// PassContext is handed to a pass's ExecutionCallback by Plan.Execute,
// giving it the recording surface, the images it declared, and a worker
// pool to fan out independent recording work on.
type PassContext struct {
	cmd  driver.CommandBuffer
	pass *PlanPass
	pool *workerpool.Pool
}

// CommandBuffer returns the command buffer this pass records into.
func (c *PassContext) CommandBuffer() driver.CommandBuffer { return c.cmd }

// Image returns the image bound to handle for this pass, if the pass
// declared it as sampled, input, output, or depth.
func (c *PassContext) Image(handle TextureHandle) (driver.Image, bool) {
	img, ok := c.pass.textures[handle]
	return img, ok
}

// Parallel fans task out across n indices using the executor's worker
// pool, joining before returning.
func (c *PassContext) Parallel(n int, task func(index int)) {
	c.pool.Parallel(n, task)
}

// ExecutionCallback records a pass's commands. It must join any secondary
// command buffers or parallel work it starts before returning.
type ExecutionCallback func(ctx *PassContext)

type sampledTexture struct {
	handle TextureHandle
	stages gputypes.ShaderStage
}

type locatedTexture struct {
	handle   TextureHandle
	location int
}

type outputTexture struct {
	handle     TextureHandle
	location   int
	clearColor *[4]float32
}

type depthTexture struct {
	handle     TextureHandle
	clearDepth *float32
}

// Pass is one node of the frame graph: a named unit of GPU work declaring
// which textures it samples, reads, and writes. Its builder methods
// return the Pass itself so declarations can be chained.
type Pass struct {
	name string

	sampled []sampledTexture
	input   []locatedTexture
	output  []outputTexture
	depth   *depthTexture

	secondaryCommandBuffers bool
	renderFrameOutput       bool

	callback ExecutionCallback
}

func newPass(name string) *Pass {
	return &Pass{name: name}
}

// AddSampledTexture declares that this pass samples handle from the
// given shader stages.
func (p *Pass) AddSampledTexture(handle TextureHandle, stages gputypes.ShaderStage) *Pass {
	p.sampled = append(p.sampled, sampledTexture{handle: handle, stages: stages})
	return p
}

// AddInputTexture declares that this pass reads handle as an input
// attachment bound at the given shader location.
func (p *Pass) AddInputTexture(handle TextureHandle, location int) *Pass {
	p.input = append(p.input, locatedTexture{handle: handle, location: location})
	return p
}

// AddOutputTexture declares that this pass writes handle as a color
// attachment bound at the given shader location. clearColor is nil if the
// pass does not clear it on load.
func (p *Pass) AddOutputTexture(handle TextureHandle, location int, clearColor *[4]float32) *Pass {
	p.output = append(p.output, outputTexture{handle: handle, location: location, clearColor: clearColor})
	return p
}

// SetDepthTexture declares that this pass writes handle as its depth
// attachment. clearDepth is nil if the pass does not clear it on load.
func (p *Pass) SetDepthTexture(handle TextureHandle, clearDepth *float32) *Pass {
	p.depth = &depthTexture{handle: handle, clearDepth: clearDepth}
	return p
}

// EnableSecondaryCommandBuffers marks this pass's render pass as one whose
// contents are recorded into secondary command buffers rather than
// directly into the primary one.
func (p *Pass) EnableSecondaryCommandBuffers() *Pass {
	p.secondaryCommandBuffers = true
	return p
}

// EnableRenderFrameOutput marks this pass as writing the present target:
// the executor patches its color/depth attachments from the current
// frame's acquired swapchain images before the pass runs.
func (p *Pass) EnableRenderFrameOutput() *Pass {
	p.renderFrameOutput = true
	return p
}

// SetExecutionCallback sets the callback Plan.Execute invokes to record
// this pass's commands.
func (p *Pass) SetExecutionCallback(callback ExecutionCallback) *Pass {
	p.callback = callback
	return p
}

func (p *Pass) samplingStages(handle TextureHandle) gputypes.ShaderStage {
	var stages gputypes.ShaderStage
	for _, s := range p.sampled {
		if s.handle == handle {
			stages |= s.stages
		}
	}
	return stages
}

func (p *Pass) outputLocation(handle TextureHandle) (int, bool) {
	for _, out := range p.output {
		if out.handle == handle {
			return out.location, true
		}
	}
	return 0, false
}
