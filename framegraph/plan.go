package framegraph

import "github.com/gogpu/forge/driver"

// PhysicalTexture is one allocated image and the texture handles it backs
// over the life of a Plan. A transient texture's physical image may be
// shared with other, non-overlapping transient textures; an imported
// texture always gets its own dedicated PhysicalTexture.
type PhysicalTexture struct {
	Image          driver.Image
	TextureHandles []TextureHandle

	imported  bool
	settings  TextureSettings
	useRanges [][2]int
}

// overlapsAny reports whether useRange overlaps any range already
// committed to this physical texture — the disjointness check Phase 4b
// relies on before reusing an image for a new texture handle.
func (p *PhysicalTexture) overlapsAny(useRange [2]int) bool {
	for _, existing := range p.useRanges {
		if useRange[0] <= existing[1] && existing[0] <= useRange[1] {
			return true
		}
	}
	return false
}

// PlanPass is one pass in its final execution order, with every
// attachment, barrier, and callback Plan.Execute needs to drive it.
type PlanPass struct {
	Name                    string
	UseRenderFrameOutput    bool
	Width, Height           uint32
	Attachments             []driver.AttachmentView
	InputRefs               []int
	ColorRefs               []int
	DepthRef                int
	ClearValues             []driver.ClearValue
	OutputDependency        *driver.Barrier
	SecondaryCommandBuffers bool
	Callback                ExecutionCallback

	handles       []TextureHandle // parallel to Attachments
	preBarriers   []preBarrier
	textures      map[TextureHandle]driver.Image
}

// Plan is the compiled result of Builder.Build: an ordered, aliased, and
// barrier-annotated sequence of passes ready to execute against a
// driver.CommandBuffer.
type Plan struct {
	Passes           []*PlanPass
	PhysicalTextures []*PhysicalTexture

	renderFrameColor TextureHandle
	renderFrameDepth TextureHandle
}
