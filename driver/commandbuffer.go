package driver

import "github.com/gogpu/forge/gputypes"

// AttachmentLoading selects how a render-pass attachment's prior contents
// are treated when the pass begins.
type AttachmentLoading uint8

const (
	AttachmentLoad AttachmentLoading = iota
	AttachmentClear
)

// AttachmentStoring selects whether an attachment's contents are kept
// after the pass ends.
type AttachmentStoring uint8

const (
	AttachmentStore AttachmentStoring = iota
	AttachmentDontCare
)

// UnusedAttachment marks a subpass attachment reference slot that has no
// backing attachment at that location (a location gap).
const UnusedAttachment = -1

// ClearValue is either a color or a depth/stencil clear value, tagged by
// which attachment kind it applies to.
type ClearValue struct {
	Color          [4]float32
	Depth          float32
	Stencil        uint32
	IsDepthStencil bool
}

// AttachmentView names one image a render pass reads or writes, at the
// layouts and load/store behavior the frame-graph builder computed for it.
type AttachmentView struct {
	Image                      Image
	Format                     gputypes.Format
	Loading                    AttachmentLoading
	Storing                    AttachmentStoring
	InitialLayout, FinalLayout gputypes.ImageLayout
}

// RenderPassBeginInfo is everything CommandBuffer.BeginRenderPass needs to
// open a render pass: its attachments in declaration order (inputs, then
// outputs, then depth), subpass attachment references by shader location,
// their clear values in attachment order, the optional output dependency
// a same-render-pass barrier collapses into, and whether the pass records
// into secondary command buffers.
type RenderPassBeginInfo struct {
	Name                    string
	Width, Height           uint32
	Attachments             []AttachmentView
	InputRefs               []int
	ColorRefs               []int
	DepthRef                int
	ClearValues             []ClearValue
	OutputDependency        *Barrier
	SecondaryCommandBuffers bool
}

// CommandBuffer is the command-recording surface the frame-graph executor
// drives: explicit barrier and pass-begin/end calls, with no knowledge of
// how they are realized — a real Vulkan command buffer, or the software
// package's in-memory recording used by tests.
type CommandBuffer interface {
	ImageBarrier(img Image, barrier Barrier)
	BeginRenderPass(info RenderPassBeginInfo)
	EndRenderPass()

	// Secondary returns a command buffer a pass callback can record into
	// concurrently with other workers while the render pass started by
	// BeginRenderPass is open; the callback must join every secondary
	// buffer it creates before returning.
	Secondary() CommandBuffer
}
