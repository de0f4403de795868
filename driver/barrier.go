package driver

import "github.com/gogpu/forge/gputypes"

// Barrier is one synchronization point between two uses of the same
// image, derived by the frame-graph builder from the usage transition it
// straddles. InsideRenderPass marks a barrier realized as a render-pass
// output dependency rather than a standalone image barrier.
type Barrier struct {
	SrcStages        gputypes.PipelineStage
	SrcAccess        gputypes.Access
	SrcLayout        gputypes.ImageLayout
	DstStages        gputypes.PipelineStage
	DstAccess        gputypes.Access
	DstLayout        gputypes.ImageLayout
	InsideRenderPass bool
}
