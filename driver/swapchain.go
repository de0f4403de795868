package driver

// SwapchainResult is the typed presentation outcome a Swapchain reports
// back: Success and Suboptimal are success-path, OutOfDate tells the
// caller to rebuild the plan and retry, Error is fatal for the current
// frame only.
type SwapchainResult uint8

const (
	SwapchainSuccess SwapchainResult = iota
	SwapchainNotReady
	SwapchainSuboptimal
	SwapchainOutOfDate
	SwapchainError
)

// Swapchain is the minimal present-target collaborator the frame-graph
// executor acquires images from and presents to for any pass enabling
// render-frame output. A real Vulkan swapchain implements it; this core
// never manages window surfaces itself.
type Swapchain interface {
	// Acquire returns this frame's color and depth images for the present
	// target. Depth may be a transient image the caller owns across
	// frames; color is whatever the swapchain just vended.
	Acquire() (color, depth Image, err error)
	Present() SwapchainResult
}
