package framegraph

import (
	"errors"

	"github.com/gogpu/forge/driver"
	"github.com/gogpu/forge/internal/workerpool"
)

// ErrSwapchainRequired is returned by Execute when the plan has a pass
// enabling render-frame output but no Swapchain was given to acquire a
// present target from.
var ErrSwapchainRequired = errors.New("plan uses render-frame output but no swapchain was given")

// Execute drives cmd through the plan's passes in their compiled order:
// for any pass enabling render-frame output it first acquires this
// frame's present target from swapchain, patching it into every pass that
// references it; it then applies each pass's pre-pass barriers, begins
// its render pass, invokes its callback, and ends the render pass; and
// finally presents if the plan wrote to the present target. Callbacks may
// fan out across pool, but Execute itself runs passes strictly in order,
// with no concurrency between them.
func (p *Plan) Execute(cmd driver.CommandBuffer, pool *workerpool.Pool, swapchain driver.Swapchain) (driver.SwapchainResult, error) {
	if pool == nil {
		pool = workerpool.New(1)
	}

	usesRenderFrameOutput := false
	for _, pass := range p.Passes {
		if pass.UseRenderFrameOutput {
			usesRenderFrameOutput = true
			break
		}
	}

	if usesRenderFrameOutput {
		if swapchain == nil {
			return driver.SwapchainError, ErrSwapchainRequired
		}
		color, depth, err := swapchain.Acquire()
		if err != nil {
			return driver.SwapchainError, err
		}
		p.patchRenderFrameOutput(color, depth)
	}

	for _, pass := range p.Passes {
		for _, pb := range pass.preBarriers {
			cmd.ImageBarrier(pass.textures[pb.Handle], pb.Barrier)
		}

		cmd.BeginRenderPass(driver.RenderPassBeginInfo{
			Name:                    pass.Name,
			Width:                   pass.Width,
			Height:                  pass.Height,
			Attachments:             pass.Attachments,
			InputRefs:               pass.InputRefs,
			ColorRefs:               pass.ColorRefs,
			DepthRef:                pass.DepthRef,
			ClearValues:             pass.ClearValues,
			OutputDependency:        pass.OutputDependency,
			SecondaryCommandBuffers: pass.SecondaryCommandBuffers,
		})

		if pass.Callback != nil {
			pass.Callback(&PassContext{cmd: cmd, pass: pass, pool: pool})
		}

		cmd.EndRenderPass()
	}

	if usesRenderFrameOutput {
		return swapchain.Present(), nil
	}
	return driver.SwapchainSuccess, nil
}

// patchRenderFrameOutput fills in the current frame's acquired color and
// depth images wherever the plan references the two synthetic
// render-frame-output handles, since their physical images are unknown
// at Build time.
func (p *Plan) patchRenderFrameOutput(color, depth driver.Image) {
	for _, pass := range p.Passes {
		if !pass.UseRenderFrameOutput {
			continue
		}
		for i, handle := range pass.handles {
			switch handle {
			case p.renderFrameColor:
				pass.Attachments[i].Image = color
				pass.textures[handle] = color
				pass.Width, pass.Height = color.Width(), color.Height()
			case p.renderFrameDepth:
				pass.Attachments[i].Image = depth
				pass.textures[handle] = depth
			}
		}
	}
}
