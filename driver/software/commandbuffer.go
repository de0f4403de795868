package software

import "github.com/gogpu/forge/driver"

// BarrierRecord captures one CommandBuffer.ImageBarrier call.
type BarrierRecord struct {
	Image   driver.Image
	Barrier driver.Barrier
}

// PassRecord captures one CommandBuffer.BeginRenderPass call.
type PassRecord struct {
	Info driver.RenderPassBeginInfo
}

// CommandBuffer records every barrier and render-pass begin/end call
// instead of submitting them to a device, so tests can assert on the
// exact sequence the executor drove it through.
type CommandBuffer struct {
	Barriers    []BarrierRecord
	Passes      []PassRecord
	Secondaries []*CommandBuffer

	open bool
}

// ImageBarrier records the barrier.
func (c *CommandBuffer) ImageBarrier(img driver.Image, barrier driver.Barrier) {
	c.Barriers = append(c.Barriers, BarrierRecord{Image: img, Barrier: barrier})
}

// BeginRenderPass records the pass and marks it open.
func (c *CommandBuffer) BeginRenderPass(info driver.RenderPassBeginInfo) {
	c.Passes = append(c.Passes, PassRecord{Info: info})
	c.open = true
}

// EndRenderPass closes the currently open pass.
func (c *CommandBuffer) EndRenderPass() {
	c.open = false
}

// Secondary returns a fresh recording CommandBuffer, tracked so tests can
// inspect every secondary buffer a callback created.
func (c *CommandBuffer) Secondary() driver.CommandBuffer {
	sec := &CommandBuffer{}
	c.Secondaries = append(c.Secondaries, sec)
	return sec
}
