package driver

import "github.com/gogpu/forge/gputypes"

// Image is the opaque GPU-image handle the core borrows from its external
// collaborator — a real Vulkan image, a window surface's swapchain image,
// or the software package's CPU-side stand-in. The core only ever queries
// it; it never constructs one directly except through an Allocator.
type Image interface {
	Width() uint32
	Height() uint32
	Format() gputypes.Format
	Layers() uint32
	MipLevels() uint32
}

// ImageUsage is a bitmask describing how a physical texture's backing
// image will be used, so a real driver can pick matching Vulkan usage and
// aspect flags when it allocates.
type ImageUsage uint8

const (
	ImageUsageSampled ImageUsage = 1 << iota
	ImageUsageInputAttachment
	ImageUsageRenderTarget
)

// ImageSettings describes a transient image the frame graph needs
// allocated. It never describes an imported image — those arrive already
// built, through the frame graph's ImportTexture.
type ImageSettings struct {
	Width, Height uint32
	Format        gputypes.Format
	Usage         ImageUsage
}

// Allocator creates and destroys the transient images a Plan's physical
// textures are backed by. The frame-graph builder calls it once per
// physical texture while building a Plan; it is never called per frame.
type Allocator interface {
	CreateImage(settings ImageSettings) (Image, error)
	DestroyImage(Image)
}
