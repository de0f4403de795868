package software

import "github.com/gogpu/forge/driver"

// Allocator implements driver.Allocator by handing out Images with no
// backing storage: it exists to let the frame graph and its tests run
// without a real Vulkan device, not to render anything.
type Allocator struct{}

// CreateImage always succeeds with a placeholder Image matching the
// requested settings.
func (Allocator) CreateImage(settings driver.ImageSettings) (driver.Image, error) {
	return &Image{
		width:     settings.Width,
		height:    settings.Height,
		format:    settings.Format,
		layers:    1,
		mipLevels: 1,
	}, nil
}

// DestroyImage is a no-op.
func (Allocator) DestroyImage(driver.Image) {}
