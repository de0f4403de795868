package software

import "github.com/gogpu/forge/gputypes"

// Image is a software-backed stand-in for a real GPU image: it carries
// only the metadata the core ever queries, with no pixel storage behind
// it.
type Image struct {
	width, height uint32
	format        gputypes.Format
	layers        uint32
	mipLevels     uint32
}

// NewImage constructs a standalone Image, e.g. to hand to a frame-graph
// Builder's ImportTexture as a stand-in for an externally-owned image.
func NewImage(width, height uint32, format gputypes.Format) *Image {
	return &Image{width: width, height: height, format: format, layers: 1, mipLevels: 1}
}

func (i *Image) Width() uint32           { return i.width }
func (i *Image) Height() uint32          { return i.height }
func (i *Image) Format() gputypes.Format { return i.format }
func (i *Image) Layers() uint32          { return i.layers }
func (i *Image) MipLevels() uint32       { return i.mipLevels }
