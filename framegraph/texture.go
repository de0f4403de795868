package framegraph

import (
	"github.com/gogpu/forge/driver"
	"github.com/gogpu/forge/gputypes"
)

// TextureHandle is an opaque index assigned by a Builder at texture
// declaration time (CreateTexture or ImportTexture). It is stable for the
// life of a build: Build reorders passes, never handles.
type TextureHandle int

// InvalidTextureHandle is never returned by CreateTexture or ImportTexture.
const InvalidTextureHandle TextureHandle = -1

// TextureSettings describes a texture's size and format. For a transient
// texture the builder allocates a physical image to match it; for an
// imported texture ImportTexture derives it from the image itself.
type TextureSettings struct {
	Width, Height uint32
	Format        gputypes.Format
}

// textureUsage is a bitmask of how one pass uses one texture.
type textureUsage uint8

const (
	usageSampled textureUsage = 1 << iota
	usageInput
	usageOutput
	usageDepth
	usageClear
)

const usageWrite = usageOutput | usageDepth

func (u textureUsage) isWrite() bool { return u&usageWrite != 0 }

const invalidPassIndex = -1

// textureData is the builder's working state for one texture: the lists
// of passes that touch it in each role, keyed by pass index, plus the
// per-pass usage and liveness derived from those lists once pass order is
// final.
type textureData struct {
	handle            TextureHandle
	settings          TextureSettings
	imported          bool
	image             driver.Image
	layer             uint32
	mipLevel          uint32
	renderFrameOutput bool

	sampled []int
	input   []int
	output  []int
	depth   []int
	clear   []int

	used        bool
	finalOutput bool

	usages   map[int]textureUsage
	useRange [2]int
}

func newTextureData(handle TextureHandle, settings TextureSettings) *textureData {
	return &textureData{
		handle:   handle,
		settings: settings,
		usages:   make(map[int]textureUsage),
		useRange: [2]int{invalidPassIndex, invalidPassIndex},
	}
}

// doClear reports whether passIndex is one of the passes that clears this
// texture on load.
func (t *textureData) doClear(passIndex int) bool {
	for _, p := range t.clear {
		if p == passIndex {
			return true
		}
	}
	return false
}

func nextInList(list []int, after int) int {
	best := invalidPassIndex
	for _, p := range list {
		if p > after && (best == invalidPassIndex || p < best) {
			best = p
		}
	}
	return best
}

// nextRead returns the next pass index after passIndex that samples or
// reads this texture as an input attachment, or invalidPassIndex if none.
func (t *textureData) nextRead(passIndex int) int {
	best := nextInList(t.sampled, passIndex)
	if in := nextInList(t.input, passIndex); in != invalidPassIndex && (best == invalidPassIndex || in < best) {
		best = in
	}
	return best
}

// nextWrite returns the next pass index after passIndex that writes this
// texture as a color or depth attachment, or invalidPassIndex if none.
func (t *textureData) nextWrite(passIndex int) int {
	best := nextInList(t.output, passIndex)
	if d := nextInList(t.depth, passIndex); d != invalidPassIndex && (best == invalidPassIndex || d < best) {
		best = d
	}
	return best
}

// nextClear returns the next pass index after passIndex that clears this
// texture, or invalidPassIndex if none.
func (t *textureData) nextClear(passIndex int) int {
	return nextInList(t.clear, passIndex)
}

// nextUse returns the earliest of nextRead, nextWrite and nextClear after
// passIndex, or invalidPassIndex if the texture is never touched again.
func (t *textureData) nextUse(passIndex int) int {
	best := invalidPassIndex
	for _, candidate := range []int{t.nextRead(passIndex), t.nextWrite(passIndex), t.nextClear(passIndex)} {
		if candidate != invalidPassIndex && (best == invalidPassIndex || candidate < best) {
			best = candidate
		}
	}
	return best
}

// shiftDim halves dim mipLevel times, floored at 1 — the same rule a real
// image uses to compute a mip level's extent from the base extent.
func shiftDim(dim uint32, mipLevel uint32) uint32 {
	v := dim >> mipLevel
	if v < 1 {
		v = 1
	}
	return v
}
