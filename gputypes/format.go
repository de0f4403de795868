package gputypes

// ComponentType is the scalar storage type of one texture channel.
type ComponentType uint8

const (
	ComponentTypeUnknown ComponentType = iota
	ComponentTypeUNORM8
	ComponentTypeSNORM8
	ComponentTypeUINT8
	ComponentTypeSINT8
	ComponentTypeUNORM16
	ComponentTypeSFLOAT16
	ComponentTypeUINT16
	ComponentTypeSINT16
	ComponentTypeSFLOAT32
	ComponentTypeUINT32
	ComponentTypeSINT32
)

// String returns the component type's upper-case name, as used in shader
// library naming and diagnostic messages.
func (c ComponentType) String() string {
	switch c {
	case ComponentTypeUNORM8:
		return "UNORM8"
	case ComponentTypeSNORM8:
		return "SNORM8"
	case ComponentTypeUINT8:
		return "UINT8"
	case ComponentTypeSINT8:
		return "SINT8"
	case ComponentTypeUNORM16:
		return "UNORM16"
	case ComponentTypeSFLOAT16:
		return "SFLOAT16"
	case ComponentTypeUINT16:
		return "UINT16"
	case ComponentTypeSINT16:
		return "SINT16"
	case ComponentTypeSFLOAT32:
		return "SFLOAT32"
	case ComponentTypeUINT32:
		return "UINT32"
	case ComponentTypeSINT32:
		return "SINT32"
	default:
		return "Unknown"
	}
}

// Format is a concrete, standard texture format: a (ComponentType,
// component count) pair with a stable identity, used both as the render
// target/transient texture format in the frame graph and as the G-Buffer
// attachment format.
type Format struct {
	Component ComponentType
	Count     int // number of channels occupied, in [1, 4]
}

// byteSize reports per-component storage cost in bytes. Nothing in this
// package calls it: SmallestSupportedFormat picks by channel count alone.
func (c ComponentType) byteSize() int {
	switch c {
	case ComponentTypeUNORM8, ComponentTypeSNORM8, ComponentTypeUINT8, ComponentTypeSINT8:
		return 1
	case ComponentTypeUNORM16, ComponentTypeSFLOAT16, ComponentTypeUINT16, ComponentTypeSINT16:
		return 2
	case ComponentTypeSFLOAT32, ComponentTypeUINT32, ComponentTypeSINT32:
		return 4
	default:
		return 0
	}
}

// supportedForRenderTargetAndSampling reports whether the standard format
// is supported as both a render target and a sampled image: every 1-, 2-
// and 4-channel format is, and no 3-channel format is, whatever its
// component type. This stands in for Renderer::getImageFormatOptimalUsages
// from the reference implementation, as a fixed rule instead of a driver
// query since this package has no driver underneath it.
func (f Format) supportedForRenderTargetAndSampling() bool {
	if f.Count == 3 {
		// 3-component color formats are not part of the standard set of
		// mandatory render-target formats; packers must round up to 4.
		return false
	}
	return f.Count >= 1 && f.Count <= 4
}

// SmallestSupportedFormat returns the smallest standard color format with
// component type c whose channel count is at least minCount and which is
// supported for both render-target and sampled-image usage, growing the
// channel count until 4 if necessary. It reports false if no channel count
// up to 4 is supported (§3.3, §4.6 step 6).
func SmallestSupportedFormat(c ComponentType, minCount int) (Format, bool) {
	if minCount < 1 {
		minCount = 1
	}
	for count := minCount; count <= 4; count++ {
		f := Format{Component: c, Count: count}
		if f.supportedForRenderTargetAndSampling() {
			return f, true
		}
	}
	return Format{}, false
}
