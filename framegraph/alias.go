package framegraph

import (
	"golang.org/x/exp/slices"

	"github.com/gogpu/forge/driver"
	"github.com/gogpu/forge/gputypes"
)

// physicalAlias is one candidate physical-texture binding: a texture
// handle together with the image settings and usage flags a real
// allocator needs to back it.
type physicalAlias struct {
	handle   TextureHandle
	settings TextureSettings
	usage    driver.ImageUsage
	useRange [2]int
}

// createPhysicalTextureAliases is Phase 4a: for every used texture it
// derives the usage flags a physical image needs from which of the
// sampled/input/output/depth lists are non-empty, and orders the aliases
// by first use so Phase 4b can do a simple first-fit reuse scan.
func createPhysicalTextureAliases(textures []*textureData) []*physicalAlias {
	aliases := make([]*physicalAlias, 0, len(textures))
	for _, td := range textures {
		if !td.used {
			continue
		}
		var usage driver.ImageUsage
		if len(td.sampled) > 0 {
			usage |= driver.ImageUsageSampled
		}
		if len(td.input) > 0 {
			usage |= driver.ImageUsageInputAttachment
		}
		if len(td.output) > 0 || len(td.depth) > 0 {
			usage |= driver.ImageUsageRenderTarget
		}
		aliases = append(aliases, &physicalAlias{
			handle:   td.handle,
			settings: td.settings,
			usage:    usage,
			useRange: td.useRange,
		})
	}

	slices.SortFunc(aliases, func(a, b *physicalAlias) bool {
		if a.useRange[0] != b.useRange[0] {
			return a.useRange[0] < b.useRange[0]
		}
		return a.handle < b.handle
	})
	return aliases
}

func formatsCompatible(a, b TextureSettings) bool {
	return a.Width == b.Width && a.Height == b.Height && a.Format == b.Format
}

// createPhysicalTextures is Phase 4b: imported textures each get a
// dedicated PhysicalTexture (render-frame-output handles left with a nil
// Image, patched per frame by Plan.Execute); transient textures reuse any
// existing, format-compatible PhysicalTexture whose aliased useRanges
// don't overlap this one's, and only allocate a new image when no
// compatible one exists. It also derives every barrier the resulting
// aliasing requires.
func createPhysicalTextures(
	allocator driver.Allocator,
	textures []*textureData,
	passesByNewIndex []*Pass,
	aliases []*physicalAlias,
) (physicals []*PhysicalTexture, preBarriers map[int][]preBarrier, outputDeps map[int]*driver.Barrier) {
	preBarriers = make(map[int][]preBarrier)
	outputDeps = make(map[int]*driver.Barrier)

	byHandle := make(map[TextureHandle]*textureData, len(textures))
	for _, td := range textures {
		byHandle[td.handle] = td
	}

	for _, alias := range aliases {
		td := byHandle[alias.handle]

		if td.imported {
			phys := &PhysicalTexture{Image: td.image, TextureHandles: []TextureHandle{alias.handle}, imported: true}
			physicals = append(physicals, phys)
			computeBarriers([]TextureHandle{alias.handle}, byHandle, passesByNewIndex, preBarriers, outputDeps)
			continue
		}

		var reused *PhysicalTexture
		for _, phys := range physicals {
			if phys.imported {
				continue
			}
			if formatsCompatible(phys.settings, alias.settings) && !phys.overlapsAny(alias.useRange) {
				reused = phys
				break
			}
		}

		if reused != nil {
			reused.TextureHandles = append(reused.TextureHandles, alias.handle)
			reused.useRanges = append(reused.useRanges, alias.useRange)
			continue
		}

		image, err := allocator.CreateImage(driver.ImageSettings{
			Width: alias.settings.Width, Height: alias.settings.Height,
			Format: alias.settings.Format, Usage: alias.usage,
		})
		if err != nil {
			// An allocator failure here means this transient texture simply
			// has no backing image; leave it nil and let it surface when
			// used rather than abort the whole build.
			image = nil
		}
		phys := &PhysicalTexture{
			Image:          image,
			TextureHandles: []TextureHandle{alias.handle},
			settings:       alias.settings,
			useRanges:      [][2]int{alias.useRange},
		}
		physicals = append(physicals, phys)
	}

	// A second pass computes barriers for every non-imported physical
	// texture now that its full set of aliased handles is known.
	for _, phys := range physicals {
		if phys.imported {
			continue
		}
		computeBarriers(phys.TextureHandles, byHandle, passesByNewIndex, preBarriers, outputDeps)
	}

	return physicals, preBarriers, outputDeps
}

type preBarrier struct {
	Handle  TextureHandle
	Barrier driver.Barrier
}

// shaderPipelineStagesFor returns the pipeline stages a barrier side uses
// for the given texture usage on the given pass.
func shaderPipelineStagesFor(u textureUsage, pass *Pass, handle TextureHandle) gputypes.PipelineStage {
	var stages gputypes.PipelineStage
	if u&usageOutput != 0 {
		stages |= gputypes.StageColorAttachmentOutput
	}
	if u&usageDepth != 0 {
		stages |= gputypes.StageEarlyFragmentTests | gputypes.StageLateFragmentTests
	}
	if u&usageInput != 0 {
		stages |= gputypes.StageFragmentShader
	}
	if u&usageSampled != 0 && pass != nil {
		stages |= pass.samplingStages(handle).PipelineStages()
	}
	return stages
}

func accessFor(u textureUsage, isSrc bool) gputypes.Access {
	var access gputypes.Access
	if u&usageOutput != 0 {
		access |= gputypes.AccessColorAttachmentWrite
		if !isSrc {
			access |= gputypes.AccessColorAttachmentRead
		}
	}
	if u&usageDepth != 0 {
		access |= gputypes.AccessDepthStencilAttachmentWrite | gputypes.AccessDepthStencilAttachmentRead
	}
	if u&usageInput != 0 && !isSrc {
		access |= gputypes.AccessInputAttachmentRead
	}
	if u&usageSampled != 0 && !isSrc {
		access |= gputypes.AccessShaderRead
	}
	return access
}

func layoutFor(u textureUsage) gputypes.ImageLayout {
	switch {
	case u&(usageOutput|usageDepth) != 0:
		return gputypes.LayoutAttachment
	case u&(usageInput|usageSampled) != 0:
		return gputypes.LayoutShaderRead
	default:
		return gputypes.LayoutUndefined
	}
}

// computeBarriers walks every usage of every handle aliased to one
// physical texture, in ascending pass-index order, and emits a barrier at
// each transition where either side writes. A transition whose source
// usage includes Sampled cannot fold into the current pass's own
// render-pass output dependency (a sampled texture isn't one of that
// pass's attachments), so it becomes a standalone barrier applied before
// the destination pass instead.
func computeBarriers(
	handles []TextureHandle,
	byHandle map[TextureHandle]*textureData,
	passesByNewIndex []*Pass,
	preBarriers map[int][]preBarrier,
	outputDeps map[int]*driver.Barrier,
) {
	type usageAt struct {
		passIndex int
		handle    TextureHandle
		usage     textureUsage
	}

	var timeline []usageAt
	for _, handle := range handles {
		td := byHandle[handle]
		for passIndex, usage := range td.usages {
			timeline = append(timeline, usageAt{passIndex: passIndex, handle: handle, usage: usage})
		}
	}
	slices.SortFunc(timeline, func(a, b usageAt) bool { return a.passIndex < b.passIndex })

	currentUsage := textureUsage(0)
	currentPassIndex := invalidPassIndex
	currentHandle := InvalidTextureHandle

	for _, u := range timeline {
		if u.passIndex == currentPassIndex {
			currentUsage |= u.usage
			continue
		}
		if currentPassIndex != invalidPassIndex && (currentUsage.isWrite() || u.usage.isWrite()) {
			var srcPass, dstPass *Pass
			if currentPassIndex < len(passesByNewIndex) {
				srcPass = passesByNewIndex[currentPassIndex]
			}
			if u.passIndex < len(passesByNewIndex) {
				dstPass = passesByNewIndex[u.passIndex]
			}

			barrier := driver.Barrier{
				SrcStages: shaderPipelineStagesFor(currentUsage, srcPass, currentHandle),
				SrcAccess: accessFor(currentUsage, true),
				DstStages: shaderPipelineStagesFor(u.usage, dstPass, u.handle),
				DstAccess: accessFor(u.usage, false),
				DstLayout: layoutFor(u.usage),
			}
			barrier.SrcLayout = layoutFor(currentUsage)

			insideRenderPass := currentUsage&usageSampled == 0
			barrier.InsideRenderPass = insideRenderPass
			if insideRenderPass {
				barrier.SrcLayout = barrier.DstLayout
				b := barrier
				outputDeps[currentPassIndex] = &b
			} else {
				preBarriers[u.passIndex] = append(preBarriers[u.passIndex], preBarrier{Handle: u.handle, Barrier: barrier})
			}
		}
		currentUsage = u.usage
		currentPassIndex = u.passIndex
		currentHandle = u.handle
	}
}
