package framegraph

import (
	"github.com/gogpu/forge/driver"
	"github.com/gogpu/forge/gputypes"
)

// createPhysicalPasses is Phase 4c: for every pass in its final order, it
// builds the attachment views, subpass attachment-reference arrays, clear
// values, and pre-pass/output-dependency barriers Plan.Execute needs.
func createPhysicalPasses(
	textures []*textureData,
	passesByNewIndex []*Pass,
	physicals []*PhysicalTexture,
	preBarriers map[int][]preBarrier,
	outputDeps map[int]*driver.Barrier,
) []*PlanPass {
	byHandle := make(map[TextureHandle]*textureData, len(textures))
	for _, td := range textures {
		byHandle[td.handle] = td
	}

	imageForHandle := make(map[TextureHandle]driver.Image, len(textures))
	for _, phys := range physicals {
		for _, h := range phys.TextureHandles {
			imageForHandle[h] = phys.Image
		}
	}

	planPasses := make([]*PlanPass, len(passesByNewIndex))

	for newIdx, pass := range passesByNewIndex {
		pp := &PlanPass{
			Name:                    pass.name,
			UseRenderFrameOutput:    pass.renderFrameOutput,
			DepthRef:                driver.UnusedAttachment,
			SecondaryCommandBuffers: pass.secondaryCommandBuffers,
			Callback:                pass.callback,
			preBarriers:             preBarriers[newIdx],
			textures:                make(map[TextureHandle]driver.Image),
		}
		if dep, ok := outputDeps[newIdx]; ok {
			pp.OutputDependency = dep
		}

		maxLocation := -1
		for _, in := range pass.input {
			if in.location > maxLocation {
				maxLocation = in.location
			}
		}
		for _, out := range pass.output {
			if out.location > maxLocation {
				maxLocation = out.location
			}
		}
		pp.InputRefs = fillUnused(maxLocation + 1)
		pp.ColorRefs = fillUnused(maxLocation + 1)

		addAttachment := func(handle TextureHandle, loading driver.AttachmentLoading, storing driver.AttachmentStoring,
			initialLayout, finalLayout gputypes.ImageLayout, clear driver.ClearValue, ref *[]int, location int) {
			td := byHandle[handle]
			view := driver.AttachmentView{
				Image:         imageForHandle[handle],
				Format:        td.settings.Format,
				Loading:       loading,
				Storing:       storing,
				InitialLayout: initialLayout,
				FinalLayout:   finalLayout,
			}
			idx := len(pp.Attachments)
			pp.Attachments = append(pp.Attachments, view)
			pp.ClearValues = append(pp.ClearValues, clear)
			pp.handles = append(pp.handles, handle)
			pp.textures[handle] = imageForHandle[handle]
			if ref != nil {
				(*ref)[location] = idx
			}
		}

		for _, in := range pass.input {
			td := byHandle[in.handle]
			nextUse := td.nextUse(newIdx)
			finalLayout := gputypes.LayoutAttachment
			if nextUse != invalidPassIndex && nextUse == td.nextRead(newIdx) {
				finalLayout = gputypes.LayoutShaderRead
			}
			addAttachment(in.handle, driver.AttachmentLoad, driver.AttachmentDontCare,
				gputypes.LayoutShaderRead, finalLayout, driver.ClearValue{}, &pp.InputRefs, in.location)
		}

		for _, out := range pass.output {
			td := byHandle[out.handle]
			doClear := td.doClear(newIdx)
			loading := driver.AttachmentLoad
			initial := gputypes.LayoutAttachment
			if doClear {
				loading = driver.AttachmentClear
				initial = gputypes.LayoutUndefined
			}
			nextUse := td.nextUse(newIdx)
			nextClear := td.nextClear(newIdx)
			usedLater := nextUse != invalidPassIndex
			storing := driver.AttachmentDontCare
			if td.imported || (usedLater && nextUse != nextClear) {
				storing = driver.AttachmentStore
			}
			finalLayout := gputypes.LayoutAttachment
			if usedLater && nextUse == td.nextRead(newIdx) {
				finalLayout = gputypes.LayoutShaderRead
			}
			clear := driver.ClearValue{}
			if out.clearColor != nil {
				clear.Color = *out.clearColor
			}
			addAttachment(out.handle, loading, storing, initial, finalLayout, clear, &pp.ColorRefs, out.location)
		}

		if pass.depth != nil {
			td := byHandle[pass.depth.handle]
			doClear := td.doClear(newIdx)
			loading := driver.AttachmentLoad
			initial := gputypes.LayoutAttachment
			if doClear {
				loading = driver.AttachmentClear
				initial = gputypes.LayoutUndefined
			}
			nextUse := td.nextUse(newIdx)
			nextClear := td.nextClear(newIdx)
			usedLater := nextUse != invalidPassIndex
			storing := driver.AttachmentDontCare
			if td.imported || (usedLater && nextUse != nextClear) {
				storing = driver.AttachmentStore
			}
			finalLayout := gputypes.LayoutAttachment
			if usedLater && nextUse == td.nextRead(newIdx) {
				finalLayout = gputypes.LayoutShaderRead
			}
			clear := driver.ClearValue{IsDepthStencil: true}
			if pass.depth.clearDepth != nil {
				clear.Depth = *pass.depth.clearDepth
			}
			pp.DepthRef = len(pp.Attachments)
			addAttachment(pass.depth.handle, loading, storing, initial, finalLayout, clear, nil, 0)
		}

		for _, s := range pass.sampled {
			pp.textures[s.handle] = imageForHandle[s.handle]
		}

		for _, handle := range pp.handles {
			if td := byHandle[handle]; !td.renderFrameOutput {
				pp.Width, pp.Height = td.settings.Width, td.settings.Height
				break
			}
		}

		planPasses[newIdx] = pp
	}

	return planPasses
}

func fillUnused(n int) []int {
	refs := make([]int, n)
	for i := range refs {
		refs[i] = driver.UnusedAttachment
	}
	return refs
}
