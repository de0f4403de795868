package framegraph

import "github.com/gogpu/forge/driver"

// Builder records a frame's transient and imported textures and the
// passes that read or write them. Build compiles those declarations into
// a Plan; a Builder is single-use and panics if a declaration method is
// called after Build runs.
type Builder struct {
	allocator driver.Allocator

	textures []*textureData
	passes   []*Pass

	renderFrameColor TextureHandle
	renderFrameDepth TextureHandle

	built bool
}

// NewBuilder creates a Builder whose transient physical textures, once
// aliased, are allocated through allocator.
func NewBuilder(allocator driver.Allocator) *Builder {
	b := &Builder{
		allocator:        allocator,
		renderFrameColor: InvalidTextureHandle,
		renderFrameDepth: InvalidTextureHandle,
	}
	return b
}

func (b *Builder) checkNotBuilt() {
	if b.built {
		panic(ErrBuilderConsumed)
	}
}

func (b *Builder) addTexture(settings TextureSettings) *textureData {
	handle := TextureHandle(len(b.textures))
	td := newTextureData(handle, settings)
	b.textures = append(b.textures, td)
	return td
}

// CreateTexture declares a transient texture the builder allocates a
// physical image for once aliasing has run.
func (b *Builder) CreateTexture(settings TextureSettings) TextureHandle {
	b.checkNotBuilt()
	return b.addTexture(settings).handle
}

// ImportTexture declares a texture backed by an externally-owned image —
// one the caller already created, at the given array layer and mip
// level. The texture's declared size is the image's size shifted by
// mipLevel.
func (b *Builder) ImportTexture(image driver.Image, layer, mipLevel uint32) TextureHandle {
	b.checkNotBuilt()
	settings := TextureSettings{
		Width:  shiftDim(image.Width(), mipLevel),
		Height: shiftDim(image.Height(), mipLevel),
		Format: image.Format(),
	}
	td := b.addTexture(settings)
	td.imported = true
	td.image = image
	td.layer = layer
	td.mipLevel = mipLevel
	return td.handle
}

// CreatePass declares a new pass named name and returns it for the
// caller to chain AddSampledTexture/AddOutputTexture/etc. declarations
// onto.
func (b *Builder) CreatePass(name string) *Pass {
	b.checkNotBuilt()
	p := newPass(name)
	b.passes = append(b.passes, p)
	return p
}

// createRenderFrameOutput creates the two synthetic textures representing
// the present target's color and depth, if any pass enabled render-frame
// output. Both are marked imported unconditionally; their Image stays nil
// at build time and is patched per frame by Plan.Execute from a
// driver.Swapchain.
func (b *Builder) createRenderFrameOutput() {
	usesOutput := false
	for _, p := range b.passes {
		if p.renderFrameOutput {
			usesOutput = true
			break
		}
	}
	if !usesOutput {
		return
	}

	color := b.addTexture(TextureSettings{})
	color.imported = true
	color.renderFrameOutput = true
	b.renderFrameColor = color.handle

	depth := b.addTexture(TextureSettings{})
	depth.imported = true
	depth.renderFrameOutput = true
	b.renderFrameDepth = depth.handle

	for _, p := range b.passes {
		if !p.renderFrameOutput {
			continue
		}
		if _, ok := p.outputLocation(color.handle); !ok {
			p.AddOutputTexture(color.handle, 0, nil)
		}
		if p.depth == nil {
			p.SetDepthTexture(depth.handle, nil)
		}
	}
}

// Build compiles the builder's declarations into an executable Plan. The
// builder is consumed: no further declaration calls are valid afterward.
func (b *Builder) Build() (*Plan, error) {
	b.checkNotBuilt()
	b.built = true

	b.createRenderFrameOutput()
	b.createTextureDatas()

	deps, err := b.createPassDependencies()
	if err != nil {
		return nil, err
	}
	used, err := b.markUsedPasses(deps)
	if err != nil {
		return nil, err
	}

	order, err := orderPasses(b.passes, deps, used)
	if err != nil {
		return nil, err
	}
	updateTextureDatas(b.textures, order)

	passesByNewIndex := make([]*Pass, len(order))
	for newIdx, origIdx := range order {
		passesByNewIndex[newIdx] = b.passes[origIdx]
	}

	aliases := createPhysicalTextureAliases(b.textures)
	physicals, preBarriers, outputDeps := createPhysicalTextures(b.allocator, b.textures, passesByNewIndex, aliases)

	planPasses := createPhysicalPasses(b.textures, passesByNewIndex, physicals, preBarriers, outputDeps)

	return &Plan{
		Passes:           planPasses,
		PhysicalTextures: physicals,
		renderFrameColor: b.renderFrameColor,
		renderFrameDepth: b.renderFrameDepth,
	}, nil
}
