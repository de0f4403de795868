package framegraph

import (
	"testing"

	"github.com/gogpu/forge/driver/software"
)

// TestAliasingReusesCompatiblePhysicalTexture covers S5: two
// same-format, same-size, non-imported textures used in disjoint pass
// ranges must share one physical texture.
func TestAliasingReusesCompatiblePhysicalTexture(t *testing.T) {
	settings := TextureSettings{Width: 128, Height: 128, Format: rgba8()}

	t1 := newTextureData(0, settings)
	t1.used = true
	t1.output = []int{0}
	t1.useRange = [2]int{0, 0}
	t1.usages = map[int]textureUsage{0: usageOutput}

	t2 := newTextureData(1, settings)
	t2.used = true
	t2.output = []int{1}
	t2.useRange = [2]int{1, 1}
	t2.usages = map[int]textureUsage{1: usageOutput}

	textures := []*textureData{t1, t2}

	aliases := createPhysicalTextureAliases(textures)
	if len(aliases) != 2 {
		t.Fatalf("expected 2 aliases, got %d", len(aliases))
	}

	passA := newPass("pass0").AddOutputTexture(0, 0, nil)
	passB := newPass("pass1").AddOutputTexture(1, 0, nil)
	passesByNewIndex := []*Pass{passA, passB}

	physicals, _, _ := createPhysicalTextures(software.Allocator{}, textures, passesByNewIndex, aliases)
	if len(physicals) != 1 {
		t.Fatalf("expected a single physical texture backing both, got %d", len(physicals))
	}
	if len(physicals[0].TextureHandles) != 2 {
		t.Fatalf("expected the physical texture to back 2 handles, got %d", len(physicals[0].TextureHandles))
	}
}

func TestAliasingDoesNotReuseOverlappingRanges(t *testing.T) {
	settings := TextureSettings{Width: 128, Height: 128, Format: rgba8()}

	t1 := newTextureData(0, settings)
	t1.used = true
	t1.output = []int{0, 1}
	t1.useRange = [2]int{0, 1}
	t1.usages = map[int]textureUsage{0: usageOutput, 1: usageOutput}

	t2 := newTextureData(1, settings)
	t2.used = true
	t2.output = []int{1}
	t2.useRange = [2]int{1, 1}
	t2.usages = map[int]textureUsage{1: usageOutput}

	textures := []*textureData{t1, t2}
	aliases := createPhysicalTextureAliases(textures)

	passA := newPass("pass0").AddOutputTexture(0, 0, nil)
	passB := newPass("pass1").AddOutputTexture(0, 0, nil).AddOutputTexture(1, 1, nil)
	passesByNewIndex := []*Pass{passA, passB}

	physicals, _, _ := createPhysicalTextures(software.Allocator{}, textures, passesByNewIndex, aliases)
	if len(physicals) != 2 {
		t.Fatalf("expected overlapping use ranges to force separate physical textures, got %d", len(physicals))
	}
}

func TestBarrierMinimalitySkipsReadAfterRead(t *testing.T) {
	settings := TextureSettings{Width: 64, Height: 64, Format: rgba8()}
	tex := newTextureData(0, settings)
	tex.used = true
	tex.sampled = []int{0, 1}
	tex.useRange = [2]int{0, 1}
	tex.usages = map[int]textureUsage{0: usageSampled, 1: usageSampled}

	textures := []*textureData{tex}
	aliases := createPhysicalTextureAliases(textures)

	passA := newPass("pass0")
	passB := newPass("pass1")
	passesByNewIndex := []*Pass{passA, passB}

	_, preBarriers, outputDeps := createPhysicalTextures(software.Allocator{}, textures, passesByNewIndex, aliases)
	if len(preBarriers) != 0 || len(outputDeps) != 0 {
		t.Fatalf("expected no barrier between two reads, got preBarriers=%v outputDeps=%v", preBarriers, outputDeps)
	}
}
