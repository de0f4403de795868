package gbuffer

import (
	"testing"

	"github.com/gogpu/forge/gputypes"
)

func floatFormat(n int) gputypes.Format {
	return gputypes.Format{Component: gputypes.ComponentTypeSFLOAT32, Count: n}
}

func TestBuildPacksDisjointParametersIntoOneTexture(t *testing.T) {
	model := LightingModel{Parameters: []Parameter{
		{Name: "albedo", Format: floatFormat(3)},
		{Name: "ao", Format: floatFormat(1)},
	}}

	g, err := Build([]LightingModel{model})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(g.Textures) != 1 {
		t.Fatalf("expected both parameters to fit in one texture, got %d textures", len(g.Textures))
	}
	if g.Textures[0].Format.Count < 4 {
		t.Errorf("expected a 4-channel format to hold 3+1 channels, got %d", g.Textures[0].Format.Count)
	}
}

func TestBuildEveryParameterMappedExactlyOnce(t *testing.T) {
	model := LightingModel{Parameters: []Parameter{
		{Name: "position", Format: floatFormat(3)},
		{Name: "normal", Format: floatFormat(3)},
		{Name: "color", Format: floatFormat(3)},
		{Name: "ao", Format: floatFormat(1)},
		{Name: "metal", Format: floatFormat(1)},
		{Name: "rough", Format: floatFormat(1)},
	}}

	g, err := Build([]LightingModel{model})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	seen := make(map[string]bool)
	for _, texture := range g.Textures {
		if texture.Format.Count > 4 {
			t.Errorf("texture %s has more than 4 channels: %d", texture.Name, texture.Format.Count)
		}
		occupied := 0
		for _, channel := range texture.Components {
			for _, c := range channel {
				if seen[c.Name] {
					t.Errorf("component %s appears in more than one texture", c.Name)
				}
				seen[c.Name] = true
				occupied += c.Size
			}
		}
		if occupied > 4 {
			t.Errorf("texture %s occupies %d channels, more than its 4 slots", texture.Name, occupied)
		}
	}

	for _, p := range model.Parameters {
		if !seen[p.Name] {
			t.Errorf("parameter %s was never packed into a texture", p.Name)
		}
	}

	// 3+3+3+1+1+1 = 12 channels of demand can never fit fewer than
	// ceil(12/4) = 3 four-channel textures, regardless of how greedily
	// they're packed.
	if len(g.Textures) < 3 {
		t.Errorf("expected at least 3 textures for 12 channels of demand, got %d", len(g.Textures))
	}
}

func TestBuildSeparatesChannelsWithinSameLightingModel(t *testing.T) {
	model := LightingModel{Parameters: []Parameter{
		{Name: "a", Format: floatFormat(1)},
		{Name: "b", Format: floatFormat(1)},
		{Name: "c", Format: floatFormat(1)},
		{Name: "d", Format: floatFormat(1)},
	}}

	g, err := Build([]LightingModel{model})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, texture := range g.Textures {
		total := 0
		for _, channel := range texture.Components {
			total += len(channel)
		}
		if total > 4 {
			t.Errorf("texture %s packed %d same-model scalar parameters into 4 channels", texture.Name, total)
		}
	}
}

func TestBuildSharesChannelsAcrossDistinctModels(t *testing.T) {
	modelA := LightingModel{Parameters: []Parameter{{Name: "roughA", Format: floatFormat(1)}}}
	modelB := LightingModel{Parameters: []Parameter{{Name: "roughB", Format: floatFormat(1)}}}

	g, err := Build([]LightingModel{modelA, modelB})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(g.Textures) != 1 {
		t.Fatalf("expected parameters from distinct models to share one texture, got %d", len(g.Textures))
	}
}

func TestBuildRejectsConflictingFormatsForSameName(t *testing.T) {
	modelA := LightingModel{Parameters: []Parameter{{Name: "shared", Format: floatFormat(1)}}}
	modelB := LightingModel{Parameters: []Parameter{{Name: "shared", Format: floatFormat(3)}}}

	_, err := Build([]LightingModel{modelA, modelB})
	if err == nil {
		t.Fatal("expected an error for a name reused with conflicting formats")
	}
}

func TestBuildGroupsByComponentTypeSeparately(t *testing.T) {
	model := LightingModel{Parameters: []Parameter{
		{Name: "albedo", Format: floatFormat(3)},
		{Name: "materialID", Format: gputypes.Format{Component: gputypes.ComponentTypeUINT32, Count: 1}},
	}}

	g, err := Build([]LightingModel{model})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Textures) != 2 {
		t.Fatalf("expected incompatible component types to land in separate textures, got %d", len(g.Textures))
	}
}

func TestGBufferIsCompatible(t *testing.T) {
	model := LightingModel{Parameters: []Parameter{
		{Name: "albedo", Format: floatFormat(3)},
		{Name: "ao", Format: floatFormat(1)},
	}}

	g, err := Build([]LightingModel{model})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !g.IsCompatible(model) {
		t.Error("expected the GBuffer built from model to be compatible with it")
	}

	incompatible := LightingModel{Parameters: []Parameter{{Name: "missing", Format: floatFormat(1)}}}
	if g.IsCompatible(incompatible) {
		t.Error("expected a GBuffer to be incompatible with an unpacked parameter")
	}
}

func TestGBufferTextureBindingsDeduplicates(t *testing.T) {
	model := LightingModel{Parameters: []Parameter{
		{Name: "albedo", Format: floatFormat(3)},
		{Name: "ao", Format: floatFormat(1)},
	}}

	g, err := Build([]LightingModel{model})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	bindings, err := g.ModelTextureBindings(model)
	if err != nil {
		t.Fatalf("ModelTextureBindings: %v", err)
	}
	if len(bindings) != 1 {
		t.Fatalf("expected both parameters (same texture) to dedupe to one binding, got %d", len(bindings))
	}
}

func TestGBufferTextureBindingsRejectsUnknownComponent(t *testing.T) {
	g, err := Build([]LightingModel{{Parameters: []Parameter{{Name: "albedo", Format: floatFormat(3)}}}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if _, err := g.TextureBindings([]string{"nonexistent"}); err == nil {
		t.Error("expected an error for an unpacked component name")
	}
}
