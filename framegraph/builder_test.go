package framegraph

import (
	"testing"

	"github.com/gogpu/forge/driver/software"
	"github.com/gogpu/forge/gputypes"
)

func rgba8() gputypes.Format {
	return gputypes.Format{Component: gputypes.ComponentTypeUNORM8, Count: 4}
}

func noopCallback(*PassContext) {}

// TestBuildOrdersWriterBeforeReaderWithBarrier covers S4: pass A writes a
// texture, pass B samples it. The plan must order A before B and carry a
// barrier whose src is the color-attachment write and dst is the
// fragment-shader read.
func TestBuildOrdersWriterBeforeReaderWithBarrier(t *testing.T) {
	b := NewBuilder(software.Allocator{})
	tex := b.CreateTexture(TextureSettings{Width: 256, Height: 256, Format: rgba8()})

	// B must be the one that keeps A alive, so make B the final output by
	// importing a target and driving B's output into it.
	target := b.ImportTexture(software.NewImage(256, 256, rgba8()), 0, 0)

	b.CreatePass("A").AddOutputTexture(tex, 0, nil).SetExecutionCallback(noopCallback)
	b.CreatePass("B").
		AddSampledTexture(tex, gputypes.ShaderStageFragment).
		AddOutputTexture(target, 0, nil).
		SetExecutionCallback(noopCallback)

	plan, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Passes) != 2 {
		t.Fatalf("expected 2 kept passes, got %d", len(plan.Passes))
	}
	if plan.Passes[0].Name != "A" || plan.Passes[1].Name != "B" {
		t.Fatalf("expected order [A B], got [%s %s]", plan.Passes[0].Name, plan.Passes[1].Name)
	}

	dep := plan.Passes[0].OutputDependency
	if dep == nil {
		t.Fatalf("expected pass A to carry an output dependency barrier")
	}
	if dep.SrcStages&gputypes.StageColorAttachmentOutput == 0 {
		t.Errorf("expected src stage to include ColorAttachmentOutput, got %v", dep.SrcStages)
	}
	if dep.SrcAccess&gputypes.AccessColorAttachmentWrite == 0 {
		t.Errorf("expected src access to include ColorAttachmentWrite, got %v", dep.SrcAccess)
	}
	if dep.DstStages&gputypes.StageFragmentShader == 0 {
		t.Errorf("expected dst stage to include FragmentShader, got %v", dep.DstStages)
	}
	if dep.DstAccess&gputypes.AccessShaderRead == 0 {
		t.Errorf("expected dst access to include ShaderRead, got %v", dep.DstAccess)
	}
	if dep.DstLayout != gputypes.LayoutShaderRead {
		t.Errorf("expected dst layout ShaderRead, got %v", dep.DstLayout)
	}
}

func TestBuildPrunesPassesNotReachableFromFinalOutput(t *testing.T) {
	b := NewBuilder(software.Allocator{})
	dead := b.CreateTexture(TextureSettings{Width: 64, Height: 64, Format: rgba8()})
	target := b.ImportTexture(software.NewImage(64, 64, rgba8()), 0, 0)

	b.CreatePass("dead-end").AddOutputTexture(dead, 0, nil).SetExecutionCallback(noopCallback)
	b.CreatePass("kept").AddOutputTexture(target, 0, nil).SetExecutionCallback(noopCallback)

	plan, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(plan.Passes) != 1 || plan.Passes[0].Name != "kept" {
		t.Fatalf("expected only the pass reaching the final output to survive, got %+v", plan.Passes)
	}
}

func TestBuildRejectsSelfDependency(t *testing.T) {
	b := NewBuilder(software.Allocator{})
	tex := b.CreateTexture(TextureSettings{Width: 32, Height: 32, Format: rgba8()})
	b.CreatePass("self").
		AddSampledTexture(tex, gputypes.ShaderStageFragment).
		AddOutputTexture(tex, 0, nil).
		SetExecutionCallback(noopCallback)

	_, err := b.Build()
	if err == nil {
		t.Fatal("expected an error for a pass that reads and writes the same texture")
	}
	if !IsBuildError(err) {
		t.Fatalf("expected a *BuildError, got %T: %v", err, err)
	}
}

func TestBuildRejectsDependencyCycle(t *testing.T) {
	b := NewBuilder(software.Allocator{})
	t1 := b.CreateTexture(TextureSettings{Width: 32, Height: 32, Format: rgba8()})
	t2 := b.CreateTexture(TextureSettings{Width: 32, Height: 32, Format: rgba8()})

	b.CreatePass("A").
		AddSampledTexture(t2, gputypes.ShaderStageFragment).
		AddOutputTexture(t1, 0, nil).
		SetExecutionCallback(noopCallback)
	b.CreatePass("B").
		AddSampledTexture(t1, gputypes.ShaderStageFragment).
		AddOutputTexture(t2, 0, nil).
		SetExecutionCallback(noopCallback)

	_, err := b.Build()
	if err == nil {
		t.Fatal("expected an error for a cyclic pass dependency")
	}
	if !IsBuildError(err) {
		t.Fatalf("expected a *BuildError, got %T: %v", err, err)
	}
}

func TestBuildRejectsKeptPassWithoutCallback(t *testing.T) {
	b := NewBuilder(software.Allocator{})
	target := b.ImportTexture(software.NewImage(16, 16, rgba8()), 0, 0)
	b.CreatePass("uncallbacked").AddOutputTexture(target, 0, nil)

	_, err := b.Build()
	if err == nil {
		t.Fatal("expected an error for a kept pass with no execution callback")
	}
}

func TestBuilderPanicsOnDeclarationAfterBuild(t *testing.T) {
	b := NewBuilder(software.Allocator{})
	target := b.ImportTexture(software.NewImage(16, 16, rgba8()), 0, 0)
	b.CreatePass("p").AddOutputTexture(target, 0, nil).SetExecutionCallback(noopCallback)
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected CreateTexture after Build to panic")
		}
	}()
	b.CreateTexture(TextureSettings{Width: 1, Height: 1, Format: rgba8()})
}

func TestImportTextureAppliesMipLevelShift(t *testing.T) {
	b := NewBuilder(software.Allocator{})
	img := software.NewImage(256, 128, rgba8())
	handle := b.ImportTexture(img, 0, 2)

	td := b.textures[handle]
	if td.settings.Width != 64 || td.settings.Height != 32 {
		t.Fatalf("expected mip-shifted size 64x32, got %dx%d", td.settings.Width, td.settings.Height)
	}
}
