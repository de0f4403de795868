package writer

import (
	"strings"
	"testing"

	"github.com/gogpu/forge/gputypes"
	"github.com/gogpu/forge/shader/ast/preprocess"
	"github.com/gogpu/forge/shader/ast/stage"
	"github.com/gogpu/forge/shader/parser"
)

func compile(t *testing.T, src string, target gputypes.ShaderStage) string {
	t.Helper()
	decls, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	decls = preprocess.New().Process(decls)
	decls, err = stage.Extract(decls, target)
	if err != nil {
		t.Fatalf("stage extract error: %v", err)
	}
	out, err := Write(decls, target, Settings{VersionMajor: 4, VersionMinor: 5})
	if err != nil {
		t.Fatalf("write error: %v", err)
	}
	return out
}

func TestWriteVersionHeader(t *testing.T) {
	out := compile(t, `
		output layout(location = 0) vec4 fragColor;
		fragment void main() {
			fragColor = vec4(1.0, 0.0, 0.0, 1.0);
		}
	`, gputypes.ShaderStageFragment)
	if !strings.HasPrefix(out, "#version 450\n") {
		t.Fatalf("got header %q", out[:30])
	}
}

func TestWriteStructAndExternalInterfaceBlock(t *testing.T) {
	out := compile(t, `
		struct Light {
			vec3 color;
			float intensity;
		}
		external layout(set = 0, binding = 0) Light mainLight;
		output layout(location = 0) vec4 fragColor;
		fragment void main() {
			fragColor = vec4(mainLight.color, 1.0);
		}
	`, gputypes.ShaderStageFragment)

	if !strings.Contains(out, "struct Light") {
		t.Errorf("expected struct declaration in output, got:\n%s", out)
	}
	if !strings.Contains(out, "layout(set = 0, binding = 0) uniform") {
		t.Errorf("expected external layout qualifier, got:\n%s", out)
	}
	if !strings.Contains(out, "Light_U0") {
		t.Errorf("expected interface block name Light_U0, got:\n%s", out)
	}
	if !strings.Contains(out, "mainLight;") {
		t.Errorf("expected instance name mainLight, got:\n%s", out)
	}
}

func TestWriteOptionAsDefine(t *testing.T) {
	out := compile(t, `
		option uint maxLights = 4;
		output layout(location = 0) vec4 fragColor;
		fragment void main() {
			fragColor = vec4(1.0);
		}
	`, gputypes.ShaderStageFragment)
	if !strings.Contains(out, "#define maxLights 4") {
		t.Errorf("expected #define maxLights 4, got:\n%s", out)
	}
}

func TestWritePowerAndModuloAsFunctionCalls(t *testing.T) {
	out := compile(t, `
		input layout(location = 0) float x;
		input layout(location = 1) int n;
		output layout(location = 0) vec4 fragColor;
		fragment void main() {
			float a = x ^^ 3.0;
			int b = n % 2;
			fragColor = vec4(a, float(b), 0.0, 1.0);
		}
	`, gputypes.ShaderStageFragment)
	if !strings.Contains(out, "pow(x") {
		t.Errorf("expected a pow(...) call, got:\n%s", out)
	}
	if !strings.Contains(out, "mod(n") {
		t.Errorf("expected a mod(...) call, got:\n%s", out)
	}
}

func TestWriteBinaryPrecedenceParenthesization(t *testing.T) {
	out := compile(t, `
		input layout(location = 0) float x;
		output layout(location = 0) vec4 fragColor;
		fragment void main() {
			float a = (x + 2.0) * 3.0;
			fragColor = vec4(a);
		}
	`, gputypes.ShaderStageFragment)
	if !strings.Contains(out, "(x + 2) * 3") {
		t.Errorf("expected parenthesized addition before multiply, got:\n%s", out)
	}
}

func TestWriteSetVertexPositionBuiltIn(t *testing.T) {
	out := compile(t, `
		input layout(location = 0) vec3 position;
		vertex void main() {
			set_vertex_position(vec4(position, 1.0));
		}
	`, gputypes.ShaderStageVertex)
	if !strings.Contains(out, "gl_Position = vec4(position, 1") {
		t.Errorf("expected gl_Position assignment, got:\n%s", out)
	}
}

func TestWriteSampleBuiltInAsTexture(t *testing.T) {
	out := compile(t, `
		external layout(set = 0, binding = 0) sampler2D albedo;
		input layout(location = 0) vec2 uv;
		output layout(location = 0) vec4 fragColor;
		fragment void main() {
			fragColor = sample(albedo, uv);
		}
	`, gputypes.ShaderStageFragment)
	if !strings.Contains(out, "texture(albedo, uv)") {
		t.Errorf("expected texture(...) call, got:\n%s", out)
	}
}

func TestWriteRuntimeConditionalSurvives(t *testing.T) {
	out := compile(t, `
		input layout(location = 0) vec3 normal;
		output layout(location = 0) vec4 fragColor;
		fragment void main() {
			if (normal.x > 0.0) {
				fragColor = vec4(1.0);
			} else {
				fragColor = vec4(0.0);
			}
		}
	`, gputypes.ShaderStageFragment)
	if !strings.Contains(out, "if (normal.x > 0)\n\t{") {
		t.Errorf("expected a runtime if statement, got:\n%s", out)
	}
	if !strings.Contains(out, "} else") {
		t.Errorf("expected an else branch, got:\n%s", out)
	}
}
