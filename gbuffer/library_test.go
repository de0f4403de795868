package gbuffer

import (
	"strings"
	"testing"

	"github.com/gogpu/forge/shader/parser"
)

func TestGenerateShaderLibrariesParseAsShaderSource(t *testing.T) {
	model := LightingModel{Parameters: []Parameter{
		{Name: "albedo", Format: floatFormat(3)},
		{Name: "ao", Format: floatFormat(1)},
	}}

	g, err := Build([]LightingModel{model})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	libs := g.GenerateShaderLibraries()

	wantNames := []string{
		writeLibName + "." + optionsLibName,
		readLibName + "." + optionsLibName,
		writeLibName + ".albedo",
		readLibName + ".albedo",
		writeLibName + ".ao",
		readLibName + ".ao",
	}
	for _, texture := range g.Textures {
		wantNames = append(wantNames, writeLibName+"."+texture.Name, readLibName+"."+texture.Name)
	}
	wantNames = append(wantNames, writeLibName, readLibName)

	for _, name := range wantNames {
		src, ok := libs[name]
		if !ok {
			t.Fatalf("expected a generated library named %q", name)
		}
		if _, err := parser.Parse(src); err != nil {
			t.Errorf("library %q failed to parse: %v\nsource:\n%s", name, err, src)
		}
	}
}

func TestGenerateShaderLibrariesAliasNamesMatchParameters(t *testing.T) {
	model := LightingModel{Parameters: []Parameter{{Name: "normal", Format: floatFormat(3)}}}

	g, err := Build([]LightingModel{model})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	libs := g.GenerateShaderLibraries()

	writeSrc, ok := libs[writeLibName+".normal"]
	if !ok {
		t.Fatal("expected a write alias library for normal")
	}
	if !strings.Contains(writeSrc, "GBufferWritenormal") {
		t.Errorf("expected a GBufferWritenormal function, got:\n%s", writeSrc)
	}

	readSrc, ok := libs[readLibName+".normal"]
	if !ok {
		t.Fatal("expected a read alias library for normal")
	}
	if !strings.Contains(readSrc, "GBufferReadnormal") {
		t.Errorf("expected a GBufferReadnormal function, got:\n%s", readSrc)
	}
	if !strings.Contains(readSrc, "sample(") {
		t.Errorf("expected a sample(...) call, got:\n%s", readSrc)
	}
}

func TestGenerateShaderLibrariesUmbrellaIncludesEveryParameter(t *testing.T) {
	model := LightingModel{Parameters: []Parameter{
		{Name: "albedo", Format: floatFormat(3)},
		{Name: "ao", Format: floatFormat(1)},
	}}

	g, err := Build([]LightingModel{model})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	libs := g.GenerateShaderLibraries()

	for _, name := range []string{"albedo", "ao"} {
		if !strings.Contains(libs[writeLibName], "include "+writeLibName+"."+name+";") {
			t.Errorf("expected umbrella write library to include %s, got:\n%s", name, libs[writeLibName])
		}
		if !strings.Contains(libs[readLibName], "include "+readLibName+"."+name+";") {
			t.Errorf("expected umbrella read library to include %s, got:\n%s", name, libs[readLibName])
		}
	}
}
