// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command shaderc compiles one shader source file through the
// lexer/parser/preprocessor/stage-extractor/writer pipeline into GLSL,
// one file per requested stage.
//
// Usage:
//
//	shaderc -stage vertex,fragment -D ShadowsEnabled=true -out build/ scene.fx
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/forge/gputypes"
	"github.com/gogpu/forge/shader/ast"
	"github.com/gogpu/forge/shader/ast/preprocess"
	"github.com/gogpu/forge/shader/ast/stage"
	"github.com/gogpu/forge/shader/parser"
	"github.com/gogpu/forge/shader/writer"
)

// optionFlags collects repeated -D name=value flags.
type optionFlags map[string]string

func (o optionFlags) String() string {
	parts := make([]string, 0, len(o))
	for name, value := range o {
		parts = append(parts, name+"="+value)
	}
	return strings.Join(parts, ",")
}

func (o optionFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("-D %q: expected name=value", s)
	}
	o[name] = value
	return nil
}

var (
	stagesFlag   = flag.String("stage", "vertex,fragment", "comma-separated stages to compile (vertex, fragment, compute, tessellation-control, tessellation-evaluation, geometry)")
	outDir       = flag.String("out", "", "output directory; defaults to the input file's directory")
	glslMajor    = flag.Int("glsl-major", 4, "GLSL #version major component")
	glslMinor    = flag.Int("glsl-minor", 50, "GLSL #version minor component")
	optionValues = make(optionFlags)
)

func init() {
	flag.Var(optionValues, "D", "override a compile-time option (repeatable): -D Name=value")
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: shaderc [flags] <source-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "shaderc: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string) error {
	stages, err := parseStages(*stagesFlag)
	if err != nil {
		return err
	}

	out := *outDir
	if out == "" {
		out = filepath.Dir(inputPath)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	fmt.Printf("1. Parsing %s... ", inputPath)
	decls, err := parser.Parse(string(src))
	if err != nil {
		fmt.Println("FAILED")
		return fmt.Errorf("parse: %w", err)
	}
	fmt.Printf("OK (%d declarations)\n", len(decls))

	fmt.Print("2. Applying option overrides... ")
	proc := preprocess.New()
	if err := applyOptions(proc, decls, optionValues); err != nil {
		fmt.Println("FAILED")
		return err
	}
	processed := proc.Process(decls)
	fmt.Printf("OK (%d options overridden)\n", len(optionValues))

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	settings := writer.Settings{VersionMajor: *glslMajor, VersionMinor: *glslMinor}

	fmt.Println("3. Extracting and writing stages:")
	for _, target := range stages {
		extracted, err := stage.Extract(processed, target)
		if err != nil {
			fmt.Printf("  %s: FAILED (%v)\n", target, err)
			return err
		}

		glsl, err := writer.Write(extracted, target, settings)
		if err != nil {
			fmt.Printf("  %s: FAILED (%v)\n", target, err)
			return fmt.Errorf("write %s: %w", target, err)
		}

		outPath := filepath.Join(out, base+"."+target.String()+".glsl")
		if err := os.WriteFile(outPath, []byte(glsl), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Printf("  %s -> %s (%d bytes)\n", target, outPath, len(glsl))
	}

	return nil
}

var stageNames = map[string]gputypes.ShaderStage{
	"vertex":                  gputypes.ShaderStageVertex,
	"fragment":                gputypes.ShaderStageFragment,
	"compute":                 gputypes.ShaderStageCompute,
	"tessellation-control":    gputypes.ShaderStageTessellationControl,
	"tessellation-evaluation": gputypes.ShaderStageTessellationEvaluation,
	"geometry":                gputypes.ShaderStageGeometry,
}

func parseStages(spec string) ([]gputypes.ShaderStage, error) {
	var out []gputypes.ShaderStage
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s, ok := stageNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown stage %q", name)
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("-stage: no stages given")
	}
	return out, nil
}

// applyOptions resolves every -D override against the option's declared
// type in decls, so a flag value like "2" parses as the option's actual
// kind (i32, u32, f32, bool) rather than a guess from the string alone.
func applyOptions(proc *preprocess.Processor, decls []ast.Stmt, overrides optionFlags) error {
	if len(overrides) == 0 {
		return nil
	}
	declared := make(map[string]ast.Type, len(overrides))
	for _, d := range decls {
		if opt, ok := d.(*ast.OptionDeclStmt); ok {
			declared[opt.Name] = opt.Type
		}
	}

	for name, raw := range overrides {
		typ, ok := declared[name]
		if !ok {
			return fmt.Errorf("-D %s: no such option declared in source", name)
		}
		value, err := parseOptionValue(typ, raw)
		if err != nil {
			return fmt.Errorf("-D %s=%s: %w", name, raw, err)
		}
		proc.SetOption(name, value)
	}
	return nil
}

func parseOptionValue(typ ast.Type, raw string) (ast.ConstantValue, error) {
	if typ.Kind != ast.TypePrimitive {
		return ast.ConstantValue{}, fmt.Errorf("option has non-scalar type (kind %d)", typ.Kind)
	}
	switch typ.Primitive {
	case ast.PrimitiveBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return ast.ConstantValue{}, fmt.Errorf("not a bool: %w", err)
		}
		return ast.BoolValue(b), nil
	case ast.PrimitiveInt:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return ast.ConstantValue{}, fmt.Errorf("not an i32: %w", err)
		}
		return ast.I32Value(int32(v)), nil
	case ast.PrimitiveUint:
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return ast.ConstantValue{}, fmt.Errorf("not a u32: %w", err)
		}
		return ast.U32Value(uint32(v)), nil
	case ast.PrimitiveFloat:
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return ast.ConstantValue{}, fmt.Errorf("not an f32: %w", err)
		}
		return ast.F32Value(float32(v)), nil
	default:
		return ast.ConstantValue{}, fmt.Errorf("option has unknown primitive kind %d", typ.Primitive)
	}
}
