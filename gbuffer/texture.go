package gbuffer

import "github.com/gogpu/forge/gputypes"

// Component is one parameter's slice of a Texture's channel range: it
// occupies Size consecutive channels starting at the channel its Texture
// entry puts it in.
type Component struct {
	Name string
	Size int
}

// Texture is one physical G-Buffer attachment: a concrete format plus,
// per channel, the list of Components occupying that channel. A channel
// not listed as the start of any Component is either unused or the
// interior of a wider Component that started at an earlier channel.
type Texture struct {
	Name       string
	Format     gputypes.Format
	Components [4][]Component
}

// TextureBinding identifies, for a read-side shader, which GBuffer
// texture a requested component lives in, plus an option name
// (GBufferRead<texture name>Offset) for its binding-slot offset. The
// generated shader libraries declare no option of that name: each
// texture's binding slot is written as a literal integer.
type TextureBinding struct {
	Index             int
	BindingOptionName string
}

// GBuffer is the packed result of Build: an ordered list of Textures plus
// a lookup from parameter name to the Texture that holds it.
type GBuffer struct {
	Textures []Texture

	componentToTexture map[string]int
}

func newGBuffer() *GBuffer {
	return &GBuffer{componentToTexture: make(map[string]int)}
}

func (g *GBuffer) addTexture(t Texture) error {
	index := len(g.Textures)
	g.Textures = append(g.Textures, t)

	for _, channel := range t.Components {
		for _, c := range channel {
			if _, exists := g.componentToTexture[c.Name]; exists {
				return &BuildError{Msg: "component " + c.Name + " already exists in another texture"}
			}
			g.componentToTexture[c.Name] = index
		}
	}
	return nil
}

// IsCompatible reports whether every parameter of model already has a
// home in g with a matching component type and channel count.
func (g *GBuffer) IsCompatible(model LightingModel) bool {
	for _, p := range model.Parameters {
		index, ok := g.componentToTexture[p.Name]
		if !ok {
			return false
		}
		texture := g.Textures[index]
		if texture.Format.Component != p.Format.Component {
			return false
		}
		if !texture.hasComponentSized(p.Name, p.Format.Count) {
			return false
		}
	}
	return true
}

func (t Texture) hasComponentSized(name string, size int) bool {
	for _, channel := range t.Components {
		for _, c := range channel {
			if c.Name == name {
				return c.Size == size
			}
		}
	}
	return false
}

// TextureBindings returns, in texture order, the distinct textures that
// back componentNames, each paired with its read-side binding option
// name. It panics-free errors if a name was never packed.
func (g *GBuffer) TextureBindings(componentNames []string) ([]TextureBinding, error) {
	seen := make(map[int]bool)
	var ordered []int
	for _, name := range componentNames {
		index, ok := g.componentToTexture[name]
		if !ok {
			return nil, &BuildError{Msg: "requested GBuffer component does not exist: " + name}
		}
		if !seen[index] {
			seen[index] = true
			ordered = append(ordered, index)
		}
	}

	bindings := make([]TextureBinding, len(ordered))
	for i, index := range ordered {
		bindings[i] = TextureBinding{
			Index:             index,
			BindingOptionName: readOptionName(g.Textures[index]),
		}
	}
	return bindings, nil
}

// ModelTextureBindings is TextureBindings over every parameter of model,
// in declaration order.
func (g *GBuffer) ModelTextureBindings(model LightingModel) ([]TextureBinding, error) {
	names := make([]string, len(model.Parameters))
	for i, p := range model.Parameters {
		names[i] = p.Name
	}
	return g.TextureBindings(names)
}

// BuildError reports a failure in Build: a name collision, a dependency
// conflict, or an unsupported format.
type BuildError struct {
	Msg string
}

func (e *BuildError) Error() string { return "gbuffer: " + e.Msg }
