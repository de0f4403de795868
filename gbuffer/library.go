package gbuffer

import (
	"strconv"
	"strings"

	"github.com/gogpu/forge/gputypes"
)

const (
	writeLibName    = "Forge.GBufferWrite"
	readLibName     = "Forge.GBufferRead"
	optionsLibName  = "Options"
	writeOptionsLib = "option int GBufferWriteLocation = 0;\n"
	readOptionsLib  = "option int GBufferReadSet = 0;\noption int GBufferReadBinding = 0;\n"
)

// GenerateShaderLibraries renders, for every packed Texture, the set of
// named source snippets a shader program includes to read or write its
// channels: one umbrella write/read library per G-Buffer, one per-texture
// library, and one per-parameter alias library with a channel-filtered
// accessor function. The result is raw, un-parsed source text keyed by
// library name — an explicit map rather than a global registry, so a
// caller threads it through its own include resolver.
func (g *GBuffer) GenerateShaderLibraries() map[string]string {
	libs := make(map[string]string)
	libs[writeLibName+"."+optionsLibName] = writeOptionsLib
	libs[readLibName+"."+optionsLibName] = readOptionsLib

	var writeUmbrella, readUmbrella strings.Builder

	bindingOffset := 0
	for _, texture := range g.Textures {
		libs[writeLibName+"."+texture.Name] = textureWriteLibrary(bindingOffset, texture)
		libs[readLibName+"."+texture.Name] = textureReadLibrary(bindingOffset, texture)
		bindingOffset++

		for channel := 0; channel < channelCount; channel++ {
			for _, component := range texture.Components[channel] {
				writeAliasName := writeLibName + "." + component.Name
				readAliasName := readLibName + "." + component.Name

				libs[writeAliasName] = aliasWriteLibrary(texture.Name, channel, texture.Format.Component, component)
				libs[readAliasName] = aliasReadLibrary(texture.Name, channel, texture.Format.Component, component)

				writeUmbrella.WriteString("include " + writeAliasName + ";\n")
				readUmbrella.WriteString("include " + readAliasName + ";\n")
			}
		}
	}

	libs[writeLibName] = writeUmbrella.String()
	libs[readLibName] = readUmbrella.String()

	return libs
}

func readOptionName(texture Texture) string {
	return "GBufferRead" + texture.Name + "Offset"
}

// textureWriteLibrary declares the output variable a fragment shader
// writes this texture's raw channels through, at a location offset by
// the generation-time binding slot (the parser's layout qualifiers only
// accept literal integers, so the offset is baked in here rather than
// expressed as an option-plus-arithmetic expression).
func textureWriteLibrary(bindingOffset int, texture Texture) string {
	var b strings.Builder
	b.WriteString("include " + writeLibName + "." + optionsLibName + ";\n")
	b.WriteString("output layout(location = " + strconv.Itoa(bindingOffset) + ") ")
	b.WriteString(typeName(texture.Format) + " " + texture.Name + ";\n")
	return b.String()
}

// textureReadLibrary declares the sampler a fragment shader reads this
// texture through, bound at set 0 and a binding slot offset by
// bindingOffset, for the same reason textureWriteLibrary bakes its
// location: layout qualifiers here only accept literal integers.
func textureReadLibrary(bindingOffset int, texture Texture) string {
	var b strings.Builder
	b.WriteString("include " + readLibName + "." + optionsLibName + ";\n")
	b.WriteString("external layout(set = 0, binding = " + strconv.Itoa(bindingOffset) + ") sampler2D " + texture.Name + ";\n")
	return b.String()
}

func aliasWriteLibrary(textureName string, channel int, component gputypes.ComponentType, alias Component) string {
	var b strings.Builder
	b.WriteString("include " + writeLibName + "." + textureName + ";\n")
	b.WriteString("void GBufferWrite" + alias.Name + "(" + typeName(gputypes.Format{Component: component, Count: alias.Size}) + " value)\n")
	b.WriteString("{\n")
	b.WriteString("\t" + textureName + filterString(channel, alias.Size) + " = value;\n")
	b.WriteString("}")
	return b.String()
}

func aliasReadLibrary(textureName string, channel int, component gputypes.ComponentType, alias Component) string {
	var b strings.Builder
	b.WriteString("include " + readLibName + "." + textureName + ";\n")
	b.WriteString(typeName(gputypes.Format{Component: component, Count: alias.Size}) + " GBufferRead" + alias.Name + "(vec2 uv)\n")
	b.WriteString("{\n")
	b.WriteString("\treturn sample(" + textureName + ", uv)" + filterString(channel, alias.Size) + ";\n")
	b.WriteString("}")
	return b.String()
}

var colorChannelLetters = [channelCount]string{"r", "g", "b", "a"}

func filterString(channel, count int) string {
	var b strings.Builder
	b.WriteString(".")
	for offset := 0; offset < count; offset++ {
		b.WriteString(colorChannelLetters[channel+offset])
	}
	return b.String()
}

func vectorPrefix(c gputypes.ComponentType) string {
	switch c {
	case gputypes.ComponentTypeUINT8, gputypes.ComponentTypeUINT16, gputypes.ComponentTypeUINT32:
		return "u"
	case gputypes.ComponentTypeSINT8, gputypes.ComponentTypeSINT16, gputypes.ComponentTypeSINT32:
		return "i"
	default:
		return ""
	}
}

func scalarName(c gputypes.ComponentType) string {
	switch c {
	case gputypes.ComponentTypeUINT8, gputypes.ComponentTypeUINT16, gputypes.ComponentTypeUINT32:
		return "uint"
	case gputypes.ComponentTypeSINT8, gputypes.ComponentTypeSINT16, gputypes.ComponentTypeSINT32:
		return "int"
	default:
		return "float"
	}
}

// typeName is this shading language's spelling for f.Count channels of
// f.Component: a bare scalar keyword for one channel, otherwise a
// prefixed vecN ("vec3", "ivec2", "uvec4", ...).
func typeName(f gputypes.Format) string {
	if f.Count <= 1 {
		return scalarName(f.Component)
	}
	return vectorPrefix(f.Component) + "vec" + strconv.Itoa(f.Count)
}
