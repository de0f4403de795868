package gbuffer

import (
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/gogpu/forge/gputypes"
)

const channelCount = 4

// parameterSlot is one distinct named parameter collected across every
// LightingModel passed to Build, along with the set of other parameters
// it can never share a texture channel range with.
type parameterSlot struct {
	name         string
	format       gputypes.Format
	dependencies map[*parameterSlot]bool
}

func (p *parameterSlot) dependsOn(other *parameterSlot) bool {
	return p.dependencies[other]
}

// physicalTexture is a single 4-channel attachment under construction:
// channels[i] lists every parameter occupying channel i, and slots[i]
// lists the Components starting at channel i (for the public result).
type physicalTexture struct {
	component gputypes.ComponentType
	channels  [channelCount][]*parameterSlot
	slots     [channelCount][]Component
}

func newPhysicalTexture(c gputypes.ComponentType) *physicalTexture {
	return &physicalTexture{component: c}
}

// tryPlace scans channel start indices left to right, looking for the
// first index at which every channel in [index, index+count) holds no
// dependency of p. It returns the index and whether one was found.
func (pt *physicalTexture) tryPlace(p *parameterSlot) (int, bool) {
	count := p.format.Count
	index := 0
	conflict := false
	for index <= channelCount-count {
		conflict = false
		conflictAt := 0
		for offset := 0; offset < count && !conflict; offset++ {
			for _, occupant := range pt.channels[index+offset] {
				if p.dependsOn(occupant) {
					conflict = true
					conflictAt = index + offset
					break
				}
			}
		}
		if !conflict {
			break
		}
		index = conflictAt + 1
	}
	return index, !conflict
}

func (pt *physicalTexture) place(p *parameterSlot, index int) {
	for i := 0; i < p.format.Count; i++ {
		pt.channels[index+i] = append(pt.channels[index+i], p)
	}
	pt.slots[index] = append(pt.slots[index], Component{Name: p.name, Size: p.format.Count})
}

// resolveFormat picks the smallest supported color format of pt's
// component type whose channel count covers every occupied slot.
func (pt *physicalTexture) resolveFormat() (gputypes.Format, error) {
	used := 0
	for i := 0; i < channelCount; i++ {
		if len(pt.channels[i]) == 0 {
			break
		}
		used++
	}
	format, ok := gputypes.SmallestSupportedFormat(pt.component, used)
	if !ok {
		return gputypes.Format{}, &BuildError{Msg: "no supported image format for component type " + pt.component.String()}
	}
	return format, nil
}

// Build packs every distinct parameter across models into the smallest
// number of GBuffer textures, per §4.6: group by component type, place
// widest-first within each group using a best-fit scan, then resolve
// each physical texture's final format.
func Build(models []LightingModel) (*GBuffer, error) {
	slots, order, err := collectParameters(models)
	if err != nil {
		return nil, err
	}

	groups := groupByComponentType(slots, order)

	types := make([]gputypes.ComponentType, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b gputypes.ComponentType) bool { return a < b })

	result := newGBuffer()
	textureIndex := 0
	for _, componentType := range types {
		group := groups[componentType]
		sortParameters(group)

		physicals := placeParameters(componentType, group)

		for _, pt := range physicals {
			format, err := pt.resolveFormat()
			if err != nil {
				return nil, err
			}

			texture := Texture{
				Name:   "GBufferTexture" + strconv.Itoa(textureIndex) + "_" + componentType.String(),
				Format: format,
			}
			textureIndex++
			for channel := 0; channel < channelCount; channel++ {
				texture.Components[channel] = pt.slots[channel]
			}

			if err := result.addTexture(texture); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// collectParameters gathers every distinct parameter by name across all
// models (erroring on a name reused with a conflicting format), then
// builds each parameter's dependency set from the other parameters of
// every model it appears in. order preserves first-seen order so later
// sorts are deterministic regardless of map iteration.
func collectParameters(models []LightingModel) (map[string]*parameterSlot, []string, error) {
	slots := make(map[string]*parameterSlot)
	var order []string

	for _, model := range models {
		for _, p := range model.Parameters {
			existing, ok := slots[p.Name]
			if !ok {
				slots[p.Name] = &parameterSlot{name: p.Name, format: p.Format, dependencies: make(map[*parameterSlot]bool)}
				order = append(order, p.Name)
				continue
			}
			if existing.format != p.Format {
				return nil, nil, &BuildError{Msg: "parameters named " + p.Name + " have conflicting formats"}
			}
		}

		for i, p := range model.Parameters {
			texture := slots[p.Name]
			for j, dep := range model.Parameters {
				if i == j {
					continue
				}
				if dep.Name == p.Name {
					return nil, nil, &BuildError{Msg: "lighting model parameters must have different names, got duplicate " + p.Name}
				}
				texture.dependencies[slots[dep.Name]] = true
			}
		}
	}

	return slots, order, nil
}

func groupByComponentType(slots map[string]*parameterSlot, order []string) map[gputypes.ComponentType][]*parameterSlot {
	groups := make(map[gputypes.ComponentType][]*parameterSlot)
	for _, name := range order {
		p := slots[name]
		groups[p.format.Component] = append(groups[p.format.Component], p)
	}
	return groups
}

// sortParameters orders a component-type group by descending channel
// count, then by name, so wider parameters are placed first and ties
// are resolved deterministically.
func sortParameters(group []*parameterSlot) {
	slices.SortFunc(group, func(a, b *parameterSlot) bool {
		if a.format.Count == b.format.Count {
			return a.name < b.name
		}
		return a.format.Count > b.format.Count
	})
}

// placeParameters assigns every parameter in group to a physicalTexture,
// trying existing textures in creation order and picking whichever
// compatible one leaves the smallest remaining free-channel count;
// failing that, it opens a new physicalTexture.
func placeParameters(componentType gputypes.ComponentType, group []*parameterSlot) []*physicalTexture {
	var physicals []*physicalTexture

	for _, p := range group {
		var best *physicalTexture
		bestIndex := 0
		bestRemaining := channelCount + 1

		for _, pt := range physicals {
			index, ok := pt.tryPlace(p)
			if !ok {
				continue
			}
			remaining := channelCount - index - p.format.Count
			if best == nil || remaining < bestRemaining {
				best = pt
				bestIndex = index
				bestRemaining = remaining
			}
		}

		if best == nil {
			best = newPhysicalTexture(componentType)
			physicals = append(physicals, best)
			bestIndex = 0
		}

		best.place(p, bestIndex)
	}

	return physicals
}
