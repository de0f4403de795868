package framegraph

import "golang.org/x/exp/slices"

// reachabilitySets computes, for every original pass index, the full set
// of pass indices it transitively depends on.
func reachabilitySets(deps []map[int]bool) []map[int]bool {
	reach := make([]map[int]bool, len(deps))

	var compute func(idx int) map[int]bool
	computed := make([]bool, len(deps))
	compute = func(idx int) map[int]bool {
		if computed[idx] {
			return reach[idx]
		}
		computed[idx] = true
		set := make(map[int]bool)
		for dep := range deps[idx] {
			set[dep] = true
			for transitive := range compute(dep) {
				set[transitive] = true
			}
		}
		reach[idx] = set
		return set
	}

	for i := range deps {
		compute(i)
	}
	return reach
}

// orderPasses is Phase 3: it drops unused passes, then sorts the
// remainder by how many passes each transitively depends on, breaking
// ties by original declaration order. A pass depends on strictly more
// passes than anything it depends on, so every pass appears after
// everything it transitively depends on. It returns the kept passes'
// original indices in their new execution order.
func orderPasses(passes []*Pass, deps []map[int]bool, used []bool) ([]int, error) {
	reach := reachabilitySets(deps)

	kept := make([]int, 0, len(passes))
	for i, u := range used {
		if u {
			kept = append(kept, i)
		}
	}

	slices.SortFunc(kept, func(i, j int) bool {
		if len(reach[i]) != len(reach[j]) {
			return len(reach[i]) < len(reach[j])
		}
		return i < j
	})

	return kept, nil
}

// updateTextureDatas is the second half of Phase 3: once passes have a
// final order, every texture's per-role pass-index lists, its per-pass
// usage bitmask, and its use liveness range are recomputed against the
// NEW pass indices (each texture's position in order).
func updateTextureDatas(textures []*textureData, order []int) {
	newIndexOf := make(map[int]int, len(order))
	for newIdx, origIdx := range order {
		newIndexOf[origIdx] = newIdx
	}

	remap := func(origList []int) []int {
		out := make([]int, 0, len(origList))
		for _, orig := range origList {
			if newIdx, ok := newIndexOf[orig]; ok {
				out = append(out, newIdx)
			}
		}
		slices.Sort(out)
		return out
	}

	for _, td := range textures {
		td.sampled = remap(td.sampled)
		td.input = remap(td.input)
		td.output = remap(td.output)
		td.depth = remap(td.depth)
		td.clear = remap(td.clear)

		td.usages = make(map[int]textureUsage)
		for _, p := range td.sampled {
			td.usages[p] |= usageSampled
		}
		for _, p := range td.input {
			td.usages[p] |= usageInput
		}
		for _, p := range td.output {
			td.usages[p] |= usageOutput
		}
		for _, p := range td.depth {
			td.usages[p] |= usageDepth
		}
		for _, p := range td.clear {
			td.usages[p] |= usageClear
		}

		td.useRange = rangeOf(append(append(append(append(append([]int{},
			td.sampled...), td.input...), td.output...), td.depth...), td.clear...))
	}
}

func rangeOf(indices []int) [2]int {
	if len(indices) == 0 {
		return [2]int{invalidPassIndex, invalidPassIndex}
	}
	lo, hi := indices[0], indices[0]
	for _, v := range indices {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return [2]int{lo, hi}
}
