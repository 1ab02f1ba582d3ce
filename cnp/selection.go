package cnp

const largeComponentCountThreshold = 50

// SelectComponent implements §4.C.5's two-regime component picker: above
// 50 components it delegates to selectLargerComponent; otherwise it picks
// uniformly among components at or above a small randomized threshold
// derived from the size spread of components larger than 2.
func (e *Engine) SelectComponent() (int, error) {
	if len(e.components) == 0 {
		return 0, ErrNoComponents
	}
	if len(e.components) > largeComponentCountThreshold {
		return e.selectLargerComponent()
	}

	minSize := e.n
	maxSize := 0
	for _, c := range e.components {
		if c.Size > 2 {
			if c.Size < minSize {
				minSize = c.Size
			}
			if c.Size > maxSize {
				maxSize = c.Size
			}
		}
	}

	jitter := e.rng.IntInclusive(0, 2)
	threshold := maxSize - int(float64(maxSize-minSize)*0.5) - jitter

	candidates := make([]int, 0, len(e.components))
	for i, c := range e.components {
		if c.Size >= threshold {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return e.largestComponentIndex(), nil
	}
	pick, err := e.rng.Index(len(candidates))
	if err != nil {
		return 0, err
	}
	return candidates[pick], nil
}

func (e *Engine) largestComponentIndex() int {
	best := 0
	for i, c := range e.components {
		if c.Size > e.components[best].Size {
			best = i
		}
		_ = i
	}
	return best
}

func (e *Engine) secondLargestComponentIndex(excluding int) int {
	best := -1
	for i, c := range e.components {
		if i == excluding {
			continue
		}
		if best == -1 || c.Size > e.components[best].Size {
			best = i
		}
	}
	if best == -1 {
		return excluding
	}
	return best
}

// selectLargerComponent implements the >50-components regime: sample
// proportionally to size among components above the mean unremoved-vertex
// count, with a coin flip against the runner-up when exactly one candidate
// qualifies.
func (e *Engine) selectLargerComponent() (int, error) {
	unremoved := e.n - e.numRemoved
	mean := float64(unremoved) / float64(len(e.components))

	above := make([]int, 0, len(e.components))
	for i, c := range e.components {
		if float64(c.Size) > mean {
			above = append(above, i)
		}
	}

	if len(above) == 0 {
		return e.largestComponentIndex(), nil
	}
	if len(above) == 1 {
		idx := above[0]
		second := e.secondLargestComponentIndex(idx)
		if e.rng.Bool(0.5) {
			return idx, nil
		}
		return second, nil
	}

	var total int64
	for _, idx := range above {
		total += int64(e.components[idx].Size)
	}
	r := e.rng.Probability() * float64(total)
	var cum int64
	for _, idx := range above {
		cum += int64(e.components[idx].Size)
		if r < float64(cum) {
			return idx, nil
		}
	}
	return above[len(above)-1], nil
}

// RandomSelectNodeFromComponent picks uniformly among a component's
// members (§4.C.5).
func (e *Engine) RandomSelectNodeFromComponent(c int) (int, error) {
	comp, err := e.Component(c)
	if err != nil {
		return 0, err
	}
	if comp.Size == 0 {
		return 0, ErrComponentEmpty
	}
	i, err := e.rng.Index(comp.Size)
	if err != nil {
		return 0, err
	}
	return comp.Nodes[i], nil
}

// AgeSelectNodeFromComponent picks uniformly among the component's
// minimum-age members (§4.C.5).
func (e *Engine) AgeSelectNodeFromComponent(c int) (int, error) {
	if c < 0 || c >= len(e.components) {
		return 0, ErrComponentOutOfRange
	}
	nodes := e.components[c].Nodes
	if len(nodes) == 0 {
		return 0, ErrComponentEmpty
	}
	minAge := e.age[nodes[0]]
	for _, v := range nodes[1:] {
		if e.age[v] < minAge {
			minAge = e.age[v]
		}
	}
	var ties []int
	for _, v := range nodes {
		if e.age[v] == minAge {
			ties = append(ties, v)
		}
	}
	i, err := e.rng.Index(len(ties))
	if err != nil {
		return 0, err
	}
	return ties[i], nil
}

// ImpactSelectNodeFromComponent picks uniformly among the component's
// minimum-impact members (§4.C.4, §4.C.5).
func (e *Engine) ImpactSelectNodeFromComponent(c int) (int, error) {
	if c < 0 || c >= len(e.components) {
		return 0, ErrComponentOutOfRange
	}
	nodes := e.components[c].Nodes
	if len(nodes) == 0 {
		return 0, ErrComponentEmpty
	}
	impact := e.impactInComponent(c)

	minImpact := impact[nodes[0]]
	for _, v := range nodes[1:] {
		if impact[v] < minImpact {
			minImpact = impact[v]
		}
	}
	var ties []int
	for _, v := range nodes {
		if impact[v] == minImpact {
			ties = append(ties, v)
		}
	}
	i, err := e.rng.Index(len(ties))
	if err != nil {
		return 0, err
	}
	return ties[i], nil
}

// GreedySelectNodeToAdd picks, among removed vertices, the one minimizing
// CalculateConnectionGain, uniformly breaking ties (§4.C.5). It returns
// rgraph.InvalidNode with no error when S is empty (a heuristic dead end,
// §7).
func (e *Engine) GreedySelectNodeToAdd() (int, error) {
	candidates := e.RemovedNodes()
	if len(candidates) == 0 {
		return -1, nil
	}
	best := e.CalculateConnectionGain(candidates[0])
	for _, v := range candidates[1:] {
		g := e.CalculateConnectionGain(v)
		if g < best {
			best = g
		}
	}
	var ties []int
	for _, v := range candidates {
		if e.CalculateConnectionGain(v) == best {
			ties = append(ties, v)
		}
	}
	i, err := e.rng.Index(len(ties))
	if err != nil {
		return 0, err
	}
	return ties[i], nil
}

// RandomSelectNodeToRemove picks a uniformly random component then a
// uniformly random member (SPEC_FULL §6, restored from the original's
// randomSelectNodeToRemove).
func (e *Engine) RandomSelectNodeToRemove() (int, error) {
	if len(e.components) == 0 {
		return 0, ErrNoComponents
	}
	ci, err := e.rng.Index(len(e.components))
	if err != nil {
		return 0, err
	}
	return e.RandomSelectNodeFromComponent(ci)
}
