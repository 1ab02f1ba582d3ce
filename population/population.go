package population

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/critnode/critnode/graph"
	"github.com/critnode/critnode/rng"
	"github.com/critnode/critnode/search"
)

// ErrWrongSize is returned by GetAllThreeSolutions for any population size
// other than 3 (§6 "population size must be 3").
var ErrWrongSize = errors.New("population: population size must be 3")

// maxSwapRepairAttempts bounds generateNonDuplicateSolution's repair loop
// (§4.H).
const maxSwapRepairAttempts = 10

// Population holds the current generation's solution set, ranked by
// fitness, alongside the configuration needed to grow new members from
// the original graph template (§4.H).
type Population struct {
	original        *graph.Graph
	searchName      string
	adaptive        bool
	maxPopSize      int
	increasePopSize int
	maxIdleGens     int
	runID           string
	rng             *rng.RNG
	logger          *logrus.Logger

	items  []*Item
	nextID int
}

// Option configures a Population at construction.
type Option func(*Population)

// WithLogger overrides the default logrus.StandardLogger().
func WithLogger(l *logrus.Logger) Option {
	return func(p *Population) { p.logger = l }
}

// New constructs an empty Population. original is never mutated directly;
// every candidate is grown from a fresh clone of it.
func New(original *graph.Graph, searchName string, adaptive bool, maxPopSize, increasePopSize, maxIdleGens int, seed uint32, opts ...Option) *Population {
	p := &Population{
		original:        original,
		searchName:      searchName,
		adaptive:        adaptive,
		maxPopSize:      maxPopSize,
		increasePopSize: increasePopSize,
		maxIdleGens:     maxIdleGens,
		runID:           uuid.NewString(),
		rng:             rng.New(seed),
		logger:          logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetSize returns the current member count.
func (p *Population) GetSize() int { return len(p.items) }

// Items returns the current members in storage order (insertion order,
// pre-eviction). The returned slice aliases internal storage and must not
// be mutated by callers.
func (p *Population) Items() []*Item { return p.items }

// RunID returns the correlation id tagging this population's log lines.
func (p *Population) RunID() string { return p.runID }

// solutionKey renders a solution set as a sorted, comparable signature.
func solutionKey(sol []int) string {
	cp := append([]int(nil), sol...)
	sort.Ints(cp)
	b := make([]byte, 0, len(cp)*5)
	for _, v := range cp {
		b = append(b, byte(v), byte(v>>8), byte(v>>16), byte(v>>24), '|')
	}
	return string(b)
}

// IsDuplicate reports whether sol's vertex set exactly matches an existing
// member's (§4.H).
func (p *Population) IsDuplicate(sol []int) bool {
	key := solutionKey(sol)
	for _, it := range p.items {
		if solutionKey(it.Solution) == key {
			return true
		}
	}
	return false
}

// generateNonDuplicateSolution clones the original graph, assigns a
// random feasible removed set, refines it with the configured strategy,
// and — if the result duplicates an existing member — performs up to
// maxSwapRepairAttempts greedy-add/random-remove swaps to diversify it
// (§4.H).
func (p *Population) generateNonDuplicateSolution() (*Item, error) {
	residual, err := p.original.GetRandomFeasibleGraph()
	if err != nil {
		return nil, err
	}
	s := search.New(residual, p.runID)
	if err := s.SetStrategy(p.searchName, search.ParamBag{}); err != nil {
		return nil, err
	}
	res, err := s.Run()
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxSwapRepairAttempts && p.IsDuplicate(res.Solution); attempt++ {
		add, err := residual.GreedySelectNodeToAdd()
		if err != nil {
			return nil, err
		}
		if add != -1 {
			if err := residual.AddNode(add); err != nil {
				return nil, err
			}
		}
		rem, err := residual.RandomSelectNodeToRemove()
		if err != nil {
			return nil, err
		}
		if err := residual.RemoveNode(rem); err != nil {
			return nil, err
		}
		res.Solution = append([]int(nil), residual.GetRemovedNodes()...)
		res.ObjValue = residual.GetObjectiveValue()
	}

	return &Item{Solution: res.Solution, ObjValue: res.ObjValue}, nil
}

// addItem assigns the next monotonic id, recomputes every member's
// similarity cache against the new arrival, and appends it (§4.H,
// Population-INV1).
func (p *Population) addItem(it *Item) {
	it.ID = p.nextID
	p.nextID++

	it.similarity = make([]similarityEntry, 0, len(p.items))
	for _, other := range p.items {
		sim := jaccard(it.Solution, other.Solution)
		it.similarity = append(it.similarity, similarityEntry{id: other.ID, similarity: sim})
		other.similarity = append(other.similarity, similarityEntry{id: it.ID, similarity: sim})
	}
	p.items = append(p.items, it)
}

// removeWorstSolution recomputes fitness and evicts the maximum-fitness
// member, pruning it from every other member's similarity cache (§4.H).
func (p *Population) removeWorstSolution() {
	if len(p.items) == 0 {
		return
	}
	recomputeFitness(p.items)

	worst := 0
	for i, it := range p.items {
		if it.Fitness > p.items[worst].Fitness {
			worst = i
		}
	}
	removedID := p.items[worst].ID
	p.items = append(p.items[:worst], p.items[worst+1:]...)

	for _, it := range p.items {
		for i, e := range it.similarity {
			if e.id == removedID {
				it.similarity = append(it.similarity[:i], it.similarity[i+1:]...)
				break
			}
		}
	}
}

// Initialize repeatedly grows non-duplicate members until popSize0 are
// present, stopping early if stopping (when non-nil) returns true for a
// newly generated objective value (§4.H).
func (p *Population) Initialize(popSize0 int, stopping func(int64) bool) error {
	for len(p.items) < popSize0 {
		it, err := p.generateNonDuplicateSolution()
		if err != nil {
			return err
		}
		p.addItem(it)
		recomputeFitness(p.items)
		if stopping != nil && stopping(it.ObjValue) {
			return nil
		}
	}
	return nil
}

// Update appends a newly produced offspring, evicts the worst member, and
// — when adaptive sizing is enabled and idleGens is a positive multiple of
// maxIdleGens — either expands the population with fresh non-duplicates
// or rebuilds it around its single best member (§4.H). verbose raises the
// log level for this call from Debug to Info.
func (p *Population) Update(newSol []int, newObj int64, idleGens int, verbose bool) error {
	cp := append([]int(nil), newSol...)
	p.addItem(&Item{Solution: cp, ObjValue: newObj})
	p.removeWorstSolution()

	logFields := logrus.Fields{"run_id": p.runID, "objective": newObj, "idle_gens": idleGens}
	if verbose {
		p.logger.WithFields(logFields).Info("population: update")
	} else {
		p.logger.WithFields(logFields).Debug("population: update")
	}

	if !p.adaptive || idleGens <= 0 || p.maxIdleGens <= 0 || idleGens%p.maxIdleGens != 0 {
		return nil
	}

	if len(p.items) < p.maxPopSize {
		return p.expand()
	}
	return p.rebuild()
}

// expand adds increasePopSize fresh non-duplicate members (§4.H).
func (p *Population) expand() error {
	for i := 0; i < p.increasePopSize; i++ {
		it, err := p.generateNonDuplicateSolution()
		if err != nil {
			return err
		}
		p.addItem(it)
	}
	recomputeFitness(p.items)
	return nil
}

// rebuild keeps only the current best member and refills with one fresh
// non-duplicate (§4.H).
func (p *Population) rebuild() error {
	best, err := p.GetBestItem()
	if err != nil {
		return err
	}
	p.items = []*Item{{Solution: append([]int(nil), best.Solution...), ObjValue: best.ObjValue}}
	p.items[0].ID = p.nextID
	p.nextID++

	it, err := p.generateNonDuplicateSolution()
	if err != nil {
		return err
	}
	p.addItem(it)
	recomputeFitness(p.items)
	return nil
}

// GetBestItem returns the minimum-objective member.
func (p *Population) GetBestItem() (*Item, error) {
	if len(p.items) == 0 {
		return nil, errors.New("population: empty population")
	}
	best := p.items[0]
	for _, it := range p.items[1:] {
		if it.ObjValue < best.ObjValue {
			best = it
		}
	}
	return best, nil
}

// GetAllThreeSolutions returns the three members in storage order, or
// ErrWrongSize if the population does not have exactly three members
// (§6, needed by IRR).
func (p *Population) GetAllThreeSolutions() ([3]*Item, error) {
	var out [3]*Item
	if len(p.items) != 3 {
		return out, ErrWrongSize
	}
	copy(out[:], p.items)
	return out, nil
}

// TournamentSelectTwoSolutions draws k=2 indices uniformly with
// replacement for each parent slot, picking the minimum-fitness member of
// each draw; the second draw excludes whichever member was already
// selected as parent1 (§4.H).
func (p *Population) TournamentSelectTwoSolutions() (*Item, *Item, error) {
	if len(p.items) < 2 {
		return nil, nil, errors.New("population: need at least 2 members for tournament selection")
	}
	parent1, err := p.tournamentPick(-1)
	if err != nil {
		return nil, nil, err
	}
	parent2, err := p.tournamentPick(parent1.ID)
	if err != nil {
		return nil, nil, err
	}
	return parent1, parent2, nil
}

func (p *Population) tournamentPick(excludeID int) (*Item, error) {
	const k = 2
	var best *Item
	for i := 0; i < k; i++ {
		idx, err := p.rng.Index(len(p.items))
		if err != nil {
			return nil, err
		}
		candidate := p.items[idx]
		if candidate.ID == excludeID {
			i--
			continue
		}
		if best == nil || candidate.Fitness < best.Fitness {
			best = candidate
		}
	}
	return best, nil
}
