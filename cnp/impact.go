package cnp

// childEdge records, for an iterative-Tarjan parent p, one DFS child's
// low-link and subtree size, needed afterwards to classify it as an
// "articulated" (detachable) child or not.
type childEdge struct {
	low    int
	stSize int
}

// impactInComponent runs an iterative Tarjan's DFS restricted to component
// c and returns, for every global vertex id in that component, the
// estimated number of connected pairs that would remain in the component
// if it were removed, so the minimum marks the most damaging removal
// (§4.C.4). Iterative
// to tolerate components wider than a few thousand vertices (§9).
func (e *Engine) impactInComponent(c int) map[int]int64 {
	nodes := e.components[c].Nodes
	m := len(nodes)
	impact := make(map[int]int64, m)
	if m == 0 {
		return impact
	}
	if m <= 2 {
		for _, v := range nodes {
			impact[v] = int64(m-1) * int64(m-2) / 2
		}
		return impact
	}

	local := make([]int, m) // local index -> global id
	globalToLocal := make(map[int]int, m)
	for i, v := range nodes {
		local[i] = v
		globalToLocal[v] = i
	}
	localAdj := make([][]int, m)
	for i, v := range nodes {
		localAdj[i] = e.localNeighbors(v, globalToLocal)
	}

	disc := make([]int, m)
	low := make([]int, m)
	stSize := make([]int, m)
	for i := range disc {
		disc[i] = -1
	}
	children := make([][]childEdge, m)
	isArt := make([]bool, m)

	type frame struct {
		u, i, parent int
	}
	stack := make([]frame, 0, m)

	timer := 0
	root := 0
	disc[root] = timer
	low[root] = timer
	timer++
	stSize[root] = 1
	rootChildCount := 0
	stack = append(stack, frame{u: root, i: 0, parent: -1})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		u := top.u
		if top.i < len(localAdj[u]) {
			v := localAdj[u][top.i]
			top.i++
			if v == top.parent {
				continue
			}
			if disc[v] == -1 {
				disc[v] = timer
				low[v] = timer
				timer++
				stSize[v] = 1
				stack = append(stack, frame{u: v, i: 0, parent: u})
			} else if disc[v] < low[u] {
				low[u] = disc[v]
			}
			continue
		}
		// Exhausted u's neighbor list: pop and propagate to parent.
		stack = stack[:len(stack)-1]
		p := top.parent
		if p == -1 {
			continue
		}
		stSize[p] += stSize[u]
		if low[u] < low[p] {
			low[p] = low[u]
		}
		children[p] = append(children[p], childEdge{low: low[u], stSize: stSize[u]})
		if p == root {
			rootChildCount++
		} else if low[u] >= disc[p] {
			isArt[p] = true
		}
	}
	if rootChildCount >= 2 {
		isArt[root] = true
	}

	for i := 0; i < m; i++ {
		if !isArt[i] {
			impact[local[i]] = int64(m-1) * int64(m-2) / 2
			continue
		}
		var detached []childEdge
		if i == root {
			detached = children[i]
		} else {
			for _, ch := range children[i] {
				if ch.low >= disc[i] {
					detached = append(detached, ch)
				}
			}
		}
		var sumPairs int64
		cutSize := 1
		for _, ch := range detached {
			sumPairs += pairs(ch.stSize)
			cutSize += ch.stSize
		}
		remainder := m - cutSize
		impact[local[i]] = sumPairs + pairs(remainder)
	}
	return impact
}

// localNeighbors returns the neighbors of global vertex v that also belong
// to the current component, expressed as local indices, in a stable
// (sorted) order so the Tarjan walk is reproducible across calls.
func (e *Engine) localNeighbors(v int, globalToLocal map[int]int) []int {
	out := make([]int, 0, e.currentAdj[v].Len())
	e.currentAdj[v].Range(func(u int) {
		if li, ok := globalToLocal[u]; ok {
			out = append(out, li)
		}
	})
	insertionSort(out)
	return out
}

func insertionSort(a []int) {
	for i := 1; i < len(a); i++ {
		key := a[i]
		j := i - 1
		for j >= 0 && a[j] > key {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = key
	}
}
