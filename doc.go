// Package critnode is a metaheuristic core for the Critical Node Problem
// (CNP) and its distance-bounded variant (DCNP): given a graph and a
// removal budget B, find a vertex set of size ≤B whose deletion minimizes
// pairwise connectivity among the survivors.
//
// The module is organized as one package per concern:
//
//	rng/        — deterministic PRNG shared by every stochastic choice
//	rgraph/     — residual-graph primitives: NodeID, Age, Component, AdjacencySet
//	cnp/        — incremental CNP engine: components, articulation-based impact
//	dcnp/       — incremental DCNP engine: K-hop trees, betweenness centrality
//	graph/      — Graph facade hiding which engine variant is underneath
//	problem/    — ProblemData: assemble an instance and build its Graph
//	search/     — local-search strategies (CBNS, CHNS, DLAS, BCLS) and their dispatcher
//	crossover/  — recombination operators (DBX, RSC, IRR)
//	population/ — memetic population: fitness ranking, tournament selection, adaptive resize
//
// There is no CLI, no file format, and no network surface in this module;
// it is a library meant to be driven by an external binding layer.
package critnode
