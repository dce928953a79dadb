// Package engine implements the breadth-first exploration engine for
// nondeterministic Turing machines.
//
// ARCHITECTURE:
//
// Layered Frontier:
// The engine holds the set of live configurations (the frontier). Each round
// expands every frontier configuration through the transition table into zero
// or more successors. The next frontier is complete before the verdict for
// the round is decided; there is no suspension point inside a round.
//
// Round Processing Flow:
//  1. Look up the moves for (state, symbol under head) of every configuration
//  2. Branches without moves die silently
//  3. Each move produces an independent successor via Configuration.Apply
//  4. Successors already in the visited set are pruned
//  5. Any REJECT among the new configurations ends the run with NO
//  6. Otherwise any ACCEPT ends it with YES
//  7. An empty next frontier ends it with NO (all branches extinct)
//
// When the step budget runs out the verdict is NO.
//
// The visited set and frontier are owned by a single Run call and touched by
// a single goroutine. Nothing is shared between runs; an Engine may be reused
// and every Run starts from an empty visited set.
//
// There is no backtracking: a parent configuration is dropped once its
// successors are produced. Memory is bounded only by the number of distinct
// configurations a machine can reach within the budget.
package engine
