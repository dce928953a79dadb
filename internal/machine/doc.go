// Package machine holds the two leaf structures of the simulator: the
// immutable transition Table and the per-branch Configuration.
//
// A Table maps (state, symbol) to the ordered moves registered for it. It is
// built once per run and never changes afterwards.
//
// A Configuration is the instantaneous description of one branch: the
// materialised tape prefix, the head index and the control state. Apply is a
// pure transformation; every call returns a configuration that shares no tape
// storage with its parent, so sibling branches never observe each other's
// writes.
package machine
