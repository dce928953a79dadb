// Package compiler loads machine definitions and lints them.
//
// Two source formats are accepted. The plain-text transition format is
// handled by package parser. Files ending in .cue are unified with an
// embedded #Machine schema and read through the CUE Go API, which lets
// larger machines carry a name, a description and CUE-level reuse:
//
//	name: "ones"
//	transitions: [
//		{from: "start", read: "1", to: "start", write: "1", move: "R"},
//		{from: "start", read: "0", to: "accept", write: "0", move: "S"},
//	]
//
// Validate reports lint findings (W3xx codes) that do not prevent a run.
package compiler
