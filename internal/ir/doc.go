// Package ir provides the shared value types of the NTM simulator.
//
// This package contains type definitions and identity helpers only. All other
// internal packages import ir; ir imports nothing internal. This keeps it the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Symbols are single runes; Blank stands for every unwritten tape cell
//   - The INIT, ACCEPT and REJECT labels are reserved machine-wide
//   - Content hashes use canonical JSON with domain separation
//   - All JSON tags use snake_case
package ir
