// Package harness runs machine scenarios and compares their traces against
// golden snapshots.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: ones_accept
//	description: "Accepts a run of ones terminated by a blank"
//	machine: ../machines/ones.ntm   # or inline transitions:
//	transitions:
//	  - "start 1 start 1 R"
//	  - "start 0 accept 0 S"
//	tape: "111"
//	budget: 10
//	dedup: true                     # optional, default true
//	compare_without_dedup: true     # optional
//	expect:
//	  verdict: "YES"
//	  cause: accepted               # optional
//	  steps: 4                      # optional
//
// Exactly one of machine and transitions must be given. Machine paths are
// resolved relative to the scenario file. Unknown fields are rejected so
// typos surface as load errors rather than silently passing scenarios.
//
// # Golden Snapshots
//
// Snapshot renders the run as canonical JSON: verdict, cause, statistics
// and one entry per round with aggregate counts. Tests compare it with
// testdata/golden/<name>.golden through goldie; the CLI uses CompareGolden
// against a directory of its own.
package harness
