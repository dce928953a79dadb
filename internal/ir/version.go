package ir

// Version constants for the machine encoding and engine.
const (
	// IRVersion is the machine encoding version used in content hashes.
	IRVersion = "1"

	// EngineVersion is the exploration engine version recorded with each run.
	EngineVersion = "0.3.0"
)
