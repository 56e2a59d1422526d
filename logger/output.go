package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
//	0 (default) - Results, errors with hints, final status
//	1 (-v)      - + Selected classes
//	2 (-vv)     - + Fetch details
//	3 (-vvv)    - + Per-class emission and patch positions
//	4 (-vvvv)   - + Generated text dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 1 (-v) - Informational
	OutputProgress OutputCategory = iota // Selected classes after a run

	// Level 2 (-vv) - Detailed
	OutputFetch // Upstream document fetches

	// Level 3 (-vvv) - Debug
	OutputClassEmit // Per-class emission
	OutputPatchOps  // Anchor positions and splice sizes

	// Level 4 (-vvvv) - Full dump
	OutputDataDump // Full generated text
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputProgress:  VerbosityInfo,
	OutputFetch:     VerbosityDebug,
	OutputClassEmit: VerbosityTrace,
	OutputPatchOps:  VerbosityTrace,
	OutputDataDump:  VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputProgress:  "progress",
	OutputFetch:     "fetch",
	OutputClassEmit: "class-emit",
	OutputPatchOps:  "patch",
	OutputDataDump:  "data-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
