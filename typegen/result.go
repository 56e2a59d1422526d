package typegen

// Result is the in-memory output of one generation run
type Result struct {
	// RunID identifies the run in logs
	RunID string

	// Classes are the selected class names, in emission order
	Classes []string

	// Types is the complete types module
	Types string

	// CreateClauses are spliced in after the create anchor, one per class
	CreateClauses []string

	// InitReexports replace the placeholder after the init anchor, one per class
	InitReexports []string
}

// Drift describes one output file whose contents differ from a fresh run
type Drift struct {
	File   string
	Reason string
}

// Plan is the set of file contents a run would write, computed in full
// before anything is written
type Plan struct {
	Files []PlannedFile
}

// PlannedFile is the complete new contents of one output file
type PlannedFile struct {
	Path     string
	Contents string
	// Patched is true for documents edited in place, false for generated files
	Patched bool
}
