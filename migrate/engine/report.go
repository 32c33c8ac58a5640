package engine

import "github.com/viant/emberdata-migrate/migrate/core"

// SymbolOutcome records one classified symbol's final disposition, for
// callers that want to inspect outcomes without re-parsing emitted
// artifacts. Grounded in the teacher's graph.Documents/CreateDocuments
// pattern of building a structured, inspectable side-channel alongside
// the primary output.
type SymbolOutcome struct {
	CanonicalPath string
	Kind          core.Kind
	Decision      core.Decision
	KebabName     string
}

// Report is the structured summary of one engine run.
type Report struct {
	FilesIndexed     int
	ParseFailures    int
	ModelsClassified int
	MixinsClassified int
	MixinsConnected  int
	CyclesBroken     int
	ArtifactsWritten int

	Outcomes []SymbolOutcome
	Warnings []error
}
