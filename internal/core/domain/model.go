package domain

import "io/fs"

// MarkerToken opens a cell in the documents the tool rewrites.
const MarkerToken = "#%%"

// DefaultPattern selects chat documents.
const DefaultPattern = "*.chat.md"

// Document holds the full text of one file.
type Document struct {
	Path string
	Text string
	Mode fs.FileMode
}

// FileOutcome records what happened to a single candidate file.
type FileOutcome struct {
	Path     string
	Changed  bool
	Inserted int
	Written  bool
	Skipped  bool
	Err      error
}

// RunSummary holds the outcome of a whole rewrite run.
type RunSummary struct {
	Dir      string
	Pattern  string
	Found    int
	Changed  int
	Inserted int
	Skipped  int
	Outcomes []FileOutcome
}
