// Package model defines the data structures for efix resolution.
package model

import "efixctl.dev/pkg/efixctl/pkg/aixlevel"

// Path represents a file system path.
type Path string

// Constraint is one declared fileset prerequisite of a candidate: the
// installed level of Fileset must fall within [Min, Max] for the candidate
// to be installable. MinRaw and MaxRaw keep the exact strings from the
// package metadata for diagnostics.
type Constraint struct {
	Fileset string
	MinRaw  string
	MaxRaw  string
	Min     aixlevel.Level
	Max     aixlevel.Level
}

// Candidate is one epkg package under evaluation. It is created empty,
// mutated in place while its metadata text is scanned top to bottom, and
// finalized once scanning completes. After that only the scheduler may flip
// Rejected/RejectReason.
type Candidate struct {
	Path          Path
	Label         string
	PackagingDate string // raw packaging date string, empty if none seen
	Epoch         int64  // seconds from epoch, -1 when the date is missing or unparseable
	Filesets      []string
	Files         []string
	Prerequisites []Constraint
	Rejected      bool
	RejectKind    RejectKind
	RejectReason  string
}

// NewCandidate returns an empty candidate for the given package path.
func NewCandidate(path Path) *Candidate {
	return &Candidate{
		Path:  path,
		Epoch: -1,
	}
}

// AppendFileset records a fileset owned by the candidate, ignoring duplicates.
func (c *Candidate) AppendFileset(name string) {
	for _, existing := range c.Filesets {
		if existing == name {
			return
		}
	}

	c.Filesets = append(c.Filesets, name)
}

// AppendFile records a file path owned by the candidate, ignoring duplicates.
func (c *Candidate) AppendFile(file string) {
	for _, existing := range c.Files {
		if existing == file {
			return
		}
	}

	c.Files = append(c.Files, file)
}

// Reject marks the candidate as rejected with the given reason. The first
// reason sticks; later calls only matter for the scheduler's per-file lock
// entries, which are accumulated by the caller.
func (c *Candidate) Reject(kind RejectKind, reason string) {
	c.Rejected = true
	if c.RejectReason == "" {
		c.RejectKind = kind
		c.RejectReason = reason
	}
}
