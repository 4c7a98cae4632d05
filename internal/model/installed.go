package model

import "efixctl.dev/pkg/efixctl/pkg/aixlevel"

// InstalledFileset is one entry of the system's installed-software listing.
// Read-only for the resolver.
type InstalledFileset struct {
	Name     string
	RawLevel string
	Level    aixlevel.Level
}

// InstalledFix is one currently-applied interim fix and the files and
// filesets it owns. Read-only for the resolver. Order of Files follows the
// listing order of the system, which matters for first-seen-wins locking.
type InstalledFix struct {
	Label    string
	Files    []string
	Packages []string
}
