package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"efixctl.dev/pkg/efixctl/internal/model"
	"efixctl.dev/pkg/efixctl/pkg/aixlevel"
)

// Package metadata is scanned line by line in document order: LABEL first,
// then PACKAGING DATE, then PACKAGE/LOCATION lines, then prerequisite level
// lines. Prerequisite lines have no distinguishing keyword; they are
// recognized by elimination after the other patterns fail to match.
var (
	labelRegexp = regexp.MustCompile(`^LABEL:\s+(\S+)$`)
	// "PACKAGING DATE:   Mon Oct  9 09:35:09 CDT 2017"
	packagingDateRegexp = regexp.MustCompile(`^PACKAGING\s+DATE:\s+(\S+\s+\S+\s+\d+\s+\d+:\d+:\d+\s+\S*\s*\S+).*$`)
	packageRegexp       = regexp.MustCompile(`^\s+PACKAGE:\s+(\S+)\s*?$`)
	locationRegexp      = regexp.MustCompile(`^\s+LOCATION:\s+(\S+)\s*?$`)
	// "bos.net.tcp.server 7.1.3.0 7.1.3.49"
	prereqRegexp = regexp.MustCompile(`^(\S+)\s+([\d+.]+)\s+([\d+.]+)\s*?$`)
)

// scanAction tells the metadata scan whether to keep reading the candidate's
// remaining lines after a prerequisite check.
type scanAction int

const (
	scanContinue scanAction = iota
	scanStop
)

// MetadataParser performs the ordered, stateful, single-pass scan of one
// candidate's metadata text, validating each prerequisite constraint against
// the installed state as soon as it is recognized. A failing constraint
// abandons the rest of that candidate's text.
type MetadataParser struct {
	index *InstalledIndex
}

// NewMetadataParser constructs a parser bound to the given installed state.
func NewMetadataParser(index *InstalledIndex) *MetadataParser {
	return &MetadataParser{index: index}
}

// Parse scans the metadata text of the package at path and returns the
// populated candidate. A candidate rejected mid-scan keeps whatever fields
// were populated before the rejection; it is excluded from scheduling anyway.
// Empty text yields an empty candidate (best-effort policy for failed
// inspections: prefer attempting installation over silently skipping).
func (p *MetadataParser) Parse(path model.Path, text string) *model.Candidate {
	candidate := model.NewCandidate(path)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if line == "" || strings.HasPrefix(line, "+") {
			continue
		}

		if candidate.Label == "" {
			if match := labelRegexp.FindStringSubmatch(line); match != nil {
				candidate.Label = match[1]
				continue
			}
		}

		if candidate.PackagingDate == "" {
			if match := packagingDateRegexp.FindStringSubmatch(line); match != nil {
				candidate.PackagingDate = match[1]
				continue
			}
		}

		if match := packageRegexp.FindStringSubmatch(line); match != nil {
			candidate.AppendFileset(match[1])
			continue
		}

		if match := locationRegexp.FindStringSubmatch(line); match != nil {
			candidate.AppendFile(match[1])
			continue
		}

		match := prereqRegexp.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		if p.checkPrerequisite(candidate, match[1], match[2], match[3]) == scanStop {
			break
		}
	}

	p.finalize(candidate)

	return candidate
}

// checkPrerequisite validates one recognized constraint line against the
// installed filesets. The first violated constraint rejects the whole
// candidate and stops the scan; later constraints are never evaluated.
func (p *MetadataParser) checkPrerequisite(candidate *model.Candidate, fileset, minRaw, maxRaw string) scanAction {
	minLevel, err := aixlevel.Parse(minRaw)
	if err != nil {
		slog.Warn("Cannot parse prerequisite minimum level, skipping constraint",
			"label", candidate.Label, "fileset", fileset, "level", minRaw, "error", err)

		return scanContinue
	}

	maxLevel, err := aixlevel.Parse(maxRaw)
	if err != nil {
		slog.Warn("Cannot parse prerequisite maximum level, skipping constraint",
			"label", candidate.Label, "fileset", fileset, "level", maxRaw, "error", err)

		return scanContinue
	}

	candidate.Prerequisites = append(candidate.Prerequisites, model.Constraint{
		Fileset: fileset,
		MinRaw:  minRaw,
		MaxRaw:  maxRaw,
		Min:     minLevel,
		Max:     maxLevel,
	})

	installed, present := p.index.Filesets[fileset]
	if !present {
		candidate.Reject(model.RejectPrereqMissing,
			fmt.Sprintf("%s: prerequisite missing: %s", candidate.Label, fileset))
		slog.Info("reject " + candidate.RejectReason)

		return scanStop
	}

	if installed.Level.Less(minLevel) || installed.Level.Greater(maxLevel) {
		candidate.Reject(model.RejectPrereqOutOfRange,
			fmt.Sprintf("%s: prerequisite %s levels do not satisfy condition: %s =< %s =< %s",
				candidate.Label, fileset, minRaw, installed.RawLevel, maxRaw))
		slog.Info("reject " + candidate.RejectReason)

		return scanStop
	}

	return scanContinue
}

// finalize computes the recency sort key once scanning completes. An absent
// or unparseable packaging date leaves epoch at -1, which sorts last among
// non-rejected candidates.
func (p *MetadataParser) finalize(candidate *model.Candidate) {
	if candidate.Rejected || candidate.PackagingDate == "" {
		return
	}

	epoch, err := ToUTCEpoch(candidate.PackagingDate)
	if err != nil {
		slog.Warn("Cannot convert packaging date",
			"label", candidate.Label, "date", candidate.PackagingDate, "error", err)
	}

	candidate.Epoch = epoch
}
