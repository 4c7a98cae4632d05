package domain

import (
	"log/slog"
	"regexp"
	"strings"

	"efixctl.dev/pkg/efixctl/internal/model"
	"efixctl.dev/pkg/efixctl/pkg/aixlevel"
)

// InstalledIndex holds the two lookup structures built from the system
// state: fileset name to installed level, and the ordered list of applied
// fixes. Built once per run and immutable afterwards.
type InstalledIndex struct {
	Filesets map[string]model.InstalledFileset
	Fixes    []model.InstalledFix
}

// NewInstalledIndex builds an index from pre-parsed state.
func NewInstalledIndex(filesets map[string]model.InstalledFileset, fixes []model.InstalledFix) *InstalledIndex {
	return &InstalledIndex{
		Filesets: filesets,
		Fixes:    fixes,
	}
}

// LockedFiles maps each file owned by an applied fix to the label of the fix
// that owns it. When several fixes list the same file, the first label in
// listing order wins.
func (ix *InstalledIndex) LockedFiles() map[string]string {
	return lockedFiles(ix.Fixes)
}

func lockedFiles(fixes []model.InstalledFix) map[string]string {
	locked := map[string]string{}

	for _, fix := range fixes {
		for _, file := range fix.Files {
			if _, taken := locked[file]; !taken {
				locked[file] = fix.Label
			}
		}
	}

	return locked
}

// ParseFilesetLevels parses the colon-delimited installed-software listing
// (lslpp -Lcq output): fileset name in field 2, level in field 3, with '-'
// normalized to '.' before parsing. Malformed lines are skipped with a
// warning, matching the degrade-silently behavior of the listing producer.
func ParseFilesetLevels(text string) map[string]model.InstalledFileset {
	filesets := map[string]model.InstalledFileset{}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			slog.Warn("Malformed fileset listing line, skipping", "line", line)
			continue
		}

		name := fields[1]
		raw := fields[2]

		level, err := aixlevel.Parse(strings.ReplaceAll(raw, "-", "."))
		if err != nil {
			slog.Warn("Cannot parse fileset level, skipping", "fileset", name, "level", raw, "error", err)
			continue
		}

		filesets[name] = model.InstalledFileset{
			Name:     name,
			RawLevel: raw,
			Level:    level,
		}
	}

	return filesets
}

var (
	fixIDRegexp       = regexp.MustCompile(`^EFIX ID:\s+\S+$`)
	fixLabelRegexp    = regexp.MustCompile(`^EFIX LABEL:\s+(\S+)$`)
	fixLocationRegexp = regexp.MustCompile(`^\s+LOCATION:\s+(\S+)$`)
	fixPackageRegexp  = regexp.MustCompile(`^\s+PACKAGE:\s+(\S+)$`)
)

// ParseInstalledFixes parses the sectioned applied-fix listing (emgr -lv3
// output). "EFIX ID:" starts a new section, "EFIX LABEL:" names it, LOCATION
// lines list owned files and PACKAGE lines list owned filesets. Fix order
// follows the listing, which decides first-seen-wins file locking.
func ParseInstalledFixes(text string) []model.InstalledFix {
	var fixes []model.InstalledFix

	var current *model.InstalledFix

	seenFiles := map[string]bool{}
	seenPackages := map[string]bool{}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		if line == "" || strings.HasPrefix(line, "+") || strings.HasPrefix(line, "=") {
			continue
		}

		if fixIDRegexp.MatchString(line) {
			current = nil
			continue
		}

		if current == nil {
			if match := fixLabelRegexp.FindStringSubmatch(line); match != nil {
				fixes = append(fixes, model.InstalledFix{Label: match[1]})
				current = &fixes[len(fixes)-1]
				seenFiles = map[string]bool{}
				seenPackages = map[string]bool{}
			}

			continue
		}

		if match := fixLocationRegexp.FindStringSubmatch(line); match != nil {
			if !seenFiles[match[1]] {
				seenFiles[match[1]] = true
				current.Files = append(current.Files, match[1])
			}

			continue
		}

		if match := fixPackageRegexp.FindStringSubmatch(line); match != nil {
			if !seenPackages[match[1]] {
				seenPackages[match[1]] = true
				current.Packages = append(current.Packages, match[1])
			}
		}
	}

	return fixes
}
