package domain

import (
	"fmt"
	"log/slog"
	"sort"

	"efixctl.dev/pkg/efixctl/internal/model"
)

// Scheduler turns the parsed candidate set into a strict installation order
// and a diagnostic rejection list. It is strictly single-threaded: both
// phases have ordering dependencies that decide which fix wins a lock.
type Scheduler struct{}

// NewScheduler constructs a Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Resolve runs the two scheduling phases over all candidates.
//
// Phase A rejects candidates owning a file locked by an already-installed
// fix; it deliberately keeps iterating all of the candidate's files, so a
// candidate with three locked files yields three reject entries.
//
// Phase B walks the remaining candidates by descending packaging recency
// with a running claimed-file set: a newer candidate always wins a file
// conflict over an older one. Ties on equal epoch keep input order.
//
// The returned install list preserves the walk order (most recent first)
// and must not be reordered by consumers. The reject list is sorted
// lexicographically by reason string. Rejection is a normal outcome, never
// an error.
func (s *Scheduler) Resolve(candidates []*model.Candidate, fixes []model.InstalledFix) model.Resolution {
	resolution := model.Resolution{}

	var rejects []model.Reject

	// Rejections recorded during metadata scanning (missing or out-of-range
	// prerequisites) are carried over as-is.
	var eligible []*model.Candidate

	for _, candidate := range candidates {
		if candidate.Rejected {
			rejects = append(rejects, model.Reject{Kind: candidate.RejectKind, Reason: candidate.RejectReason})
			continue
		}

		eligible = append(eligible, candidate)
	}

	// Phase A: files locked by installed fixes.
	locked := lockedFiles(fixes)
	slog.Debug("Resolving against locked files", "locked", locked)

	var survivors []*model.Candidate

	for _, candidate := range eligible {
		for _, file := range candidate.Files {
			lockingLabel, isLocked := locked[file]
			if !isLocked {
				continue
			}

			resolution.Messages = append(resolution.Messages,
				fmt.Sprintf("installed efix %s is locking %s preventing the installation of %s, "+
					"remove it manually or set the \"force\" option.", lockingLabel, file, candidate.Label))

			reason := fmt.Sprintf("%s: installed efix %s is locking %s", candidate.Label, lockingLabel, file)
			candidate.Reject(model.RejectFileLocked, reason)
			slog.Info("reject " + reason)
			rejects = append(rejects, model.Reject{Kind: model.RejectFileLocked, Reason: reason})
		}

		if candidate.Rejected {
			continue
		}

		survivors = append(survivors, candidate)
	}

	// Phase B: most recently packaged first; stable sort keeps input order on
	// equal epochs, so the walk is deterministic for a given candidate order.
	ordered := make([]*model.Candidate, len(survivors))
	copy(ordered, survivors)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Epoch > ordered[j].Epoch
	})

	claimed := map[string]bool{}

	for _, candidate := range ordered {
		if filesDisjoint(candidate.Files, claimed) {
			for _, file := range candidate.Files {
				claimed[file] = true
			}

			slog.Info("keep", "label", candidate.Label, "files", candidate.Files)
			resolution.Install = append(resolution.Install, candidate.Path)

			continue
		}

		resolution.Messages = append(resolution.Messages,
			fmt.Sprintf("a previous efix to install will lock a file of %s preventing its "+
				"installation, install it manually or run the task again.", candidate.Label))

		reason := fmt.Sprintf("%s: locked by previous efix to install", candidate.Label)
		candidate.Reject(model.RejectTemporalInterlock, reason)
		slog.Info("reject " + reason)
		rejects = append(rejects, model.Reject{Kind: model.RejectTemporalInterlock, Reason: reason})
	}

	// Deterministic, readable diagnostics: order by reason string, not by
	// label or rejection phase.
	sort.Slice(rejects, func(i, j int) bool {
		return rejects[i].Reason < rejects[j].Reason
	})

	resolution.Rejects = rejects

	return resolution
}

func filesDisjoint(files []string, claimed map[string]bool) bool {
	for _, file := range files {
		if claimed[file] {
			return false
		}
	}

	return true
}
