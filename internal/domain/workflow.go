package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"efixctl.dev/pkg/efixctl/internal/adapter"
	"efixctl.dev/pkg/efixctl/internal/controller"
	m "efixctl.dev/pkg/efixctl/internal/model"
)

// ResolveArgs contains the arguments for a resolution run.
type ResolveArgs struct {
	// Paths are the candidate epkg files, in discovery order.
	Paths []m.Path
	// Threads bounds the parallel package inspections.
	Threads int
	// Report is an optional file to persist the resolution to.
	Report m.Path
}

// Workflow coordinates system-state collection, per-candidate inspection and
// conflict resolution, then displays and optionally persists the outcome.
type Workflow interface {
	Resolve(ctx context.Context, args ResolveArgs) (m.Resolution, error)
	State(ctx context.Context) (map[string]m.InstalledFileset, []m.InstalledFix, error)
}

type workflow struct {
	adapter.EfixInspector
	adapter.SystemState
	adapter.ResolutionStore
	controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	inspector adapter.EfixInspector,
	state adapter.SystemState,
	store adapter.ResolutionStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		EfixInspector:   inspector,
		SystemState:     state,
		ResolutionStore: store,
		UI:              ui,
	}
}

// Resolve runs the full pipeline. Candidate inspection fans out on a worker
// group; the resolver itself runs sequentially over the joined results.
func (w *workflow) Resolve(ctx context.Context, args ResolveArgs) (m.Resolution, error) {
	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	index, err := w.collectState(ctx)
	if err != nil {
		return m.Resolution{}, fmt.Errorf("collect system state: %w", err)
	}

	candidates, messages := w.inspectCandidates(ctx, args.Paths, index, threads)

	resolution := NewScheduler().Resolve(candidates, index.Fixes)
	resolution.Messages = append(messages, resolution.Messages...)

	if args.Report != "" {
		if err := w.Save(args.Report, resolution); err != nil {
			return resolution, fmt.Errorf("save resolution: %w", err)
		}
	}

	if err := w.DisplayResolution(ctx, resolution); err != nil {
		return resolution, fmt.Errorf("display resolution: %w", err)
	}

	return resolution, nil
}

// State collects and displays the installed filesets and applied fixes.
func (w *workflow) State(ctx context.Context) (map[string]m.InstalledFileset, []m.InstalledFix, error) {
	index, err := w.collectState(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("collect system state: %w", err)
	}

	if err := w.DisplayState(ctx, index.Filesets, index.Fixes); err != nil {
		return nil, nil, fmt.Errorf("display state: %w", err)
	}

	return index.Filesets, index.Fixes, nil
}

// collectState gathers the two system listings concurrently and joins them
// into the immutable index the resolver reads from.
func (w *workflow) collectState(ctx context.Context) (*InstalledIndex, error) {
	var (
		filesets map[string]m.InstalledFileset
		fixes    []m.InstalledFix
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		listing, err := w.ListFilesets(groupCtx)
		if err != nil {
			return fmt.Errorf("list filesets: %w", err)
		}

		filesets = ParseFilesetLevels(listing)

		return nil
	})

	group.Go(func() error {
		listing, err := w.ListFixes(groupCtx)
		if err != nil {
			return fmt.Errorf("list fixes: %w", err)
		}

		fixes = ParseInstalledFixes(listing)

		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return NewInstalledIndex(filesets, fixes), nil
}

// inspectCandidates extracts and parses candidate metadata in parallel.
// Candidate order follows the input paths regardless of worker completion
// order. A failed inspection keeps the candidate with empty fields: prefer
// attempting installation over silently skipping.
func (w *workflow) inspectCandidates(ctx context.Context, paths []m.Path, index *InstalledIndex, threads int) ([]*m.Candidate, []string) {
	parser := NewMetadataParser(index)
	candidates := make([]*m.Candidate, len(paths))

	var (
		messages []string
		mu       sync.Mutex
	)

	var group errgroup.Group
	group.SetLimit(threads)

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			text, err := w.Inspect(ctx, path)
			if err != nil {
				message := fmt.Sprintf("Cannot get efix information %s", path)
				slog.Warn(message, "error", err)

				mu.Lock()
				messages = append(messages, message)
				mu.Unlock()
			}

			candidates[i] = parser.Parse(path, text)

			return nil
		})
	}

	// Workers never fail the group; inspection errors degrade to messages.
	_ = group.Wait()

	return candidates, messages
}
