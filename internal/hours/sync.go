package hours

import (
	"context"
	"fmt"

	"github.com/Tiliavir/cora-hours/internal/model"
	"github.com/Tiliavir/cora-hours/internal/shift"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Imported int
	Skipped  int
	Updated  int
	Removed  int
	Errors   int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	DryRun bool
	// Prune removes cached entries the API no longer returns.
	Prune bool
}

// Sync pulls the API's entries into the cache. Entries already cached with
// identical content are skipped; changed ones are overwritten.
func (s *Service) Sync(ctx context.Context, opts SyncOptions) (SyncResult, error) {
	var result SyncResult
	if s.remote == nil {
		return result, ErrOffline
	}

	remote, err := s.remote.ListEntries(ctx)
	if err != nil {
		return result, fmt.Errorf("listing entries: %w", err)
	}
	cached, err := s.store.Entries(ctx)
	if err != nil {
		return result, fmt.Errorf("reading cache: %w", err)
	}

	byID := make(map[int64]model.Entry, len(cached))
	for _, e := range cached {
		byID[e.ID] = e
	}
	seen := make(map[int64]bool, len(remote))

	for _, e := range remote {
		if e.ID == 0 {
			s.log.Warn().Str("date", e.Date).Str("start", e.Start).Msg("entry without id from API")
			result.Errors++
			continue
		}
		e.Date = e.DateKey()
		seen[e.ID] = true

		found, ok := byID[e.ID]
		if ok && found == e {
			result.Skipped++
			continue
		}
		if !opts.DryRun {
			if err := s.store.Upsert(ctx, e); err != nil {
				s.log.Error().Err(err).Int64("id", e.ID).Msg("caching entry")
				result.Errors++
				continue
			}
		}
		if ok {
			s.log.Debug().Int64("id", e.ID).Str("date", e.Date).Msg("updated")
			result.Updated++
		} else {
			s.log.Debug().Int64("id", e.ID).Str("date", e.Date).Msg("imported")
			result.Imported++
		}
	}

	if opts.Prune {
		for _, e := range cached {
			if seen[e.ID] {
				continue
			}
			if !opts.DryRun {
				if err := s.store.Delete(ctx, e.ID); err != nil {
					s.log.Error().Err(err).Int64("id", e.ID).Msg("pruning entry")
					result.Errors++
					continue
				}
			}
			s.log.Debug().Int64("id", e.ID).Msg("removed")
			result.Removed++
		}
	}

	s.log.Info().
		Int("imported", result.Imported).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("removed", result.Removed).
		Int("errors", result.Errors).
		Bool("dry_run", opts.DryRun).
		Msg("sync finished")
	return result, nil
}

// Conflict looks for an entry of the session owner overlapping start-end on
// date. excludeID skips the entry being edited.
func (s *Service) Conflict(ctx context.Context, date, start, end string, excludeID int64) (shift.Entry, bool, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return shift.Entry{}, false, err
	}
	e, ok := shift.FindOverlap(model.ShiftEntries(snapshot), shift.Candidate{
		Owner:     s.session.Owner(),
		Date:      timecalc.DateKey(date),
		Start:     start,
		End:       end,
		ExcludeID: excludeID,
	})
	return e, ok, nil
}
