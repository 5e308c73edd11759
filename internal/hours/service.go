package hours

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Tiliavir/cora-hours/internal/model"
	"github.com/Tiliavir/cora-hours/internal/shift"
	"github.com/Tiliavir/cora-hours/internal/timecalc"
)

// ErrOffline is returned for operations that need the CORA API when the
// service runs without one.
var ErrOffline = errors.New("the CORA API is required for this operation (running offline)")

// Store is the local entry cache.
type Store interface {
	Entries(ctx context.Context) ([]model.Entry, error)
	Upsert(ctx context.Context, e model.Entry) error
	Delete(ctx context.Context, id int64) error
}

// Remote is the CORA API, the source of truth for entries.
type Remote interface {
	ListEntries(ctx context.Context) ([]model.Entry, error)
	CreateEntry(ctx context.Context, p model.Payload) error
	UpdateEntry(ctx context.Context, id int64, p model.Payload) error
	DeleteEntry(ctx context.Context, id int64) error
}

// Draft is an entry as typed by the user, before validation.
type Draft struct {
	ID            int64 // set when editing an existing entry
	Date          string
	Start         string
	End           string
	Client        string
	Task          string
	Module        string
	ClientCase    string
	InternalCase  string
	EscalatedCase string
	BillableHours float64
	Description   string
}

// Service validates, submits and caches entries for one session.
type Service struct {
	session Session
	store   Store
	remote  Remote
	log     zerolog.Logger
}

// NewService wires a service. remote may be nil to work from the cache only.
func NewService(session Session, store Store, remote Remote, log zerolog.Logger) *Service {
	return &Service{
		session: session,
		store:   store,
		remote:  remote,
		log:     log.With().Str("component", "hours").Logger(),
	}
}

// Session returns the session the service acts for.
func (s *Service) Session() Session {
	return s.session
}

// Online reports whether an API is configured.
func (s *Service) Online() bool {
	return s.remote != nil
}

// Snapshot returns the entries to validate against: the API's when online,
// the cache's otherwise.
func (s *Service) Snapshot(ctx context.Context) ([]model.Entry, error) {
	if s.remote != nil {
		entries, err := s.remote.ListEntries(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing entries: %w", err)
		}
		return entries, nil
	}
	entries, err := s.store.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	return entries, nil
}

// Prepare validates a draft against a fresh snapshot and returns the payload
// to submit. Validation failures are reported with the errors of this
// package; see IsValidation.
func (s *Service) Prepare(ctx context.Context, d Draft) (model.Payload, error) {
	if err := checkDraft(d); err != nil {
		return model.Payload{}, err
	}

	owner := s.session.Owner()
	if owner.IsZero() {
		return model.Payload{}, ErrNoOwner
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return model.Payload{}, err
	}

	var existing *model.Entry
	if d.ID != 0 {
		existing = findByID(snapshot, d.ID)
		if existing == nil {
			return model.Payload{}, fmt.Errorf("%w: #%d", ErrEntryNotFound, d.ID)
		}
		if existing.Locked {
			return model.Payload{}, fmt.Errorf("%w: #%d", ErrEntryLocked, d.ID)
		}
		owner = existing.Owner()
	}

	candidate := shift.Candidate{
		Owner:     owner,
		Date:      timecalc.DateKey(d.Date),
		Start:     d.Start,
		End:       d.End,
		ExcludeID: d.ID,
	}
	if conflict, ok := shift.FindOverlap(model.ShiftEntries(snapshot), candidate); ok {
		s.log.Debug().
			Int64("conflict_id", conflict.ID).
			Str("date", candidate.Date).
			Str("start", d.Start).
			Str("end", d.End).
			Msg("overlap found")
		return model.Payload{}, &ConflictError{Existing: conflict}
	}

	p := BuildPayload(d, s.session)
	if existing != nil {
		p.ConsultantID = existing.ConsultantID
		p.Consultant = existing.Consultant
		p.Username = existing.Username
	}
	return p, nil
}

func checkDraft(d Draft) error {
	if strings.TrimSpace(d.Start) == "" || strings.TrimSpace(d.End) == "" {
		return ErrMissingTimes
	}
	return ValidateRange(d.Date, d.Start, d.End)
}

// ValidateRange checks a date and a same-day start-end range before it is
// compared with other entries. The overlap check treats a malformed range as
// free, so callers must reject it here first.
func ValidateRange(date, start, end string) error {
	if _, err := timecalc.ParseDate(timecalc.DateKey(date)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if _, ok := shift.ParseTimeOfDay(start); !ok {
		return fmt.Errorf("%w: start %q", ErrInvalidTime, start)
	}
	if _, ok := shift.ParseTimeOfDay(end); !ok {
		return fmt.Errorf("%w: end %q", ErrInvalidTime, end)
	}
	if shift.DurationHours(start, end) <= 0 {
		return fmt.Errorf("%w: %s-%s", ErrEndNotAfterStart, start, end)
	}
	return nil
}

// BuildPayload fills the computed fields of a draft: hours, total hours and
// the extra-hours classification against the session shift.
func BuildPayload(d Draft, s Session) model.Payload {
	hours := shift.DurationHours(d.Start, d.End)
	billable := d.BillableHours
	if billable <= 0 {
		billable = hours
	}

	module := strings.TrimSpace(d.Module)
	if module == "" && len(s.Modules) > 0 {
		module = strings.TrimSpace(s.Modules[0])
	}

	return model.Payload{
		Entry: model.Entry{
			ID:            d.ID,
			ConsultantID:  s.ConsultantID,
			Consultant:    s.Name,
			Username:      strings.ToLower(strings.TrimSpace(s.Login)),
			Date:          timecalc.DateKey(d.Date),
			Client:        d.Client,
			Module:        module,
			ClientCase:    d.ClientCase,
			InternalCase:  d.InternalCase,
			EscalatedCase: d.EscalatedCase,
			Task:          d.Task,
			Start:         d.Start,
			End:           d.End,
			Hours:         hours,
			BillableHours: billable,
			ExtraHours:    string(shift.ClassifyExtraHours(d.Start, d.End, s.Shift)),
			TotalHours:    hours,
			Shift:         s.Shift,
			Description:   d.Description,
		},
		Login: s.Login,
		Role:  s.Role,
	}
}

// Submit validates the draft and sends it to the API: a new entry when
// d.ID is zero, an edit otherwise. The cache is refreshed afterwards since
// the API does not echo the stored entry. With dryRun nothing is sent.
func (s *Service) Submit(ctx context.Context, d Draft, dryRun bool) (model.Payload, error) {
	p, err := s.Prepare(ctx, d)
	if err != nil {
		return model.Payload{}, err
	}
	if dryRun {
		return p, nil
	}
	if s.remote == nil {
		return model.Payload{}, ErrOffline
	}

	if d.ID != 0 {
		err = s.remote.UpdateEntry(ctx, d.ID, p)
	} else {
		err = s.remote.CreateEntry(ctx, p)
	}
	if err != nil {
		return model.Payload{}, fmt.Errorf("submitting entry: %w", err)
	}
	s.log.Info().Int64("id", d.ID).Str("date", p.Date).Float64("hours", p.Hours).Msg("entry submitted")

	if _, err := s.Sync(ctx, SyncOptions{}); err != nil {
		s.log.Warn().Err(err).Msg("refreshing cache after submit")
	}
	return p, nil
}

// Delete removes an entry from the API and the cache. Locked entries are
// refused.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s.remote == nil {
		return ErrOffline
	}
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	e := findByID(snapshot, id)
	if e == nil {
		return fmt.Errorf("%w: #%d", ErrEntryNotFound, id)
	}
	if e.Locked {
		return fmt.Errorf("%w: #%d", ErrEntryLocked, id)
	}
	if err := s.remote.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("removing entry from cache: %w", err)
	}
	s.log.Info().Int64("id", id).Msg("entry deleted")
	return nil
}

// Entries returns the cached entries.
func (s *Service) Entries(ctx context.Context) ([]model.Entry, error) {
	entries, err := s.store.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	return entries, nil
}

func findByID(entries []model.Entry, id int64) *model.Entry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}
