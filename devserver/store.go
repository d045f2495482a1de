package devserver

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/h"
	"github.com/thoas/go-funk"
)

type entry struct {
	ID          uuid.UUID
	Seq         int64
	Title       string
	Content     string
	Tags        []string
	ContextURL  string
	ContextType string
	ContextID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type journal struct {
	record  f.Journal
	entries map[uuid.UUID]*entry
}

// store keeps journals in memory. Every method takes the lock; the echo
// handlers run concurrently.
type store struct {
	mu       sync.Mutex
	now      func() time.Time
	seq      int64
	journals map[uuid.UUID]*journal
}

func newStore(now func() time.Time) *store {
	return &store{now: now, journals: map[uuid.UUID]*journal{}}
}

// clock truncates to microseconds, the precision timestamps are rendered with.
func (s *store) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func notFound(format string, args ...any) error {
	return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf(format, args...))
}

func (s *store) createJournal(name string, journalType f.JournalType, owner uuid.UUID) f.Journal {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := f.NewTimestamp(s.clock())
	record := f.Journal{
		ID:           uuid.New(),
		BugoutUserID: owner,
		HolderIDs:    []uuid.UUID{owner},
		Name:         name,
		JournalType:  journalType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.journals[record.ID] = &journal{record: record, entries: map[uuid.UUID]*entry{}}
	return record
}

func (s *store) listJournals() []f.Journal {
	s.mu.Lock()
	defer s.mu.Unlock()
	journals := make([]f.Journal, 0, len(s.journals))
	for _, j := range s.journals {
		journals = append(journals, j.record)
	}
	sort.Slice(journals, func(i, k int) bool {
		return journals[i].CreatedAt.Before(journals[k].CreatedAt.Time)
	})
	return journals
}

func (s *store) journal(id uuid.UUID) (*journal, error) {
	j, ok := s.journals[id]
	if !ok {
		return nil, notFound("journal %s not found", id)
	}
	return j, nil
}

func (s *store) getJournal(id uuid.UUID) (f.Journal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, err := s.journal(id)
	if err != nil {
		return f.Journal{}, err
	}
	return j.record, nil
}

func (s *store) renameJournal(id uuid.UUID, name string) (f.Journal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, err := s.journal(id)
	if err != nil {
		return f.Journal{}, err
	}
	j.record.Name = name
	j.record.UpdatedAt = f.NewTimestamp(s.clock())
	return j.record, nil
}

func (s *store) deleteJournal(id uuid.UUID) (f.Journal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, err := s.journal(id)
	if err != nil {
		return f.Journal{}, err
	}
	delete(s.journals, id)
	return j.record, nil
}

// addEntries inserts all entries or none. A (context_type, context_id) pair
// already present in the journal, or repeated in the batch, is a conflict.
func (s *store) addEntries(journalID uuid.UUID, requests []f.EntryRequest) ([]entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, err := s.journal(journalID)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, e := range j.entries {
		if e.ContextID != "" {
			seen[e.ContextType+"\x00"+e.ContextID] = true
		}
	}
	now := s.clock()
	created := make([]entry, 0, len(requests))
	for _, req := range requests {
		e := entry{
			ID:          uuid.New(),
			Title:       req.Title,
			Content:     req.Content,
			Tags:        h.MergeTags(req.Tags),
			ContextURL:  h.PtrStr(req.ContextURL),
			ContextType: h.PtrStr(req.ContextType),
			ContextID:   h.PtrStr(req.ContextID),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if req.CreatedAt != nil && !req.CreatedAt.IsZero() {
			e.CreatedAt = req.CreatedAt.UTC().Truncate(time.Microsecond)
		}
		if e.ContextID != "" {
			key := e.ContextType + "\x00" + e.ContextID
			if seen[key] {
				return nil, echo.NewHTTPError(http.StatusConflict,
					fmt.Sprintf("entry with context_type %q and context_id %q already exists", e.ContextType, e.ContextID))
			}
			seen[key] = true
		}
		created = append(created, e)
	}
	for i := range created {
		s.seq++
		created[i].Seq = s.seq
		e := created[i]
		j.entries[e.ID] = &e
	}
	return created, nil
}

func (s *store) entry(journalID uuid.UUID, entryID uuid.UUID) (*entry, error) {
	j, err := s.journal(journalID)
	if err != nil {
		return nil, err
	}
	e, ok := j.entries[entryID]
	if !ok {
		return nil, notFound("entry %s not found", entryID)
	}
	return e, nil
}

func (s *store) getEntry(journalID uuid.UUID, entryID uuid.UUID) (entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entry(journalID, entryID)
	if err != nil {
		return entry{}, err
	}
	return *e, nil
}

// updateEntry applies fn to the stored entry and returns a copy of the result.
func (s *store) updateEntry(journalID uuid.UUID, entryID uuid.UUID, fn func(e *entry)) (entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entry(journalID, entryID)
	if err != nil {
		return entry{}, err
	}
	fn(e)
	e.UpdatedAt = s.clock()
	return *e, nil
}

func (s *store) deleteEntry(journalID uuid.UUID, entryID uuid.UUID) (entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entry(journalID, entryID)
	if err != nil {
		return entry{}, err
	}
	delete(s.journals[journalID].entries, entryID)
	return *e, nil
}

// entries returns copies sorted by creation time, insertion order breaking ties.
func (s *store) entries(journalID uuid.UUID) ([]entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, err := s.journal(journalID)
	if err != nil {
		return nil, err
	}
	out := make([]entry, 0, len(j.entries))
	for _, e := range j.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].Seq < out[k].Seq
		}
		return out[i].CreatedAt.Before(out[k].CreatedAt)
	})
	return out, nil
}

// mostUsedTags returns [tag, count] pairs, most used first.
func (s *store) mostUsedTags(journalID uuid.UUID) ([][]any, error) {
	entries, err := s.entries(journalID)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, e := range entries {
		for _, tag := range e.Tags {
			counts[tag]++
		}
	}
	tags := funk.Keys(counts).([]string)
	sort.Slice(tags, func(i, k int) bool {
		if counts[tags[i]] == counts[tags[k]] {
			return tags[i] < tags[k]
		}
		return counts[tags[i]] > counts[tags[k]]
	})
	out := make([][]any, 0, len(tags))
	for _, tag := range tags {
		out = append(out, []any{tag, counts[tag]})
	}
	return out, nil
}
