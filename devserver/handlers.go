package devserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/h"
)

type journalRequest struct {
	Name        string        `json:"name" validate:"required"`
	JournalType f.JournalType `json:"journal_type" validate:"omitempty,oneof=default humbug"`
}

type tagsRequest struct {
	Tags []string `json:"tags"`
}

type tagRequest struct {
	Tag string `json:"tag" validate:"required"`
}

func (s *Server) entryRecord(c echo.Context, journalID uuid.UUID, e entry) f.JournalEntry {
	journalURL := fmt.Sprintf("%s/journals/%s", baseURL(c), journalID)
	contentURL := fmt.Sprintf("%s/entries/%s/content", journalURL, e.ID)
	record := f.JournalEntry{
		ID:         e.ID,
		JournalURL: journalURL,
		ContentURL: &contentURL,
		Title:      h.StrPtr(e.Title),
		Content:    h.StrPtr(e.Content),
		Tags:       h.EmptyIfNull(e.Tags),
		CreatedAt:  f.NewTimestamp(e.CreatedAt),
		UpdatedAt:  f.NewTimestamp(e.UpdatedAt),
	}
	if e.ContextURL != "" {
		record.ContextURL = h.StrPtr(e.ContextURL)
	}
	if e.ContextType != "" {
		record.ContextType = h.StrPtr(e.ContextType)
	}
	if e.ContextID != "" {
		record.ContextID = h.StrPtr(e.ContextID)
	}
	return record
}

// ------------------------------------------------------------------------------------------------------------------
// JOURNALS
// ------------------------------------------------------------------------------------------------------------------

func (s *Server) createJournal(c echo.Context) error {
	var input journalRequest
	if err := s.bind(c, &input); err != nil {
		return err
	}
	if input.JournalType == "" {
		input.JournalType = f.JournalTypeDefault
	}
	owner, _ := c.Get(_userKey).(uuid.UUID)
	return c.JSON(http.StatusOK, s.store.createJournal(input.Name, input.JournalType, owner))
}

func (s *Server) listJournals(c echo.Context) error {
	return c.JSON(http.StatusOK, f.Journals{Journals: s.store.listJournals()})
}

func (s *Server) getJournal(c echo.Context) error {
	journalID, err := uuidParam(c, "journal")
	if err != nil {
		return err
	}
	record, err := s.store.getJournal(journalID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

func (s *Server) updateJournal(c echo.Context) error {
	journalID, err := uuidParam(c, "journal")
	if err != nil {
		return err
	}
	var input journalRequest
	if err := s.bind(c, &input); err != nil {
		return err
	}
	record, err := s.store.renameJournal(journalID, input.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

func (s *Server) deleteJournal(c echo.Context) error {
	journalID, err := uuidParam(c, "journal")
	if err != nil {
		return err
	}
	record, err := s.store.deleteJournal(journalID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// checkPublic answers false: the dev server has no public journals.
func (s *Server) checkPublic(c echo.Context) error {
	if _, err := uuid.Parse(c.QueryParam("journal_id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "journal_id is required")
	}
	return c.JSON(http.StatusOK, false)
}

// ------------------------------------------------------------------------------------------------------------------
// ENTRIES
// ------------------------------------------------------------------------------------------------------------------

func (s *Server) createEntry(c echo.Context) error {
	journalID, err := uuidParam(c, "journal")
	if err != nil {
		return err
	}
	var input f.EntryRequest
	if err := s.bind(c, &input); err != nil {
		return err
	}
	created, err := s.store.addEntries(journalID, []f.EntryRequest{input})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.entryRecord(c, journalID, created[0]))
}

func (s *Server) createEntries(c echo.Context) error {
	journalID, err := uuidParam(c, "journal")
	if err != nil {
		return err
	}
	var input f.EntriesRequest
	if err := s.bind(c, &input); err != nil {
		return err
	}
	created, err := s.store.addEntries(journalID, input.Entries)
	if err != nil {
		return err
	}
	records := make([]f.JournalEntry, 0, len(created))
	for _, e := range created {
		records = append(records, s.entryRecord(c, journalID, e))
	}
	return c.JSON(http.StatusOK, f.JournalEntries{Entries: records})
}

func (s *Server) listEntries(c echo.Context) error {
	journalID, err := uuidParam(c, "journal")
	if err != nil {
		return err
	}
	entries, err := s.store.entries(journalID)
	if err != nil {
		return err
	}
	records := make([]f.JournalEntry, 0, len(entries))
	for _, e := range entries {
		records = append(records, s.entryRecord(c, journalID, e))
	}
	return c.JSON(http.StatusOK, f.JournalEntries{Entries: records})
}

func (s *Server) getEntry(c echo.Context) error {
	journalID, entryID, err := journalAndEntry(c)
	if err != nil {
		return err
	}
	e, err := s.store.getEntry(journalID, entryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.entryRecord(c, journalID, e))
}

func (s *Server) deleteEntry(c echo.Context) error {
	journalID, entryID, err := journalAndEntry(c)
	if err != nil {
		return err
	}
	e, err := s.store.deleteEntry(journalID, entryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.entryRecord(c, journalID, e))
}

func (s *Server) getContent(c echo.Context) error {
	journalID, entryID, err := journalAndEntry(c)
	if err != nil {
		return err
	}
	e, err := s.store.getEntry(journalID, entryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f.JournalEntryContent{Title: e.Title, Content: e.Content, Tags: h.EmptyIfNull(e.Tags)})
}

func (s *Server) updateContent(c echo.Context) error {
	journalID, entryID, err := journalAndEntry(c)
	if err != nil {
		return err
	}
	var input f.JournalEntryContent
	if err := s.bind(c, &input); err != nil {
		return err
	}
	action := f.TagsAction(c.QueryParam("tags_action"))
	if action == "" {
		action = f.TagsMerge
	}
	if action != f.TagsMerge && action != f.TagsReplace {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unsupported tags_action %q", action))
	}
	e, err := s.store.updateEntry(journalID, entryID, func(e *entry) {
		e.Title = input.Title
		e.Content = input.Content
		if action == f.TagsReplace {
			e.Tags = h.MergeTags(nil, input.Tags...)
		} else {
			e.Tags = h.MergeTags(e.Tags, input.Tags...)
		}
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f.JournalEntryContent{Title: e.Title, Content: e.Content, Tags: h.EmptyIfNull(e.Tags)})
}

// ------------------------------------------------------------------------------------------------------------------
// TAGS
// ------------------------------------------------------------------------------------------------------------------

func (s *Server) entryTags(c echo.Context, journalID uuid.UUID, e entry) error {
	return c.JSON(http.StatusOK, f.JournalEntryTags{JournalID: journalID, EntryID: e.ID, Tags: h.EmptyIfNull(e.Tags)})
}

func (s *Server) getTags(c echo.Context) error {
	journalID, entryID, err := journalAndEntry(c)
	if err != nil {
		return err
	}
	e, err := s.store.getEntry(journalID, entryID)
	if err != nil {
		return err
	}
	return s.entryTags(c, journalID, e)
}

func (s *Server) addTags(c echo.Context) error {
	return s.writeTags(c, func(current []string, tags []string) []string {
		return h.MergeTags(current, tags...)
	})
}

func (s *Server) replaceTags(c echo.Context) error {
	return s.writeTags(c, func(_ []string, tags []string) []string {
		return h.MergeTags(nil, tags...)
	})
}

func (s *Server) writeTags(c echo.Context, apply func(current []string, tags []string) []string) error {
	journalID, entryID, err := journalAndEntry(c)
	if err != nil {
		return err
	}
	var input tagsRequest
	if err := s.bind(c, &input); err != nil {
		return err
	}
	e, err := s.store.updateEntry(journalID, entryID, func(e *entry) {
		e.Tags = apply(e.Tags, input.Tags)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.EmptyIfNull(e.Tags))
}

func (s *Server) deleteTag(c echo.Context) error {
	journalID, entryID, err := journalAndEntry(c)
	if err != nil {
		return err
	}
	var input tagRequest
	if err := s.bind(c, &input); err != nil {
		return err
	}
	e, err := s.store.updateEntry(journalID, entryID, func(e *entry) {
		e.Tags = h.RemoveTag(e.Tags, input.Tag)
	})
	if err != nil {
		return err
	}
	return s.entryTags(c, journalID, e)
}

func (s *Server) mostUsedTags(c echo.Context) error {
	journalID, err := uuidParam(c, "journal")
	if err != nil {
		return err
	}
	tags, err := s.store.mostUsedTags(journalID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

// ------------------------------------------------------------------------------------------------------------------
// SEARCH
// ------------------------------------------------------------------------------------------------------------------

func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s: %q", name, raw))
	}
	return value, nil
}

func (s *Server) search(c echo.Context) error {
	journalID, err := uuidParam(c, "journal")
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit", f.DefaultSearchLimit)
	if err != nil {
		return err
	}
	offset, err := intParam(c, "offset", 0)
	if err != nil {
		return err
	}
	withContent := true
	if raw := c.QueryParam("content"); raw != "" {
		if withContent, err = strconv.ParseBool(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid content flag: %q", raw))
		}
	}
	order := f.SearchOrder(strings.ToLower(c.QueryParam("order")))
	if order == "" {
		order = f.OrderDescending
	}
	if order != f.OrderAscending && order != f.OrderDescending {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid order: %q", order))
	}

	terms := append([]string{c.QueryParam("q")}, c.QueryParams()["filters"]...)
	predicates, err := parseQuery(strings.Join(terms, " "))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	entries, err := s.store.entries(journalID)
	if err != nil {
		return err
	}

	var hits []entry
	for _, e := range entries {
		if matches(e, predicates) {
			hits = append(hits, e)
		}
	}
	if order == f.OrderDescending {
		for i, k := 0, len(hits)-1; i < k; i, k = i+1, k-1 {
			hits[i], hits[k] = hits[k], hits[i]
		}
	}

	results := f.SearchResults{
		TotalResults: len(hits),
		Offset:       offset,
		MaxScore:     1,
		Results:      []f.SearchResult{},
	}
	if offset < len(hits) {
		end := offset + limit
		if end > len(hits) {
			end = len(hits)
		}
		for _, e := range hits[offset:end] {
			results.Results = append(results.Results, s.searchResult(c, journalID, e, withContent))
		}
		if end < len(hits) {
			results.NextOffset = &end
		}
	}
	return c.JSON(http.StatusOK, results)
}

// searchResult renders timestamps the way Spire search does, space separated
// with a numeric zone.
func (s *Server) searchResult(c echo.Context, journalID uuid.UUID, e entry, withContent bool) f.SearchResult {
	entryURL := fmt.Sprintf("%s/journals/%s/entries/%s", baseURL(c), journalID, e.ID)
	result := f.SearchResult{
		EntryURL:   entryURL,
		ContentURL: entryURL + "/content",
		Title:      e.Title,
		Tags:       h.EmptyIfNull(e.Tags),
		CreatedAt:  e.CreatedAt.UTC().Format(h.ServerTimeLayout),
		UpdatedAt:  e.UpdatedAt.UTC().Format(h.ServerTimeLayout),
		Score:      1,
	}
	if withContent {
		result.Content = h.StrPtr(e.Content)
	}
	return result
}
