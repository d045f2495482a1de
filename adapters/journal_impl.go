package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/h"
)

// JournalClient wraps the Spire journal, entry, tag and search endpoints.
type JournalClient struct {
	spire *Transport
}

var _ f.JournalProvider = (*JournalClient)(nil)

func NewJournalClient(spire *Transport) *JournalClient {
	return &JournalClient{spire: spire}
}

func journalPath(journalID uuid.UUID, parts ...string) string {
	p := fmt.Sprintf("journals/%s", journalID)
	if len(parts) > 0 {
		p = p + "/" + strings.Join(parts, "/")
	}
	return p
}

func entryPath(journalID uuid.UUID, entryID uuid.UUID, parts ...string) string {
	return journalPath(journalID, append([]string{"entries", entryID.String()}, parts...)...)
}

// ------------------------------------------------------------------------------------------------------------------
// SCOPES & PERMISSIONS
// ------------------------------------------------------------------------------------------------------------------

func (c *JournalClient) ListScopes(ctx context.Context, creds f.Credentials, api string, opts ...f.CallOptions) (*f.Scopes, error) {
	var scopes f.Scopes
	err := c.spire.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   "journals/scopes",
		Creds:  &creds,
		Body:   map[string]string{"api": api},
		Result: &scopes,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &scopes, nil
}

// GetJournalPermissions lists the permissions of the journal holders, all of
// them when holderIDs is empty.
func (c *JournalClient) GetJournalPermissions(ctx context.Context, creds f.Credentials, journalID uuid.UUID, holderIDs []uuid.UUID, opts ...f.CallOptions) (*f.JournalPermissions, error) {
	query := url.Values{}
	if len(holderIDs) > 0 {
		ids := make([]string, 0, len(holderIDs))
		for _, id := range holderIDs {
			ids = append(ids, id.String())
		}
		query.Set("holder_ids", strings.Join(ids, ","))
	}
	var permissions f.JournalPermissions
	err := c.spire.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   journalPath(journalID, "permissions"),
		Creds:  &creds,
		Query:  query,
		Result: &permissions,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &permissions, nil
}

func (c *JournalClient) GetJournalScopes(ctx context.Context, creds f.Credentials, journalID uuid.UUID, opts ...f.CallOptions) (*f.JournalScopeSpecs, error) {
	return c.scopes(ctx, f.MethodGet, creds, journalID, nil, opts)
}

func (c *JournalClient) UpdateJournalScopes(ctx context.Context, creds f.Credentials, journalID uuid.UUID, holderType f.HolderType, holderID string, permissions []string, opts ...f.CallOptions) (*f.JournalScopeSpecs, error) {
	return c.scopes(ctx, f.MethodPost, creds, journalID, scopesBody(holderType, holderID, permissions), opts)
}

func (c *JournalClient) DeleteJournalScopes(ctx context.Context, creds f.Credentials, journalID uuid.UUID, holderType f.HolderType, holderID string, permissions []string, opts ...f.CallOptions) (*f.JournalScopeSpecs, error) {
	return c.scopes(ctx, f.MethodDelete, creds, journalID, scopesBody(holderType, holderID, permissions), opts)
}

func scopesBody(holderType f.HolderType, holderID string, permissions []string) map[string]any {
	return map[string]any{
		"holder_type":     holderType,
		"holder_id":       holderID,
		"permission_list": h.EmptyIfNull(permissions),
	}
}

func (c *JournalClient) scopes(ctx context.Context, method string, creds f.Credentials, journalID uuid.UUID, body any, opts []f.CallOptions) (*f.JournalScopeSpecs, error) {
	var specs f.JournalScopeSpecs
	err := c.spire.Do(ctx, Call{
		Method: method,
		Path:   journalPath(journalID, "scopes"),
		Creds:  &creds,
		Body:   body,
		Result: &specs,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &specs, nil
}

// ------------------------------------------------------------------------------------------------------------------
// JOURNALS
// ------------------------------------------------------------------------------------------------------------------

func (c *JournalClient) journal(ctx context.Context, call Call, opts []f.CallOptions) (*f.Journal, error) {
	var journal f.Journal
	call.Result = &journal
	if err := c.spire.Do(ctx, call, opts...); err != nil {
		return nil, err
	}
	return &journal, nil
}

// CreateJournal creates a journal; an empty journalType means JournalTypeDefault.
func (c *JournalClient) CreateJournal(ctx context.Context, creds f.Credentials, name string, journalType f.JournalType, opts ...f.CallOptions) (*f.Journal, error) {
	if journalType == "" {
		journalType = f.JournalTypeDefault
	}
	return c.journal(ctx, Call{
		Method: f.MethodPost,
		Path:   "journals/",
		Creds:  &creds,
		Body:   map[string]any{"name": name, "journal_type": journalType},
	}, opts)
}

func (c *JournalClient) ListJournals(ctx context.Context, creds f.Credentials, opts ...f.CallOptions) (*f.Journals, error) {
	var journals f.Journals
	if err := c.spire.Do(ctx, Call{Method: f.MethodGet, Path: "journals/", Creds: &creds, Result: &journals}, opts...); err != nil {
		return nil, err
	}
	return &journals, nil
}

func (c *JournalClient) GetJournal(ctx context.Context, creds f.Credentials, journalID uuid.UUID, opts ...f.CallOptions) (*f.Journal, error) {
	return c.journal(ctx, Call{Method: f.MethodGet, Path: journalPath(journalID), Creds: &creds}, opts)
}

func (c *JournalClient) UpdateJournal(ctx context.Context, creds f.Credentials, journalID uuid.UUID, name string, opts ...f.CallOptions) (*f.Journal, error) {
	return c.journal(ctx, Call{
		Method: f.MethodPut,
		Path:   journalPath(journalID),
		Creds:  &creds,
		Body:   map[string]string{"name": name},
	}, opts)
}

func (c *JournalClient) DeleteJournal(ctx context.Context, creds f.Credentials, journalID uuid.UUID, opts ...f.CallOptions) (*f.Journal, error) {
	return c.journal(ctx, Call{Method: f.MethodDelete, Path: journalPath(journalID), Creds: &creds}, opts)
}

// ------------------------------------------------------------------------------------------------------------------
// ENTRIES
// ------------------------------------------------------------------------------------------------------------------

func (c *JournalClient) entry(ctx context.Context, call Call, opts []f.CallOptions) (*f.JournalEntry, error) {
	var entry f.JournalEntry
	call.Result = &entry
	if err := c.spire.Do(ctx, call, opts...); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *JournalClient) CreateEntry(ctx context.Context, creds f.Credentials, journalID uuid.UUID, entry f.EntryRequest, opts ...f.CallOptions) (*f.JournalEntry, error) {
	entry.Tags = h.EmptyIfNull(entry.Tags)
	return c.entry(ctx, Call{
		Method: f.MethodPost,
		Path:   journalPath(journalID, "entries"),
		Creds:  &creds,
		Body:   entry,
	}, opts)
}

// CreateEntriesPack creates several entries in one request.
func (c *JournalClient) CreateEntriesPack(ctx context.Context, creds f.Credentials, journalID uuid.UUID, entries []f.EntryRequest, opts ...f.CallOptions) (*f.JournalEntries, error) {
	pack := f.EntriesRequest{Entries: make([]f.EntryRequest, 0, len(entries))}
	for _, entry := range entries {
		entry.Tags = h.EmptyIfNull(entry.Tags)
		pack.Entries = append(pack.Entries, entry)
	}
	var created f.JournalEntries
	err := c.spire.Do(ctx, Call{
		Method: f.MethodPost,
		Path:   journalPath(journalID, "bulk"),
		Creds:  &creds,
		Body:   pack,
		Result: &created,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *JournalClient) GetEntry(ctx context.Context, creds f.Credentials, journalID uuid.UUID, entryID uuid.UUID, opts ...f.CallOptions) (*f.JournalEntry, error) {
	return c.entry(ctx, Call{Method: f.MethodGet, Path: entryPath(journalID, entryID), Creds: &creds}, opts)
}

func (c *JournalClient) GetEntries(ctx context.Context, creds f.Credentials, journalID uuid.UUID, opts ...f.CallOptions) (*f.JournalEntries, error) {
	var entries f.JournalEntries
	err := c.spire.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   journalPath(journalID, "entries"),
		Creds:  &creds,
		Result: &entries,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &entries, nil
}

func (c *JournalClient) GetEntryContent(ctx context.Context, creds f.Credentials, journalID uuid.UUID, entryID uuid.UUID, opts ...f.CallOptions) (*f.JournalEntryContent, error) {
	var content f.JournalEntryContent
	err := c.spire.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   entryPath(journalID, entryID, "content"),
		Creds:  &creds,
		Result: &content,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// UpdateEntryContent replaces title and content. Tags sent along are merged
// with or replace the existing ones depending on action.
func (c *JournalClient) UpdateEntryContent(ctx context.Context, creds f.Credentials, journalID uuid.UUID, entryID uuid.UUID, content f.JournalEntryContent, action f.TagsAction, opts ...f.CallOptions) (*f.JournalEntryContent, error) {
	if action == "" {
		action = f.TagsMerge
	}
	var updated f.JournalEntryContent
	err := c.spire.Do(ctx, Call{
		Method: f.MethodPut,
		Path:   entryPath(journalID, entryID, "content"),
		Creds:  &creds,
		Query:  url.Values{"tags_action": {string(action)}},
		Body:   content,
		Result: &updated,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *JournalClient) DeleteEntry(ctx context.Context, creds f.Credentials, journalID uuid.UUID, entryID uuid.UUID, opts ...f.CallOptions) (*f.JournalEntry, error) {
	return c.entry(ctx, Call{Method: f.MethodDelete, Path: entryPath(journalID, entryID), Creds: &creds}, opts)
}

// ------------------------------------------------------------------------------------------------------------------
// TAGS
// ------------------------------------------------------------------------------------------------------------------

// GetMostUsedTags returns [tag, count] pairs as sent by the server.
func (c *JournalClient) GetMostUsedTags(ctx context.Context, creds f.Credentials, journalID uuid.UUID, opts ...f.CallOptions) ([]any, error) {
	var tags []any
	if err := c.spire.Do(ctx, Call{Method: f.MethodGet, Path: journalPath(journalID, "tags"), Creds: &creds, Result: &tags}, opts...); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTags adds tags to an entry, keeping the ones already present.
func (c *JournalClient) CreateTags(ctx context.Context, creds f.Credentials, journalID uuid.UUID, entryID uuid.UUID, tags []string, opts ...f.CallOptions) ([]string, error) {
	return c.writeTags(ctx, f.MethodPost, creds, journalID, entryID, tags, opts)
}

// UpdateTags replaces the tags of an entry.
func (c *JournalClient) UpdateTags(ctx context.Context, creds f.Credentials, journalID uuid.UUID, entryID uuid.UUID, tags []string, opts ...f.CallOptions) ([]string, error) {
	return c.writeTags(ctx, f.MethodPut, creds, journalID, entryID, tags, opts)
}

func (c *JournalClient) writeTags(ctx context.Context, method string, creds f.Credentials, journalID uuid.UUID, entryID uuid.UUID, tags []string, opts []f.CallOptions) ([]string, error) {
	var result []string
	err := c.spire.Do(ctx, Call{
		Method: method,
		Path:   entryPath(journalID, entryID, "tags"),
		Creds:  &creds,
		Body:   map[string][]string{"tags": h.EmptyIfNull(tags)},
		Result: &result,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *JournalClient) GetTags(ctx context.Context, creds f.Credentials, journalID uuid.UUID, entryID uuid.UUID, opts ...f.CallOptions) (*f.JournalEntryTags, error) {
	return c.entryTags(ctx, f.MethodGet, creds, journalID, entryID, nil, opts)
}

func (c *JournalClient) DeleteTag(ctx context.Context, creds f.Credentials, journalID uuid.UUID, entryID uuid.UUID, tag string, opts ...f.CallOptions) (*f.JournalEntryTags, error) {
	return c.entryTags(ctx, f.MethodDelete, creds, journalID, entryID, map[string]string{"tag": tag}, opts)
}

func (c *JournalClient) entryTags(ctx context.Context, method string, creds f.Credentials, journalID uuid.UUID, entryID uuid.UUID, body any, opts []f.CallOptions) (*f.JournalEntryTags, error) {
	var tags f.JournalEntryTags
	err := c.spire.Do(ctx, Call{
		Method: method,
		Path:   entryPath(journalID, entryID, "tags"),
		Creds:  &creds,
		Body:   body,
		Result: &tags,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &tags, nil
}

// ------------------------------------------------------------------------------------------------------------------
// SEARCH
// ------------------------------------------------------------------------------------------------------------------

// SearchValues renders q as the query string of the search endpoint. A zero
// limit means DefaultSearchLimit and an empty order means descending.
func SearchValues(q f.SearchQuery) url.Values {
	limit := q.Limit
	if limit <= 0 {
		limit = f.DefaultSearchLimit
	}
	order := q.Order
	if order == "" {
		order = f.OrderDescending
	}
	values := url.Values{}
	values.Set("q", q.Query)
	values.Set("limit", strconv.Itoa(limit))
	values.Set("offset", strconv.Itoa(q.Offset))
	values.Set("content", strconv.FormatBool(q.Content))
	values.Set("order", string(order))
	for _, filter := range q.Filters {
		values.Add("filters", filter)
	}
	return values
}

func (c *JournalClient) Search(ctx context.Context, creds f.Credentials, journalID uuid.UUID, query f.SearchQuery, opts ...f.CallOptions) (*f.SearchResults, error) {
	var results f.SearchResults
	err := c.spire.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   journalPath(journalID, "search"),
		Creds:  &creds,
		Query:  SearchValues(query),
		Result: &results,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &results, nil
}

// CheckJournalPublic reports whether the journal can be read without credentials.
func (c *JournalClient) CheckJournalPublic(ctx context.Context, journalID uuid.UUID, opts ...f.CallOptions) (bool, error) {
	var public bool
	err := c.spire.Do(ctx, Call{
		Method: f.MethodGet,
		Path:   "public/check",
		Query:  url.Values{"journal_id": {journalID.String()}},
		Result: &public,
	}, opts...)
	if err != nil {
		return false, err
	}
	return public, nil
}
