package f

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/soffa-projects/bugout-go/h"
)

type Scope struct {
	API         string `json:"api"`
	Scope       string `json:"scope"`
	Description string `json:"description"`
}

type Scopes struct {
	Scopes []Scope `json:"scopes"`
}

type JournalScopeSpec struct {
	JournalID  uuid.UUID  `json:"journal_id"`
	HolderType HolderType `json:"holder_type"`
	HolderID   string     `json:"holder_id"`
	Permission string     `json:"permission"`
}

type JournalScopeSpecs struct {
	Scopes []JournalScopeSpec `json:"scopes"`
}

type JournalPermission struct {
	HolderType  HolderType `json:"holder_type"`
	HolderID    string     `json:"holder_id"`
	Permissions []string   `json:"permissions"`
}

type JournalPermissions struct {
	JournalID   uuid.UUID           `json:"journal_id"`
	Permissions []JournalPermission `json:"permissions"`
}

type Journal struct {
	ID           uuid.UUID   `json:"id"`
	BugoutUserID uuid.UUID   `json:"bugout_user_id"`
	HolderIDs    []uuid.UUID `json:"holder_ids"`
	Name         string      `json:"name"`
	JournalType  JournalType `json:"journal_type,omitempty"`
	CreatedAt    Timestamp   `json:"created_at"`
	UpdatedAt    Timestamp   `json:"updated_at"`
}

type Journals struct {
	Journals []Journal `json:"journals"`
}

type JournalEntry struct {
	ID          uuid.UUID `json:"id"`
	JournalURL  string    `json:"journal_url"`
	ContentURL  *string   `json:"content_url"`
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Tags        []string  `json:"tags"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
	ContextURL  *string   `json:"context_url"`
	ContextType *string   `json:"context_type"`
	ContextID   *string   `json:"context_id"`
}

type JournalEntries struct {
	Entries []JournalEntry `json:"entries"`
}

type JournalEntryContent struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

type JournalEntryTags struct {
	JournalID uuid.UUID `json:"journal_id"`
	EntryID   uuid.UUID `json:"entry_id"`
	Tags      []string  `json:"tags"`
}

// EntryRequest is the body of an entry creation. CreatedAt is optional and lets
// callers (the job queue cursor, bulk imports) backdate an entry.
type EntryRequest struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags"`
	ContextURL  *string    `json:"context_url,omitempty"`
	ContextID   *string    `json:"context_id,omitempty"`
	ContextType *string    `json:"context_type,omitempty"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
}

type EntriesRequest struct {
	Entries []EntryRequest `json:"entries"`
}

// SearchQuery carries the parameters of the journal search endpoint.
type SearchQuery struct {
	Query   string
	Filters []string
	Limit   int
	Offset  int
	Content bool
	Order   SearchOrder
}

// SearchResult is one search hit. Timestamps are kept as the server renders them.
type SearchResult struct {
	EntryURL   string   `json:"entry_url"`
	ContentURL string   `json:"content_url"`
	Title      string   `json:"title"`
	Content    *string  `json:"content"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	Score      float64  `json:"score"`
}

func (r SearchResult) CreatedTime() (time.Time, error) {
	return h.ParseTimestamp(r.CreatedAt)
}

func (r SearchResult) UpdatedTime() (time.Time, error) {
	return h.ParseTimestamp(r.UpdatedAt)
}

// EntryID extracts the entry id from the trailing segment of EntryURL.
func (r SearchResult) EntryID() (uuid.UUID, error) {
	segment, err := h.LastPathSegment(r.EntryURL)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(segment)
}

func (r SearchResult) HasTag(tag string) bool {
	return h.ContainsString(r.Tags, tag)
}

type SearchResults struct {
	TotalResults int            `json:"total_results"`
	Offset       int            `json:"offset"`
	NextOffset   *int           `json:"next_offset"`
	MaxScore     float64        `json:"max_score"`
	Results      []SearchResult `json:"results"`
}

type JournalProvider interface {
	ListScopes(ctx context.Context, creds Credentials, api string, opts ...CallOptions) (*Scopes, error)
	GetJournalPermissions(ctx context.Context, creds Credentials, journalID uuid.UUID, holderIDs []uuid.UUID, opts ...CallOptions) (*JournalPermissions, error)
	GetJournalScopes(ctx context.Context, creds Credentials, journalID uuid.UUID, opts ...CallOptions) (*JournalScopeSpecs, error)
	UpdateJournalScopes(ctx context.Context, creds Credentials, journalID uuid.UUID, holderType HolderType, holderID string, permissions []string, opts ...CallOptions) (*JournalScopeSpecs, error)
	DeleteJournalScopes(ctx context.Context, creds Credentials, journalID uuid.UUID, holderType HolderType, holderID string, permissions []string, opts ...CallOptions) (*JournalScopeSpecs, error)

	CreateJournal(ctx context.Context, creds Credentials, name string, journalType JournalType, opts ...CallOptions) (*Journal, error)
	ListJournals(ctx context.Context, creds Credentials, opts ...CallOptions) (*Journals, error)
	GetJournal(ctx context.Context, creds Credentials, journalID uuid.UUID, opts ...CallOptions) (*Journal, error)
	UpdateJournal(ctx context.Context, creds Credentials, journalID uuid.UUID, name string, opts ...CallOptions) (*Journal, error)
	DeleteJournal(ctx context.Context, creds Credentials, journalID uuid.UUID, opts ...CallOptions) (*Journal, error)

	CreateEntry(ctx context.Context, creds Credentials, journalID uuid.UUID, entry EntryRequest, opts ...CallOptions) (*JournalEntry, error)
	CreateEntriesPack(ctx context.Context, creds Credentials, journalID uuid.UUID, entries []EntryRequest, opts ...CallOptions) (*JournalEntries, error)
	GetEntry(ctx context.Context, creds Credentials, journalID uuid.UUID, entryID uuid.UUID, opts ...CallOptions) (*JournalEntry, error)
	GetEntries(ctx context.Context, creds Credentials, journalID uuid.UUID, opts ...CallOptions) (*JournalEntries, error)
	GetEntryContent(ctx context.Context, creds Credentials, journalID uuid.UUID, entryID uuid.UUID, opts ...CallOptions) (*JournalEntryContent, error)
	UpdateEntryContent(ctx context.Context, creds Credentials, journalID uuid.UUID, entryID uuid.UUID, content JournalEntryContent, action TagsAction, opts ...CallOptions) (*JournalEntryContent, error)
	DeleteEntry(ctx context.Context, creds Credentials, journalID uuid.UUID, entryID uuid.UUID, opts ...CallOptions) (*JournalEntry, error)

	GetMostUsedTags(ctx context.Context, creds Credentials, journalID uuid.UUID, opts ...CallOptions) ([]any, error)
	CreateTags(ctx context.Context, creds Credentials, journalID uuid.UUID, entryID uuid.UUID, tags []string, opts ...CallOptions) ([]string, error)
	GetTags(ctx context.Context, creds Credentials, journalID uuid.UUID, entryID uuid.UUID, opts ...CallOptions) (*JournalEntryTags, error)
	UpdateTags(ctx context.Context, creds Credentials, journalID uuid.UUID, entryID uuid.UUID, tags []string, opts ...CallOptions) ([]string, error)
	DeleteTag(ctx context.Context, creds Credentials, journalID uuid.UUID, entryID uuid.UUID, tag string, opts ...CallOptions) (*JournalEntryTags, error)

	Search(ctx context.Context, creds Credentials, journalID uuid.UUID, query SearchQuery, opts ...CallOptions) (*SearchResults, error)
	CheckJournalPublic(ctx context.Context, journalID uuid.UUID, opts ...CallOptions) (bool, error)
}
