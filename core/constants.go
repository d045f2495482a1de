package f

type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

type TokenType string

const (
	TokenTypeBugout TokenType = "bugout"
	TokenTypeSlack  TokenType = "slack"
	TokenTypeGithub TokenType = "github"
)

type HolderType string

const (
	HolderUser  HolderType = "user"
	HolderGroup HolderType = "group"
)

type JournalType string

const (
	JournalTypeDefault JournalType = "default"
	JournalTypeHumbug  JournalType = "humbug"
)

type SearchOrder string

const (
	OrderAscending  SearchOrder = "asc"
	OrderDescending SearchOrder = "desc"
)

// TagsAction controls how tags sent along an entry content update are applied.
type TagsAction string

const (
	TagsMerge   TagsAction = "merge"
	TagsReplace TagsAction = "replace"
)

const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

const (
	DefaultSearchLimit = 10
	// DefaultTimeoutSeconds mirrors config.DefaultTimeoutSeconds for callers building clients by hand.
	DefaultTimeoutSeconds = 5
)
