package h

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

type Url struct {
	Scheme string
	Path   string
	Url    string
	Host   string
	query  map[string]any
}

func ParseUrl(input string) (Url, error) {
	queryParams := make(map[string]any)
	u, err := url.Parse(input)
	if err != nil {
		return Url{}, err
	}
	for key, values := range u.Query() {
		if len(values) > 0 {
			queryParams[key] = values[0]
		}
	}
	return Url{
		Scheme: u.Scheme,
		Path:   u.Path,
		Url:    input,
		Host:   u.Host,
		query:  queryParams,
	}, nil
}

func (u Url) HasQueryParam(key string) bool {
	_, ok := u.query[key]
	return ok
}

func (u Url) Query(key string) any {
	return u.query[key]
}

// IsHttpUrl reports whether input is an absolute http(s) url with a host.
func IsHttpUrl(input string) bool {
	u, err := ParseUrl(input)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// JoinUrl appends p to base with exactly one slash between them.
// A trailing slash on p is preserved, some endpoints depend on it.
func JoinUrl(base string, p string) string {
	base = strings.TrimRight(base, "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return base
	}
	return fmt.Sprintf("%s/%s", base, p)
}

// LastPathSegment returns the final non-empty segment of a url path,
// e.g. the entry id of ".../journals/{journal_id}/entries/{entry_id}".
func LastPathSegment(input string) (string, error) {
	u, err := url.Parse(input)
	if err != nil {
		return "", err
	}
	trimmed := strings.TrimRight(u.Path, "/")
	if trimmed == "" {
		return "", fmt.Errorf("url has no path: %s", input)
	}
	return path.Base(trimmed), nil
}
