// Package devserver is an in-memory stand-in for the Spire journal API. It
// serves the subset of endpoints the journal client and the job queue use,
// enough to run them end to end in tests or locally (bugout devserver).
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	prettylogger "github.com/rdbell/echo-pretty-logger"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/h"
	"github.com/soffa-projects/bugout-go/log"
)

type Options struct {
	// Tokens accepted in the Authorization header. Empty accepts any token.
	Tokens []string
	// Now is the server clock, h.Now when nil.
	Now     func() time.Time
	Verbose bool
}

type Server struct {
	e        *echo.Echo
	store    *store
	tokens   map[string]uuid.UUID
	validate *validator.Validate
}

const _userKey = "user"

func New(opts Options) *Server {
	now := opts.Now
	if now == nil {
		now = h.Now
	}
	s := &Server{
		e:        echo.New(),
		store:    newStore(now),
		tokens:   map[string]uuid.UUID{},
		validate: validator.New(),
	}
	for _, token := range opts.Tokens {
		s.tokens[token] = uuid.NewSHA1(uuid.NameSpaceOID, []byte(token))
	}

	e := s.e
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Pre(middleware.RemoveTrailingSlash())
	if opts.Verbose {
		e.Use(prettylogger.Logger)
	}
	e.Use(middleware.Recover())

	e.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/public/check", s.checkPublic)

	g := e.Group("/journals", s.authenticate)
	g.POST("", s.createJournal)
	g.GET("", s.listJournals)
	g.GET("/:journal", s.getJournal)
	g.PUT("/:journal", s.updateJournal)
	g.DELETE("/:journal", s.deleteJournal)
	g.POST("/:journal/entries", s.createEntry)
	g.GET("/:journal/entries", s.listEntries)
	g.POST("/:journal/bulk", s.createEntries)
	g.GET("/:journal/entries/:entry", s.getEntry)
	g.DELETE("/:journal/entries/:entry", s.deleteEntry)
	g.GET("/:journal/entries/:entry/content", s.getContent)
	g.PUT("/:journal/entries/:entry/content", s.updateContent)
	g.GET("/:journal/entries/:entry/tags", s.getTags)
	g.POST("/:journal/entries/:entry/tags", s.addTags)
	g.PUT("/:journal/entries/:entry/tags", s.replaceTags)
	g.DELETE("/:journal/entries/:entry/tags", s.deleteTag)
	g.GET("/:journal/tags", s.mostUsedTags)
	g.GET("/:journal/search", s.search)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Start(addr string) error {
	log.Info("[devserver] listening on %s", addr)
	err := s.e.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// errorHandler renders errors the way Spire does, {"detail": "..."}.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	detail := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		detail = fmt.Sprintf("%v", he.Message)
	}
	if code >= http.StatusInternalServerError {
		log.Error("[devserver] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	if err := c.JSON(code, map[string]string{"detail": detail}); err != nil {
		log.Error("[devserver] could not write error response: %v", err)
	}
}

func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		scheme, token, _ := strings.Cut(c.Request().Header.Get("Authorization"), " ")
		token = strings.TrimSpace(token)
		if _, err := f.ParseAuthType(scheme); err != nil || scheme == "" || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
		}
		user := uuid.NewSHA1(uuid.NameSpaceOID, []byte(token))
		if len(s.tokens) > 0 {
			known, ok := s.tokens[token]
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
			user = known
		}
		c.Set(_userKey, user)
		return next(c)
	}
}

func (s *Server) bind(c echo.Context, input any) error {
	if err := c.Bind(input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := s.validate.Struct(input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s id: %q", name, c.Param(name)))
	}
	return id, nil
}

func journalAndEntry(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	journalID, err := uuidParam(c, "journal")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	entryID, err := uuidParam(c, "entry")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return journalID, entryID, nil
}

func baseURL(c echo.Context) string {
	return fmt.Sprintf("%s://%s", c.Scheme(), c.Request().Host)
}
