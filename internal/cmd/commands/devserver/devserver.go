package devserver

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/soffa-projects/bugout-go/devserver"
	"github.com/soffa-projects/bugout-go/h"
	"github.com/soffa-projects/bugout-go/internal/cmd/base"
	"github.com/soffa-projects/bugout-go/log"
)

type Command struct {
	*base.Command

	flagAddr    string
	flagTokens  string
	flagVerbose bool
}

func (c *Command) Synopsis() string {
	return "Run an in-memory Spire journal API"
}

func (c *Command) Help() string {
	return `Usage: bugout devserver [options]

  Serves the journal endpoints used by the job queue from memory. Point
  BUGOUT_SPIRE_URL at it to try the jobs commands locally. Data is lost on exit.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("devserver", flag.ContinueOnError))
	f.StringVar(&c.flagAddr, "addr", "127.0.0.1:7476", "Listen address")
	f.StringVar(&c.flagTokens, "tokens", "", "Comma separated access tokens to accept, any token when empty")
	f.BoolVar(&c.flagVerbose, "verbose", false, "Log every request")
	return f
}

func (c *Command) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		return c.Fail("error parsing flags: %v", err)
	}
	server := devserver.New(devserver.Options{
		Tokens:  h.SplitCsv(c.flagTokens),
		Verbose: c.flagVerbose,
	})

	errs := make(chan error, 1)
	go func() {
		errs <- server.Start(c.flagAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errs:
		if err != nil {
			return c.Fail("devserver stopped: %v", err)
		}
		return 0
	case sig := <-quit:
		log.Info("[devserver] received %s, shutting down", strings.ToLower(sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return c.Fail("could not shut down devserver: %v", err)
	}
	return 0
}
