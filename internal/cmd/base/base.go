// Package base holds what every bugout subcommand shares: the UI, the flag set
// wrapper and the client flags (settings file, token, auth type).
package base

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/soffa-projects/bugout-go"
	"github.com/soffa-projects/bugout-go/config"
	f "github.com/soffa-projects/bugout-go/core"
	"github.com/soffa-projects/bugout-go/h"
	"github.com/soffa-projects/bugout-go/log"
)

const EnvAccessToken = "BUGOUT_ACCESS_TOKEN"

type Command struct {
	UI cli.Ui
}

func NewCommand(ui cli.Ui) *Command {
	return &Command{UI: ui}
}

// Output prints v as indented JSON.
func (c *Command) Output(v any) int {
	out, err := h.ToPrettyJson(v)
	if err != nil {
		c.UI.Error(fmt.Sprintf("could not render output: %v", err))
		return 1
	}
	c.UI.Output(out)
	return 0
}

func (c *Command) Fail(format string, args ...any) int {
	c.UI.Error(fmt.Sprintf(format, args...))
	return 1
}

type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps fs. Parse errors are returned instead of exiting so that
// commands report them through the UI.
func NewFlagSet(fs *flag.FlagSet) *FlagSet {
	fs.Init(fs.Name(), flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	return &FlagSet{fs}
}

// Help renders the flag defaults, ready to append to a command help text.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&buf, "\n  -%s", fl.Name)
		if fl.DefValue != "" {
			fmt.Fprintf(&buf, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&buf, "\n      %s\n", fl.Usage)
	})
	if buf.Len() == 0 {
		return ""
	}
	return "\n\nOptions:\n" + buf.String()
}

// ClientFlags are the flags of commands talking to Bugout.
type ClientFlags struct {
	ConfigPath string
	Token      string
	AuthType   string
}

func (cf *ClientFlags) Register(fs *FlagSet) {
	fs.StringVar(&cf.ConfigPath, "config", "", "Path to a TOML settings file overlaying the BUGOUT_* environment")
	fs.StringVar(&cf.Token, "token", "", "[BUGOUT_ACCESS_TOKEN] Bugout access token")
	fs.StringVar(&cf.AuthType, "auth-type", string(f.AuthBearer), "Authorization scheme, Bearer or Web3")
}

// Client loads settings, applies their log level and builds a client.
func (cf *ClientFlags) Client() (*bugout.Client, error) {
	settings, err := config.LoadFile(cf.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := log.SetLevel(settings.LogLevel); err != nil {
		return nil, err
	}
	return bugout.New(settings)
}

// Credentials falls back to BUGOUT_ACCESS_TOKEN when -token is not given.
func (cf *ClientFlags) Credentials() (f.Credentials, error) {
	token := strings.TrimSpace(cf.Token)
	if token == "" {
		token = strings.TrimSpace(os.Getenv(EnvAccessToken))
	}
	if token == "" {
		return f.Credentials{}, fmt.Errorf("access token is required (-token or %s)", EnvAccessToken)
	}
	authType, err := f.ParseAuthType(cf.AuthType)
	if err != nil {
		return f.Credentials{}, err
	}
	return f.Credentials{Token: token, Type: authType}, nil
}
