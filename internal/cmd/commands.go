package cmd

import (
	"github.com/mitchellh/cli"

	"github.com/soffa-projects/bugout-go/internal/cmd/base"
	"github.com/soffa-projects/bugout-go/internal/cmd/commands/devserver"
	"github.com/soffa-projects/bugout-go/internal/cmd/commands/jobs"
	"github.com/soffa-projects/bugout-go/internal/cmd/commands/methods"
	"github.com/soffa-projects/bugout-go/internal/cmd/commands/ping"
)

func commands(ui cli.Ui) map[string]cli.CommandFactory {
	b := base.NewCommand(ui)

	return map[string]cli.CommandFactory{
		"devserver": func() (cli.Command, error) {
			return &devserver.Command{Command: b}, nil
		},
		"jobs": func() (cli.Command, error) {
			return &jobs.Command{Command: b}, nil
		},
		"jobs complete": func() (cli.Command, error) {
			return &jobs.MarkCommand{Command: b}, nil
		},
		"jobs create": func() (cli.Command, error) {
			return &jobs.CreateCommand{Command: b}, nil
		},
		"jobs cursor": func() (cli.Command, error) {
			return &jobs.CursorCommand{Command: b}, nil
		},
		"jobs fail": func() (cli.Command, error) {
			return &jobs.MarkCommand{Command: b, Failure: true}, nil
		},
		"jobs list": func() (cli.Command, error) {
			return &jobs.ListCommand{Command: b}, nil
		},
		"jobs work": func() (cli.Command, error) {
			return &jobs.WorkCommand{Command: b}, nil
		},
		"methods": func() (cli.Command, error) {
			return &methods.Command{Command: b}, nil
		},
		"ping": func() (cli.Command, error) {
			return &ping.Command{Command: b}, nil
		},
	}
}
