package cmd

import (
	"bufio"
	"os"

	"github.com/mitchellh/cli"
)

const Version = "0.2.4"

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}
	return Run(args, ui)
}

// Run is Main with the UI supplied by the caller.
func Run(args []string, ui cli.Ui) int {
	c := &cli.CLI{
		Name:       args[0],
		Args:       args[1:],
		Version:    Version,
		Commands:   commands(ui),
		HelpWriter: uiWriter{ui},
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return exitCode
}

// uiWriter sends the top level help and version through the UI error stream.
type uiWriter struct {
	ui cli.Ui
}

func (w uiWriter) Write(p []byte) (int, error) {
	w.ui.Error(string(p))
	return len(p), nil
}
