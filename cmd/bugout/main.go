package main

import (
	"os"

	"github.com/soffa-projects/bugout-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
