package main

import (
	"fmt"
	"os"

	"github.com/c-a-ray/txtread/internal/cli"
	"github.com/c-a-ray/txtread/internal/core"
)

func main() {
	cfg := core.NewConfig()
	root := cli.NewRootCmd(cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
