package main

import (
	"fmt"
	"os"

	"github.com/Adhavansuren/EPiC-Grasshopper/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(new(cli.App)).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
