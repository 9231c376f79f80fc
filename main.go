package main

import (
	"os"

	"loan-eligibility/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
