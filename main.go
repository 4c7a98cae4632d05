// Package main is the entry point for the efixctl CLI.
package main

import "efixctl.dev/pkg/efixctl/cmd"

func main() {
	cmd.Execute()
}
