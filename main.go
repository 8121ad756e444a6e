// main is the entry point for the vaxseries CLI.
package main

import (
	"github.com/ClemoAcevedo/vaxseries/cmd"
	"github.com/ClemoAcevedo/vaxseries/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
