// main is the entry point for the sweepfit CLI.
package main

import (
	"github.com/sweeplab/sweepfit/cmd"
	"github.com/sweeplab/sweepfit/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Could not stop profiling cleanly", err)
	}
}
