// main is the entry point for the satscout CLI.
package main

import (
	"github.com/huangsam/satscout/cmd"
	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/internal/history"
)

func main() {
	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	history.CloseHistory()
	cmd.SyncLogger()

	if err != nil {
		contract.LogFatal("satscout failed", err)
	}
}
