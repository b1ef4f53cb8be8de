// Package main is the entrypoint for the folio CLI.
package main

import (
	"github.com/folioscope/folio/cmd"
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/internal/iocache"
)

func main() {
	cmd.SetStoreManager(iocache.Manager)
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("Error running folio", err)
	}
}
