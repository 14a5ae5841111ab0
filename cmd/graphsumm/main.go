package main

import (
	"github.com/projectdiscovery/gologger"

	"github.com/andrefs/graphsumm/internal/orchestrator"
	"github.com/andrefs/graphsumm/internal/runner"
)

func main() {
	opts := runner.ParseFlags()

	err := orchestrator.Run(orchestrator.Options{
		Inputs:        opts.Inputs,
		Output:        opts.Output,
		InferNS:       opts.InferNS,
		IgnoreUnknown: opts.IgnoreUnknown,
		MinOccurs:     opts.MinOccurs,
	})
	if err != nil {
		gologger.Fatal().Msgf("graphsumm: %v", err)
	}
}
