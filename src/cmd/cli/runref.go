package main

import (
	"errors"
	"fmt"
	"strconv"

	"actions-insight/src/provider"
)

var errRunArgs = errors.New("expected a run URL or <owner> <repo> <run-id>")

// parseRunArgs accepts either a workflow run URL or owner, repo and run ID.
func parseRunArgs(args []string) (provider.RunRef, error) {
	switch len(args) {
	case 1:
		ref, err := provider.ParseRunURL(args[0])
		if err != nil {
			return provider.RunRef{}, err
		}
		return *ref, nil
	case 3:
		runID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil || runID <= 0 {
			return provider.RunRef{}, fmt.Errorf("invalid run ID %q", args[2])
		}
		if args[0] == "" || args[1] == "" {
			return provider.RunRef{}, errRunArgs
		}
		return provider.RunRef{Owner: args[0], Repo: args[1], RunID: runID}, nil
	}
	return provider.RunRef{}, errRunArgs
}
