package mcp

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"actions-insight/src/provider"
)

const (
	defaultPerPage = 30
	maxPerPage     = 100
)

// args reads typed values out of a tool call's argument object.
type args map[string]any

func (a args) requireString(key string) (string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return s, nil
}

func (a args) requireInt(key string) (int64, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s is required", key)
	}
	return toInt(key, v)
}

func (a args) optionalInt(key string, def int64) (int64, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return def, nil
	}
	return toInt(key, v)
}

func toInt(key string, v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("%s is out of range", key)
		}
		return int64(n), nil
	case json.Number, int, int32, int64:
		i, err := cast.ToInt64E(n)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%s must be a number", key)
}

// requireID accepts a workflow file name or a numeric workflow ID.
func (a args) requireID(key string) (string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%s is required", key)
	}
	switch v.(type) {
	case string, float64, json.Number, int, int64:
	default:
		return "", fmt.Errorf("%s must be a string or a number", key)
	}
	s, err := cast.ToStringE(v)
	if err != nil || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s must not be empty", key)
	}
	return s, nil
}

func (a args) optionalEnum(key string, allowed []string) (string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok || !slices.Contains(allowed, s) {
		return "", fmt.Errorf("%s must be one of %s", key, strings.Join(allowed, ", "))
	}
	return s, nil
}

// runRef reads the owner, repo and run_id shared by the run tools.
func (a args) runRef() (provider.RunRef, error) {
	owner, err := a.requireString("owner")
	if err != nil {
		return provider.RunRef{}, err
	}
	repo, err := a.requireString("repo")
	if err != nil {
		return provider.RunRef{}, err
	}
	runID, err := a.requireInt("run_id")
	if err != nil {
		return provider.RunRef{}, err
	}
	if runID < 1 {
		return provider.RunRef{}, fmt.Errorf("run_id must be a positive integer")
	}
	return provider.RunRef{Owner: owner, Repo: repo, RunID: runID}, nil
}

// runFilter reads the optional filters of get_workflow_runs.
func (a args) runFilter() (provider.RunFilter, error) {
	status, err := a.optionalEnum("status", statusValues())
	if err != nil {
		return provider.RunFilter{}, err
	}
	conclusion, err := a.optionalEnum("conclusion", conclusionValues())
	if err != nil {
		return provider.RunFilter{}, err
	}
	perPage, err := a.optionalInt("per_page", defaultPerPage)
	if err != nil {
		return provider.RunFilter{}, err
	}
	if perPage < 1 || perPage > maxPerPage {
		return provider.RunFilter{}, fmt.Errorf("per_page must be between 1 and %d", maxPerPage)
	}

	return provider.RunFilter{
		Status:     provider.Status(status),
		Conclusion: provider.Conclusion(conclusion),
		PerPage:    int(perPage),
	}, nil
}

func statusValues() []string {
	out := make([]string, len(provider.Statuses))
	for i, s := range provider.Statuses {
		out[i] = string(s)
	}
	return out
}

func conclusionValues() []string {
	out := make([]string, len(provider.Conclusions))
	for i, c := range provider.Conclusions {
		out[i] = string(c)
	}
	return out
}
