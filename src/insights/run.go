package insights

import (
	"context"

	"golang.org/x/sync/errgroup"

	"actions-insight/src/analysis"
	"actions-insight/src/contracts"
	"actions-insight/src/provider"
)

// AnalyzeRun fetches run metadata and the job list concurrently and
// analyzes them. Either fetch failing fails the whole call with that error.
func (s *Service) AnalyzeRun(ctx context.Context, ref provider.RunRef) (*analysis.AnalysisReport, error) {
	var (
		run  *provider.Run
		jobs []provider.Job
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.provider.GetWorkflowRun(gctx, ref.Owner, ref.Repo, ref.RunID)
		if err != nil {
			return err
		}
		run = r
		return nil
	})
	g.Go(func() error {
		j, err := s.provider.ListJobs(gctx, ref.Owner, ref.Repo, ref.RunID)
		if err != nil {
			return err
		}
		jobs = j
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Debug("analyze %s/%s run %d: %v", ref.Owner, ref.Repo, ref.RunID, err)
		return nil, err
	}

	report := analysis.Analyze(*run, jobs)
	s.log.Info("analyzed %s/%s run %d: %d jobs, %d failed",
		ref.Owner, ref.Repo, ref.RunID, report.PerformanceInsights.TotalJobs, report.PerformanceInsights.FailedJobs)

	event := contracts.AnalysisEvent{
		Kind:       contracts.KindRunAnalyzed,
		Owner:      ref.Owner,
		Repo:       ref.Repo,
		RunID:      ref.RunID,
		TotalJobs:  report.PerformanceInsights.TotalJobs,
		FailedJobs: report.PerformanceInsights.FailedJobs,
	}
	if longest := report.PerformanceInsights.LongestJob; longest != nil {
		event.SlowestJob = *longest
	}
	s.publish(ctx, event, report)

	return &report, nil
}

// JobTimings lists the jobs of a run, then fetches each job's steps
// concurrently. A failed job fetch becomes an error entry for that job
// only; a failed job listing fails the call.
func (s *Service) JobTimings(ctx context.Context, ref provider.RunRef) (*analysis.TimingReport, error) {
	jobs, err := s.provider.ListJobs(ctx, ref.Owner, ref.Repo, ref.RunID)
	if err != nil {
		s.log.Debug("list jobs %s/%s run %d: %v", ref.Owner, ref.Repo, ref.RunID, err)
		return nil, err
	}

	results := make([]analysis.JobTimingResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(maxJobFetches)
	for i, job := range jobs {
		g.Go(func() error {
			detail, err := s.provider.GetJob(ctx, ref.Owner, ref.Repo, job.ID)
			if err != nil {
				s.log.Error("fetch job %d (%s) of run %d: %v", job.ID, job.Name, ref.RunID, err)
				results[i] = analysis.FailedResult(job, err)
				return nil
			}
			results[i] = analysis.TimingResult(analysis.BuildJobTiming(job, *detail))
			return nil
		})
	}
	g.Wait()

	report := analysis.SummarizeTimings(ref.RunID, results)

	failed := 0
	for _, r := range results {
		if r.Failure != nil {
			failed++
		}
	}
	s.log.Info("timed %s/%s run %d: %d jobs, %d steps, %d job fetches failed",
		ref.Owner, ref.Repo, ref.RunID, report.Summary.TotalJobs, report.Summary.TotalSteps, failed)

	event := contracts.AnalysisEvent{
		Kind:       contracts.KindTimingsFetched,
		Owner:      ref.Owner,
		Repo:       ref.Repo,
		RunID:      ref.RunID,
		TotalJobs:  report.Summary.TotalJobs,
		FailedJobs: failed,
	}
	if slowest := report.Summary.SlowestJob; slowest != nil {
		event.SlowestJob = *slowest
	}
	s.publish(ctx, event, report)

	return &report, nil
}
