// Package core has core logic for archive analysis, ranking, timelines and summaries.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/folioscope/folio/core/algo"
	"github.com/folioscope/folio/core/collab"
	"github.com/folioscope/folio/core/match"
	"github.com/folioscope/folio/core/skills"
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/internal/outwriter"
	"github.com/folioscope/folio/internal/prefs"
	"github.com/folioscope/folio/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// errNoStore is returned when a command runs before the snapshot store is opened.
var errNoStore = errors.New("snapshot store is not initialized")

var ow = outwriter.NewOutWriter()

func latestSnapshots(mgr contract.StoreManager) ([]schema.SnapshotRecord, error) {
	store, err := snapshotStore(mgr)
	if err != nil {
		return nil, err
	}
	records, err := store.FetchLatestAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}
	return records, nil
}

func snapshotStore(mgr contract.StoreManager) (contract.SnapshotStore, error) {
	if mgr == nil {
		return nil, errNoStore
	}
	store := mgr.GetSnapshotStore()
	if store == nil {
		return nil, errNoStore
	}
	return store, nil
}

// NewAnalyzerFromConfig wires an analyzer to the configured preference file and store.
func NewAnalyzerFromConfig(cfg *contract.Config, store contract.SnapshotStore) *Analyzer {
	fileStore := prefs.NewFileStore(cfg.PrefsPath)
	return NewAnalyzer(store, fileStore, fileStore, AnalyzerOptions{
		Collab: collab.Options{
			Weights:     cfg.CollabWeights,
			IncludeBots: cfg.IncludeBots,
			MainUser:    cfg.MainUser,
		},
		MinConfidence: cfg.MinConfidence,
	})
}

// RankOptionsFromConfig maps the ranking section of the config onto engine options.
func RankOptionsFromConfig(cfg *contract.Config) algo.RankOptions {
	return algo.RankOptions{
		Weights:             cfg.RankingWeights,
		ContributionFloor:   cfg.ContributionFloor,
		RecencyHalfLifeDays: cfg.RecencyHalfLifeDays,
		User:                cfg.User,
		Now:                 cfg.AsOf,
	}
}

// GetAnalysisResults analyzes cfg.ArchivePath, writes its artifacts and stores the snapshot.
// A storage failure still returns the document together with the error.
func GetAnalysisResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.SummaryDocument, time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	start := time.Now()
	store, err := snapshotStore(mgr)
	if err != nil {
		return nil, 0, err
	}
	analyzer := NewAnalyzerFromConfig(cfg, store)
	doc, err := analyzer.AnalyzeFile(cfg.ArchivePath, AnalysisRequest{
		ProjectID:      cfg.ProjectID,
		Mode:           cfg.AnalysisMode,
		MetadataOutput: cfg.MetadataOutput,
		SummaryOutput:  cfg.SummaryOutput,
	})
	return doc, time.Since(start), err
}

// GetRankingResults ranks the latest snapshot of every project and applies cfg.Limit.
func GetRankingResults(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.ProjectRanking, time.Duration, error) {
	start := time.Now()
	records, err := latestSnapshots(mgr)
	if err != nil {
		return nil, 0, err
	}
	rankings := algo.LimitRankings(algo.RankSnapshots(records, RankOptionsFromConfig(cfg)), cfg.Limit)
	return rankings, time.Since(start), nil
}

// GetSummaryResults describes the top cfg.Limit ranked projects with evidence.
func GetSummaryResults(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.ProjectSummary, error) {
	records, err := latestSnapshots(mgr)
	if err != nil {
		return nil, err
	}
	return BuildProjectSummaries(records, RankOptionsFromConfig(cfg), cfg.Limit), nil
}

// GetSkillResults returns the skill report of cfg.ProjectID, or of the most recently analyzed project.
func GetSkillResults(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.SkillReport, error) {
	store, err := snapshotStore(mgr)
	if err != nil {
		return schema.SkillReport{}, err
	}
	rec, err := LatestRecord(store, cfg.ProjectID)
	if err != nil {
		return schema.SkillReport{}, err
	}
	if rec == nil {
		return schema.SkillReport{}, noSnapshotError(cfg.ProjectID)
	}
	return BuildSkillReport(*rec, cfg.TopN), nil
}

// GetProjectTimelineResults returns the cross-project timeline.
func GetProjectTimelineResults(_ context.Context, _ *contract.Config, mgr contract.StoreManager) ([]schema.ProjectTimelineRow, error) {
	records, err := latestSnapshots(mgr)
	if err != nil {
		return nil, err
	}
	return BuildProjectTimeline(records), nil
}

// GetSkillTimelineResults returns the cross-project skill timeline.
func GetSkillTimelineResults(_ context.Context, _ *contract.Config, mgr contract.StoreManager) ([]schema.SkillTimelineRow, error) {
	records, err := latestSnapshots(mgr)
	if err != nil {
		return nil, err
	}
	return BuildSkillTimelineRows(records), nil
}

// GetMatchResults compares a job posting with the latest snapshot of
// cfg.ProjectID, or of the most recently analyzed project.
func GetMatchResults(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.JobMatch, error) {
	store, err := snapshotStore(mgr)
	if err != nil {
		return schema.JobMatch{}, err
	}
	text, err := jobText(cfg)
	if err != nil {
		return schema.JobMatch{}, err
	}
	rec, err := LatestRecord(store, cfg.ProjectID)
	if err != nil {
		return schema.JobMatch{}, err
	}
	if rec == nil {
		return schema.JobMatch{}, noSnapshotError(cfg.ProjectID)
	}
	return match.MatchJob(text, cfg.CompanyName, *rec, cfg.MinConfidence), nil
}

// jobText returns the inline posting, or the contents of cfg.JobFile.
func jobText(cfg *contract.Config) (string, error) {
	if strings.TrimSpace(cfg.JobText) != "" {
		return cfg.JobText, nil
	}
	if cfg.JobFile == "" {
		return "", errors.New("job description is required; pass --job-file")
	}
	data, err := os.ReadFile(cfg.JobFile)
	if err != nil {
		return "", fmt.Errorf("failed to read job description: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("job description %s is empty", cfg.JobFile)
	}
	return string(data), nil
}

// ExecuteAnalyze analyzes one archive and prints the outcome.
// It serves as the main entry point for 'folio analyze'.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	doc, duration, err := GetAnalysisResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return ow.WriteAnalysis(doc, cfg, duration)
}

// ExecuteRank ranks the latest snapshot of every project and prints the results.
func ExecuteRank(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	rankings, duration, err := GetRankingResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return ow.WriteRankings(rankings, cfg, duration)
}

// ExecuteSummaries prints evidence-backed summaries of the top ranked projects.
func ExecuteSummaries(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	summaries, err := GetSummaryResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return ow.WriteSummaries(summaries, cfg)
}

// ExecuteSkills prints the skill report of one project.
func ExecuteSkills(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	report, err := GetSkillResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return ow.WriteSkills(report, cfg)
}

// ExecuteProjectTimeline prints the cross-project timeline.
func ExecuteProjectTimeline(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	rows, err := GetProjectTimelineResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return ow.WriteProjectTimeline(rows, cfg)
}

// ExecuteSkillTimeline prints the cross-project skill timeline.
func ExecuteSkillTimeline(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	rows, err := GetSkillTimelineResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return ow.WriteSkillTimeline(rows, cfg)
}

// ExecuteMatch prints how well one project covers a job posting.
func ExecuteMatch(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	m, err := GetMatchResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return ow.WriteMatch(m, cfg)
}

// ExecuteSnapshotLatest prints the latest snapshot of cfg.ProjectID.
func ExecuteSnapshotLatest(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := snapshotStore(mgr)
	if err != nil {
		return err
	}
	if cfg.ProjectID == "" {
		return errors.New("project id is required")
	}
	rec, err := store.FetchLatest(cfg.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	return ow.WriteSnapshot(rec, cfg)
}

// ExecuteSnapshotHistory prints the newest snapshots of cfg.ProjectID.
func ExecuteSnapshotHistory(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := snapshotStore(mgr)
	if err != nil {
		return err
	}
	if cfg.ProjectID == "" {
		return errors.New("project id is required")
	}
	records, err := store.History(cfg.ProjectID, cfg.Limit, 0)
	if err != nil {
		return fmt.Errorf("failed to load snapshot history: %w", err)
	}
	return ow.WriteHistory(records, cfg)
}

// ExecuteSnapshotStatus prints store status.
func ExecuteSnapshotStatus(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store, err := snapshotStore(mgr)
	if err != nil {
		return err
	}
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	return ow.WriteStoreStatus(status, cfg)
}

// ExecuteWeights prints the active ranking weights.
func ExecuteWeights(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return ow.WriteWeights(cfg)
}

// LatestRecord returns the latest snapshot of projectID, or the most recently
// created snapshot across projects when projectID is empty. It returns nil when none exist.
func LatestRecord(store contract.SnapshotStore, projectID string) (*schema.SnapshotRecord, error) {
	if projectID != "" {
		rec, err := store.FetchLatest(projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		return rec, nil
	}
	records, err := store.FetchLatestAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}
	var latest *schema.SnapshotRecord
	for i := range records {
		rec := &records[i]
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) ||
			(rec.CreatedAt.Equal(latest.CreatedAt) && rec.ID > latest.ID) {
			latest = rec
		}
	}
	return latest, nil
}

// BuildSkillReport assembles the skill view of one stored snapshot.
func BuildSkillReport(rec schema.SnapshotRecord, topN int) schema.SkillReport {
	if topN <= 0 {
		topN = skills.DefaultTopN
	}
	timeline := rec.Snapshot.SkillTimeline
	return schema.SkillReport{
		ProjectID: rec.ProjectID,
		CreatedAt: rec.CreatedAt,
		Scores:    rec.Snapshot.Skills,
		Timeline:  timeline,
		TopByYear: skills.TopSkillsByYear(timeline, topN),
	}
}

func noSnapshotError(projectID string) error {
	if projectID == "" {
		return errors.New("no snapshots stored yet; run 'folio analyze' first")
	}
	return fmt.Errorf("no snapshot found for project %q", projectID)
}
