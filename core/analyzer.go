package core

import (
	"archive/zip"
	"encoding/hex"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/folioscope/folio/core/agg"
	"github.com/folioscope/folio/core/collab"
	"github.com/folioscope/folio/core/detect"
	"github.com/folioscope/folio/core/skills"
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/internal/outwriter"
	"github.com/folioscope/folio/schema"
)

// DefaultMinConfidence is the skill score cutoff used by the analyzer.
const DefaultMinConfidence = 0.05

// External permission requested before an external-mode run.
const (
	externalService = "archive-analysis"
	externalPurpose = "Analyze archive file metadata and commit logs"
)

var externalDataTypes = []string{"file-metadata", "commit-log"}

// recordIDLayout is the timestamp layout hashed into file record ids.
const recordIDLayout = "2006-01-02T15:04:05"

// AnalyzerOptions tunes an Analyzer.
type AnalyzerOptions struct {
	Collab        collab.Options
	MinConfidence float64          // <= 0 means DefaultMinConfidence
	Now           func() time.Time // nil means time.Now
}

// AnalysisRequest describes one analysis run.
type AnalysisRequest struct {
	ProjectID      string              // empty means the archive stem
	Mode           schema.AnalysisMode // requested mode, resolved against consent
	MetadataOutput string              // empty means <stem>.metadata.jsonl beside the archive
	SummaryOutput  string              // empty means <stem>.summary.json beside the archive
}

// Analyzer runs the archive pipeline: scan, aggregate, write artifacts, persist.
type Analyzer struct {
	store contract.SnapshotStore
	prefs contract.PreferenceStore
	gate  contract.ConsentGate
	opts  AnalyzerOptions
}

// NewAnalyzer builds an analyzer over explicit collaborators.
func NewAnalyzer(store contract.SnapshotStore, prefs contract.PreferenceStore, gate contract.ConsentGate, opts AnalyzerOptions) *Analyzer {
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = DefaultMinConfidence
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Collab.Weights == (contract.CollabWeights{}) {
		opts.Collab.Weights = collab.DefaultOptions().Weights
	}
	return &Analyzer{store: store, prefs: prefs, gate: gate, opts: opts}
}

// AnalyzeFile analyzes the zip archive at path.
func (a *Analyzer) AnalyzeFile(path string, req AnalysisRequest) (*schema.SummaryDocument, error) {
	start := time.Now()
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	mode, err := a.admit(abs, req)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	return a.run(f, info.Size(), abs, req, mode, start)
}

// Analyze analyzes an archive read from r. The name locates outputs and names the project.
func (a *Analyzer) Analyze(r io.ReaderAt, size int64, name string, req AnalysisRequest) (*schema.SummaryDocument, error) {
	start := time.Now()
	mode, err := a.admit(name, req)
	if err != nil {
		return nil, err
	}
	return a.run(r, size, name, req, mode, start)
}

// admit checks the archive name, consent and external permission before any read.
func (a *Analyzer) admit(name string, req AnalysisRequest) (schema.ModeResolution, error) {
	if !strings.EqualFold(filepath.Ext(name), ".zip") {
		return schema.ModeResolution{}, &contract.InvalidArchiveError{Path: name, Detail: "Expected a .zip archive"}
	}

	consent, err := a.gate.EnsureConsent()
	if err != nil {
		return schema.ModeResolution{}, err
	}

	mode := ResolveMode(req.Mode, consent)
	if mode.Resolved == schema.ExternalMode {
		if err := a.gate.EnsureExternalPermission(externalService, externalDataTypes, externalPurpose); err != nil {
			return schema.ModeResolution{}, err
		}
	}
	contract.Logger().Debug("analysis mode resolved",
		"requested", string(mode.Requested), "resolved", string(mode.Resolved), "reason", mode.Reason)
	return mode, nil
}

// archiveScan accumulates everything one pass over the entries yields.
type archiveScan struct {
	records       []schema.FileRecord
	languages     map[string]int
	frameworkSeen map[string]time.Time
	frameworks    []string
	toolHits      map[string]int
	tools         []string
	logs          *logBuffer
	events        []schema.SkillEvent
}

func newArchiveScan() *archiveScan {
	return &archiveScan{
		languages:     make(map[string]int),
		frameworkSeen: make(map[string]time.Time),
		toolHits:      make(map[string]int),
		logs:          newLogBuffer(),
	}
}

func (a *Analyzer) run(r io.ReaderAt, size int64, name string, req AnalysisRequest, mode schema.ModeResolution, start time.Time) (*schema.SummaryDocument, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &contract.InvalidArchiveError{
			Path:   name,
			Detail: fmt.Sprintf("Corrupted zip archive (%v)", err),
			Err:    err,
		}
	}

	scan := newArchiveScan()
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if err := scan.add(entry, mode.Resolved); err != nil {
			return nil, &contract.InvalidArchiveError{
				Path:   name,
				Detail: fmt.Sprintf("Corrupted zip archive (%v)", err),
				Err:    err,
			}
		}
	}

	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	dir := filepath.Dir(name)
	projectID := req.ProjectID
	if projectID == "" {
		projectID = stem
	}
	metadataPath := req.MetadataOutput
	if metadataPath == "" {
		metadataPath = filepath.Join(dir, stem+".metadata.jsonl")
	}
	summaryPath := req.SummaryOutput
	if summaryPath == "" {
		summaryPath = filepath.Join(dir, stem+".summary.json")
	}

	snapshot := a.buildSnapshot(projectID, scan)
	doc := &schema.SummaryDocument{
		Snapshot:       snapshot,
		Archive:        name,
		RequestedMode:  mode.Requested,
		ResolvedMode:   mode.Resolved,
		ModeReason:     mode.Reason,
		MetadataOutput: metadataPath,
		SummaryOutput:  summaryPath,
	}

	if err := outwriter.WriteMetadataJSONL(metadataPath, scan.records); err != nil {
		return nil, err
	}
	doc.ScanDurationSeconds = math.Round(time.Since(start).Seconds()*1e4) / 1e4
	if err := outwriter.WriteSummaryJSON(summaryPath, doc); err != nil {
		return nil, err
	}

	if a.prefs != nil {
		if err := a.prefs.RecordLastUsed(dir, mode.Resolved); err != nil {
			contract.LogWarn("Failed to update preferences", err)
		}
	}

	rec, err := a.store.Store(snapshot)
	if err != nil {
		return doc, fmt.Errorf("failed to store snapshot: %w", err)
	}
	contract.Logger().Info("stored archive snapshot", "project_id", projectID, "id", rec.ID)
	return doc, nil
}

// add folds one archive entry into the scan.
func (s *archiveScan) add(entry *zip.File, mode schema.AnalysisMode) error {
	modified := entry.Modified
	record := schema.FileRecord{
		ID:             recordID(entry.Name, int64(entry.UncompressedSize64), modified),
		Path:           entry.Name,
		Size:           int64(entry.UncompressedSize64),
		CompressedSize: int64(entry.CompressedSize64),
		Modified:       modified,
		Language:       detect.DetectLanguage(entry.Name),
		Activity:       detect.ClassifyActivity(entry.Name),
		AnalysisMode:   mode,
	}
	s.records = append(s.records, record)

	if record.Language != "" {
		s.languages[record.Language]++
		s.events = append(s.events, schema.SkillEvent{
			Skill: record.Language, Category: string(schema.LanguageSkillKind), At: modified, Weight: 1,
		})
	}

	if kind := detect.ManifestKindOf(entry.Name); kind != detect.NoManifest {
		content, err := readEntry(entry)
		if err != nil {
			return err
		}
		found, err := detect.DetectFrameworks(kind, content)
		if err != nil {
			contract.Logger().Debug("skipping unreadable manifest", "path", entry.Name, "error", err)
		}
		for _, fw := range found {
			if _, ok := s.frameworkSeen[fw]; ok {
				continue
			}
			s.frameworkSeen[fw] = modified
			s.frameworks = append(s.frameworks, fw)
			s.events = append(s.events, schema.SkillEvent{
				Skill: fw, Category: string(schema.FrameworkSkillKind), At: modified, Weight: 1,
			})
		}
	}

	if detect.IsGitLogPath(entry.Name) {
		content, err := readEntry(entry)
		if err != nil {
			return err
		}
		s.logs.addFile(string(content))
	}

	if tool := detect.DetectTool(entry.Name); tool != "" {
		if s.toolHits[tool] == 0 {
			s.tools = append(s.tools, tool)
		}
		s.toolHits[tool]++
		s.events = append(s.events, schema.SkillEvent{
			Skill: tool, Category: string(schema.ToolSkillKind), At: modified, Weight: 1,
		})
	}
	return nil
}

// logBuffer collects .git/logs/ text across files. Reflog lines repeated in
// HEAD and branch logs are kept once. Numstat commit blocks are kept whole,
// once per sha, since their stats and trailer lines repeat legitimately.
type logBuffer struct {
	lines      []string
	reflogSeen map[string]struct{}
	shaSeen    map[string]struct{}
}

func newLogBuffer() *logBuffer {
	return &logBuffer{
		reflogSeen: make(map[string]struct{}),
		shaSeen:    make(map[string]struct{}),
	}
}

// addFile appends the lines of one log file.
func (b *logBuffer) addFile(content string) {
	inBlock, skipBlock := false, false
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if sha, ok := collab.CommitHeaderSHA(trimmed); ok {
			inBlock, skipBlock = true, false
			if sha != "" {
				if _, seen := b.shaSeen[sha]; seen {
					skipBlock = true
					continue
				}
				b.shaSeen[sha] = struct{}{}
			}
			b.lines = append(b.lines, line)
			continue
		}
		if inBlock {
			if !skipBlock {
				b.lines = append(b.lines, line)
			}
			continue
		}
		if _, seen := b.reflogSeen[trimmed]; seen {
			continue
		}
		b.reflogSeen[trimmed] = struct{}{}
		b.lines = append(b.lines, line)
	}
}

// buildSnapshot reduces a finished scan into the persisted snapshot.
func (a *Analyzer) buildSnapshot(projectID string, scan *archiveScan) schema.Snapshot {
	var events []schema.ContributionEvent
	if len(scan.logs.lines) > 0 {
		events = collab.ParseLog(strings.Join(scan.logs.lines, "\n"))
	}
	collaboration := collab.BuildCollaboration(events, a.opts.Collab)

	observations := make([]schema.SkillObservation, 0, len(scan.languages)+len(scan.frameworks)+len(scan.tools))
	for _, lang := range slices.Sorted(maps.Keys(scan.languages)) {
		observations = append(observations, schema.LanguageSkill(lang, float64(scan.languages[lang])))
	}
	for _, fw := range scan.frameworks {
		observations = append(observations, schema.FrameworkSkill(fw, 1.0))
	}
	for _, tool := range scan.tools {
		observations = append(observations, schema.ToolSkill(tool, float64(scan.toolHits[tool])))
	}

	frameworks := make(map[string]struct{}, len(scan.frameworks))
	for _, fw := range scan.frameworks {
		frameworks[fw] = struct{}{}
	}
	tools := make(map[string]struct{}, len(scan.tools))
	for _, tool := range scan.tools {
		tools[tool] = struct{}{}
	}

	return schema.Snapshot{
		SchemaVersion:      schema.SnapshotSchemaVersion,
		ProjectID:          projectID,
		Classification:     collaboration.Classification,
		PrimaryContributor: collaboration.PrimaryContributor,
		FileSummary:        agg.ComputeMetrics(scan.records),
		Languages:          scan.languages,
		Frameworks:         detect.SortedSet(frameworks),
		Tools:              detect.SortedSet(tools),
		Collaboration:      collaboration,
		Skills:             skills.ComputeSkillScores(observations, a.opts.MinConfidence),
		SkillTimeline:      skills.BuildSkillTimeline(scan.events),
		CreatedAt:          a.opts.Now().UTC(),
	}
}

// recordID is a name-based UUID over path, size and modification time, rendered as bare hex.
func recordID(name string, size int64, modified time.Time) string {
	key := fmt.Sprintf("%s:%d:%s", name, size, modified.Format(recordIDLayout))
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(key))
	return hex.EncodeToString(id[:])
}

func readEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", entry.Name, err)
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", entry.Name, err)
	}
	return data, nil
}
