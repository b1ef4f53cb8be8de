// Package main provides a performance benchmarking tool for the folio CLI.
// It measures execution times across a directory of project archives,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - folio binary installed and available in PATH
// - One or more .zip project archives in the specified directory
//
// Usage: go run benchmark/main.go [archive-dir]
//
//	archive-dir: Directory containing .zip archives
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Archive     string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ArchiveDir  string
	Timeout     time.Duration
	NoStoreRuns int
	StoreRuns   int
	Archives    []string
	WorkDir     string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [archive-dir]\n", os.Args[0])
		os.Exit(1)
	}

	workDir, err := os.MkdirTemp("", "folio-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	config := BenchmarkConfig{
		ArchiveDir:  os.Args[1],
		Timeout:     5 * time.Minute,
		NoStoreRuns: 3,
		StoreRuns:   4,
		WorkDir:     workDir,
	}

	archives, err := checkPrerequisites(config)
	if err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}
	config.Archives = archives

	// Analysis refuses to run without consent, so record it in the isolated prefs file
	fmt.Printf("Recording consent...\n")
	grantCmd := exec.Command("folio", "consent", "grant", "--source", "benchmark")
	grantCmd.Env = benchmarkEnv(config, "none")
	if output, err := grantCmd.CombinedOutput(); err != nil {
		fmt.Printf("Failed to record consent: %v\nOutput: %s\n", err, string(output))
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the folio binary and at least one archive exist.
func checkPrerequisites(config BenchmarkConfig) ([]string, error) {
	if _, err := exec.LookPath("folio"); err != nil {
		return nil, errors.New("folio binary not found in PATH")
	}

	archives, err := filepath.Glob(filepath.Join(config.ArchiveDir, "*.zip"))
	if err != nil {
		return nil, err
	}
	if len(archives) == 0 {
		return nil, fmt.Errorf("no .zip archives found in %s", config.ArchiveDir)
	}
	slices.Sort(archives)
	return archives, nil
}

// benchmarkEnv isolates preferences and the SQLite store inside the work dir.
func benchmarkEnv(config BenchmarkConfig, backend string) []string {
	return append(os.Environ(),
		"FOLIO_PREFS_PATH="+filepath.Join(config.WorkDir, "prefs.yaml"),
		"FOLIO_SNAPSHOT_BACKEND="+backend,
		"FOLIO_SNAPSHOT_DB_CONNECT="+dbConnect(config, backend),
		"FOLIO_COLOR=no",
	)
}

func dbConnect(config BenchmarkConfig, backend string) string {
	if backend == "sqlite" {
		return filepath.Join(config.WorkDir, "snapshots.db")
	}
	return ""
}

// runBenchmarks executes all benchmark tests across the archives.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d archives, %v timeout, no-store: %d runs, store: %d runs\n",
		len(config.Archives), config.Timeout, config.NoStoreRuns, config.StoreRuns)

	for _, archive := range config.Archives {
		name := filepath.Base(archive)
		fmt.Printf("Benchmarking %s\n", name)

		// Outputs go to the work dir so the archive directory stays untouched
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		args := []string{
			archive,
			"--metadata-output", filepath.Join(config.WorkDir, stem+".metadata.jsonl"),
			"--summary-output", filepath.Join(config.WorkDir, stem+".summary.json"),
		}
		results = append(results, runBenchmarkSuite(config, name, "analyze", args))
	}

	// Ranking reads every stored snapshot, so it runs once over the whole store
	results = append(results, runBenchmarkSuite(config, "(all)", "rank", nil))
	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, label, command string, extraArgs []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, label)

	runPhase := func(backend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, command, extraArgs, backend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-store runs
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: SQLite store runs
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Archive:     label,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a folio command multiple times with the given backend and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, command string, extraArgs []string, backend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{command}, extraArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("folio", args...)
		cmd.Env = benchmarkEnv(config, backend)

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte, command string) bool {
	completionPhrase := "Analysis completed in"
	if command == "rank" {
		completionPhrase = "Ranking completed in"
	}
	return strings.Contains(string(output), completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("folio_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"archive", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Archive, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "analyze", "Archive Analysis:")
	printCommandSummary(results, "rank", "Ranking:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-24s: No-store: %s, Cold: %s, Warm: %s\n", result.Archive, result.NoStoreTime, result.ColdTime, result.WarmTime)
		}
	}
}
