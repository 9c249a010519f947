// Package main provides a latency benchmarking tool for the SATScout CLI.
// It measures end-to-end execution times of the listing and score commands against the
// live open data API, with lookup history disabled and with SQLite history enabled.
// Each command runs several times; the first successful run is treated as cold and the
// rest are averaged as warm. Results are written as CSV for performance tracking.
//
// Prerequisites:
// - satscout binary installed and available in PATH
// - Network access to the open data API (or SATSCOUT_DIRECTORY_URL/SATSCOUT_SCORES_URL set)
//
// Usage: go run benchmark/main.go [runs]
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the result of one command under one history backend.
type BenchmarkResult struct {
	Command  string
	Backend  string
	ColdTime string
	WarmTime string
	Failures int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Timeout  time.Duration
	Runs     int
	Backends []string
	Commands [][]string
}

func main() {
	runs := 4
	if len(os.Args) == 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 2 {
			fmt.Printf("Usage: %s [runs>=2]\n", os.Args[0])
			os.Exit(1)
		}
		runs = n
	}

	config := BenchmarkConfig{
		Timeout:  time.Minute,
		Runs:     runs,
		Backends: []string{"none", "sqlite"},
		Commands: [][]string{
			{"schools", "--output", "csv"},
			{"schools", "--filter", "brooklyn", "--limit", "20"},
			{"score", "01M292"},
			{"score", "02M260"}, // no SAT record
		},
	}

	if _, err := exec.LookPath("satscout"); err != nil {
		fmt.Printf("Prerequisites check failed: satscout binary not found in PATH\n")
		os.Exit(1)
	}

	// Keep benchmark history away from the user's history database
	histDir, err := os.MkdirTemp("", "satscout-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(histDir) }()

	results := runBenchmarks(config, filepath.Join(histDir, "history.db"))

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes every command under every configured history backend.
func runBenchmarks(config BenchmarkConfig, dbPath string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d commands, %d backends, %d runs, %v timeout\n",
		len(config.Commands), len(config.Backends), config.Runs, config.Timeout)

	for _, backend := range config.Backends {
		for _, args := range config.Commands {
			fmt.Printf("Running %v with %s history\n", args, backend)
			results = append(results, runBenchmarkSuite(config, backend, dbPath, args))
		}
	}
	return results
}

// runBenchmarkSuite runs one command repeatedly and summarizes the timings.
func runBenchmarkSuite(config BenchmarkConfig, backend, dbPath string, args []string) BenchmarkResult {
	var times []float64
	failures := 0
	for run := 1; run <= config.Runs; run++ {
		elapsed, err := runOnce(config.Timeout, backend, dbPath, args)
		if err != nil {
			failures++
			fmt.Printf("  run %d failed: %v\n", run, err)
			continue
		}
		times = append(times, elapsed)
	}

	result := BenchmarkResult{
		Command:  fmt.Sprint(args),
		Backend:  backend,
		ColdTime: "FAILED",
		WarmTime: "FAILED",
		Failures: failures,
	}
	if len(times) > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		result.WarmTime = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s, Failures: %d\n", result.ColdTime, result.WarmTime, failures)
	return result
}

// runOnce executes satscout once and returns the wall time in seconds.
func runOnce(timeout time.Duration, backend, dbPath string, args []string) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "satscout", args...)
	cmd.Env = append(os.Environ(), "SATSCOUT_HISTORY_BACKEND="+backend, "SATSCOUT_COLOR=no")
	if backend == "sqlite" {
		cmd.Env = append(cmd.Env, "SATSCOUT_HISTORY_DB_CONNECT="+dbPath)
	}

	start := time.Now()
	output, err := cmd.Output()
	elapsed := time.Since(start).Seconds()
	if err != nil {
		return 0, err
	}
	if len(output) == 0 {
		return 0, fmt.Errorf("no output")
	}
	return elapsed, nil
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("satscout_benchmark_%s.csv", timestamp))

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
	if err := writer.Write([]string{"cmd", "history", "cold_time", "warm_avg", "failures"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Command, r.Backend, r.ColdTime, r.WarmTime, strconv.Itoa(r.Failures)}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %-48s %-7s Cold: %s, Warm: %s\n", r.Command, r.Backend, r.ColdTime, r.WarmTime)
	}
}
