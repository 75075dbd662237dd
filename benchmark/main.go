// Package main provides a performance benchmarking tool for the focuswatch CLI.
// It generates synthetic watch logs of different sizes and signal shapes,
// measures analyze execution times with history tracking disabled and enabled,
// running each test multiple times, treating the first run with tracking as cold
// and averaging the rest as warm, generating CSV output for performance analysis.
//
// Prerequisites:
// - focuswatch binary installed and available in PATH
// - A writable working directory for the generated logs
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic watch logs are generated
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-history average, cold run and average of warm runs).
type BenchmarkResult struct {
	LogName       string
	Samples       int
	NoHistoryTime string
	ColdTime      string
	WarmTime      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	NoHistoryRuns int
	HistoryRuns   int
	LogSizes      []int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       2 * time.Minute,
		NoHistoryRuns: 3,
		HistoryRuns:   4,
		LogSizes:      []int{1_000, 100_000, 1_000_000},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the history using focuswatch history clear
	fmt.Printf("Clearing run history...\n")
	clearCmd := exec.Command("focuswatch", "history", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run history: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run history cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the focuswatch binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if focuswatch is available
	if _, err := exec.LookPath("focuswatch"); err != nil {
		return fmt.Errorf("focuswatch binary not found in PATH")
	}

	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("work directory %s is not writable: %w", config.WorkDir, err)
	}

	return nil
}

// runBenchmarks executes all benchmark tests across the generated watch logs
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d log sizes, %v timeout, no-history: %d runs, history: %d runs\n",
		len(config.LogSizes), config.Timeout, config.NoHistoryRuns, config.HistoryRuns)

	shapes := []struct {
		name     string
		generate func(i int) float64
	}{
		// A hunting lens cycling through three positions
		{"oscillating", func(i int) float64 { return []float64{2.5, 3.1, 2.8}[i%3] }},
		// A lens settling toward a fixed position
		{"converging", func(i int) float64 { return 5.0 + 10.0/float64(i+1) }},
		// Low-amplitude sensor noise around a fixed position
		{"noisy", func(i int) float64 { return 5.0 + 0.01*math.Sin(float64(i)) }},
	}

	for _, size := range config.LogSizes {
		for _, shape := range shapes {
			logName := fmt.Sprintf("%s_%d", shape.name, size)
			logPath := filepath.Join(config.WorkDir, logName+".log")

			fmt.Printf("Generating %s (%d samples)\n", logPath, size)
			if err := generateWatchLog(logPath, size, shape.generate); err != nil {
				fmt.Printf("Warning: failed to generate %s: %v\n", logPath, err)
				continue
			}

			result := runBenchmarkSuite(config, logName, logPath, size)
			results = append(results, result)
		}
	}

	return results
}

// generateWatchLog writes a synthetic watch log with one focus record per sample.
func generateWatchLog(path string, samples int, value func(i int) float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	for i := range samples {
		if _, err := fmt.Fprintf(file, `{"focus":[0.0,%.4f,0.0]}`+"\n", value(i)); err != nil {
			return err
		}
	}
	return nil
}

// runBenchmarkSuite runs both no-history and history benchmarks for a log
func runBenchmarkSuite(config BenchmarkConfig, logName, logPath string, samples int) BenchmarkResult {
	fmt.Printf("Running analyze on %s\n", logName)

	// Helper to run a benchmark phase
	runPhase := func(historyBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, logPath, historyBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-history runs
	_, noHistoryAvg := runPhase("none", config.NoHistoryRuns, "No-history")

	// Phase 2: History runs
	coldTime, warmAvg := runPhase("sqlite", config.HistoryRuns, "History")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistoryAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		LogName:       logName,
		Samples:       samples,
		NoHistoryTime: noHistoryAvg,
		ColdTime:      coldTimeStr,
		WarmTime:      warmAvg,
	}
}

// runBenchmark executes focuswatch analyze multiple times with the specified
// history backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, logPath, historyBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{"analyze", logPath, "--history-backend", historyBackend}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("focuswatch", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if isSuccess(output, cmdErr) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks whether an analyze run completed with a verdict.
// Nonzero exit codes are part of the verdict contract (1 = oscillating,
// 2 = insufficient data), so only a failure to run at all counts as an error.
func isSuccess(output []byte, cmdErr error) bool {
	if cmdErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(cmdErr, &exitErr) {
			return false
		}
	}

	outputStr := string(output)
	return strings.Contains(outputStr, "OSCILLATION DETECTED") ||
		strings.Contains(outputStr, "CONVERGED") ||
		strings.Contains(outputStr, "CONVERGING") ||
		strings.Contains(outputStr, "INSUFFICIENT DATA")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/focuswatch_benchmark_%s.csv", timestamp)

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

	// Write header
	if err := writer.Write([]string{"log", "samples", "no_history_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		record := []string{
			result.LogName,
			fmt.Sprintf("%d", result.Samples),
			result.NoHistoryTime,
			result.ColdTime,
			result.WarmTime,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, result := range results {
		fmt.Printf("  %-24s: No-history: %s, Cold: %s, Warm: %s\n",
			result.LogName, result.NoHistoryTime, result.ColdTime, result.WarmTime)
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
