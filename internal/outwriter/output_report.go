package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/focuslab/focuswatch/internal/contract"
	"github.com/focuslab/focuswatch/schema"
)

// bannerWidth is the width of the report banner, unchanged since the first
// version of this diagnostic.
const bannerWidth = 60

// PrintAnalysisResult outputs the analysis result, dispatching based on the
// output format configured.
func PrintAnalysisResult(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForAnalysis(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForAnalysis(result, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to the human-readable banner report
		if err := printAnalysisReport(result, cfg, duration); err != nil {
			return fmt.Errorf("error writing analysis report: %w", err)
		}
	}
	return nil
}

// printJSONResultsForAnalysis handles opening the file and calling the JSON writer.
func printJSONResultsForAnalysis(result *schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForAnalysis(w, result)
	}, "Wrote JSON analysis result")
}

// printCSVResultsForAnalysis handles opening the file and calling the CSV writer.
func printCSVResultsForAnalysis(result *schema.AnalysisResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForAnalysis(csvWriter, result)
	}, "Wrote CSV analysis result")
}

// printAnalysisReport renders the fixed-width banner report.
func printAnalysisReport(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		banner := strings.Repeat("=", bannerWidth)

		statusLabel := contract.GetPlainStatusLabel(result.Status)
		if cfg.UseColors && cfg.OutputFile == "" {
			statusLabel = contract.GetColorStatusLabel(result.Status, result.Stable)
		}

		fmt.Fprintf(w, "\n%s\n", banner)
		fmt.Fprintln(w, "Focus Oscillation Analysis")
		fmt.Fprintln(w, banner)
		fmt.Fprintf(w, "Status: %s\n", statusLabel)
		fmt.Fprintf(w, "Total updates: %d\n", result.TotalValues)
		if result.Status != schema.InsufficientDataStatus {
			fmt.Fprintf(w, "Unique transitions: %d\n", result.UniqueTransitions)
			fmt.Fprintf(w, "Final value: %s\n", schema.FormatValue(result.FinalValue))
		}

		if len(result.CyclePattern) > 0 {
			fmt.Fprintf(w, "\nCycle detected (%d values):\n", result.CycleLength)
			if err := printCycleTable(w, result.CyclePattern); err != nil {
				return err
			}
		}

		fmt.Fprintf(w, "\n%s\n", result.Message)
		fmt.Fprintf(w, "%s\n\n", banner)
		fmt.Fprintf(w, "Analysis completed in %v\n", duration)
		return nil
	}, "Wrote analysis report")
}

// printCycleTable renders the repeating values in order, one row per step.
func printCycleTable(w io.Writer, pattern []float64) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Value"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, val := range pattern {
		data = append(data, []string{strconv.Itoa(i + 1), schema.FormatValue(val)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
