package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/focuslab/focuswatch/schema"
)

// writeJSONResultsForAnalysis marshals the schema.AnalysisResult to JSON and writes it.
func writeJSONResultsForAnalysis(w io.Writer, result *schema.AnalysisResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForAnalysis writes the schema.AnalysisResult data to a CSV writer.
func writeCSVResultsForAnalysis(w *csv.Writer, result *schema.AnalysisResult) error {
	header := []string{
		"log_path",
		"status",
		"total_values",
		"unique_transitions",
		"final_value",
		"cycle_length",
		"cycle_pattern",
		"stable",
		"message",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := []string{
		result.LogPath,
		string(result.Status),
		strconv.Itoa(result.TotalValues),
		strconv.Itoa(result.UniqueTransitions),
		schema.FormatValue(result.FinalValue),
		strconv.Itoa(result.CycleLength),
		schema.FormatPattern(result.CyclePattern, "|"),
		strconv.FormatBool(result.Stable),
		result.Message,
	}
	return w.Write(row)
}
