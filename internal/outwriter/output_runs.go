package outwriter

import (
	"fmt"
	"os"
	"strconv"

	"github.com/focuslab/focuswatch/internal/contract"
	"github.com/focuslab/focuswatch/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// printRunsTable prints stored runs in a table, newest first.
func printRunsTable(runs []schema.RunRecord, cfg *contract.Config) error {
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Run", "Started", "Duration", "Log", "Status", "Values", "Transitions", "Final"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxPathWidth := getMaxTablePathWidth(cfg)

	var data [][]string
	for _, r := range runs {
		duration := "-"
		if r.RunDurationMs != nil {
			duration = fmt.Sprintf("%dms", *r.RunDurationMs)
		}
		row := []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartTime.Format("2006-01-02 15:04:05"),
			duration,
			contract.TruncatePath(r.LogPath, maxPathWidth),
			r.Status,
			strconv.Itoa(int(r.TotalValues)),
			strconv.Itoa(int(r.UniqueTransitions)),
			schema.FormatValue(r.FinalValue),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
