package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteHistoryResults outputs stored verdict rows, dispatching based on the output format configured.
func WriteHistoryResults(rows []schema.VerdictRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, verdictCSVHeader, func(cw *csv.Writer) error {
				for _, row := range rows {
					if err := cw.Write(verdictCSVRecord(row)); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(rows, cfg, w)
		}, "Wrote table")
	}
}

// writeHistoryTable generates and writes the human-readable history view.
func writeHistoryTable(rows []schema.VerdictRow, cfg *contract.Config, writer io.Writer) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(writer, "No verdicts recorded yet.")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Repository", "Likelihood", "Label", "Eligible", "Analyzed"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, row := range rows {
		label := contract.GetPlainLabel(int(row.Likelihood))
		if cfg.UseColors {
			label = contract.GetColorLabel(int(row.Likelihood))
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateText(row.RepoURL, getMaxTableTextWidth(cfg)),
			strconv.Itoa(int(row.Likelihood)),
			label,
			formatYesNo(row.Eligible),
			time.UnixMilli(row.AnalyzedAt).UTC().Format(contract.DateTimeFormat),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d stored verdicts\n", len(rows))
	return err
}

// WriteStoreStatus prints verdict store status information.
func WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Backend: %s\n", status.Backend); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Connected: %s\n", formatYesNo(status.Connected)); err != nil {
			return err
		}
		if status.Location != "" {
			if _, err := fmt.Fprintf(w, "Location: %s\n", status.Location); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Total verdicts: %d\n", status.TotalVerdicts); err != nil {
			return err
		}
		if status.TotalVerdicts > 0 {
			if _, err := fmt.Fprintf(w, "Oldest entry: %s\n", status.OldestEntry.UTC().Format(contract.DateTimeFormat)); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Newest entry: %s\n", status.NewestEntry.UTC().Format(contract.DateTimeFormat)); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote status")
}
