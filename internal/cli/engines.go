package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/conduitworks/conduit/internal/domain"
)

// engineRow is the JSON shape of one engine in `conduit engines -o json`.
type engineRow struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	Default      bool                      `json:"default"`
	Available    bool                      `json:"available"`
	Capabilities domain.EngineCapabilities `json:"capabilities"`
}

// AddEnginesCommand adds the engines command to the parent command.
func AddEnginesCommand(parent *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "engines",
		Short: "List registered engines and their availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := GetLogger()

			a, err := buildApp(cmd.Context(), logger)
			if err != nil {
				return err
			}

			rows := make([]engineRow, 0, len(a.engines.IDs()))
			for _, id := range a.engines.IDs() {
				eng, err := a.engines.Get(id)
				if err != nil {
					return err
				}
				rows = append(rows, engineRow{
					ID:           id,
					Name:         eng.Name(),
					Default:      id == a.engines.DefaultID(),
					Available:    eng.IsAvailable(cmd.Context()),
					Capabilities: eng.Capabilities(),
				})
			}

			if global.Output == OutputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			writeEnginesTable(cmd, rows)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func writeEnginesTable(cmd *cobra.Command, rows []engineRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
	})
	tw.AppendHeader(table.Row{"ID", "Name", "Default", "Available", "Capabilities"})

	for _, row := range rows {
		def := ""
		if row.Default {
			def = "✓"
		}
		avail := "no"
		if row.Available {
			avail = "yes"
		}
		tw.AppendRow(table.Row{row.ID, row.Name, def, avail, summarizeCapabilities(row.Capabilities)})
	}
	tw.Render()
}

// summarizeCapabilities renders a compact one-line capability summary.
func summarizeCapabilities(caps domain.EngineCapabilities) string {
	kinds := make([]string, 0, len(caps.SupportedTaskKinds))
	for _, k := range caps.SupportedTaskKinds {
		kinds = append(kinds, k.String())
	}

	parts := []string{fmt.Sprintf("kinds: %s", strings.Join(kinds, ","))}
	if caps.SupportsStreaming {
		parts = append(parts, "streaming")
	}
	if caps.SupportsTaskAbort {
		parts = append(parts, "abort")
	}
	if caps.SupportsConcurrentSessions {
		parts = append(parts, fmt.Sprintf("concurrent: %d", caps.MaxConcurrentSessions))
	}
	return strings.Join(parts, ", ")
}
