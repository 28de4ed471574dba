package cli

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/conduitworks/conduit/internal/domain"
)

// AddTemplatesCommand adds the templates command to the parent command.
func AddTemplatesCommand(parent *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List available task templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := GetLogger()

			a, err := buildApp(cmd.Context(), logger)
			if err != nil {
				return err
			}

			templates := a.templates.List()

			if global.Output == OutputJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(templates)
			}

			writeTemplatesTable(cmd, templates)
			return nil
		},
	}

	parent.AddCommand(cmd)
}

func writeTemplatesTable(cmd *cobra.Command, templates []*domain.TaskTemplate) {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
	})
	tw.AppendHeader(table.Row{"ID", "Kind", "Variables", "Files"})

	for _, t := range templates {
		files := ""
		if t.RequireFiles {
			files = "required"
		}
		tw.AppendRow(table.Row{t.ID, t.Kind.String(), summarizeVariables(t.Variables), files})
	}
	tw.Render()
}

// summarizeVariables renders variable names, marking required ones with *.
func summarizeVariables(vars []domain.TemplateVariable) string {
	names := make([]string, 0, len(vars))
	for _, v := range vars {
		name := v.Name
		if v.Required {
			name += "*"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
