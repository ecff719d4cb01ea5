package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type sheetInfo struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}

func newSheetsCommand(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "sheets <file.xlsx>",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") {
				output = cfg.Output
			}
			if err := checkFormat(output); err != nil {
				return err
			}

			wb, err := flags.openWorkbook(cfg, args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			names := wb.SheetNames()
			infos := make([]sheetInfo, len(names))
			for i, name := range names {
				infos[i] = sheetInfo{Index: i, Name: name}
			}

			return render(cmd.OutOrStdout(), output, infos, func(w io.Writer) error {
				index := color.New(color.Bold, color.FgCyan)
				for _, s := range infos {
					if _, err := fmt.Fprintf(w, "%s %s\n", index.Sprint(s.Index), s.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text | json | yaml")

	return cmd
}
