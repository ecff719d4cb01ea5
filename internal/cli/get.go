package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javajack/xlcell"
)

func newGetCommand(flags *rootFlags) *cobra.Command {
	var sheetName, as, output string

	cmd := &cobra.Command{
		Use:   "get <file.xlsx> <cell>",
		Short: "Print the value of a cell",
		Long: `Reads one cell and prints it. Formulas are evaluated first.
Without --as the value is printed in the form its kind suggests: numbers as
decimals, date-formatted numbers as RFC 3339 timestamps, booleans as
true/false and everything else as text. The cell may be qualified with a
sheet, e.g. 'Data!B2'.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("sheet") {
				sheetName = cfg.Sheet
			}
			if !cmd.Flags().Changed("output") {
				output = cfg.Output
			}
			if err := checkFormat(output); err != nil {
				return err
			}

			ref, err := xlcell.ParseCellRef(args[1])
			if err != nil {
				return err
			}
			wb, err := flags.openWorkbook(cfg, args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			sheet, err := resolveSheet(wb, ref, sheetName)
			if err != nil {
				return err
			}
			v, err := sheet.Cell(ref.Row, ref.Col)
			if err != nil {
				return err
			}
			value, err := coerce(v, as)
			if err != nil {
				return err
			}

			res := cellResult{
				Cell:  v.Ref().String(),
				Kind:  v.Kind().String(),
				Date:  v.IsDate(),
				Value: printable(value),
			}
			return render(cmd.OutOrStdout(), output, res, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, formatValue(res.Value))
				return err
			})
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read (default: first sheet)")
	cmd.Flags().StringVar(&as, "as", "", "Convert to text | int | float | bool | time (default: by cell kind)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text | json | yaml")

	return cmd
}

// coerce calls the accessor named by as.
func coerce(v *xlcell.Value, as string) (any, error) {
	switch strings.ToLower(as) {
	case "":
		return coerceByKind(v)
	case "text", "string":
		return v.Text()
	case "int", "integer":
		return v.Int()
	case "float", "decimal":
		return v.Float()
	case "bool", "boolean":
		return v.Bool()
	case "time", "date", "datetime":
		return v.Time()
	default:
		return nil, fmt.Errorf("unknown conversion %q (want text, int, float, bool or time)", as)
	}
}

func coerceByKind(v *xlcell.Value) (any, error) {
	switch v.Kind() {
	case xlcell.KindNumeric:
		if v.IsDate() {
			return v.Time()
		}
		return v.Float()
	case xlcell.KindBoolean:
		return v.Bool()
	default:
		return v.Text()
	}
}
