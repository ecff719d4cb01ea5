package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/javajack/xlcell"
)

// formula marks input that is stored as a formula rather than a value.
type formula string

var inputTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func newSetCommand(flags *rootFlags) *cobra.Command {
	var sheetName, as string
	var recalc bool

	cmd := &cobra.Command{
		Use:   "set <file.xlsx> <cell> <value>",
		Short: "Store a typed value in a cell",
		Long: `Writes one cell and saves the workbook in place.
Without --as the value is typed by its shape: '=...' is a formula, then
integer, decimal, true/false, an ISO 8601 date or date-time, and finally
text. An empty value with --as blank clears the cell.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("sheet") {
				sheetName = cfg.Sheet
			}

			ref, err := xlcell.ParseCellRef(args[1])
			if err != nil {
				return err
			}
			loc, err := flags.resolveLocation(cfg)
			if err != nil {
				return err
			}
			if loc == nil {
				loc = time.UTC
			}
			value, err := parseInput(args[2], as, loc)
			if err != nil {
				return err
			}

			wb, err := flags.openWorkbook(cfg, args[0], xlcell.WithRecalculateOnOpen(recalc))
			if err != nil {
				return err
			}
			defer wb.Close()

			sheet, err := resolveSheet(wb, ref, sheetName)
			if err != nil {
				return err
			}
			if f, ok := value.(formula); ok {
				err = sheet.SetFormula(ref.Row, ref.Col, string(f))
			} else {
				err = sheet.Set(ref.Row, ref.Col, value)
			}
			if err != nil {
				return err
			}
			if err := wb.Save(); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Set %s\n", sheet.Ref(ref.Row, ref.Col))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to write (default: first sheet)")
	cmd.Flags().StringVar(&as, "as", "", "Store as text | int | float | bool | time | formula | blank (default: by shape)")
	cmd.Flags().BoolVar(&recalc, "recalc", false, "Ask Excel to recalculate all formulas when the file is opened")

	return cmd
}

// parseInput turns command-line text into a value accepted by Sheet.Set.
func parseInput(raw, as string, loc *time.Location) (any, error) {
	switch strings.ToLower(as) {
	case "":
		return guessInput(raw, loc), nil
	case "text", "string":
		return raw, nil
	case "int", "integer":
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parse %q as int: %w", raw, err)
		}
		return n, nil
	case "float", "decimal":
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q as float: %w", raw, err)
		}
		return f, nil
	case "bool", "boolean":
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parse %q as bool: %w", raw, err)
		}
		return b, nil
	case "time", "date", "datetime":
		return parseInputTime(raw, loc)
	case "formula":
		return formula(strings.TrimPrefix(raw, "=")), nil
	case "blank":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown type %q (want text, int, float, bool, time, formula or blank)", as)
	}
}

func guessInput(raw string, loc *time.Location) any {
	if len(raw) > 1 && raw[0] == '=' {
		return formula(raw[1:])
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	if strings.EqualFold(raw, "true") {
		return true
	}
	if strings.EqualFold(raw, "false") {
		return false
	}
	if t, err := parseInputTime(raw, loc); err == nil {
		return t
	}
	return raw
}

func parseInputTime(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range inputTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse %q as time: want RFC 3339 or YYYY-MM-DD[ HH:MM:SS]", raw)
}
