// Package cli contains the commands of the xlcell binary.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/javajack/xlcell"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	password string
	location string
	noColor  bool
}

// NewRootCommand creates the root command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "xlcell",
		Short: "Read and write typed spreadsheet cells",
		Long: `xlcell reads a single cell of an .xlsx workbook as text, integer,
decimal, boolean or date-time, evaluating formulas on the way, and writes
typed values back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.password, "password", "", "Password of an encrypted workbook")
	rootCmd.PersistentFlags().StringVar(&flags.location, "location", "", "IANA time zone for dates, e.g. Asia/Tokyo (default UTC)")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable ANSI color output")

	rootCmd.AddCommand(newGetCommand(flags))
	rootCmd.AddCommand(newSetCommand(flags))
	rootCmd.AddCommand(newSheetsCommand(flags))

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		printError(os.Stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "Error: ")
	fmt.Fprintln(w, err)

	var ce *xlcell.CoercionError
	if errors.As(err, &ce) {
		color.New(color.FgYellow).Fprintf(w, "  %s holds %s\n", ce.Ref, ce.Kind)
	}
}

// resolveLocation resolves the --location flag, falling back to the config file.
// A nil location means UTC.
func (f *rootFlags) resolveLocation(cfg *config) (*time.Location, error) {
	name := f.location
	if name == "" {
		name = cfg.Location
	}
	if name == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return loc, nil
}

func (f *rootFlags) openWorkbook(cfg *config, path string, extra ...xlcell.Option) (*xlcell.Workbook, error) {
	var opts []xlcell.Option
	if f.password != "" {
		opts = append(opts, xlcell.WithPassword(f.password))
	}
	loc, err := f.resolveLocation(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, xlcell.WithLocation(loc))
	opts = append(opts, extra...)
	return xlcell.Open(path, opts...)
}

// resolveSheet picks the sheet named in the reference, then the --sheet
// value, then the first sheet.
func resolveSheet(wb *xlcell.Workbook, ref xlcell.CellRef, sheetName string) (*xlcell.Sheet, error) {
	name := ref.Sheet
	if name == "" {
		name = sheetName
	}
	if name == "" {
		return wb.Sheet(0)
	}
	return wb.SheetByName(name)
}
