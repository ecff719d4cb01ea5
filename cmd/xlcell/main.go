// Command xlcell reads and writes typed spreadsheet cells.
package main

import (
	"os"

	"github.com/javajack/xlcell/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
