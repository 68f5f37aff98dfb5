// changia-import runs the statement pipeline offline: it reads a pasted
// export from a file (or stdin), imports it into the configured group and
// prints the per-row outcome.
//
// Usage:
//
//	changia-import -group "Mama Jane Funeral" [-file statement.csv]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"changia/internal/cli"
	"changia/internal/core"
	applog "changia/internal/log"
	"changia/internal/services"
)

func main() {
	groupName := flag.String("group", "", "group to import into (required)")
	file := flag.String("file", "-", "statement file, or - for stdin")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentImport)
	cfg := cli.LoadAndValidateConfig(logger)

	if *groupName == "" {
		fmt.Fprintln(os.Stderr, "missing -group")
		flag.Usage()
		os.Exit(2)
	}

	text, err := readInput(*file)
	if err != nil {
		logger.Error("Failed to read statement", "error", err, "file", *file)
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx := context.Background()

	group, err := repo.GetGroup(ctx, *groupName)
	if err != nil {
		logger.Error("Group not found", "error", err, "group", *groupName)
		os.Exit(1)
	}

	mapping, err := cfg.ColumnMapping()
	if err != nil {
		logger.Error("Invalid import column mapping", "error", err)
		os.Exit(1)
	}

	res, err := services.NewImportService(repo, mapping).ImportText(ctx, group, text)
	if err != nil {
		logger.Error("Import failed", "error", err, "group", group.Name)
		os.Exit(1)
	}

	for _, o := range res.Outcomes {
		switch {
		case o.Accepted && o.SubmitError != "":
			fmt.Printf("row %d: FAILED %s\n", o.Row, o.SubmitError)
		case o.Accepted:
			fmt.Printf("row %d: ok %s %s KES %s\n",
				o.Row, o.Record.FirstName, o.Record.SecondName, core.FormatAmount(o.Record.Amount))
		default:
			fmt.Printf("row %d: skipped (%s)\n", o.Row, o.Reason)
		}
	}
	fmt.Printf("\naccepted %d of %d rows", res.Accepted, len(res.Outcomes))
	if failed := res.FailedRows(); len(failed) > 0 {
		fmt.Printf(", %d failed to save", len(failed))
	}
	fmt.Println()

	// Saved rows carry pending sync status; the worker picks them up on its
	// next sweep.
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
