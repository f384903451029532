package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/docmeta/internal/common"
	dbpkg "github.com/dtnitsch/docmeta/pkg/db"
)

// RunsAction lists recent processing runs.
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-8s %-8s %-40s\n",
		"ID", "Started", "Files", "Success", "Failed", "Source")
	fmt.Println(strings.Repeat("-", 95))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-8d %-8d %-8d %-40s\n",
			r.RunID,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.FileCount,
			r.SuccessCount,
			r.FailedCount,
			common.TruncateString(r.Source, 40),
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'docmeta db docs <id>' to see per-document results\n")

	return nil
}

// DocsAction shows the per-document results of one run.
func DocsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := runIDOrLatest(c, database)
	if err != nil {
		return err
	}

	docs, err := database.ListRunDocuments(runID)
	if err != nil {
		return fmt.Errorf("failed to list run documents: %w", err)
	}

	fmt.Printf("Run %d\n", runID)
	fmt.Println(strings.Repeat("=", 95))

	if len(docs) == 0 {
		fmt.Println("No documents recorded for this run")
		return nil
	}

	fmt.Printf("%-40s %-8s %-8s %-8s %-20s\n",
		"File", "Words", "Quality", "OK", "Category")
	fmt.Println(strings.Repeat("-", 95))

	for _, d := range docs {
		status := "yes"
		if !d.Success {
			status = "NO"
		}
		fmt.Printf("%-40s %-8d %-8.1f %-8s %-20s\n",
			common.TruncateString(d.FilePath, 40),
			d.WordCount,
			d.QualityScore,
			status,
			common.TruncateString(d.Category, 20),
		)
		if d.ErrorMessage != "" {
			fmt.Printf("    error: %s\n", d.ErrorMessage)
		}
	}

	return nil
}

// runIDOrLatest resolves the run ID argument; no argument means the most
// recent run.
func runIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() > 0 {
		id, err := strconv.ParseInt(c.Args().First(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid run ID %q", c.Args().First())
		}
		return id, nil
	}

	runs, err := database.ListRuns(1)
	if err != nil {
		return 0, fmt.Errorf("failed to find latest run: %w", err)
	}
	if len(runs) == 0 {
		return 0, fmt.Errorf("no runs found")
	}
	return runs[0].RunID, nil
}
