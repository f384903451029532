package process

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/docmeta/internal/common"
	"github.com/dtnitsch/docmeta/models"
	dbpkg "github.com/dtnitsch/docmeta/pkg/db"
	"github.com/dtnitsch/docmeta/pkg/extract"
	"github.com/dtnitsch/docmeta/pkg/pipeline"
)

// FileAction processes a single document.
func FileAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: docmeta file <path>", 1)
	}
	path := c.Args().First()

	logger := common.NewLogger(c)
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load config: %v", err), 2)
	}

	proc := pipeline.New(cfg, logger, c.String("output-dir"))
	recorder, err := newRunRecorder(c, path, 1)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer recorder.Close()
	proc.OnRecord = recorder.Record

	res, err := proc.ProcessDocument(c.Context, path)
	recorder.Finish(boolToInt(err == nil), boolToInt(err != nil))
	if err != nil {
		color.Red("✗ %s: %v", path, err)
		return cli.Exit("", 1)
	}

	derived := res.Record.DerivedMetadata
	color.Green("✓ %s", path)
	fmt.Printf("  Title:        %s\n", derived.Title)
	fmt.Printf("  Category:     %s\n", derived.Category)
	fmt.Printf("  Content Type: %s\n", derived.ContentType)
	fmt.Printf("  Quality:      %.1f\n", derived.QualityScore)
	fmt.Printf("  Complexity:   %s\n", derived.ComplexityLevel)
	fmt.Printf("  Reading Time: %s\n", derived.EstimatedReadingTime)
	fmt.Printf("  Record:       %s\n", res.RecordPath)
	return nil
}

// DirectoryAction processes every supported document under a directory.
func DirectoryAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: docmeta directory <path>", 1)
	}
	dir := c.Args().First()

	paths, err := pipeline.DiscoverFiles(dir, c.Bool("recursive"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if len(paths) == 0 {
		fmt.Println("No supported documents found")
		return nil
	}
	return runBatch(c, dir, paths)
}

// FilesAction processes an explicit list of documents.
func FilesAction(c *cli.Context) error {
	var paths []string
	if c.IsSet("files") {
		for _, p := range strings.Split(c.String("files"), ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
	} else {
		paths = c.Args().Slice()
	}
	if len(paths) == 0 {
		return cli.Exit("no files provided (arguments or --files)", 1)
	}
	return runBatch(c, "files", paths)
}

// FormatsAction lists the supported document formats.
func FormatsAction(c *cli.Context) error {
	formats := extract.SupportedFormats()
	exts := make([]string, 0, len(formats))
	for ext := range formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	fmt.Printf("%-12s %s\n", "Extension", "Document Type")
	fmt.Println(strings.Repeat("-", 40))
	for _, ext := range exts {
		fmt.Printf("%-12s %s\n", ext, formats[ext])
	}
	return nil
}

func runBatch(c *cli.Context, source string, paths []string) error {
	logger := common.NewLogger(c)
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load config: %v", err), 2)
	}

	proc := pipeline.New(cfg, logger, c.String("output-dir"))
	recorder, err := newRunRecorder(c, source, len(paths))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer recorder.Close()

	var bar *progressbar.ProgressBar
	if !c.Bool("quiet") {
		bar = newBar(len(paths), "Processing documents")
	}
	proc.OnRecord = func(path string, res pipeline.Result, err error) {
		recorder.Record(path, res, err)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	stats, _, err := proc.ProcessFiles(c.Context, paths)
	recorder.Finish(stats.Successful, stats.Failed)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("batch interrupted: %v", err), 2)
	}

	if summaryPath := c.String("summary"); summaryPath != "" {
		if err := proc.Store().SaveBatchSummary(summaryPath, stats); err != nil {
			logger.Error("failed to save batch summary", "path", summaryPath, "error", err.Error())
		} else {
			fmt.Printf("Batch summary saved to: %s\n", summaryPath)
		}
	}

	printBatchSummary(stats)
	if stats.Failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func printBatchSummary(stats models.BatchStats) {
	fmt.Println()
	color.Cyan("Batch complete: %d files", stats.TotalFiles)
	color.Green("  ✓ %d succeeded", stats.Successful)
	if stats.Failed > 0 {
		color.Red("  ✗ %d failed", stats.Failed)
		for _, msg := range stats.Errors {
			color.Red("    %s", msg)
		}
	}
}

func newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("docs"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// runRecorder writes run history to SQLite unless --no-db is set.
type runRecorder struct {
	db    *dbpkg.DB
	runID int64
}

func newRunRecorder(c *cli.Context, source string, fileCount int) (*runRecorder, error) {
	if c.Bool("no-db") {
		return &runRecorder{}, nil
	}
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	runID, err := database.CreateRun(source, fileCount, c.String("config"))
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return &runRecorder{db: database, runID: runID}, nil
}

func (r *runRecorder) Record(path string, res pipeline.Result, procErr error) {
	if r.db == nil {
		return
	}
	record := res.Record
	doc := dbpkg.Document{
		RunID:            r.runID,
		RecordID:         record.ProcessingInfo.RecordID,
		FilePath:         path,
		DocumentType:     record.DocumentInfo.DocumentType,
		ExtractionMethod: record.ExtractionInfo.ExtractionMethod,
		WordCount:        record.ExtractionInfo.WordCount,
		Success:          procErr == nil,
		RecordPath:       res.RecordPath,
	}
	if procErr != nil {
		doc.ErrorMessage = procErr.Error()
	}
	if d := record.DerivedMetadata; d != nil {
		doc.QualityScore = d.QualityScore
		doc.Category = d.Category
		doc.Language = d.PrimaryLanguage
	}
	_, _ = r.db.InsertDocument(doc)
}

func (r *runRecorder) Finish(successCount, failedCount int) {
	if r.db == nil {
		return
	}
	_ = r.db.FinishRun(r.runID, successCount, failedCount)
}

func (r *runRecorder) Close() {
	if r.db != nil {
		_ = r.db.Close()
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
