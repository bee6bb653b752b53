// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// load → parse → analyze → render → write.
//
// It handles flag validation, renderer selection, and history recording.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gaurav-prasanna/sheetpress/config"
	"github.com/gaurav-prasanna/sheetpress/core"
	"github.com/gaurav-prasanna/sheetpress/core/load"
	"github.com/gaurav-prasanna/sheetpress/core/output"
	"github.com/gaurav-prasanna/sheetpress/core/paginate"
	"github.com/gaurav-prasanna/sheetpress/core/parse"
	"github.com/gaurav-prasanna/sheetpress/core/render"
	"github.com/gaurav-prasanna/sheetpress/docai"
	"github.com/gaurav-prasanna/sheetpress/history"
	"github.com/spf13/cobra"
)

// Flag variables.
var (
	flagPDF         bool
	flagMarkdown    bool
	flagJSON        bool
	flagPaper       string
	flagOrientation string
	flagLandscape   bool
	flagRowsPerPage int
	flagOutputDir   string
	flagTitle       string
	flagAnalyze     bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a tabular file to the specified output format",
	Long: `Convert loads a CSV, HTML, or PDF file, builds a typed table,
and renders it as PDF, JSON, or Markdown.

Examples:
  sheetpress convert sales.csv --pdf
  sheetpress convert report.html --json --output_dir ./out
  sheetpress convert scan.pdf --pdf --paper letter --landscape
  sheetpress convert sales.csv --markdown --analyze`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")

	// Layout flags.
	convertCmd.Flags().StringVar(&flagPaper, "paper", "", "Paper size: a4, letter, or legal")
	convertCmd.Flags().StringVar(&flagOrientation, "orientation", "", "Orientation: portrait or landscape")
	convertCmd.Flags().BoolVar(&flagLandscape, "landscape", false, "Shorthand for --orientation landscape")
	convertCmd.Flags().IntVar(&flagRowsPerPage, "rows_per_page", 0, "Rows per page (5-100, default depends on orientation)")

	// Document metadata.
	convertCmd.Flags().StringVar(&flagTitle, "title", "", "Document title (default: derived from filename)")
	convertCmd.Flags().BoolVar(&flagAnalyze, "analyze", false, "Request a summary and title from the analysis service")

	// Output directory.
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := validateFormatFlags(); err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger := newLogger()

	paper, err := resolvePaper(cfg)
	if err != nil {
		return err
	}
	orientation, err := resolveOrientation(cfg)
	if err != nil {
		return err
	}
	rowsPerPage := flagRowsPerPage
	if rowsPerPage == 0 {
		rowsPerPage = cfg.RowsPerPage
	}
	if rowsPerPage == 0 {
		rowsPerPage = paginate.DefaultRowsPerPage(orientation)
	}
	rowsPerPage = paginate.Clamp(rowsPerPage)

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	// Initialize pipeline components.
	loader := load.New(cfg.MaxFileSize)
	client := docai.New(cfg.ExtractionURL, logger)
	pipeline := parse.NewPipeline(client, logger)

	outputDir := flagOutputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	writer, err := output.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := context.Background()

	// 1. Load
	file, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	// 2. Parse into a typed table
	table, err := pipeline.Parse(ctx, file.Data, file.Name, file.MIME)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	// 3. Analyze (optional, never fatal)
	opts := core.RenderOptions{
		Title:       flagTitle,
		SourceName:  file.Name,
		Paper:       paper,
		Orientation: orientation,
		RowsPerPage: rowsPerPage,
	}
	if flagAnalyze {
		summary, suggested := client.Analyze(ctx, table)
		opts.Summary = summary
		if opts.Title == "" {
			opts.Title = suggested
		}
	}

	// 4. Render
	data, err := renderer.Render(table, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// 5. Write
	outPath, err := writer.Write(file.Name, data, renderer.Extension())
	if err != nil {
		return err
	}

	// Record the conversion. A history failure must not fail the run.
	if store, err := history.Open(cfg.HistoryDir); err == nil {
		if _, err := store.Add(file.Name, len(table.Rows)); err != nil {
			logger.Warn("recording history", "error", err)
		}
	} else {
		logger.Warn("opening history", "error", err)
	}

	fmt.Fprintf(os.Stdout, "✓ Written: %s (%d rows, %d pages)\n",
		outPath, len(table.Rows), len(paginate.Pages(table.Rows, rowsPerPage)))
	return nil
}

// validateFormatFlags checks that exactly one output format is chosen.
func validateFormatFlags() error {
	formatCount := 0
	if flagPDF {
		formatCount++
	}
	if flagMarkdown {
		formatCount++
	}
	if flagJSON {
		formatCount++
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --markdown, or --json")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// resolvePaper picks the paper size from the flag, then the config file.
func resolvePaper(cfg *config.Config) (core.PaperSize, error) {
	name := flagPaper
	if name == "" {
		name = cfg.Paper
	}
	switch core.PaperSize(name) {
	case core.PaperA4, core.PaperLetter, core.PaperLegal:
		return core.PaperSize(name), nil
	default:
		return "", fmt.Errorf("unknown paper size %q (want a4, letter, or legal)", name)
	}
}

// resolveOrientation picks the orientation from flags, then the config file.
func resolveOrientation(cfg *config.Config) (core.Orientation, error) {
	if flagLandscape {
		if flagOrientation != "" && flagOrientation != string(core.Landscape) {
			return "", fmt.Errorf("--landscape conflicts with --orientation %s", flagOrientation)
		}
		return core.Landscape, nil
	}
	name := flagOrientation
	if name == "" {
		name = cfg.Orientation
	}
	switch core.Orientation(name) {
	case core.Portrait, core.Landscape:
		return core.Orientation(name), nil
	default:
		return "", fmt.Errorf("unknown orientation %q (want portrait or landscape)", name)
	}
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
