package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ludo-technologies/domscan/app"
	"github.com/ludo-technologies/domscan/domain"
	"github.com/ludo-technologies/domscan/service"
)

type analyzeOptions struct {
	requestFlags

	format            string
	jsonOutput        bool
	outputPath        string
	noColor           bool
	noRecommendations bool
}

func analyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [path|url...]",
		Short: "Measure the DOM complexity of HTML documents",
		Long: `Measure the DOM complexity of HTML files, directories and URLs.

Each document is parsed, the analysis root is located (body by default) and
the total element count, maximum depth and largest child count are reported
with a status per metric and recommendations.

Examples:
  domscan analyze index.html
  domscan analyze site/ --format json
  domscan analyze https://example.com --render
  domscan analyze page.html --root main#app --scope subtree
  domscan analyze fixture.json --parser tree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(domain.OutputFormatText),
		"Output format: text, json, yaml, csv, html")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false,
		"Disable colored output")
	cmd.Flags().BoolVar(&opts.noRecommendations, "no-recommendations", false,
		"Hide recommendations in text and HTML output")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *analyzeOptions) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	req, err := opts.buildRequest(cmd, args)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		req.OutputFormat = domain.OutputFormatJSON
	} else if cmd.Flags().Changed("format") {
		req.OutputFormat = domain.OutputFormat(opts.format)
	}
	if req.OutputFormat == "" {
		req.OutputFormat = domain.OutputFormatText
	}
	if opts.outputPath != "" {
		req.OutputPath = opts.outputPath
	}
	if opts.noRecommendations {
		req.ShowRecommendations = false
	}

	out := cmd.OutOrStdout()
	req.OutputWriter = out
	// --no-color wins over the configuration
	req.Color = req.OutputPath == "" && colorEnabled(out, req.Color, opts.noColor)

	pm := service.NewProgressManager(req.OutputFormat == domain.OutputFormatText || req.OutputPath != "")
	defer pm.Close()

	formatter := service.NewOutputFormatter()
	formatter.SetColor(req.Color)
	formatter.SetShowRecommendations(req.ShowRecommendations)

	uc, err := app.NewAnalyzeUseCaseBuilder().
		WithService(newAnalysisService(req, pm)).
		WithFormatter(formatter).
		Build()
	if err != nil {
		return err
	}

	resp, err := uc.Execute(cmd.Context(), *req)
	if err != nil {
		return err
	}

	for _, e := range resp.Errors {
		logger.Warn("document skipped", zap.String("error", e))
	}

	if path := app.ResolveOutputPath(*req); path != "" {
		absPath, _ := filepath.Abs(path)
		fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to: %s\n", absPath)
	}
	return nil
}
