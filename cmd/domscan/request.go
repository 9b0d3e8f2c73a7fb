package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ludo-technologies/domscan/domain"
	"github.com/ludo-technologies/domscan/internal/fetcher"
	"github.com/ludo-technologies/domscan/service"
)

// requestFlags are the analysis flags shared by analyze and check
type requestFlags struct {
	configPath  string
	root        string
	scope       string
	parser      string
	render      bool
	concurrency int
	userAgent   string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVarP(&f.root, "root", "r", domain.DefaultRootSelector,
		"Analysis root selector: tag, #id, .class or a compound like main#app")
	cmd.Flags().StringVar(&f.scope, "scope", string(domain.ScopeDocument),
		"What the node count covers: document or subtree")
	cmd.Flags().StringVar(&f.parser, "parser", string(domain.ParserModeAuto),
		"Parser: auto, html (browser tree), source (markup as written) or tree (JSON fixture)")
	cmd.Flags().BoolVar(&f.render, "render", false,
		"Render URLs in a headless browser before measuring")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0,
		"Documents analyzed in parallel (0 = number of CPUs)")
	cmd.Flags().StringVar(&f.userAgent, "user-agent", "",
		"User-Agent header for fetched URLs")
}

// buildRequest loads the configuration for the first argument and applies
// the flags that were set explicitly on top of it.
func (f *requestFlags) buildRequest(cmd *cobra.Command, args []string) (*domain.AnalysisRequest, error) {
	loader := service.NewConfigurationLoader()

	var base *domain.AnalysisRequest
	var err error
	if f.configPath != "" {
		base, err = loader.LoadConfig(f.configPath)
	} else {
		base, err = loader.LoadConfigForTarget(args[0])
	}
	if err != nil {
		return nil, err
	}

	override := &domain.AnalysisRequest{Sources: args}
	flags := cmd.Flags()
	if flags.Changed("root") {
		override.RootSelector = f.root
	}
	if flags.Changed("scope") {
		override.Scope = domain.CountScope(f.scope)
	}
	if flags.Changed("parser") {
		override.ParserMode = domain.ParserMode(f.parser)
	}
	if flags.Changed("render") {
		override.Render = f.render
	}
	if flags.Changed("concurrency") {
		if f.concurrency < 0 {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid --concurrency %d", f.concurrency), nil)
		}
		override.Concurrency = f.concurrency
	}
	if flags.Changed("user-agent") {
		override.UserAgent = f.userAgent
	}

	merged := loader.MergeConfig(base, override)
	// MergeConfig skips zero values, so explicit false and 0 are applied here.
	if flags.Changed("render") {
		merged.Render = f.render
	}
	if flags.Changed("concurrency") {
		merged.Concurrency = f.concurrency
	}
	return merged, nil
}

// newAnalysisService wires the loader, progress bar and logger for a request
func newAnalysisService(req *domain.AnalysisRequest, pm domain.ProgressManager) *service.DOMAnalysisServiceImpl {
	opts := fetcher.Options{
		UserAgent:      req.UserAgent,
		MaxBytes:       req.MaxFetchBytes,
		Timeout:        req.FetchTimeout,
		Render:         req.Render,
		ViewportWidth:  req.ViewportWidth,
		ViewportHeight: req.ViewportHeight,
	}
	loader := fetcher.NewLoader(opts, fetcher.WithLogger(logger))
	return service.NewDOMAnalysisService(loader, pm, logger)
}

// colorEnabled reports whether styled output should be written to w
func colorEnabled(w io.Writer, configured, noColor bool) bool {
	if !configured || noColor || color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
