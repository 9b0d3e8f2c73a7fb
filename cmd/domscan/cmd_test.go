package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/domscan/domain"
	"github.com/ludo-technologies/domscan/internal/config"
	"github.com/ludo-technologies/domscan/internal/constants"
	"github.com/ludo-technologies/domscan/internal/testutil"
)

const smallPage = `<html><head></head><body><main id="app"><p>a</p><p>b</p></main></body></html>`

func wideList(n int) string {
	var sb strings.Builder
	sb.WriteString("<html><body><ul>")
	for i := 0; i < n; i++ {
		sb.WriteString("<li>x</li>")
	}
	sb.WriteString("</ul></body></html>")
	return sb.String()
}

// execute runs the root command with args and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DOMSCAN_NO_PROGRESS", "1")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCmd_FlagsExist(t *testing.T) {
	cmd := analyzeCmd()

	expectedFlags := []string{"format", "json", "output", "root", "scope", "parser", "render",
		"concurrency", "config", "no-color", "no-recommendations", "user-agent"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestAnalyzeCmd_ShortFlags(t *testing.T) {
	cmd := analyzeCmd()

	shortFlags := map[string]string{
		"f": "format",
		"o": "output",
		"r": "root",
		"c": "config",
	}

	for short, long := range shortFlags {
		if cmd.Flags().ShorthandLookup(short) == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestAnalyzeCmd_DefaultValues(t *testing.T) {
	cmd := analyzeCmd()

	defaults := map[string]string{
		"format": "text",
		"scope":  "document",
		"root":   "body",
		"parser": "auto",
	}
	for name, want := range defaults {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			t.Fatalf("%s flag not found", name)
		}
		if flag.DefValue != want {
			t.Errorf("Expected default %s to be %q, got %q", name, want, flag.DefValue)
		}
	}
}

func TestAnalyzeCmd_NoPathsError(t *testing.T) {
	if _, err := execute(t, "analyze"); err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WriteFile(t, dir, "index.html", smallPage)

	out, err := execute(t, "analyze", "--json", page)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var resp domain.AnalysisResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(resp.Documents) != 1 {
		t.Fatalf("expected one document, got %d", len(resp.Documents))
	}
	report := resp.Documents[0].Report
	// html, head, body, main, p, p with the document scope default
	if report.TotalNodeCount != 6 || report.Scope != domain.ScopeDocument {
		t.Errorf("unexpected report: nodes=%d scope=%s", report.TotalNodeCount, report.Scope)
	}
}

func TestAnalyzeCmd_RootAndScopeFlags(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WriteFile(t, dir, "index.html", smallPage)

	out, err := execute(t, "analyze", "-f", "json", "--root", "#app", "--scope", "subtree", page)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var resp domain.AnalysisResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got := resp.Documents[0].Report.TotalNodeCount; got != 3 {
		t.Errorf("Expected 3 nodes under main#app, got %d", got)
	}
	if resp.Documents[0].Root != "main#app" {
		t.Errorf("Expected root main#app, got %s", resp.Documents[0].Root)
	}
}

func TestAnalyzeCmd_TextOutput(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WriteFile(t, dir, "index.html", smallPage)

	out, err := execute(t, "analyze", "--no-color", page)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for _, want := range []string{"DOM Complexity Report", "Total DOM nodes", "EXCELLENT"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeCmd_OutputFile(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WriteFile(t, dir, "index.html", smallPage)
	outPath := filepath.Join(dir, "report.html")

	if _, err := execute(t, "analyze", "--format", "html", "-o", outPath, page); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("expected an HTML report")
	}
}

func TestAnalyzeCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WriteFile(t, dir, "index.html", smallPage)
	cfgPath := testutil.WriteFile(t, dir, "custom.yaml", "analysis:\n  scope: subtree\noutput:\n  format: json\n")

	out, err := execute(t, "analyze", "-c", cfgPath, page)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var resp domain.AnalysisResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("format from config should be json: %v", err)
	}
	if resp.Documents[0].Report.Scope != domain.ScopeSubtree {
		t.Errorf("scope from config should be subtree, got %s", resp.Documents[0].Report.Scope)
	}
}

func TestBuildRequest_ExplicitFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WriteFile(t, dir, "index.html", smallPage)
	cfgPath := testutil.WriteFile(t, dir, "custom.yaml",
		"fetch:\n  render: true\nperformance:\n  max_goroutines: 4\n")

	tests := []struct {
		name            string
		args            []string
		wantRender      bool
		wantConcurrency int
	}{
		{"config values kept", []string{"-c", cfgPath, page}, true, 4},
		{"render disabled", []string{"-c", cfgPath, "--render=false", page}, false, 4},
		{"concurrency reset", []string{"-c", cfgPath, "--concurrency", "0", page}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := &requestFlags{}
			cmd := &cobra.Command{Use: "analyze"}
			flags.bind(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}

			req, err := flags.buildRequest(cmd, cmd.Flags().Args())
			if err != nil {
				t.Fatalf("buildRequest failed: %v", err)
			}
			if req.Render != tt.wantRender {
				t.Errorf("Render = %v, want %v", req.Render, tt.wantRender)
			}
			if req.Concurrency != tt.wantConcurrency {
				t.Errorf("Concurrency = %d, want %d", req.Concurrency, tt.wantConcurrency)
			}
		})
	}
}

func TestAnalyzeCmd_InvalidScope(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WriteFile(t, dir, "index.html", smallPage)

	_, err := execute(t, "analyze", "--scope", "page", page)
	if !domain.IsInvalidInput(err) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	for _, flagName := range []string{"fail-on", "json", "config", "root", "scope", "parser", "render", "concurrency"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
	if cmd.Flags().Lookup("fail-on").DefValue != "critical" {
		t.Error("Expected default fail-on to be critical")
	}
}

func TestCheckCmd_NoPathsError(t *testing.T) {
	_, err := execute(t, "check")

	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) || exitErr.Code != constants.ExitError {
		t.Errorf("expected exit code 2, got %v", err)
	}
}

func TestCheckCmd_Pass(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "index.html", smallPage)

	out, err := execute(t, "check", dir)
	if err != nil {
		t.Fatalf("check should pass: %v", err)
	}
	if !strings.HasPrefix(out, "PASS") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestCheckCmd_Violation(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WriteFile(t, dir, "wide.html", wideList(65))

	out, err := execute(t, "check", "--json", page)

	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) || exitErr.Code != constants.ExitViolation {
		t.Fatalf("expected exit code 1, got %v", err)
	}

	var result domain.CheckResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.Passed || len(result.Violations) != 1 {
		t.Fatalf("expected one violation, got %+v", result)
	}
	if result.Violations[0].Metric != string(domain.MetricLargestChildCount) || result.Violations[0].Actual != "65" {
		t.Errorf("unexpected violation: %+v", result.Violations[0])
	}
}

func TestCheckCmd_FailOnWarning(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WriteFile(t, dir, "medium.html", wideList(30))

	if _, err := execute(t, "check", page); err != nil {
		t.Fatalf("30 children is only a warning, check should pass by default: %v", err)
	}

	_, err := execute(t, "check", "--fail-on", "warning", page)
	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) || exitErr.Code != constants.ExitViolation {
		t.Errorf("expected exit code 1 with --fail-on warning, got %v", err)
	}
}

func TestCheckCmd_InvalidFailOn(t *testing.T) {
	dir := t.TempDir()
	page := testutil.WriteFile(t, dir, "index.html", smallPage)

	_, err := execute(t, "check", "--fail-on", "never", page)
	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) || exitErr.Code != constants.ExitError {
		t.Errorf("expected exit code 2, got %v", err)
	}
}

func TestCheckCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "check", filepath.Join(t.TempDir(), "missing.html"))

	var exitErr *CheckExitError
	if !errors.As(err, &exitErr) || exitErr.Code != constants.ExitError {
		t.Errorf("expected exit code 2, got %v", err)
	}
}

func TestCheckExitError_Error(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("Error() should return message, got '%s'", err.Error())
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "domscan version ") {
		t.Errorf("unexpected version output: %q", out)
	}

	out, err = execute(t, "version", "-v")
	if err != nil {
		t.Fatalf("version -v failed: %v", err)
	}
	if !strings.Contains(out, "commit") {
		t.Errorf("verbose version should include build details: %q", out)
	}
}

func TestInitCommand_BasicConfigCreation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), constants.ConfigFileName)

	if _, err := execute(t, "init", "--config", configPath); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	for _, section := range []string{"analysis:", "fetch:", "output:", "check:", "performance:"} {
		if !strings.Contains(string(content), section) {
			t.Errorf("Config file missing expected section: %s", section)
		}
	}

	// the generated file must load and validate
	if _, err := config.LoadConfig(configPath); err != nil {
		t.Errorf("generated config does not load: %v", err)
	}
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), constants.ConfigFileName)
	if err := os.WriteFile(configPath, []byte("# existing\n"), 0644); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	if _, err := execute(t, "init", "--config", configPath); err == nil {
		t.Error("init should refuse to overwrite without --force")
	}

	if _, err := execute(t, "init", "--config", configPath, "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	content, _ := os.ReadFile(configPath)
	if strings.Contains(string(content), "# existing") {
		t.Error("file should have been overwritten")
	}
}

func TestInitCommand_MinimalConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), constants.ConfigFileName)

	if _, err := execute(t, "init", "--config", configPath, "--minimal"); err != nil {
		t.Fatalf("init --minimal failed: %v", err)
	}

	minimal, _ := os.ReadFile(configPath)
	if strings.Contains(string(minimal), "#") {
		t.Error("minimal config should not carry comments")
	}
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("minimal config does not load: %v", err)
	}
	if loaded.Check.FailOn != config.DefaultFailOn || loaded.Analysis.Root != domain.DefaultRootSelector {
		t.Errorf("minimal config should hold the generic preset: %+v", loaded)
	}
}

func TestInitCommand_InvalidDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "missing", constants.ConfigFileName)

	if _, err := execute(t, "init", "--config", configPath); err == nil {
		t.Error("expected error for a missing parent directory")
	}
}

func TestInitCmd_FlagsExist(t *testing.T) {
	cmd := initCmd()

	for _, flagName := range []string{"config", "force", "minimal", "interactive"} {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
	if cmd.Flags().Lookup("config").DefValue != ".domscan.yaml" {
		t.Error("Expected default config path .domscan.yaml")
	}
}
