package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/domscan/domain"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct {
	color               bool
	showRecommendations bool
}

// NewOutputFormatter creates a new output formatter. Color is off until
// SetColor is called.
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{showRecommendations: true}
}

// SetColor toggles ANSI styling in text output
func (f *OutputFormatterImpl) SetColor(enabled bool) {
	f.color = enabled
}

// SetShowRecommendations toggles the recommendation list in text and HTML output
func (f *OutputFormatterImpl) SetShowRecommendations(enabled bool) {
	f.showRecommendations = enabled
}

// WriteJSON writes data as JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// Format renders the response into a string
func (f *OutputFormatterImpl) Format(response *domain.AnalysisResponse, format domain.OutputFormat) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(response, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write writes the analysis response in the specified format
func (f *OutputFormatterImpl) Write(response *domain.AnalysisResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewOutputError("nothing to write", nil)
	}

	var err error
	switch format {
	case domain.OutputFormatText, "":
		err = f.writeText(response, writer)
	case domain.OutputFormatJSON:
		err = WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		err = WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		err = f.writeCSV(response, writer)
	case domain.OutputFormatHTML:
		err = f.WriteHTML(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to write %s output", format), err)
	}
	return nil
}

var csvHeader = []string{
	"source", "root", "parser", "scope",
	"total_node_count", "total_node_count_status",
	"max_depth", "max_depth_status",
	"largest_child_count", "largest_child_count_status",
	"largest_parent", "deepest_element", "overall_status",
}

// writeCSV writes one row per analyzed document
func (f *OutputFormatterImpl) writeCSV(response *domain.AnalysisResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, doc := range response.Documents {
		r := doc.Report
		if r == nil {
			continue
		}
		record := []string{doc.Source, doc.Root, string(doc.ParserMode), string(r.Scope)}
		for _, m := range domain.Metrics {
			record = append(record, strconv.Itoa(r.Value(m)), string(r.StatusByMetric[m]))
		}
		record = append(record,
			r.LargestParent.Identifier,
			r.DeepestElement.Identifier,
			string(r.OverallStatus))
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// writeText writes the response as a human readable report
func (f *OutputFormatterImpl) writeText(response *domain.AnalysisResponse, writer io.Writer) error {
	heading := color.New(color.Bold, color.FgCyan)
	bold := color.New(color.Bold)
	if f.color {
		heading.EnableColor()
		bold.EnableColor()
	} else {
		heading.DisableColor()
		bold.DisableColor()
	}

	heading.Fprintln(writer, "DOM Complexity Report")
	fmt.Fprintln(writer, strings.Repeat("=", len("DOM Complexity Report")))
	fmt.Fprintln(writer)

	for _, doc := range response.Documents {
		if doc.Report == nil {
			continue
		}
		f.writeDocumentText(writer, bold, doc)
	}

	s := response.Summary
	heading.Fprintln(writer, "Summary")
	fmt.Fprintf(writer, "  Documents analyzed: %d\n", s.DocumentsAnalyzed)
	if s.DocumentsFailed > 0 {
		fmt.Fprintf(writer, "  Documents failed:   %d\n", s.DocumentsFailed)
	}
	fmt.Fprintf(writer, "  Excellent: %d  Acceptable: %d  Needs optimization: %d\n",
		s.ExcellentDocuments, s.AcceptableDocuments, s.NeedsOptimizationDocuments)
	if s.DocumentsAnalyzed > 1 {
		fmt.Fprintf(writer, "  Nodes: avg %.1f (sd %.1f), max %d\n", s.AverageNodeCount, s.StdDevNodeCount, s.MaxNodeCount)
		fmt.Fprintf(writer, "  Depth: avg %.1f (sd %.1f), max %d\n", s.AverageMaxDepth, s.StdDevMaxDepth, s.MaxDepth)
	}
	fmt.Fprintf(writer, "  Worst status: %s\n", f.overallBadge(s.WorstStatus))

	if len(response.Warnings) > 0 {
		fmt.Fprintln(writer)
		heading.Fprintln(writer, "Warnings")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}
	if len(response.Errors) > 0 {
		fmt.Fprintln(writer)
		heading.Fprintln(writer, "Errors")
		for _, e := range response.Errors {
			fmt.Fprintf(writer, "  - %s\n", e)
		}
	}
	return nil
}

func (f *OutputFormatterImpl) writeDocumentText(writer io.Writer, bold *color.Color, doc domain.DocumentResult) {
	r := doc.Report

	bold.Fprintln(writer, doc.Source)
	fmt.Fprintf(writer, "root: %s  parser: %s  scope: %s\n\n", doc.Root, doc.ParserMode, r.Scope)

	table := tablewriter.NewTable(writer,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)
	table.Header([]string{"Metric", "Value", "Status", "Excellent <=", "Warning <="})
	for _, m := range domain.Metrics {
		th := domain.Thresholds[m]
		table.Append([]string{
			m.Label(),
			strconv.Itoa(r.Value(m)),
			string(r.StatusByMetric[m]),
			strconv.Itoa(th.Excellent),
			strconv.Itoa(th.Warning),
		})
	}
	table.Render()
	fmt.Fprintln(writer)

	if r.LargestParent.Identifier != "" {
		fmt.Fprintf(writer, "Largest parent:  %s (%d children)\n", r.LargestParent.Path, r.LargestParent.ChildCount)
	}
	if r.DeepestElement.Identifier != "" {
		fmt.Fprintf(writer, "Deepest element: %s (depth %d)\n", r.DeepestElement.Path, r.DeepestElement.Depth)
	}
	fmt.Fprintf(writer, "Overall:         %s\n", f.overallBadge(r.OverallStatus))

	for _, w := range doc.Warnings {
		fmt.Fprintf(writer, "Warning: %s\n", w)
	}

	if f.showRecommendations && len(r.Recommendations) > 0 {
		fmt.Fprintln(writer, "\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(writer, "  • %s %s\n", f.severityBadge(rec.Severity), rec.Message)
		}
	}
	fmt.Fprintln(writer)
}

var (
	badgeBase = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF"))

	badgeExcellent = badgeBase.Background(lipgloss.Color("#10B981"))
	badgeWarning   = badgeBase.Background(lipgloss.Color("#F59E0B"))
	badgeCritical  = badgeBase.Background(lipgloss.Color("#EF4444"))
)

func (f *OutputFormatterImpl) overallBadge(status domain.OverallStatus) string {
	if !f.color {
		return string(status)
	}
	switch status {
	case domain.OverallExcellent:
		return badgeExcellent.Render(string(status))
	case domain.OverallAcceptable:
		return badgeWarning.Render(string(status))
	default:
		return badgeCritical.Render(string(status))
	}
}

func (f *OutputFormatterImpl) severityBadge(severity domain.Severity) string {
	label := "[" + string(severity) + "]"
	if !f.color {
		return label
	}
	if severity == domain.SeverityCritical {
		return badgeCritical.Render(string(severity))
	}
	return badgeWarning.Render(string(severity))
}
