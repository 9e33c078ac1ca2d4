package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spf13/cobra"

	"github.com/inkstone-labs/inklist/internal/cli/output"
	intconfig "github.com/inkstone-labs/inklist/internal/config"
	"github.com/inkstone-labs/inklist/pkg/list"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run a project configuration health check",
		Long: `Analyze the project configuration for potential issues.

The doctor command checks the marker grammar, the indentation settings,
and the workspace layout, and provides a report including:
- Project summary (markers, filetypes, indentation)
- Health checks grouped by category (Configuration, Grammar, Workspace)
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  inklist doctor

  # Output as JSON
  inklist doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         ProjectSummary `json:"summary"`
	HealthChecks    []HealthCheck  `json:"health_checks"`
	Score           int            `json:"score"`
	Recommendations []string       `json:"recommendations"`
	IssueCount      int            `json:"issue_count"`
}

// ProjectSummary contains project-level settings.
type ProjectSummary struct {
	ConfigFile  string   `json:"config_file"`
	Markers     []string `json:"markers"`
	ColonMarker string   `json:"colon_marker"`
	Filetypes   []string `json:"filetypes"`
	IndentWidth int      `json:"indent_width"`
	UseTabs     bool     `json:"use_tabs"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID  string   `json:"rule_id"`
	Name    string   `json:"name"`
	Group   string   `json:"group"`
	Status  string   `json:"status"` // "pass", "warn", "error"
	Details []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	configFile := intconfig.FindConfigFile(cfg.ProjectRoot)
	doctorOutput := buildDoctorOutput(cfg.ProjectConfig(), cfg.HistoryFile, configFile)

	// Render based on mode
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func buildDoctorOutput(cfg *intconfig.ProjectConfig, historyFile, configFile string) *DoctorOutput {
	checks := buildDoctorChecks(cfg, historyFile, configFile)

	// Sort health checks by group then by rule ID
	sort.Slice(checks, func(i, j int) bool {
		if checks[i].Group != checks[j].Group {
			return checks[i].Group < checks[j].Group
		}
		return checks[i].RuleID < checks[j].RuleID
	})

	issueCount := 0
	for _, c := range checks {
		if c.Status != "pass" {
			issueCount++
		}
	}

	markers := cfg.Markers
	if len(markers) == 0 {
		markers = list.DefaultMarkers()
	}

	return &DoctorOutput{
		Summary: ProjectSummary{
			ConfigFile:  configFile,
			Markers:     markers,
			ColonMarker: cfg.ColonMarker,
			Filetypes:   cfg.Filetypes,
			IndentWidth: cfg.IndentWidth,
			UseTabs:     cfg.UseTabs,
		},
		HealthChecks:    checks,
		Score:           calculateHealthScore(checks),
		Recommendations: generateRecommendations(checks),
		IssueCount:      issueCount,
	}
}

func buildDoctorChecks(cfg *intconfig.ProjectConfig, historyFile, configFile string) []HealthCheck {
	var checks []HealthCheck

	add := func(id, name, group, status string, details ...string) {
		checks = append(checks, HealthCheck{
			RuleID: id, Name: name, Group: group, Status: status, Details: details,
		})
	}

	// Configuration group
	if configFile == "" {
		add("CF01", "Config file present", "configuration", "warn",
			"no inklist.yaml found, defaults are in use")
	} else {
		add("CF01", "Config file present", "configuration", "pass")
	}

	markers := cfg.Markers
	if len(markers) == 0 {
		markers = list.DefaultMarkers()
	}

	if _, err := cfg.ListConfig(); err != nil {
		add("CF02", "Marker grammar compiles", "configuration", "error", err.Error())
	} else {
		add("CF02", "Marker grammar compiles", "configuration", "pass")
	}

	if cfg.ColonMarker != "" && !containsMarker(markers, cfg.ColonMarker) {
		add("CF03", "Colon marker is a known marker", "configuration", "warn",
			fmt.Sprintf("colon_marker %q is not in the marker list; outdenting a colon child rewrites it to a depth marker", cfg.ColonMarker))
	} else {
		add("CF03", "Colon marker is a known marker", "configuration", "pass")
	}

	if dup := firstDuplicate(markers); dup != "" {
		add("CF04", "Markers are unique", "configuration", "warn",
			fmt.Sprintf("marker %q appears more than once; later copies never match", dup))
	} else {
		add("CF04", "Markers are unique", "configuration", "pass")
	}

	if cfg.IndentWidth > 8 {
		add("CF05", "Indent width is practical", "configuration", "warn",
			fmt.Sprintf("indent_width %d is unusually wide", cfg.IndentWidth))
	} else {
		add("CF05", "Indent width is practical", "configuration", "pass")
	}

	// Grammar group
	shadowing := []string{}
	for _, m := range markers {
		if markerShadowsOrdered(m) {
			shadowing = append(shadowing, m)
		}
	}
	if len(shadowing) > 0 {
		add("GR01", "Markers do not shadow ordered items", "grammar", "warn",
			fmt.Sprintf("markers %v look like ordered prefixes and match before ordered rules", shadowing))
	} else {
		add("GR01", "Markers do not shadow ordered items", "grammar", "pass")
	}

	spaced := []string{}
	for _, m := range markers {
		if strings.ContainsAny(m, " \t") {
			spaced = append(spaced, m)
		}
	}
	if len(spaced) > 0 {
		add("GR02", "Markers carry no whitespace", "grammar", "error",
			fmt.Sprintf("markers %v contain whitespace; hand-typed lines with a single separating space will not match them", spaced))
	} else {
		add("GR02", "Markers carry no whitespace", "grammar", "pass")
	}

	colonMarker := cfg.ColonMarker
	if colonMarker == "" && len(markers) > 0 {
		colonMarker = markers[0]
	}
	switch {
	case strings.ContainsAny(colonMarker, " \t"):
		add("GR03", "Colon marker classifies cleanly", "grammar", "error",
			fmt.Sprintf("colon marker %q contains whitespace", colonMarker))
	case markerShadowsOrdered(colonMarker):
		add("GR03", "Colon marker classifies cleanly", "grammar", "warn",
			fmt.Sprintf("colon marker %q starts with a digit and collides with ordered syntax", colonMarker))
	default:
		add("GR03", "Colon marker classifies cleanly", "grammar", "pass")
	}

	// Workspace group
	if historyFile != "" {
		dir := filepath.Dir(historyFile)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			add("WS01", "History directory exists", "workspace", "pass")
		} else {
			add("WS01", "History directory exists", "workspace", "warn",
				fmt.Sprintf("%s does not exist yet; the repl creates it on first run", dir))
		}
	}

	if len(cfg.Filetypes) == 0 {
		add("WS02", "Filetype activation scoped", "workspace", "warn",
			"empty filetypes list activates gestures in every document")
	} else {
		add("WS02", "Filetype activation scoped", "workspace", "pass")
	}

	return checks
}

func containsMarker(markers []string, m string) bool {
	for _, x := range markers {
		if x == m {
			return true
		}
	}
	return false
}

func firstDuplicate(markers []string) string {
	seen := make(map[string]bool, len(markers))
	for _, m := range markers {
		if seen[m] {
			return m
		}
		seen[m] = true
	}
	return ""
}

// markerShadowsOrdered reports whether a marker starts with a digit, so a
// line like "1. item" would classify as unordered before the ordered rule
// ever runs.
func markerShadowsOrdered(m string) bool {
	return m != "" && m[0] >= '0' && m[0] <= '9'
}

// calculateHealthScore computes a health score from 0-100.
func calculateHealthScore(checks []HealthCheck) int {
	if len(checks) == 0 {
		return 100
	}

	score := 100.0
	for _, check := range checks {
		switch check.Status {
		case "error":
			score -= 25
		case "warn":
			score -= 10
		}
	}

	if score < 0 {
		score = 0
	}
	return int(score)
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	seen := make(map[string]bool)

	for _, check := range checks {
		if check.Status == "pass" {
			continue
		}

		rec := getRecommendation(check.RuleID)
		if rec != "" && !seen[rec] {
			recommendations = append(recommendations, rec)
			seen[rec] = true
		}
	}

	// Limit to top 5 recommendations
	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}

	return recommendations
}

// getRecommendation returns a recommendation for a specific rule.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "CF01":
		return "Run 'inklist init' to create a starter inklist.yaml"
	case "CF02":
		return "Fix the marker list so every marker is a non-empty string"
	case "CF03":
		return "Add the colon marker to the markers list, or pick one from it"
	case "CF04":
		return "Remove duplicate markers from the markers list"
	case "CF05":
		return "Use an indent width between 2 and 8"
	case "GR01":
		return "Avoid markers that start with a digit"
	case "GR02":
		return "Remove whitespace from marker strings"
	case "GR03":
		return "Pick a colon marker without whitespace or a digit prefix"
	case "WS02":
		return "List the document types gestures should be active for under filetypes"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	// Header
	r.Println("")
	r.Println(styles.Header1.Render("inklist Project Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	// Project Summary
	r.Println(styles.Header2.Render("Project Summary"))
	configFile := out.Summary.ConfigFile
	if configFile == "" {
		configFile = "(defaults)"
	}
	r.Printf("   Config: %s\n", configFile)
	r.Printf("   Markers: %s | Colon marker: %s\n",
		strings.Join(out.Summary.Markers, " "), colonMarkerLabel(out.Summary))
	r.Printf("   Indent: %s | Filetypes: %s\n", indentLabel(out.Summary), filetypesLabel(out.Summary))
	r.Println("")

	// Health Checks grouped by category
	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.StatusSuccess.String()
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.StatusFailed.String()
		}

		r.Printf("   %s %s: %s\n", icon, check.RuleID, check.Name)

		// Show first 3 details for issues
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	// Health Score
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	// Recommendations
	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println("# inklist Project Health Report")
	r.Println("")

	// Project Summary
	r.Println("## Project Summary")
	r.Println("")
	configFile := out.Summary.ConfigFile
	if configFile == "" {
		configFile = "(defaults)"
	}
	r.Println(output.FormatKeyValue("Config", configFile))
	r.Println(output.FormatKeyValue("Markers", strings.Join(out.Summary.Markers, " ")))
	r.Println(output.FormatKeyValue("Colon marker", colonMarkerLabel(out.Summary)))
	r.Println(output.FormatKeyValue("Indent", indentLabel(out.Summary)))
	r.Println(output.FormatKeyValue("Filetypes", filetypesLabel(out.Summary)))
	r.Println("")

	// Health Checks
	r.Println("## Health Checks")
	r.Println("")
	currentGroup := ""
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(output.FormatHeader(3, currentGroup))
		}
		r.Printf("- **%s** %s: %s\n", check.Status, check.RuleID, check.Name)
		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	// Score and recommendations
	r.Printf("**Health Score**: %d/100\n", out.Score)
	r.Println("")
	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
	}

	return nil
}

func colonMarkerLabel(s ProjectSummary) string {
	if s.ColonMarker == "" {
		if len(s.Markers) > 0 {
			return fmt.Sprintf("%s (default)", s.Markers[0])
		}
		return "(default)"
	}
	return s.ColonMarker
}

func indentLabel(s ProjectSummary) string {
	if s.UseTabs {
		return "tabs"
	}
	return fmt.Sprintf("%d spaces", s.IndentWidth)
}

func filetypesLabel(s ProjectSummary) string {
	if len(s.Filetypes) == 0 {
		return "(all)"
	}
	return strings.Join(s.Filetypes, ", ")
}
