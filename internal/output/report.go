// Package output renders analysis results as markdown reports.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/strrl/fakeprofile/internal/detector"
)

type Generator struct {
	outputDir string
}

const topImportanceCount = 5

func NewGenerator(outputDir string) *Generator {
	return &Generator{
		outputDir: outputDir,
	}
}

// WriteReport renders res into <outputDir>/reports/<platform>-<username>.md
// and returns the written path.
func (g *Generator) WriteReport(res *detector.Result) (string, error) {
	reportsDir := filepath.Join(g.outputDir, "reports")
	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	username := "unknown"
	platform := "unknown"
	if res.Profile != nil {
		username = res.Profile.Username
		platform = res.Profile.Platform
	}

	filename := filepath.Join(reportsDir, fmt.Sprintf("%s-%s.md",
		sanitizeFilename(platform), sanitizeFilename(username)))

	if err := os.WriteFile(filename, []byte(g.render(res, username, platform)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return filename, nil
}

func (g *Generator) render(res *detector.Result, username, platform string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Profile Analysis: %s (%s)\n\n", username, platform))
	sb.WriteString(fmt.Sprintf("**Verdict:** %s\n", verdictLabel(res.IsFake)))
	sb.WriteString(fmt.Sprintf("**Fake probability:** %.1f%% %s\n", res.Probability*100, gauge(res.Probability)))
	sb.WriteString(fmt.Sprintf("**Analyzed:** %s\n\n", res.Timestamp.Format("2006-01-02 15:04:05 UTC")))

	if res.Profile != nil {
		sb.WriteString("## Profile\n\n")
		if res.Profile.URL != "" {
			sb.WriteString(fmt.Sprintf("- **URL:** %s\n", res.Profile.URL))
		}
		if res.Profile.CreationDate != "" {
			sb.WriteString(fmt.Sprintf("- **Created:** %s\n", res.Profile.CreationDate))
		}
		sb.WriteString(fmt.Sprintf("- **Followers:** %d\n", res.Profile.FollowersCount))
		sb.WriteString(fmt.Sprintf("- **Following:** %d\n", res.Profile.FollowingCount))
		sb.WriteString(fmt.Sprintf("- **Posts analyzed:** %d\n\n", len(res.Profile.Posts)))
	}

	sb.WriteString("## Indicators\n\n")
	if len(res.Indicators) == 0 {
		sb.WriteString("No suspicious indicators detected.\n\n")
	} else {
		sb.WriteString("| Indicator | Severity | Description |\n")
		sb.WriteString("|-----------|----------|-------------|\n")
		for _, ind := range res.Indicators {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", ind.Name, ind.Severity, ind.Description))
		}
		sb.WriteString("\n")
	}

	if len(res.FeatureImportance) > 0 {
		sb.WriteString("## Top Feature Importance\n\n")
		for _, item := range topImportances(res.FeatureImportance, topImportanceCount) {
			sb.WriteString(fmt.Sprintf("- %s: %.3f\n", item.name, item.value))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Recommendations\n\n")
	for _, rec := range res.Recommendations {
		sb.WriteString(fmt.Sprintf("- %s\n", rec))
	}

	return sb.String()
}

func verdictLabel(isFake bool) string {
	if isFake {
		return "LIKELY FAKE"
	}
	return "Likely genuine"
}

// gauge renders a ten-slot probability bar.
func gauge(p float64) string {
	filled := int(p * 10)
	if filled > 10 {
		filled = 10
	}
	return "`[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]`"
}

type importanceItem struct {
	name  string
	value float64
}

func topImportances(imp map[string]float64, n int) []importanceItem {
	items := make([]importanceItem, 0, len(imp))
	for name, value := range imp {
		items = append(items, importanceItem{name, value})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].value != items[j].value {
			return items[i].value > items[j].value
		}
		return items[i].name < items[j].name
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func sanitizeFilename(s string) string {
	reg := regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	result := reg.ReplaceAllString(s, "-")
	result = strings.Trim(result, "-")
	if len(result) > 50 {
		result = result[:50]
	}
	if result == "" {
		result = "unnamed"
	}
	return strings.ToLower(result)
}
