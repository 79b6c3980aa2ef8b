package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strrl/fakeprofile/internal/config"
	"github.com/strrl/fakeprofile/internal/detector"
	"github.com/strrl/fakeprofile/internal/logging"
	"github.com/strrl/fakeprofile/internal/output"
	"github.com/strrl/fakeprofile/internal/profile"
	"github.com/strrl/fakeprofile/internal/source"
)

var (
	analyzeProfile  string
	analyzePlatform string
	analyzeConfig   string
	analyzeModel    string
	analyzeInput    string
	analyzeReport   bool
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a single profile",
	Long: `Analyze one profile for signs of being fake. The profile is given as a
username or profile URL, or as a JSON file with the full profile data.
Prints a human-readable summary; --json emits the full result instead.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeProfile, "profile", "p", "", "Username or profile URL to analyze")
	analyzeCmd.Flags().StringVar(&analyzePlatform, "platform", "twitter", "Platform: twitter, instagram or facebook")
	analyzeCmd.Flags().StringVarP(&analyzeConfig, "config", "c", "", "Path to YAML config file")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Path to trained model file (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "Path to a JSON file with profile data")
	analyzeCmd.Flags().BoolVar(&analyzeReport, "report", false, "Write a markdown report to reports/")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full result as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeProfile == "" && analyzeInput == "" {
		return fmt.Errorf("either --profile or --input is required")
	}

	cfg, err := loadConfig(analyzeConfig, analyzeModel)
	if err != nil {
		return err
	}

	log := logging.New("fakeprofile")
	det, err := detector.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize detector: %w", err)
	}

	rec, err := loadRecord()
	if err != nil {
		return err
	}

	fmt.Printf("Analyzing profile: %s (%s)\n", rec.Username, rec.Platform)

	res, err := det.Analyze(rec)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printSummary(res)

	if analyzeReport {
		gen := output.NewGenerator(".")
		path, err := gen.WriteReport(res)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", path)
	}

	return nil
}

func loadConfig(path, modelOverride string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if modelOverride != "" {
		cfg.ModelPath = modelOverride
	}
	return cfg, nil
}

func loadRecord() (*profile.Record, error) {
	if analyzeInput != "" {
		data, err := os.ReadFile(analyzeInput)
		if err != nil {
			return nil, fmt.Errorf("failed to read profile file: %w", err)
		}
		var rec profile.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse profile file: %w", err)
		}
		if rec.Platform == "" {
			rec.Platform = analyzePlatform
		}
		if rec.Username == "" {
			return nil, fmt.Errorf("profile file has no username")
		}
		return &rec, nil
	}
	return source.Fetch(analyzeProfile, analyzePlatform)
}

func printSummary(res *detector.Result) {
	if res.IsFake {
		fmt.Printf("Verdict: LIKELY FAKE (%.1f%% probability)\n", res.Probability*100)
	} else {
		fmt.Printf("Verdict: likely genuine (%.1f%% fake probability)\n", res.Probability*100)
	}

	if len(res.Indicators) > 0 {
		fmt.Printf("Indicators (%d):\n", len(res.Indicators))
		for _, ind := range res.Indicators {
			fmt.Printf("  - [%s] %s: %s\n", ind.Severity, ind.Name, ind.Description)
		}
	} else {
		fmt.Println("No suspicious indicators detected.")
	}

	fmt.Println("Recommendations:")
	for _, rec := range res.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}
}
