package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/strrl/fakeprofile/internal/db"
	"github.com/strrl/fakeprofile/internal/detector"
	"github.com/strrl/fakeprofile/internal/logging"
	"github.com/strrl/fakeprofile/internal/output"
	"github.com/strrl/fakeprofile/internal/source"
)

var (
	batchFile     string
	batchPlatform string
	batchConfig   string
	batchModel    string
	batchOut      string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze a list of profiles",
	Long: `Analyze every profile listed in a file, one username or profile URL per
line (or first CSV column). Results are stored in DuckDB under a fresh run
ID; a failure on one profile does not stop the rest.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Path to the profile list (.csv or plain text)")
	batchCmd.Flags().StringVar(&batchPlatform, "platform", "twitter", "Platform: twitter, instagram or facebook")
	batchCmd.Flags().StringVarP(&batchConfig, "config", "c", "", "Path to YAML config file")
	batchCmd.Flags().StringVar(&batchModel, "model", "", "Path to trained model file (overrides config)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "Directory for per-profile markdown reports (default: none)")
	batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(batchConfig, batchModel)
	if err != nil {
		return err
	}

	log := logging.New("fakeprofile")
	det, err := detector.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize detector: %w", err)
	}

	store, err := db.OpenStore()
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}

	inputs, err := store.ReadProfileList(batchFile)
	if err != nil {
		return fmt.Errorf("failed to read profile list: %w", err)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no profiles found in %s", batchFile)
	}

	runID := uuid.NewString()
	fmt.Printf("Batch run %s: analyzing %d profiles on %s\n", runID, len(inputs), batchPlatform)

	var gen *output.Generator
	if batchOut != "" {
		gen = output.NewGenerator(batchOut)
	}

	entries := make([]db.BatchEntry, 0, len(inputs))
	for i, input := range inputs {
		entry := analyzeOne(det, gen, input, batchPlatform)
		entries = append(entries, entry)

		var status string
		if entry.Err != nil {
			status = "failed: " + entry.Err.Error()
		} else if entry.Result.IsFake {
			status = fmt.Sprintf("FAKE (%.0f%%)", entry.Result.Probability*100)
		} else {
			status = fmt.Sprintf("genuine (%.0f%%)", entry.Result.Probability*100)
		}
		fmt.Printf("  [%d/%d] %s: %s\n", i+1, len(inputs), entry.Username, status)
	}

	if err := store.SaveResults(runID, entries); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	summary, err := store.SummarizeRun(runID)
	if err != nil {
		return fmt.Errorf("failed to summarize run: %w", err)
	}
	fmt.Printf("Done: %d analyzed, %d flagged fake, %d failed\n",
		summary.Total, summary.FakeCount, summary.Failed)

	return nil
}

// analyzeOne isolates per-profile failures so one bad input never aborts the
// batch.
func analyzeOne(det *detector.Detector, gen *output.Generator, input, platform string) db.BatchEntry {
	entry := db.BatchEntry{Username: input, Platform: platform}

	username, err := source.ExtractUsername(input, platform)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Username = username

	rec, err := source.Fetch(input, platform)
	if err != nil {
		entry.Err = err
		return entry
	}

	res, err := det.Analyze(rec)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Result = res

	if gen != nil {
		if _, err := gen.WriteReport(res); err != nil {
			entry.Err = err
		}
	}
	return entry
}
