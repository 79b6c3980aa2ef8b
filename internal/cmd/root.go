package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fakeprofile",
	Short: "Detect fake social media profiles",
	Long: `fakeprofile analyzes social media profiles for signs of being fake:
suspicious content patterns, abnormal posting activity, generated or stock
profile pictures, and isolated follower networks.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Optional, absence is fine.
	_ = godotenv.Load()
	rootCmd.CompletionOptions.HiddenDefaultCmd = false
}
