package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/1F47E/geo-index-kdtree/pkg/logger"
)

const fileEnv = "GEO_KDTREE_FILE"

var (
	datasetFile      string
	verbose          bool
	logLevel         string
	logFormat        string
	balanceAfterLoad bool
)

var rootCmd = &cobra.Command{
	Use:   "geo-kdtree",
	Short: "KD-tree based geographical indexing",
	Long: `Index places from a YAML or JSON dataset in a two-dimensional KD-tree and
query them by radius, nearest neighbour or bounding box.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&datasetFile, "file", "f", "places.yaml", "Dataset file path (env "+fileEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (env LOG_FORMAT)")
	rootCmd.PersistentFlags().BoolVar(&balanceAfterLoad, "balance", true, "Rebalance the tree after loading the dataset")

	rootCmd.AddCommand(radiusCmd, nearestCmd, boxCmd, statsCmd, generateCmd, benchCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	level := logLevel
	if level == "" && verbose {
		level = "debug"
	}
	log := logger.Setup(level, logFormat)

	if !cmd.Flags().Changed("file") {
		if f := os.Getenv(fileEnv); f != "" {
			datasetFile = f
		}
	}
	log.Debug("configured", "command", cmd.Name(), "file", datasetFile, "balance", balanceAfterLoad)
	return nil
}

func main() {
	// A missing .env is fine; flags and the process environment still apply.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
