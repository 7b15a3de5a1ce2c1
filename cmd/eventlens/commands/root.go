package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/eventlens/pkg/config"
)

var (
	// Global flags
	env     string
	dataDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eventlens",
	Short: "EventLens - 이벤트 기반 백테스트 결과 대시보드",
	Long: `EventLens CLI

사전 계산된 백테스트 JSON 데이터셋을 읽어 대시보드로 제공합니다.

Usage:
  go run ./cmd/eventlens [command]

Examples:
  go run ./cmd/eventlens serve
  go run ./cmd/eventlens check --render
  go run ./cmd/eventlens snapshot --out nav.png`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "dataset directory (overrides DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the environment and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if env != "" {
		cfg.Env = env
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
		cfg.Data.BaseURL = ""
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}
