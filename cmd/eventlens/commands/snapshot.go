package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/dataset"
	"github.com/wonny/eventlens/internal/snapshot"
	"github.com/wonny/eventlens/internal/style"
	"github.com/wonny/eventlens/pkg/logger"
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "NAV 차트 PNG 저장",
	Long: `전체 또는 이벤트 유형별 NAV 시계열을 PNG로 저장합니다.

Example:
  go run ./cmd/eventlens snapshot --out nav.png
  go run ./cmd/eventlens snapshot --out dividend.png --event-type 分红转送`,
	RunE: runSnapshot,
}

var (
	snapshotOut       string
	snapshotEventType string
)

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "nav.png", "출력 파일")
	snapshotCmd.Flags().StringVar(&snapshotEventType, "event-type", "", "이벤트 유형 코드 (기본값: 전체 NAV)")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg)
	loader := dataset.NewLoader(dataset.NewSource(cfg, log), log, nil)

	var (
		nav   contracts.NavSeries
		title = "Net Asset Value"
	)

	if snapshotEventType == "" {
		store, err := loader.Load(cmd.Context(), contracts.DatasetNavTimeseries)
		if err != nil {
			return fmt.Errorf("load nav timeseries: %w", err)
		}
		if store.Nav() == nil {
			return fmt.Errorf("nav timeseries is empty")
		}
		nav = *store.Nav()
	} else {
		et, ok := contracts.ParseEventType(snapshotEventType)
		if !ok {
			return fmt.Errorf("unknown event type %q", snapshotEventType)
		}
		store, err := loader.Load(cmd.Context(), contracts.DatasetEventTypeNav)
		if err != nil {
			return fmt.Errorf("load event type nav: %w", err)
		}
		nav, ok = store.EventNav().For(et)
		if !ok {
			return fmt.Errorf("no NAV data for %s", et.DisplayName())
		}
		title = et.DisplayName() + " - Net Asset Value"
	}

	f, err := os.Create(snapshotOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", snapshotOut, err)
	}
	defer f.Close()

	if err := snapshot.New(style.New(cfg.Style)).NavPNG(f, title, nav); err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Saved %s (%d series, %d points)", snapshotOut, len(nav.Series), len(nav.Dates)))
	return nil
}
