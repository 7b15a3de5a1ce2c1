package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/eventlens/internal/api"
	"github.com/wonny/eventlens/pkg/logger"
	"github.com/wonny/eventlens/pkg/metrics"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "대시보드 서버 시작",
	Long: `대시보드 HTTP 서버를 시작합니다.

Endpoints:
  GET  /                         - 대시보드 페이지
  GET  /ws                       - 렌더 세션 (WebSocket)
  GET  /health                   - Health check
  GET  /api/datasets             - 데이터셋 로드 상태
  GET  /api/rankings/medals      - 이벤트 유형별 메달 순위
  GET  /api/snapshots/nav.png    - NAV 스냅샷 (?eventType=<code>)
  GET  /metrics                  - Prometheus metrics

Example:
  go run ./cmd/eventlens serve
  go run ./cmd/eventlens serve --port 9000`,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP 포트 (기본값: PORT 환경변수)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger + metrics
	log := logger.New(cfg)
	m := metrics.New("").WithRuntimeCollectors()

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
		"data": cfg.DataRoot(),
	}).Info("Initializing dashboard server")

	// 3. Wire app + server
	app := api.NewApp(cfg, log, m)
	server := api.New(cfg, log, app.Router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	out := cmd.OutOrStdout()
	PrintSuccess(out, fmt.Sprintf("Server running on http://localhost:%s", cfg.Port))
	PrintInfo(out, "Press Ctrl+C to stop")

	// 4. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-quit:
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Sessions.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("Sessions did not close in time")
	}
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
