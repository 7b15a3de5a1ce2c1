package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/dashboard"
	"github.com/wonny/eventlens/internal/dataset"
	"github.com/wonny/eventlens/internal/render"
	"github.com/wonny/eventlens/internal/style"
	"github.com/wonny/eventlens/pkg/config"
	"github.com/wonny/eventlens/pkg/logger"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "데이터셋 상태 확인",
	Long: `모든 데이터셋을 로드하여 사용 가능 여부를 확인합니다.

--render 옵션을 주면 브라우저 없이 전체 화면을 그려보고
타겟별 차트 인스턴스가 하나만 남는지 검사합니다.

Example:
  go run ./cmd/eventlens check
  go run ./cmd/eventlens check --render`,
	RunE: runCheck,
}

var (
	checkRender bool
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkRender, "render", false, "헤드리스 렌더 검사")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg)
	out := cmd.OutOrStdout()

	loader := dataset.NewLoader(dataset.NewSource(cfg, log), log, nil)
	store, loadErr := loader.LoadAll(cmd.Context())

	PrintHeader(out, "Dataset Check")
	PrintKeyValue(out, "Root", cfg.DataRoot(), 6)
	fmt.Fprintln(out)
	printStatus(out, store)

	if failed := dataset.FailedDatasets(loadErr); len(failed) > 0 {
		PrintWarning(out, fmt.Sprintf("%d of %d datasets unavailable", len(failed), len(contracts.DatasetNames())))
	}
	if store.Available() == 0 {
		PrintError(out, "No datasets available")
		return fmt.Errorf("no datasets available under %s", cfg.DataRoot())
	}

	if checkRender {
		report := renderCheck(cfg, store, log)
		printRenderReport(out, report)
		if len(report.Leaks) > 0 {
			return fmt.Errorf("stale chart instances on %v", report.Leaks)
		}
	}

	PrintSuccess(out, "Check passed")
	return nil
}

func printStatus(w io.Writer, store *dataset.Store) {
	widths := []int{28, 10, 40}
	PrintTableHeader(w, []string{"Dataset", "Status", "Error"}, widths)
	for _, st := range store.Status() {
		status := "ok"
		if !st.Available {
			status = "missing"
		}
		PrintTableRow(w, []string{string(st.Name), status, st.Error}, widths)
	}
	fmt.Fprintln(w)
}

// chartUsage is the instance count of one chart target after a headless run
type chartUsage struct {
	Target  string
	Created int
	Live    int
}

// renderReport is the outcome of renderCheck
type renderReport struct {
	EventTypes int
	Charts     []chartUsage
	Leaks      []string // targets left with more than one live instance
}

// renderCheck drives every page through an in-memory engine on a virtual
// clock. Event types are switched without letting deferred steps fire, so
// only the last selection may draw.
func renderCheck(cfg *config.Config, store *dataset.Store, log *logger.Logger) renderReport {
	engine := render.NewMemoryEngine()
	sched := render.NewManualScheduler()
	coord := render.NewCoordinator(engine, sched, log, nil)
	dash := dashboard.New(coord, dashboard.NewMemorySurface(), style.New(cfg.Style), cfg.Render, log, nil)

	dash.OnLoaded(store)
	sched.Flush()

	var report renderReport

	_ = dash.ShowPage(string(contracts.PageEvents))
	results := store.EventTypeResults()
	for _, et := range contracts.EventTypes() {
		if _, ok := results[et]; !ok {
			continue
		}
		_ = dash.SelectEventType(string(et))
		report.EventTypes++
	}
	sched.Flush()

	for _, m := range contracts.HoldingMetrics() {
		_ = dash.SelectHoldingMetric(string(m))
	}
	_ = dash.ShowPage(string(contracts.PageWeights))
	_ = dash.ShowPage(string(contracts.PageHome))
	sched.Flush()

	targets := engine.Targets()
	sort.Strings(targets)
	for _, target := range targets {
		usage := chartUsage{Target: target, Created: engine.Created(target), Live: engine.Live(target)}
		report.Charts = append(report.Charts, usage)
		if usage.Live > 1 {
			report.Leaks = append(report.Leaks, target)
		}
	}

	return report
}

func printRenderReport(w io.Writer, report renderReport) {
	PrintHeader(w, "Headless Render")
	PrintKeyValue(w, "Event types", strconv.Itoa(report.EventTypes), 11)
	fmt.Fprintln(w)

	widths := []int{28, 8, 6}
	PrintTableHeader(w, []string{"Target", "Created", "Live"}, widths)
	for _, c := range report.Charts {
		PrintTableRow(w, []string{c.Target, strconv.Itoa(c.Created), strconv.Itoa(c.Live)}, widths)
	}
	fmt.Fprintln(w)
}
