package dataset

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/pkg/logger"
	"github.com/wonny/eventlens/pkg/metrics"
)

// Loader fetches datasets from a Source
type Loader struct {
	source  Source
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewLoader creates a loader. m may be nil.
func NewLoader(source Source, log *logger.Logger, m *metrics.Metrics) *Loader {
	return &Loader{
		source:  source,
		logger:  log,
		metrics: m,
	}
}

// LoadAll fetches every dataset concurrently and waits for all of them to settle.
// The Store is always returned; a non-nil error lists the slots left empty.
func (l *Loader) LoadAll(ctx context.Context) (*Store, error) {
	return l.Load(ctx, contracts.DatasetNames()...)
}

// Load fetches the named datasets concurrently. Other slots stay absent.
func (l *Loader) Load(ctx context.Context, names ...contracts.DatasetName) (*Store, error) {
	startTime := time.Now()

	bodies := make([][]byte, len(names))
	fetchErrs := make([]error, len(names))

	var g errgroup.Group
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			bodies[i], fetchErrs[i] = l.fetch(ctx, name)
			return nil // 개별 실패는 슬롯 단위로 처리
		})
	}
	_ = g.Wait()

	docs := make(map[contracts.DatasetName][]byte, len(names))
	var errs []error
	for i, name := range names {
		if fetchErrs[i] != nil {
			errs = append(errs, &LoadError{Dataset: name, Err: fetchErrs[i]})
			continue
		}
		docs[name] = bodies[i]
	}

	store, decodeErr := FromDocuments(docs, l.logger)
	for _, e := range errs {
		var le *LoadError
		if errors.As(e, &le) {
			store.fail(le.Dataset, le.Err)
		}
	}
	if decodeErr != nil {
		errs = append(errs, decodeErr)
	}

	for _, name := range names {
		status := "ok"
		if !store.Has(name) {
			status = "error"
		}
		if l.metrics != nil {
			l.metrics.DatasetLoads.WithLabelValues(string(name), status).Inc()
		}
	}

	err := errors.Join(errs...)
	fields := map[string]interface{}{
		"requested": len(names),
		"failed":    len(FailedDatasets(err)),
		"duration":  time.Since(startTime),
	}
	if err != nil {
		l.logger.WithFields(fields).WithError(err).Warn("Datasets loaded with missing slots")
	} else {
		l.logger.WithFields(fields).Info("Datasets loaded")
	}

	return store, err
}

func (l *Loader) fetch(ctx context.Context, name contracts.DatasetName) ([]byte, error) {
	start := time.Now()
	body, err := l.source.Fetch(ctx, name)
	if l.metrics != nil {
		l.metrics.DatasetLoadDuration.WithLabelValues(string(name)).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		l.logger.WithFields(map[string]interface{}{
			"dataset":  string(name),
			"location": l.source.Location(name),
		}).WithError(err).Warn("Dataset fetch failed")
		return nil, err
	}
	return body, nil
}
