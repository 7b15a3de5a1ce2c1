package dataset

import (
	"errors"
	"fmt"

	"github.com/wonny/eventlens/internal/contracts"
)

// ErrEmptyDocument is reported for a document that is empty or JSON null
var ErrEmptyDocument = errors.New("empty document")

// LoadError records why one dataset slot stayed empty
type LoadError struct {
	Dataset contracts.DatasetName
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Dataset, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FailedDatasets lists the datasets named by the LoadErrors inside err
func FailedDatasets(err error) []contracts.DatasetName {
	if err == nil {
		return nil
	}

	var names []contracts.DatasetName
	var walk func(error)
	walk = func(e error) {
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var le *LoadError
		if errors.As(e, &le) {
			names = append(names, le.Dataset)
		}
	}
	walk(err)
	return names
}
