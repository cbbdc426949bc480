package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// ErrAlreadyReported is returned when a machine reporter is asked to emit twice
var ErrAlreadyReported = errors.New("result already reported")

// MachineReporter suppresses progress lines and writes exactly one compact JSON record
type MachineReporter struct {
	mu   sync.Mutex
	out  io.Writer
	done bool
}

// NewMachineReporter creates a machine-readable reporter writing to out
func NewMachineReporter(out io.Writer) *MachineReporter {
	return &MachineReporter{out: out}
}

// Progress discards the line
func (r *MachineReporter) Progress(string) {}

// Complete emits the deployment summary as one JSON line
func (r *MachineReporter) Complete(summary *domain.DeploymentSummary) error {
	if summary == nil {
		return errors.New("nil deployment summary")
	}
	return r.Result(summary)
}

// Result emits v as one JSON line. Only the first call writes.
func (r *MachineReporter) Result(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return ErrAlreadyReported
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	r.done = true

	if _, err := fmt.Fprintln(r.out, string(data)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

var _ usecase.Reporter = (*MachineReporter)(nil)
