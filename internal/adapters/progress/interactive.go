package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// InteractiveReporter prints every progress line and never emits a structured summary
type InteractiveReporter struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *TxSpinner
}

// NewInteractiveReporter creates a reporter printing lines to out.
// Pending transactions are shown with a spinner on status.
func NewInteractiveReporter(out, status io.Writer) *InteractiveReporter {
	return &InteractiveReporter{
		out:     out,
		spinner: NewTxSpinner(status),
	}
}

// Progress prints a single human-readable line
func (r *InteractiveReporter) Progress(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spinner.pause(func() {
		fmt.Fprintln(r.out, line)
	})
}

// Complete prints a closing line; the summary itself is not emitted
func (r *InteractiveReporter) Complete(summary *domain.DeploymentSummary) error {
	r.spinner.Stop()

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := color.New(color.FgGreen).Fprintln(r.out, "SSV network deployment complete")
	return err
}

// Result is a no-op; standalone commands already reported their addresses as progress
func (r *InteractiveReporter) Result(v any) error {
	r.spinner.Stop()
	return nil
}

// Spinner exposes the transaction spinner for the chain adapter
func (r *InteractiveReporter) Spinner() *TxSpinner {
	return r.spinner
}

var _ usecase.Reporter = (*InteractiveReporter)(nil)
