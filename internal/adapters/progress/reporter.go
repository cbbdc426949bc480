package progress

import (
	"io"

	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// Output is the reporting surface of a command: progress lines, the final
// deployment summary and, for standalone commands, a single result object
type Output interface {
	usecase.Reporter
	Result(v any) error
}

// NewOutput returns the machine reporter when machine is set and the
// interactive reporter otherwise
func NewOutput(machine bool, out, status io.Writer) Output {
	if machine {
		return NewMachineReporter(out)
	}
	return NewInteractiveReporter(out, status)
}
