package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

const machineFlag = "machine"

// boolArg is a boolean flag that takes its value as a separate argument,
// so both "--machine true" and "--machine=true" parse
type boolArg bool

func (b *boolArg) String() string { return strconv.FormatBool(bool(*b)) }

func (b *boolArg) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("expected true or false, got %q", s)
	}
	*b = boolArg(v)
	return nil
}

func (b *boolArg) Type() string { return "bool" }

// addMachineFlag registers --machine on a deploy command
func addMachineFlag(cmd *cobra.Command) {
	var machine boolArg
	cmd.Flags().Var(&machine, machineFlag, "Print a single JSON record instead of progress lines (true|false)")
}

// isMachine reports whether the command runs in machine mode.
// Commands without the flag always run interactively.
func isMachine(cmd *cobra.Command) (bool, error) {
	f := cmd.Flags().Lookup(machineFlag)
	if f == nil {
		return false, nil
	}
	return strconv.ParseBool(f.Value.String())
}
