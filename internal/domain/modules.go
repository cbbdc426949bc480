package domain

import (
	"strings"

	"github.com/samber/lo"
)

// ModuleKind identifies one of the SSV network module contracts.
// The value string doubles as the contract identifier of the module implementation.
type ModuleKind string

const (
	ModuleOperators ModuleKind = "SSVOperators"
	ModuleClusters  ModuleKind = "SSVClusters"
	ModuleDAO       ModuleKind = "SSVDAO"
	ModuleViews     ModuleKind = "SSVViews"
)

// moduleKinds is the closed, ordered set of module kinds. DeployAll deploys
// modules in exactly this order.
var moduleKinds = []ModuleKind{
	ModuleOperators,
	ModuleClusters,
	ModuleDAO,
	ModuleViews,
}

// ModuleKinds returns the ordered set of valid module kinds
func ModuleKinds() []ModuleKind {
	out := make([]ModuleKind, len(moduleKinds))
	copy(out, moduleKinds)
	return out
}

// ModuleNames returns the value strings of all module kinds, in order
func ModuleNames() []string {
	return lo.Map(moduleKinds, func(k ModuleKind, _ int) string {
		return string(k)
	})
}

// ParseModuleKind maps an unvalidated module name to a ModuleKind.
// The comparison is against value strings and is case sensitive.
func ParseModuleKind(name string) (ModuleKind, error) {
	kind := ModuleKind(name)
	if !lo.Contains(moduleKinds, kind) {
		return "", &InvalidModuleError{Module: name, Valid: ModuleNames()}
	}
	return kind, nil
}

// String returns the value string of the module kind
func (k ModuleKind) String() string {
	return string(k)
}

// InvalidModuleError is returned when a module name is not part of the closed set
type InvalidModuleError struct {
	Module string
	Valid  []string
}

func (e *InvalidModuleError) Error() string {
	return "Invalid SSVModule: " + e.Module + ". Expected one of: " + strings.Join(e.Valid, ", ")
}

// Is lets errors.Is match InvalidModuleError against ErrValidation
func (e *InvalidModuleError) Is(target error) bool {
	return target == ErrValidation
}
