package domain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors used to classify failures with errors.Is
var (
	// ErrValidation is matched by input validation failures detected before any transaction
	ErrValidation = errors.New("validation error")

	// ErrBuild is matched by build and artifact failures
	ErrBuild = errors.New("build error")

	// ErrArtifactNotFound is returned when no compiled artifact exists for a contract
	ErrArtifactNotFound = errors.New("build artifact not found")

	// ErrTransaction is matched by submission, confirmation and revert failures
	ErrTransaction = errors.New("transaction error")

	// ErrConfiguration is matched by missing or malformed configuration
	ErrConfiguration = errors.New("configuration error")
)

// BuildError wraps a failure of the build system or of artifact resolution
type BuildError struct {
	Contract string
	Err      error
}

func (e *BuildError) Error() string {
	if e.Contract == "" {
		return fmt.Sprintf("build failed: %v", e.Err)
	}
	return fmt.Sprintf("build artifact for %s: %v", e.Contract, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

func (e *BuildError) Is(target error) bool { return target == ErrBuild }

// NewArtifactNotFoundError returns the BuildArtifactNotFound error for a contract
func NewArtifactNotFoundError(contract string) error {
	return &BuildError{Contract: contract, Err: ErrArtifactNotFound}
}

// TransactionError wraps a failed deployment or initializer transaction
type TransactionError struct {
	Contract string
	TxHash   common.Hash
	Err      error
}

func (e *TransactionError) Error() string {
	if e.TxHash == (common.Hash{}) {
		return fmt.Sprintf("deploy %s: %v", e.Contract, e.Err)
	}
	return fmt.Sprintf("deploy %s (tx %s): %v", e.Contract, e.TxHash.Hex(), e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

func (e *TransactionError) Is(target error) bool { return target == ErrTransaction }

// ErrReverted is wrapped by TransactionError when a receipt reports failure
var ErrReverted = errors.New("transaction reverted")

// ConfigurationError reports a missing or malformed configuration value
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }
