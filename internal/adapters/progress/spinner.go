package progress

import (
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
)

// TxSpinner shows a spinner while a transaction waits for its receipt
type TxSpinner struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
}

// NewTxSpinner creates a spinner writing to w
func NewTxSpinner(w io.Writer) *TxSpinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.HideCursor = false
	return &TxSpinner{spinner: s}
}

// OnPending starts the spinner for a submitted transaction
func (t *TxSpinner) OnPending(contract string, hash common.Hash) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.spinner.Suffix = " waiting for " + contract + " (" + hash.Hex() + ")"
	if !t.spinner.Active() {
		t.spinner.Start()
	}
}

// OnConfirmed stops the spinner once the receipt arrived
func (t *TxSpinner) OnConfirmed(contract string, hash common.Hash) {
	t.Stop()
}

// Stop stops the spinner if it is running
func (t *TxSpinner) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.spinner.Active() {
		t.spinner.Stop()
	}
}

// pause runs fn with the spinner stopped and restarts it afterwards
func (t *TxSpinner) pause(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	wasActive := t.spinner.Active()
	if wasActive {
		t.spinner.Stop()
	}
	fn()
	if wasActive {
		t.spinner.Start()
	}
}
