package progress

import "github.com/ethereum/go-ethereum/common"

// NopObserver ignores transaction lifecycle events
type NopObserver struct{}

func (NopObserver) OnPending(string, common.Hash)   {}
func (NopObserver) OnConfirmed(string, common.Hash) {}
