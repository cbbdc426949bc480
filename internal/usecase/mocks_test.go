package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
)

// fakeChain records every deployment in submission order and hands out
// sequential addresses
type fakeChain struct {
	calls    []string
	requests []domain.DeploymentRequest
	failOn   map[string]error
	next     int64
}

func newFakeChain() *fakeChain {
	return &fakeChain{failOn: map[string]error{}}
}

func (f *fakeChain) nextAddress() common.Address {
	f.next++
	return common.BigToAddress(big.NewInt(0x1000 + f.next))
}

func (f *fakeChain) DeployContract(ctx context.Context, req domain.DeploymentRequest) (common.Address, error) {
	f.calls = append(f.calls, "impl:"+req.Contract)
	f.requests = append(f.requests, req)
	if err := f.failOn[req.Contract]; err != nil {
		return common.Address{}, err
	}
	return f.nextAddress(), nil
}

func (f *fakeChain) DeployProxy(ctx context.Context, req domain.DeploymentRequest) (*domain.DeploymentResult, error) {
	f.calls = append(f.calls, "proxy:"+req.Contract)
	f.requests = append(f.requests, req)
	if err := f.failOn[req.Contract]; err != nil {
		return nil, err
	}
	return &domain.DeploymentResult{Address: f.nextAddress(), Implementation: f.nextAddress()}, nil
}

func (f *fakeChain) request(contract string) (domain.DeploymentRequest, bool) {
	for _, req := range f.requests {
		if req.Contract == contract {
			return req, true
		}
	}
	return domain.DeploymentRequest{}, false
}

// recordingReporter captures progress lines and summaries
type recordingReporter struct {
	lines     []string
	summaries []*domain.DeploymentSummary
}

func (r *recordingReporter) Progress(line string) {
	r.lines = append(r.lines, line)
}

func (r *recordingReporter) Complete(summary *domain.DeploymentSummary) error {
	r.summaries = append(r.summaries, summary)
	return nil
}

// MockBuildSystem is a mock implementation of BuildSystem
type MockBuildSystem struct {
	mock.Mock
}

func (m *MockBuildSystem) Build(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockConfirmer is a mock implementation of Confirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	args := m.Called(ctx, prompt)
	return args.Bool(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
