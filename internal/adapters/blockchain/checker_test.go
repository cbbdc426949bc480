package blockchain

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
)

func TestCheckerAdapterChainID(t *testing.T) {
	server := httptest.NewServer(&fakeNode{chainID: 17000})
	t.Cleanup(server.Close)
	checker := NewCheckerAdapter()

	chainID, err := checker.ChainID(context.Background(), server.URL, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(17000), chainID)

	chainID, err = checker.ChainID(context.Background(), server.URL, 17000)
	require.NoError(t, err)
	assert.Equal(t, uint64(17000), chainID)

	_, err = checker.ChainID(context.Background(), server.URL, 1)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
