package interactive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
)

func TestFuzzySearch(t *testing.T) {
	items := []string{"SSVOperators", "SSVClusters", "SSVDAO", "SSVViews"}
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 0))
	assert.True(t, search("dao", 2))
	assert.True(t, search("clst", 1))
	assert.False(t, search("dao", 0))
}

func TestSuggestModule(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "ssvdao", want: "SSVDAO", ok: true},
		{input: "Operators", want: "SSVOperators", ok: true},
		{input: "views", want: "SSVViews", ok: true},
		{input: "zzzz", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := SuggestModule(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})

	ok, err := s.Confirm(context.Background(), "deploy?")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.SelectModule(context.Background())
	assert.ErrorIs(t, err, ErrNonInteractive)
}
