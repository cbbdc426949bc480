package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBuildFlags(t *testing.T) {
	original := []string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = original[0], original[1], original[2] })

	SetBuildFlags("v0.3.0", "", "2026-10-01")
	assert.Equal(t, "ssv-deploy version v0.3.0 (commit unknown, built 2026-10-01)", VersionString())
}
