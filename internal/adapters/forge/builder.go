package forge

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// ForgeAdapter compiles the project with forge
type ForgeAdapter struct {
	log         *slog.Logger
	projectRoot string
	binary      string
	artifacts   *ArtifactStore
}

// NewForgeAdapter creates a new forge build adapter
func NewForgeAdapter(cfg *config.RuntimeConfig, artifacts *ArtifactStore, log *slog.Logger) *ForgeAdapter {
	return &ForgeAdapter{
		log:         log.With("component", "ForgeAdapter"),
		projectRoot: cfg.ProjectRoot,
		binary:      "forge",
		artifacts:   artifacts,
	}
}

// Build runs forge build in the project root. Cached artifacts are dropped
// so that later lookups see the fresh output.
func (f *ForgeAdapter) Build(ctx context.Context) error {
	start := time.Now()
	f.log.Debug("running forge build", "dir", f.projectRoot)

	cmd := exec.CommandContext(ctx, f.binary, "build")
	cmd.Dir = f.projectRoot

	output, err := cmd.CombinedOutput()
	duration := time.Since(start)

	if err != nil {
		f.log.Error("forge build failed", "error", err, "output", string(output), "duration", duration)
		return &domain.BuildError{Err: fmt.Errorf("%w\nOutput: %s", err, string(output))}
	}

	f.log.Debug("forge build completed successfully", "duration", duration)
	f.artifacts.Reset()
	return nil
}

var _ usecase.BuildSystem = (*ForgeAdapter)(nil)
