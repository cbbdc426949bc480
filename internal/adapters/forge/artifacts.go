package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/trebuchet-org/ssv-deploy/internal/domain"
	"github.com/trebuchet-org/ssv-deploy/internal/domain/config"
	"github.com/trebuchet-org/ssv-deploy/internal/usecase"
)

// artifactFile is the subset of a Foundry artifact the deployer needs
type artifactFile struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode struct {
		Object         string         `json:"object"`
		LinkReferences map[string]any `json:"linkReferences"`
	} `json:"bytecode"`
	Metadata struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// ArtifactStore resolves compiled contracts from the Foundry output directory
type ArtifactStore struct {
	log     *slog.Logger
	outDir  string
	srcPath string

	mu    sync.Mutex
	cache map[string]*usecase.Artifact
}

// NewArtifactStore creates an artifact store for the project
func NewArtifactStore(cfg *config.RuntimeConfig, log *slog.Logger) *ArtifactStore {
	outDir := cfg.FoundryConfig.OutDir()
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(cfg.ProjectRoot, outDir)
	}

	srcPath := "src"
	if cfg.FoundryConfig != nil {
		if p, ok := cfg.FoundryConfig.Profile["default"]; ok && p.SrcPath != "" {
			srcPath = p.SrcPath
		}
	}

	return &ArtifactStore{
		log:     log.With("component", "ArtifactStore"),
		outDir:  outDir,
		srcPath: filepath.ToSlash(filepath.Clean(srcPath)),
		cache:   make(map[string]*usecase.Artifact),
	}
}

// GetArtifact returns the compiled artifact for a contract name
func (s *ArtifactStore) GetArtifact(ctx context.Context, contract string) (*usecase.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if art, ok := s.cache[contract]; ok {
		return art, nil
	}

	path, err := s.locate(contract)
	if err != nil {
		return nil, err
	}

	art, err := s.load(contract, path)
	if err != nil {
		return nil, err
	}

	s.cache[contract] = art
	return art, nil
}

// Reset drops cached artifacts
func (s *ArtifactStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*usecase.Artifact)
}

type candidate struct {
	path   string
	source string
}

// locate finds the artifact file of a contract. Several artifacts with the
// same contract name are disambiguated by preferring sources under the
// project src directory.
func (s *ArtifactStore) locate(contract string) (string, error) {
	fileName := contract + ".json"
	var candidates []candidate

	err := filepath.WalkDir(s.outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != fileName {
			return nil
		}

		source, ok := compilationSource(path, contract)
		if !ok {
			return nil
		}
		candidates = append(candidates, candidate{path: path, source: source})
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.NewArtifactNotFoundError(contract)
		}
		return "", &domain.BuildError{Contract: contract, Err: fmt.Errorf("failed to scan %s: %w", s.outDir, err)}
	}

	switch len(candidates) {
	case 0:
		return "", domain.NewArtifactNotFoundError(contract)
	case 1:
		return candidates[0].path, nil
	}

	local := lo.Filter(candidates, func(c candidate, _ int) bool {
		return strings.HasPrefix(c.source, s.srcPath+"/")
	})
	if len(local) == 1 {
		return local[0].path, nil
	}

	sources := lo.Map(candidates, func(c candidate, _ int) string { return c.source })
	return "", &domain.BuildError{
		Contract: contract,
		Err:      fmt.Errorf("ambiguous contract name, found in: %s", strings.Join(sources, ", ")),
	}
}

// compilationSource returns the source file an artifact was compiled from,
// falling back to the directory name when metadata is absent
func compilationSource(path, contract string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var art artifactFile
	if err := json.Unmarshal(data, &art); err != nil {
		return "", false
	}

	for source, name := range art.Metadata.Settings.CompilationTarget {
		if name == contract {
			return source, true
		}
		return "", false
	}
	return filepath.Base(filepath.Dir(path)), true
}

func (s *ArtifactStore) load(contract, path string) (*usecase.Artifact, error) {
	s.log.Debug("loading artifact", "contract", contract, "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.BuildError{Contract: contract, Err: err}
	}

	var raw artifactFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.BuildError{Contract: contract, Err: fmt.Errorf("invalid artifact %s: %w", path, err)}
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, &domain.BuildError{Contract: contract, Err: fmt.Errorf("invalid ABI in %s: %w", path, err)}
	}

	object := raw.Bytecode.Object
	if len(raw.Bytecode.LinkReferences) > 0 || strings.Contains(object, "__$") {
		return nil, &domain.BuildError{Contract: contract, Err: errors.New("bytecode requires library linking")}
	}
	if !strings.HasPrefix(object, "0x") {
		object = "0x" + object
	}
	code, err := hexutil.Decode(object)
	if err != nil {
		return nil, &domain.BuildError{Contract: contract, Err: fmt.Errorf("invalid bytecode: %w", err)}
	}
	if len(code) == 0 {
		return nil, &domain.BuildError{Contract: contract, Err: errors.New("artifact has no creation bytecode (abstract contract or interface)")}
	}

	return &usecase.Artifact{
		Name:     contract,
		Path:     path,
		ABI:      &parsed,
		Bytecode: code,
	}, nil
}

var _ usecase.ArtifactRepository = (*ArtifactStore)(nil)
