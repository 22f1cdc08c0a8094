package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/tmercier/payslip-anomaly-api/dto"
)

// ParamsStore persists RGDU parameters as a whole-value JSON file.
// Load and Save are serialized under one mutex so a parameter update
// cannot interleave with an in-flight read; each analysis snapshots
// the params once and never re-reads them mid-run.
type ParamsStore struct {
	path string
	mu   sync.Mutex
}

func NewParamsStore(path string) *ParamsStore {
	return &ParamsStore{path: path}
}

// Load returns the stored parameters, or the statutory defaults when
// the file is absent or unreadable.
func (s *ParamsStore) Load() dto.RGDUParams {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return dto.DefaultRGDUParams()
	}

	var params dto.RGDUParams
	if err := json.Unmarshal(raw, &params); err != nil {
		log.Printf("Error loading RGDU params from %s: %v", s.path, err)
		return dto.DefaultRGDUParams()
	}
	return params
}

// Save replaces the stored parameters, creating parent directories as
// needed.
func (s *ParamsStore) Save(params dto.RGDUParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create params directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(params, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write params file: %w", err)
	}
	return nil
}
