package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmercier/payslip-anomaly-api/dto"
)

func TestParamsStoreDefaultsWhenMissing(t *testing.T) {
	store := NewParamsStore(filepath.Join(t.TempDir(), "rgdu_params.json"))

	params := store.Load()

	assert.Equal(t, dto.DefaultRGDUParams(), params)
}

func TestParamsStoreDefaultsOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rgdu_params.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewParamsStore(path)

	assert.Equal(t, dto.DefaultRGDUParams(), store.Load())
}

func TestParamsStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rgdu_params.json")
	store := NewParamsStore(path)

	tdelta := 0.3241
	params := dto.RGDUParams{
		HeuresContractuelles: 130.0,
		Effectif50EtPlus:     false,
		SmicMensuel:          1850.50,
		TdeltaOpt:            &tdelta,
	}

	require.NoError(t, store.Save(params))

	loaded := store.Load()
	assert.Equal(t, params.HeuresContractuelles, loaded.HeuresContractuelles)
	assert.Equal(t, params.Effectif50EtPlus, loaded.Effectif50EtPlus)
	assert.Equal(t, params.SmicMensuel, loaded.SmicMensuel)
	require.NotNil(t, loaded.TdeltaOpt)
	assert.Equal(t, tdelta, *loaded.TdeltaOpt)
}

func TestParamsStoreSaveOverwritesWholeValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rgdu_params.json")
	store := NewParamsStore(path)

	tdelta := 0.3241
	first := dto.DefaultRGDUParams()
	first.TdeltaOpt = &tdelta
	require.NoError(t, store.Save(first))

	second := dto.DefaultRGDUParams()
	require.NoError(t, store.Save(second))

	// no partial update: the optional override must be gone
	assert.Nil(t, store.Load().TdeltaOpt)
}
