package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kawok-pos/internal/application/usecase"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/infrastructure/memory"
)

func newSettingsUC() (*usecase.SettingsUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewSettingsUseCase(store, store.Settings()), store
}

func TestSettingsUpdate_UpsertYLectura(t *testing.T) {
	uc, _ := newSettingsUC()
	ctx := context.Background()

	out, err := uc.Update(ctx, map[string]string{
		entity.SettingStoreName:         "KawokVapeStore",
		entity.SettingLowStockThreshold: "5",
	})
	require.NoError(t, err)
	assert.Equal(t, "KawokVapeStore", out[entity.SettingStoreName])

	out, err = uc.Update(ctx, map[string]string{entity.SettingStoreName: "Kawok Vape Bandung"})
	require.NoError(t, err)
	assert.Equal(t, "Kawok Vape Bandung", out[entity.SettingStoreName])
	assert.Equal(t, "5", out[entity.SettingLowStockThreshold], "claves no enviadas se conservan")

	assert.Equal(t, 5, uc.LowStockThreshold(ctx, 10))
}

func TestSettingsUpdate_Validacion(t *testing.T) {
	uc, _ := newSettingsUC()
	ctx := context.Background()

	_, err := uc.Update(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, map[string]string{"": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for _, bad := range []string{"-1", "diez", ""} {
		_, err = uc.Update(ctx, map[string]string{entity.SettingLowStockThreshold: bad})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}

func TestSettingsUpdate_TodoONada(t *testing.T) {
	uc, store := newSettingsUC()
	ctx := context.Background()

	store.FailOn(memory.OpSettingUpsert, errors.New("fallo"))
	_, err := uc.Update(ctx, map[string]string{"a": "1", "b": "2"})
	require.Error(t, err)
	store.ClearFaults()

	all, err := uc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLowStockThreshold_PorDefecto(t *testing.T) {
	uc, store := newSettingsUC()
	ctx := context.Background()
	assert.Equal(t, 10, uc.LowStockThreshold(ctx, 10))

	// valor corrupto escrito sin pasar por Update
	require.NoError(t, store.Settings().Upsert(ctx, &entity.Setting{Key: entity.SettingLowStockThreshold, Value: "x"}))
	assert.Equal(t, 10, uc.LowStockThreshold(ctx, 10))
}
