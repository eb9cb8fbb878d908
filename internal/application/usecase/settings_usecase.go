package usecase

import (
	"context"
	"sort"
	"strconv"
	"time"

	appinventory "github.com/jhoicas/kawok-pos/internal/application/inventory"
	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// SettingsUseCase configuración clave/valor de la tienda.
type SettingsUseCase struct {
	txRunner appinventory.TxRunner
	repo     repository.SettingRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(txRunner appinventory.TxRunner, repo repository.SettingRepository) *SettingsUseCase {
	return &SettingsUseCase{txRunner: txRunner, repo: repo}
}

// GetAll devuelve todas las claves como mapa plano.
func (uc *SettingsUseCase) GetAll(ctx context.Context) (map[string]string, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(list))
	for _, s := range list {
		out[s.Key] = s.Value
	}
	return out, nil
}

// Update inserta o actualiza todas las claves en una sola transacción.
func (uc *SettingsUseCase) Update(ctx context.Context, settings map[string]string) (map[string]string, error) {
	if len(settings) == 0 {
		return nil, domain.NewValidationError("settings", "requerido")
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		if k == "" {
			return nil, domain.NewValidationError("settings", "clave vacía")
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if v, ok := settings[entity.SettingLowStockThreshold]; ok {
		if n, err := strconv.Atoi(v); err != nil || n < 0 {
			return nil, domain.NewValidationError(entity.SettingLowStockThreshold, "debe ser un entero >= 0")
		}
	}

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(r repository.TxRepos) error {
		for _, k := range keys {
			if err := r.Settings.Upsert(ctx, &entity.Setting{Key: k, Value: settings[k], UpdatedAt: now}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetAll(ctx)
}

// LowStockThreshold umbral de stock bajo configurado, o def si no existe o es inválido.
func (uc *SettingsUseCase) LowStockThreshold(ctx context.Context, def int) int {
	s, err := uc.repo.Get(ctx, entity.SettingLowStockThreshold)
	if err != nil || s == nil {
		return def
	}
	n, err := strconv.Atoi(s.Value)
	if err != nil || n < 0 {
		return def
	}
	return n
}
