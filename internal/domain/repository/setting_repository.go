package repository

import (
	"context"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
)

// SettingRepository almacén clave/valor de configuración de la tienda.
type SettingRepository interface {
	GetAll(ctx context.Context) ([]*entity.Setting, error)
	Get(ctx context.Context, key string) (*entity.Setting, error)
	Upsert(ctx context.Context, setting *entity.Setting) error
}
