package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo configuración en memoria.
type SettingRepo struct{ b *binding }

// GetAll devuelve todas las claves ordenadas.
func (r *SettingRepo) GetAll(_ context.Context) ([]*entity.Setting, error) {
	out := make([]*entity.Setting, 0)
	err := r.b.read(func(st *state) error {
		for _, s := range st.settings {
			c := *s
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, err
}

// Get devuelve una clave o (nil, nil).
func (r *SettingRepo) Get(_ context.Context, key string) (*entity.Setting, error) {
	var out *entity.Setting
	err := r.b.read(func(st *state) error {
		if s, ok := st.settings[key]; ok {
			c := *s
			out = &c
		}
		return nil
	})
	return out, err
}

// Upsert inserta o reemplaza la clave.
func (r *SettingRepo) Upsert(_ context.Context, s *entity.Setting) error {
	return r.b.write(OpSettingUpsert, func(st *state) error {
		c := *s
		st.settings[s.Key] = &c
		return nil
	})
}
