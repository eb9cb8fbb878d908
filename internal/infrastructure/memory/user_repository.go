package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/kawok-pos/internal/domain"
	"github.com/jhoicas/kawok-pos/internal/domain/entity"
	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ b *binding }

// Create guarda el usuario. Email repetido devuelve ErrDuplicate.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.b.write("users.Create", func(st *state) error {
		for _, existing := range st.users {
			if strings.EqualFold(existing.Email, u.Email) {
				return fmt.Errorf("email %s: %w", u.Email, domain.ErrDuplicate)
			}
		}
		c := *u
		st.users[u.ID] = &c
		return nil
	})
}

// GetByID usuario o (nil, nil).
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.b.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			c := *u
			out = &c
		}
		return nil
	})
	return out, err
}

// FindByEmail busca sin distinguir mayúsculas.
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.b.read(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				c := *u
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}
