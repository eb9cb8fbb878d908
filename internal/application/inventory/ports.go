package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/kawok-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}

// Clock fuente de tiempo (inyectable en tests).
type Clock func() time.Time
