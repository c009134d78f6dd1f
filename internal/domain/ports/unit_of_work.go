package ports

import "context"

// UnitOfWork define a interface para gerenciamento de transações
// O contexto passado a fn carrega a transação; repositórios devem usá-lo.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
