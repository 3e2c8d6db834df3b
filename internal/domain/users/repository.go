package users

import "context"

// Repository es el recurso /users del backend; actúa sobre el usuario de la sesión en ctx.
type Repository interface {
	Me(ctx context.Context) (User, error)
	UpdateMe(ctx context.Context, in ProfileUpdate) (User, error)
	Create(ctx context.Context, in CreateInput) (User, error)
}
