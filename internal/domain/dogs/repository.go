package dogs

import "context"

// Repository es el backend REST. Las llamadas autenticadas toman el token de
// la sesión que viaja en ctx.
type Repository interface {
	List(ctx context.Context, status Status) ([]Dog, error)
	GetByID(ctx context.Context, id string) (Dog, error)
	ListMine(ctx context.Context) ([]Dog, error)
	Create(ctx context.Context, p ListingPayload) (Dog, error)
	Update(ctx context.Context, id string, p ListingPayload) (Dog, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Dog, error)
	Delete(ctx context.Context, id string) error
	History(ctx context.Context, id string) ([]StatusChange, error)
}
