package restapi

import (
	"context"
	"net/http"

	"pura-pata/internal/domain/users"
)

type UsersRepo struct {
	c *Client
}

func NewUsersRepo(c *Client) *UsersRepo {
	return &UsersRepo{c: c}
}

func userErr(err error) error {
	// 403 en /users/me solo pasa con un token de otro proyecto: se trata como 401
	return classify(err, users.ErrNotFound, users.ErrUnauthorized, users.ErrUnauthorized)
}

func (r *UsersRepo) Me(ctx context.Context) (users.User, error) {
	var u users.User
	if err := r.c.do(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return users.User{}, userErr(err)
	}
	return u, nil
}

func (r *UsersRepo) UpdateMe(ctx context.Context, in users.ProfileUpdate) (users.User, error) {
	var u users.User
	if err := r.c.do(ctx, http.MethodPut, "/users/me", in, &u); err != nil {
		return users.User{}, userErr(err)
	}
	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, in users.CreateInput) (users.User, error) {
	var u users.User
	if err := r.c.do(ctx, http.MethodPost, "/users", in, &u); err != nil {
		return users.User{}, userErr(err)
	}
	return u, nil
}
