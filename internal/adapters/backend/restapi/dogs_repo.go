package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"pura-pata/internal/domain/dogs"
)

type DogsRepo struct {
	c *Client
}

func NewDogsRepo(c *Client) *DogsRepo {
	return &DogsRepo{c: c}
}

func dogErr(err error) error {
	return classify(err, dogs.ErrNotFound, dogs.ErrForbidden, dogs.ErrUnauthorized)
}

func dogPath(id string) string {
	return "/dogs/" + url.PathEscape(strings.TrimSpace(id))
}

func (r *DogsRepo) List(ctx context.Context, status dogs.Status) ([]dogs.Dog, error) {
	path := "/dogs"
	if status != "" {
		path += "?" + url.Values{"status": {string(status)}}.Encode()
	}
	out := make([]dogs.Dog, 0)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, dogErr(err)
	}
	return out, nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	if strings.TrimSpace(id) == "" {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	var d dogs.Dog
	if err := r.c.do(ctx, http.MethodGet, dogPath(id), nil, &d); err != nil {
		return dogs.Dog{}, dogErr(err)
	}
	return d, nil
}

func (r *DogsRepo) ListMine(ctx context.Context) ([]dogs.Dog, error) {
	out := make([]dogs.Dog, 0)
	if err := r.c.do(ctx, http.MethodGet, "/dogs/me", nil, &out); err != nil {
		return nil, dogErr(err)
	}
	return out, nil
}

func (r *DogsRepo) Create(ctx context.Context, p dogs.ListingPayload) (dogs.Dog, error) {
	var d dogs.Dog
	if err := r.c.do(ctx, http.MethodPost, "/dogs", p, &d); err != nil {
		return dogs.Dog{}, dogErr(err)
	}
	return d, nil
}

func (r *DogsRepo) Update(ctx context.Context, id string, p dogs.ListingPayload) (dogs.Dog, error) {
	var d dogs.Dog
	if err := r.c.do(ctx, http.MethodPut, dogPath(id), p, &d); err != nil {
		return dogs.Dog{}, dogErr(err)
	}
	return d, nil
}

func (r *DogsRepo) UpdateStatus(ctx context.Context, id string, status dogs.Status) (dogs.Dog, error) {
	var d dogs.Dog
	body := map[string]dogs.Status{"status": status}
	if err := r.c.do(ctx, http.MethodPatch, dogPath(id)+"/status", body, &d); err != nil {
		return dogs.Dog{}, dogErr(err)
	}
	return d, nil
}

func (r *DogsRepo) Delete(ctx context.Context, id string) error {
	return dogErr(r.c.do(ctx, http.MethodDelete, dogPath(id), nil, nil))
}

func (r *DogsRepo) History(ctx context.Context, id string) ([]dogs.StatusChange, error) {
	out := make([]dogs.StatusChange, 0)
	if err := r.c.do(ctx, http.MethodGet, dogPath(id)+"/history", nil, &out); err != nil {
		return nil, dogErr(err)
	}
	return out, nil
}
