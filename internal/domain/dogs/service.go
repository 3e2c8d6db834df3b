package dogs

import (
	"context"
	"strings"

	"pura-pata/internal/platform/logger"
	"pura-pata/internal/ports/auth"
)

type Service struct {
	repo   Repository
	photos PhotoUploader
	log    logger.Logger
}

func NewService(repo Repository, uploader PhotoUploader, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		photos: uploader,
		log:    log,
	}
}

// Browse trae la foto actual de disponibles del backend y filtra en memoria.
func (s *Service) Browse(ctx context.Context, f Filters) ([]Dog, error) {
	all, err := s.repo.List(ctx, StatusAvailable)
	if err != nil {
		return nil, err
	}
	return Filter(all, f), nil
}

func (s *Service) Get(ctx context.Context, id string) (Dog, error) {
	if strings.TrimSpace(id) == "" {
		return Dog{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Mine(ctx context.Context) ([]Dog, error) {
	if auth.UserID(ctx) == "" {
		return nil, ErrUnauthorized
	}
	return s.repo.ListMine(ctx)
}

func (s *Service) History(ctx context.Context, id string) ([]StatusChange, error) {
	return s.repo.History(ctx, id)
}

// ChangeStatus marca el perro como disponible/reservado/adoptado.
func (s *Service) ChangeStatus(ctx context.Context, id string, status Status) (Dog, error) {
	if !status.Valid() {
		return Dog{}, &ValidationError{Field: "status", Message: "Estado inválido"}
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}
	if err := EnsurePublisher(ctx, current); err != nil {
		return Dog{}, err
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete borra el aviso y después, best effort, sus fotos.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := EnsurePublisher(ctx, current); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.photos != nil && len(current.Photos) > 0 {
		if failed := s.photos.Cleanup(context.WithoutCancel(ctx), current.Photos); failed > 0 {
			s.log.Warn("photos left after dog delete", map[string]any{"dog_id": id, "failed": failed})
		}
	}
	return nil
}
