package dogs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pura-pata/internal/domain/photos"
	"pura-pata/internal/platform/logger"
	"pura-pata/internal/platform/metrics"
	"pura-pata/internal/ports/auth"
)

// State de un envío del formulario de publicar/editar.
type State string

const (
	StateIdle            State = "idle"
	StateUploadingPhotos State = "uploading_photos"
	StateCreatingListing State = "creating_listing"
	StateCleaningUp      State = "cleaning_up"
	StateSucceeded       State = "succeeded"
	StateFailed          State = "failed"
)

var transitions = map[State][]State{
	StateIdle:            {StateUploadingPhotos, StateFailed},
	StateUploadingPhotos: {StateCreatingListing, StateCleaningUp, StateFailed},
	StateCreatingListing: {StateSucceeded, StateCleaningUp},
	StateCleaningUp:      {StateFailed},
}

func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
)

// PhotoUploader es lo que el flujo necesita del orquestador de fotos.
type PhotoUploader interface {
	UploadAll(ctx context.Context, files []photos.File) ([]string, error)
	Cleanup(ctx context.Context, urls []string) int
}

// Submission es un intento de publicar/editar. Trail registra cada estado
// por el que pasó, empezando en Idle.
type Submission struct {
	ID        string
	Operation Operation
	State     State
	Trail     []State

	// URLs subidas en este intento (se borran si el backend rechaza).
	Uploaded []string
	// Deletes de compensación que fallaron.
	CleanupFailures int

	Dog      Dog
	Redirect string

	Err     error
	Message string
}

func newSubmission(op Operation) *Submission {
	return &Submission{
		ID:        uuid.NewString(),
		Operation: op,
		State:     StateIdle,
		Trail:     []State{StateIdle},
	}
}

func (s *Submission) to(next State) {
	for _, allowed := range transitions[s.State] {
		if allowed == next {
			s.State = next
			s.Trail = append(s.Trail, next)
			return
		}
	}
	panic(fmt.Sprintf("dogs: illegal submission transition %s -> %s", s.State, next))
}

// Workflow coordina fotos + backend con compensación si el backend rechaza.
type Workflow struct {
	repo     Repository
	uploader PhotoUploader
	log      logger.Logger
	metrics  *metrics.Metrics
}

func NewWorkflow(repo Repository, uploader PhotoUploader, log logger.Logger, m *metrics.Metrics) *Workflow {
	if log == nil {
		log = logger.Nop()
	}
	return &Workflow{repo: repo, uploader: uploader, log: log, metrics: m}
}

// Create publica un perro nuevo (siempre como disponible).
func (w *Workflow) Create(ctx context.Context, in ListingInput, files []photos.File) *Submission {
	sub := newSubmission(OpCreate)

	if err := w.validate(in, nil, files); err != nil {
		return w.fail(sub, err)
	}
	// sin sesión no se sube nada
	if auth.UserID(ctx) == "" {
		return w.fail(sub, ErrUnauthorized)
	}

	return w.run(ctx, sub, in, nil, files, func(ctx context.Context, p ListingPayload) (Dog, error) {
		p.Status = StatusAvailable
		return w.repo.Create(ctx, p)
	})
}

// Update edita un perro existente. Las fotos nuevas se agregan después de las
// que se conservan (KeepPhotos; nil = conservar todas).
func (w *Workflow) Update(ctx context.Context, id string, in ListingInput, files []photos.File) *Submission {
	sub := newSubmission(OpUpdate)

	// el formulario se valida antes de tocar el backend
	if err := ValidateListing(in); err != nil {
		return w.fail(sub, err)
	}
	if err := photos.Validate(files); err != nil {
		return w.fail(sub, err)
	}

	current, err := w.repo.GetByID(ctx, id)
	if err != nil {
		return w.fail(sub, err)
	}
	if err := EnsurePublisher(ctx, current); err != nil {
		return w.fail(sub, err)
	}

	kept := keptPhotos(current.Photos, in.KeepPhotos)
	if len(kept)+len(files) > photos.MaxFiles {
		return w.fail(sub, &ValidationError{Field: "photos", Message: MsgTooManyPhotos})
	}

	sub = w.run(ctx, sub, in, kept, files, func(ctx context.Context, p ListingPayload) (Dog, error) {
		return w.repo.Update(ctx, id, p)
	})

	if sub.State == StateSucceeded {
		// fotos que el usuario quitó: ya no las referencia nadie
		if removed := removedPhotos(current.Photos, kept); len(removed) > 0 {
			w.uploader.Cleanup(context.WithoutCancel(ctx), removed)
		}
	}
	return sub
}

func (w *Workflow) validate(in ListingInput, kept []string, files []photos.File) error {
	if err := ValidateListing(in); err != nil {
		return err
	}
	if len(kept)+len(files) > photos.MaxFiles {
		return &ValidationError{Field: "photos", Message: MsgTooManyPhotos}
	}
	return photos.Validate(files)
}

func (w *Workflow) run(
	ctx context.Context,
	sub *Submission,
	in ListingInput,
	kept []string,
	files []photos.File,
	call func(context.Context, ListingPayload) (Dog, error),
) *Submission {
	started := time.Now()

	sub.to(StateUploadingPhotos)
	var urls []string
	if len(files) > 0 {
		var err error
		urls, err = w.uploader.UploadAll(ctx, files)
		if err != nil {
			var ue *photos.UploadError
			if errors.As(err, &ue) && len(ue.Uploaded) > 0 {
				sub.Uploaded = ue.Uploaded
				w.compensate(ctx, sub)
			}
			return w.fail(sub, err)
		}
	}
	sub.Uploaded = urls

	sub.to(StateCreatingListing)
	photoList := make([]string, 0, len(kept)+len(urls))
	photoList = append(photoList, kept...)
	photoList = append(photoList, urls...)

	dog, err := call(ctx, BuildPayload(in, photoList))
	if err != nil {
		w.compensate(ctx, sub)
		return w.fail(sub, err)
	}

	sub.to(StateSucceeded)
	sub.Dog = dog
	sub.Redirect = "/perros/" + dog.ID
	w.metrics.SubmissionFinished(string(sub.Operation), string(sub.State))
	w.log.Info("listing submitted", map[string]any{
		"submission_id": sub.ID,
		"operation":     string(sub.Operation),
		"dog_id":        dog.ID,
		"photos":        len(urls),
		"duration_ms":   time.Since(started).Milliseconds(),
	})
	return sub
}

// compensate borra lo subido en este intento. Corre aunque el request se haya
// cancelado; sus errores solo se loguean.
func (w *Workflow) compensate(ctx context.Context, sub *Submission) {
	sub.to(StateCleaningUp)
	if len(sub.Uploaded) == 0 {
		return
	}
	sub.CleanupFailures = w.uploader.Cleanup(context.WithoutCancel(ctx), sub.Uploaded)
	if sub.CleanupFailures > 0 {
		w.log.Warn("orphaned photos after failed submission", map[string]any{
			"submission_id": sub.ID,
			"failed":        sub.CleanupFailures,
			"uploaded":      len(sub.Uploaded),
		})
	}
}

func (w *Workflow) fail(sub *Submission, err error) *Submission {
	sub.to(StateFailed)
	sub.Err = err

	fallback := MsgCreateFailed
	if sub.Operation == OpUpdate {
		fallback = MsgUpdateFailed
	}
	sub.Message = UserMessage(err, fallback)

	w.metrics.SubmissionFinished(string(sub.Operation), string(sub.State))
	w.log.Warn("listing submission failed", map[string]any{
		"submission_id": sub.ID,
		"operation":     string(sub.Operation),
		"trail":         fmt.Sprint(sub.Trail),
		"err":           err,
	})
	return sub
}

func keptPhotos(current, keep []string) []string {
	if keep == nil {
		return append([]string(nil), current...)
	}
	owned := make(map[string]bool, len(current))
	for _, u := range current {
		owned[u] = true
	}
	out := make([]string, 0, len(keep))
	for _, u := range keep {
		// solo se conservan fotos que ya eran del perro
		if owned[u] {
			out = append(out, u)
			owned[u] = false
		}
	}
	return out
}

func removedPhotos(current, kept []string) []string {
	keep := make(map[string]bool, len(kept))
	for _, u := range kept {
		keep[u] = true
	}
	var out []string
	for _, u := range current {
		if !keep[u] {
			out = append(out, u)
		}
	}
	return out
}
