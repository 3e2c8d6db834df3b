package dogs

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pura-pata/internal/domain/photos"
)

// maxSubmissionBytes: 5 fotos de 5 MiB + el JSON del formulario.
const maxSubmissionBytes = photos.MaxFiles*photos.MaxFileSize + 1<<20

func RegisterRoutes(r chi.Router, svc *Service, wf *Workflow) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc))
		dr.Post("/", createDogHandler(wf))

		// Mis perros (requiere sesión)
		dr.Get("/me", myDogsHandler(svc))

		dr.Get("/{dogID}", getDogHandler(svc))
		dr.Put("/{dogID}", updateDogHandler(wf))
		dr.Delete("/{dogID}", deleteDogHandler(svc))
		dr.Get("/{dogID}/history", historyHandler(svc))
		dr.Patch("/{dogID}/status", statusHandler(svc))
	})
}

type dogResponse struct {
	Dog
	AgeLabel    string `json:"age_label"`
	DetailPath  string `json:"detail_path"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

func toDogResponse(d Dog) dogResponse {
	if d.Photos == nil {
		d.Photos = []string{}
	}
	return dogResponse{
		Dog:         d,
		AgeLabel:    FormatAge(d.AgeYears, d.AgeMonths),
		DetailPath:  "/perros/" + d.ID,
		WhatsAppURL: WhatsAppLink(d),
	}
}

func toDogResponses(items []Dog) []dogResponse {
	out := make([]dogResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDogResponse(d))
	}
	return out
}

type submissionResponse struct {
	SubmissionID string       `json:"submission_id"`
	State        State        `json:"state"`
	Trail        []State      `json:"trail"`
	Dog          *dogResponse `json:"dog,omitempty"`
	Redirect     string       `json:"redirect,omitempty"`
	Error        string       `json:"error,omitempty"`
}

type statusRequest struct {
	Status Status `json:"status"`
}

// listDogsHandler godoc
// @Summary  Perros disponibles filtrados
// @Tags     dogs
// @Produce  json
// @Param    size        query  []string  false  "pequeño | mediano | grande"  collectionFormat(multi)
// @Param    gender      query  string    false  "macho | hembra"
// @Param    province    query  string    false  "Provincia"
// @Param    vaccinated  query  bool      false  "Solo vacunados"
// @Param    sterilized  query  bool      false  "Solo esterilizados"
// @Param    dewormed    query  bool      false  "Solo desparasitados"
// @Success  200  {array}  dogResponse
// @Router   /dogs [get]
func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Browse(r.Context(), ParseFilters(r.URL.Query()))
		if err != nil {
			writeError(w, r, err, MsgListFailed)
			return
		}
		writeJSON(w, r, http.StatusOK, toDogResponses(items))
	}
}

func myDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Mine(r.Context())
		if err != nil {
			writeError(w, r, err, MsgMineFailed)
			return
		}
		writeJSON(w, r, http.StatusOK, toDogResponses(items))
	}
}

// getDogHandler godoc
// @Summary  Detalle de un perro
// @Tags     dogs
// @Produce  json
// @Param    dogID  path  string  true  "ID del perro"
// @Success  200  {object}  dogResponse
// @Failure  404  {object}  map[string]string
// @Router   /dogs/{dogID} [get]
func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Get(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeError(w, r, err, MsgLoadFailed)
			return
		}
		writeJSON(w, r, http.StatusOK, toDogResponse(d))
	}
}

func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.History(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			writeError(w, r, err, MsgLoadFailed)
			return
		}
		if items == nil {
			items = []StatusChange{}
		}
		writeJSON(w, r, http.StatusOK, items)
	}
}

// createDogHandler godoc
// @Summary  Publicar un perro
// @Description  multipart/form-data: campo "listing" (JSON del formulario) + hasta 5 archivos "photos".
// @Tags     dogs
// @Accept   mpfd
// @Produce  json
// @Success  201  {object}  submissionResponse
// @Failure  400  {object}  submissionResponse
// @Router   /dogs [post]
func createDogHandler(wf *Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, files, err := decodeSubmission(w, r)
		if err != nil {
			writeError(w, r, err, MsgCreateFailed)
			return
		}
		writeSubmission(w, r, wf.Create(r.Context(), in, files), http.StatusCreated)
	}
}

func updateDogHandler(wf *Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, files, err := decodeSubmission(w, r)
		if err != nil {
			writeError(w, r, err, MsgUpdateFailed)
			return
		}
		writeSubmission(w, r, wf.Update(r.Context(), chi.URLParam(r, "dogID"), in, files), http.StatusOK)
	}
}

func statusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			writeError(w, r, &ValidationError{Field: "status", Message: "JSON inválido"}, MsgStatusFailed)
			return
		}
		d, err := svc.ChangeStatus(r.Context(), chi.URLParam(r, "dogID"), req.Status)
		if err != nil {
			writeError(w, r, err, MsgStatusFailed)
			return
		}
		writeJSON(w, r, http.StatusOK, toDogResponse(d))
	}
}

func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "dogID")); err != nil {
			writeError(w, r, err, MsgDeleteFailed)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// decodeSubmission acepta multipart (listing + photos) o JSON plano sin fotos.
func decodeSubmission(w http.ResponseWriter, r *http.Request) (ListingInput, []photos.File, error) {
	var in ListingInput
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "multipart/form-data" {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return in, nil, &ValidationError{Field: "listing", Message: "JSON inválido"}
		}
		return in, nil, nil
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return in, nil, photos.ErrFileTooLarge
		}
		return in, nil, &ValidationError{Field: "listing", Message: "Formulario inválido"}
	}

	raw := strings.TrimSpace(r.FormValue("listing"))
	if raw == "" {
		return in, nil, &ValidationError{Field: "listing", Message: "Faltan los datos del perro"}
	}
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return in, nil, &ValidationError{Field: "listing", Message: "JSON inválido"}
	}

	files, err := photos.FromMultipart(r.MultipartForm.File["photos"])
	if err != nil {
		return in, nil, err
	}
	return in, files, nil
}

func writeSubmission(w http.ResponseWriter, r *http.Request, sub *Submission, okStatus int) {
	resp := submissionResponse{
		SubmissionID: sub.ID,
		State:        sub.State,
		Trail:        sub.Trail,
	}
	if sub.State != StateSucceeded {
		resp.Error = sub.Message
		writeJSON(w, r, HTTPStatus(sub.Err), resp)
		return
	}

	d := toDogResponse(sub.Dog)
	resp.Dog = &d
	resp.Redirect = sub.Redirect
	writeJSON(w, r, okStatus, resp)
}

func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	writeJSON(w, r, HTTPStatus(err), map[string]string{"error": UserMessage(err, fallback)})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}
