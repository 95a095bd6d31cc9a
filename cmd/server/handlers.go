package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	conjug "github.com/cours-de-latin/conjug"
	"github.com/cours-de-latin/conjug/internal/transport/middleware"
)

// ---- JSON response types ------------------------------------------------

type batchRequest struct {
	Lang    string   `json:"lang"`
	Subject string   `json:"subject"`
	Verbs   []string `json:"verbs"`
}

type batchItemJSON struct {
	Verb   string                 `json:"verb"`
	Result *conjug.ConjugatedVerb `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItemJSON `json:"results"`
}

type admissibleResponse struct {
	Verb       string `json:"verb"`
	Lang       string `json:"lang"`
	Admissible bool   `json:"admissible"`
}

type languagesResponse struct {
	Languages map[string]string `json:"languages"`
}

type languageStatus struct {
	Name      string `json:"name"`
	Verbs     int    `json:"verbs"`
	Templates int    `json:"templates"`
	Model     bool   `json:"model"`
}

type healthResponse struct {
	Status    string                    `json:"status"`
	Version   string                    `json:"version,omitempty"`
	Languages map[string]languageStatus `json:"languages"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ---- helpers ------------------------------------------------------------

// api bundles the handler dependencies.
type api struct {
	conj     *conjug.Conjugator
	log      *slog.Logger
	subject  conjug.SubjectFormat
	maxBatch int
	version  string
}

func (a *api) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/conjugate/batch", a.handleBatch)
	mux.HandleFunc("/api/conjugate", a.handleConjugate)
	mux.HandleFunc("/api/admissible", a.handleAdmissible)
	mux.HandleFunc("/api/languages", a.handleLanguages)
	mux.HandleFunc("/health", a.handleHealth)
	return mux
}

func (a *api) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error("encode response", slog.Any("error", err))
	}
}

func (a *api) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	a.writeJSON(w, status, errorResponse{Error: msg, RequestID: middleware.RequestIDFromCtx(r.Context())})
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, conjug.ErrInvalidVerbForm):
		return http.StatusUnprocessableEntity
	case errors.Is(err, conjug.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.Is(err, conjug.ErrNoConjugationAvailable):
		return http.StatusNotFound
	case errors.Is(err, conjug.ErrNoModelAvailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (a *api) subjectFormat(raw string) (conjug.SubjectFormat, error) {
	if raw == "" {
		return a.subject, nil
	}
	return conjug.ParseSubjectFormat(raw)
}

// ---- handlers -----------------------------------------------------------

func (a *api) handleConjugate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	q := r.URL.Query()
	verb := q.Get("verb")
	if verb == "" {
		a.writeError(w, r, http.StatusBadRequest, "missing 'verb' query parameter")
		return
	}
	sf, err := a.subjectFormat(q.Get("subject"))
	if err != nil {
		a.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	v, err := a.conj.Conjugate(verb, q.Get("lang"), sf)
	if err != nil {
		status := statusFor(err)
		if status >= 500 {
			a.log.ErrorContext(r.Context(), "conjugate", slog.String("verb", verb), slog.Any("error", err))
		}
		a.writeError(w, r, status, err.Error())
		return
	}
	a.writeJSON(w, http.StatusOK, v)
}

func (a *api) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, r, http.StatusMethodNotAllowed, "POST required")
		return
	}
	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Verbs) == 0 {
		a.writeError(w, r, http.StatusBadRequest, "body must be JSON with a non-empty 'verbs' list")
		return
	}
	if len(body.Verbs) > a.maxBatch {
		a.writeError(w, r, http.StatusRequestEntityTooLarge, "too many verbs in one batch")
		return
	}
	sf, err := a.subjectFormat(body.Subject)
	if err != nil {
		a.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	lang, err := conjug.ParseLanguage(body.Lang)
	if err != nil {
		a.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	eng, ok := a.conj.Engine(lang)
	if !ok {
		a.writeError(w, r, http.StatusBadRequest, "language "+string(lang)+" is not loaded")
		return
	}

	results, err := eng.ConjugateMany(r.Context(), body.Verbs, sf)
	if err != nil {
		a.writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	out := make([]batchItemJSON, len(results))
	for i, res := range results {
		out[i] = batchItemJSON{Verb: res.Word, Result: res.Verb}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
		}
	}
	a.writeJSON(w, http.StatusOK, batchResponse{Results: out})
}

func (a *api) handleAdmissible(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	q := r.URL.Query()
	verb := q.Get("verb")
	if verb == "" {
		a.writeError(w, r, http.StatusBadRequest, "missing 'verb' query parameter")
		return
	}
	lang, err := conjug.ParseLanguage(q.Get("lang"))
	if err != nil {
		a.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	a.writeJSON(w, http.StatusOK, admissibleResponse{
		Verb:       verb,
		Lang:       string(lang),
		Admissible: a.conj.IsAdmissible(verb, string(lang)),
	})
}

func (a *api) handleLanguages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, r, http.StatusMethodNotAllowed, "GET required")
		return
	}
	langs := make(map[string]string)
	for _, l := range a.conj.Languages() {
		langs[string(l)] = l.Name()
	}
	a.writeJSON(w, http.StatusOK, languagesResponse{Languages: langs})
}

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Version: a.version, Languages: make(map[string]languageStatus)}
	for _, l := range a.conj.Languages() {
		e, _ := a.conj.Engine(l)
		resp.Languages[string(l)] = languageStatus{
			Name:      l.Name(),
			Verbs:     e.Store().Len(),
			Templates: len(e.Store().TemplateKeys()),
			Model:     e.HasModel(),
		}
	}
	a.writeJSON(w, http.StatusOK, resp)
}
