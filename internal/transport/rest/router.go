package rest

import "net/http"

// Handlers groups the REST handlers mounted by NewRouter.
type Handlers struct {
	Auth       *AuthHandler
	Texts      *TextHandler
	Vocabulary *VocabularyHandler
	Completion *CompletionHandler
	Steps      *StepHandler
	Practice   *PracticeHandler
	Health     *HealthHandler
}

// NewRouter builds the API route table. Authentication and other
// cross-cutting concerns are applied by the caller as middleware around
// the returned mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /livez", h.Health.Live)
	mux.HandleFunc("GET /readyz", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /api/v1/auth/me", h.Auth.Me)

	mux.HandleFunc("POST /api/v1/texts", h.Texts.Create)
	mux.HandleFunc("POST /api/v1/texts/generate", h.Texts.Generate)
	mux.HandleFunc("GET /api/v1/texts", h.Texts.List)
	mux.HandleFunc("GET /api/v1/texts/{id}", h.Texts.Get)
	mux.HandleFunc("DELETE /api/v1/texts/{id}", h.Texts.Delete)

	mux.HandleFunc("POST /api/v1/texts/{id}/steps", h.Steps.Mark)
	mux.HandleFunc("GET /api/v1/texts/{id}/steps", h.Steps.Get)
	mux.HandleFunc("DELETE /api/v1/texts/{id}/steps", h.Steps.Reset)

	mux.HandleFunc("GET /api/v1/vocabulary", h.Vocabulary.List)
	mux.HandleFunc("GET /api/v1/vocabulary/{id}", h.Vocabulary.Get)

	mux.HandleFunc("POST /api/v1/completions", h.Completion.Record)
	mux.HandleFunc("GET /api/v1/completions/stats", h.Completion.Stats)

	mux.HandleFunc("POST /api/v1/practice/speech", h.Practice.Speech)
	mux.HandleFunc("POST /api/v1/practice/cloze", h.Practice.Cloze)

	return mux
}
