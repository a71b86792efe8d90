package v1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	serveUploadURL = "/api/uploads/{filename}"
)

type OpenUploadUsecase interface {
	Open(filename string) (string, error)
}

// serveUploadHandler hands back the assets the admin uploaded, so the
// URLs returned by the upload endpoint resolve on the same host.
type serveUploadHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     OpenUploadUsecase
}

func NewServeUploadHandler(usecase OpenUploadUsecase) *serveUploadHandler {
	return &serveUploadHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *serveUploadHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Get(serveUploadURL, handler.ServeHTTP)
}

func (h *serveUploadHandler) Middlewares(md ...func(http.Handler) http.Handler) *serveUploadHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *serveUploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	path, err := h.usecase.Open(chi.URLParam(r, "filename"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, path)
}
