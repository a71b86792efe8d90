package v1

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"io"
	"net/http"

	"github.com/kalakriti/banner-engine/internal/domain/entity"
	"github.com/kalakriti/banner-engine/internal/domain/service"
	"github.com/kalakriti/banner-engine/internal/errors"
	"github.com/go-chi/chi/v5"
)

const (
	uploadImageURL = "/api/upload/image"
)

type UploadImageUsecase interface {
	UploadImage(ctx context.Context, dto entity.UploadImageDTO) (entity.UploadResult, error)
}

type uploadImageHandler struct {
	middlewares []func(http.Handler) http.Handler
	usecase     UploadImageUsecase
}

func NewUploadImageHandler(usecase UploadImageUsecase) *uploadImageHandler {
	return &uploadImageHandler{
		usecase:     usecase,
		middlewares: make([]func(http.Handler) http.Handler, 0),
	}
}

func (h *uploadImageHandler) AddToRouter(r *chi.Mux) {
	var handler http.Handler
	handler = h
	for _, md := range h.middlewares {
		handler = md(handler)
	}

	r.Post(uploadImageURL, handler.ServeHTTP)
}

func (h *uploadImageHandler) Middlewares(md ...func(http.Handler) http.Handler) *uploadImageHandler {
	h.middlewares = append(h.middlewares, md...)
	return h
}

func (h *uploadImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	// the size cap is enforced while reading, before the bytes reach
	// the upload service, so an oversized body never gets buffered whole
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+4096)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if stdErrors.As(err, &maxErr) {
			http.Error(w, "file exceeds the 5MB limit", http.StatusBadRequest)
			return
		}
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "error reading upload", http.StatusBadRequest)
		return
	}

	result, err := h.usecase.UploadImage(r.Context(), entity.UploadImageDTO{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	})
	if err != nil {
		switch errors.Code(err) {
		case errors.ErrBadUpload:
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(result)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
