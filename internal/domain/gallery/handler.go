package gallery

import (
	"errors"
	"io"
	"net/http"

	"github.com/stayhaven/hotel-api/internal/pkg/errorhandler"
	"github.com/stayhaven/hotel-api/internal/pkg/imagehost"
	"github.com/stayhaven/hotel-api/internal/pkg/response"
	"github.com/stayhaven/hotel-api/internal/pkg/session"
	"github.com/stayhaven/hotel-api/internal/pkg/validator"
)

// Handler handles gallery HTTP requests
type Handler struct {
	service  *Service
	maxBytes int64
}

func NewHandler(service *Service, maxBytes int64) *Handler {
	return &Handler{service: service, maxBytes: maxBytes}
}

// List handles GET /gallery?category=
// @Summary List gallery images
// @Tags Gallery
// @Produce json
// @Param category query string false "Category name or slug"
// @Success 200 {object} response.Response{data=ListResponse}
// @Router /gallery [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "failed to list gallery")
		return
	}
	response.OK(w, result)
}

// Add handles POST /gallery (multipart: image, category, alt)
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+(1<<20))
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			response.Error(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", ErrFileTooLarge.Error())
			return
		}
		response.BadRequest(w, "Expected a multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := AddRequest{
		Category: r.FormValue("category"),
		Alt:      r.FormValue("alt"),
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	var file io.Reader
	f, _, err := r.FormFile("image")
	if err == nil {
		defer f.Close()
		file = f
	}

	sess := session.FromContext(r.Context())
	img, err := h.service.Add(r.Context(), &req, file, sess.UserID)
	if err != nil {
		var uploadErr *imagehost.UploadError
		switch {
		case errors.Is(err, ErrMissingFile), errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrFileTooLarge):
			response.ValidationError(w, map[string]string{"image": err.Error()})
		case errors.As(err, &uploadErr):
			errorhandler.HandleError(r.Context(), w, http.StatusBadGateway, "UPLOAD_FAILED", uploadErr.Message, err)
		default:
			errorhandler.Internal(r.Context(), w, err, "failed to add gallery image")
		}
		return
	}

	response.Created(w, ImageResponseFromEntity(img))
}
