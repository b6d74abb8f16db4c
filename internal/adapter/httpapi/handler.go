package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/recircle/marketplace/internal/catalog/domain"
	"github.com/recircle/marketplace/internal/catalog/session"
	"github.com/recircle/marketplace/internal/catalog/usecase"
)

const maxUploadBytes = 10 << 20

// Handler serves the JSON API the browser UI talks to.
type Handler struct {
	catalog   *usecase.CatalogUsecase
	post      *usecase.PostUsecase
	favorites *usecase.FavoriteUsecase
	sess      *session.Session
	logger    *zap.Logger
}

func NewHandler(
	catalog *usecase.CatalogUsecase,
	post *usecase.PostUsecase,
	favorites *usecase.FavoriteUsecase,
	sess *session.Session,
	log *zap.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		post:      post,
		favorites: favorites,
		sess:      sess,
		logger:    log,
	}
}

// ListListings handles GET /api/listings?search=&category=.
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := domain.Category(r.URL.Query().Get("category"))
	if category == "" {
		category = domain.CategoryAll
	}
	if category != domain.CategoryAll && !category.Valid() {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	listings, loaded := h.catalog.Filter(search, category)
	if !loaded {
		// Distinguish "still loading" from an empty catalog.
		writeError(w, http.StatusServiceUnavailable, "catalog is still loading")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"listings": listings,
		"count":    len(listings),
	})
}

// GetListing handles GET /api/listings/{id} and performs the
// browse -> product transition, carrying the full record.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.catalog.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	h.sess.Apply(func(s session.State) session.State {
		return session.GoProduct(s, listing)
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"listing":   listing,
		"favorited": h.favorites.Contains(id),
	})
}

// CreateListing handles POST /api/listings (multipart form, optional image).
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	draft := domain.NewDraft()
	draft.Title = r.FormValue("title")
	draft.Price = r.FormValue("price")
	draft.Location = r.FormValue("location")
	draft.Description = r.FormValue("description")
	if v := r.FormValue("category"); v != "" {
		draft.Category = domain.Category(v)
	}
	if v := r.FormValue("condition"); v != "" {
		draft.Condition = domain.Condition(v)
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			writeError(w, http.StatusBadRequest, "could not read image")
			return
		}
		draft.ImageName = header.Filename
		draft.ImageData = data
	case errors.Is(err, http.ErrMissingFile):
		// No image attached; the placeholder URL is used downstream.
	default:
		writeError(w, http.StatusBadRequest, "invalid image upload")
		return
	}

	// Hold the draft in the session so a failed post leaves it recoverable.
	h.sess.Apply(func(s session.State) session.State {
		return session.SetDraft(s, draft)
	})

	created, err := h.post.Post(r.Context(), draft)
	if err != nil {
		h.writePostError(w, err)
		return
	}

	h.sess.Apply(session.CompletePost)
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) writePostError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": vErr.Error(),
			"field": vErr.Field,
		})
	case errors.Is(err, domain.ErrPostInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrBlobUnavailable), errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("unexpected post error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// ToggleFavorite handles POST /api/favorites/{id}.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	favorited := h.favorites.Toggle(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"favorited": favorited,
		"favorites": h.favorites.IDs(),
	})
}

// GetFavorites handles GET /api/favorites.
func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": h.favorites.IDs(),
	})
}

// GetView handles GET /api/view.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sess.State())
}

type viewActionRequest struct {
	Action string `json:"action"`
}

// UpdateView handles POST /api/view with {"action": "sell"|"back"}.
// Transitions not reachable from the current view leave the state unchanged.
func (h *Handler) UpdateView(w http.ResponseWriter, r *http.Request) {
	var req viewActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var state session.State
	switch req.Action {
	case "sell":
		state = h.sess.Apply(session.GoSell)
	case "back":
		state = h.sess.Apply(session.BackToBrowse)
	default:
		writeError(w, http.StatusBadRequest, "unknown view action")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
