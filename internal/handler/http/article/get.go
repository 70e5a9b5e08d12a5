package article

import (
	"errors"
	"net/http"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/handler/http/respond"
)

var errInvalidLimit = errors.New("limit must be a positive integer")

// GetHandler serves a single article by identity key.
type GetHandler struct {
	Svc Service
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		respond.Error(w, http.StatusBadRequest, errors.New("article key is required"))
		return
	}

	a, err := h.Svc.Article(key)
	if err != nil {
		if errors.Is(err, entity.ErrArticleNotFound) {
			respond.Error(w, http.StatusNotFound, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, FromEntity(a))
}
