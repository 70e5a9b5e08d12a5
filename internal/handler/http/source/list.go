package source

import (
	"net/http"

	"github.com/codenough/news-feed-app/internal/domain/entity"
	"github.com/codenough/news-feed-app/internal/handler/http/respond"
)

// Registry is the slice of the source registry the handlers need.
type Registry interface {
	List() []*entity.Source
	Get(id string) (*entity.Source, error)
	Add(src *entity.Source) error
	Update(id, name, feedURL string) error
	SetEnabled(id string, enabled bool) error
	Remove(id string) error
}

// ListHandler serves all configured sources.
type ListHandler struct {
	Reg Registry
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sources := h.Reg.List()

	dtos := make([]DTO, 0, len(sources))
	for _, s := range sources {
		dtos = append(dtos, FromEntity(s))
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"sources": dtos,
		"count":   len(dtos),
	})
}
