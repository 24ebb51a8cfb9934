package web

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/supafloof/backpacks/internal/errors"
	"github.com/supafloof/backpacks/internal/ops"
)

// Handlers contains HTTP route handlers for the console.
type Handlers struct {
	svc      *ops.Service
	renderer *Renderer
	docs     template.HTML
}

// HandleContainers handles GET /containers, listing known backpacks.
func (h *Handlers) HandleContainers(w http.ResponseWriter, r *http.Request) {
	input := ops.ListInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	}

	result := h.svc.List(input)

	prev := result.Pagination.Offset - result.Pagination.Limit
	if prev < 0 {
		prev = 0
	}

	h.renderer.renderPage(w, "containers", ContainersPageData{
		PageData: PageData{
			Title:   "Backpacks",
			Version: h.renderer.version,
			Nav:     "containers",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
		PrevOffset: prev,
		NextOffset: result.Pagination.Offset + result.Pagination.Limit,
		HasPrev:    result.Pagination.Offset > 0,
	})
}

// HandleDetail handles GET /containers/{id}, showing a single backpack.
// Partial identifiers resolve the same way the CLI inspect does.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("backpack identifier is required"))
		return
	}

	container, err := h.svc.Inspect(ops.InspectInput{Query: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "detail", DetailPageData{
		PageData: PageData{
			Title:   shortID(container.ID),
			Version: h.renderer.version,
			Nav:     "containers",
		},
		Container:   container,
		DisplayName: shortID(container.ID),
	})
}

// HandleSessions handles GET /sessions, showing open sessions and storage totals.
func (h *Handlers) HandleSessions(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	sessions := h.svc.Sessions()

	h.renderer.renderPage(w, "sessions", SessionsPageData{
		PageData: PageData{
			Title:   "Sessions",
			Version: h.renderer.version,
			Nav:     "sessions",
		},
		Sessions: sessions.Items,
		Count:    sessions.Count,
		Stats:    stats,
	})
}

// HandleDocs handles GET /docs, serving the rendered usage guide.
func (h *Handlers) HandleDocs(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "docs", DocsPageData{
		PageData: PageData{
			Title:   "Docs",
			Version: h.renderer.version,
			Nav:     "docs",
		},
		Rendered: h.docs,
	})
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
