package server

import (
	"encoding/json"
	"net/http"

	"github.com/patternbook/patternbook/internal/render"
	"github.com/patternbook/patternbook/internal/types"
)

// handleIndex serves the rendered HTML documentation page with the live
// reload script appended.
func (s *CatalogServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := s.queries()
	page, err := render.HTML(q.All(), render.Options{Title: s.config.Render.Title})
	if err != nil {
		s.logger.Error(r.Context(), err, "Rendering index page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
	_, _ = w.Write([]byte(liveReloadScript))
}

// handlePatterns lists every entry, optionally filtered by ?category=.
func (s *CatalogServer) handlePatterns(w http.ResponseWriter, r *http.Request) {
	q := s.queries()

	if raw := r.URL.Query().Get("category"); raw != "" {
		cat, ok := types.ParseCategory(raw)
		if !ok {
			http.Error(w, "unknown category: "+raw, http.StatusBadRequest)
			return
		}
		writeJSON(w, q.ByCategory(cat))
		return
	}

	writeJSON(w, q.All())
}

// handlePattern serves a single entry by exact name.
func (s *CatalogServer) handlePattern(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	entry, ok := s.queries().ByName(name)
	if !ok {
		http.Error(w, "pattern not found: "+name, http.StatusNotFound)
		return
	}
	writeJSON(w, entry)
}

// handleCategory serves one category's entries in insertion order. An
// empty category is an empty list, not an error.
func (s *CatalogServer) handleCategory(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("category")
	cat, ok := types.ParseCategory(raw)
	if !ok {
		http.Error(w, "unknown category: "+raw, http.StatusBadRequest)
		return
	}
	writeJSON(w, s.queries().ByCategory(cat))
}

// handleSearch serves substring matches over name and summary.
func (s *CatalogServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.queries().Search(r.URL.Query().Get("q")))
}

// handleRender serves the deterministic Markdown document, suitable for
// diffing against a committed documentation corpus.
func (s *CatalogServer) handleRender(w http.ResponseWriter, r *http.Request) {
	q := s.queries()
	doc := render.Markdown(q.All(), render.Options{Title: s.config.Render.Title})

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write(doc)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if v == nil {
		_, _ = w.Write([]byte("[]\n"))
		return
	}
	_ = encoder.Encode(v)
}

// liveReloadScript reconnects-on-close so browsers survive server
// restarts during editing sessions.
const liveReloadScript = `<script>
(function connect() {
	var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
	ws.onmessage = function(ev) {
		var msg = JSON.parse(ev.data);
		if (msg.type === "reload") { location.reload(); }
	};
	ws.onclose = function() { setTimeout(connect, 1000); };
})();
</script>
`
