// Package page serves the server-rendered HTML pages: the article list,
// the map view, article detail and login. Templates and static assets are
// embedded so the binary is self-contained.
package page

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"newsbridge/internal/common/pagination"
	"newsbridge/internal/domain/entity"
	"newsbridge/internal/handler/http/pathutil"
	"newsbridge/internal/infra/upstream"
	"newsbridge/internal/observability/logging"
	"newsbridge/internal/usecase/listview"
	"newsbridge/internal/usecase/mapview"
	"newsbridge/internal/webui/palette"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// ArticleGetter is the slice of the upstream client the detail page needs.
type ArticleGetter interface {
	GetArticle(ctx context.Context, id, cookie string) (*entity.SummarizedArticle, error)
}

// Handlers renders the four pages. Construct with New.
type Handlers struct {
	list      *listview.Service
	articles  ArticleGetter
	tiers     mapview.Tiers
	cfg       pagination.Config
	logger    *slog.Logger
	templates map[string]*template.Template
}

// New parses the embedded templates and returns the page handlers.
func New(list *listview.Service, articles ArticleGetter, tiers mapview.Tiers, cfg pagination.Config, logger *slog.Logger) (*Handlers, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pages := []string{"home", "map", "article", "login"}
	templates := make(map[string]*template.Template, len(pages))
	for _, p := range pages {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(
			templatesFS, "templates/layout.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", p, err)
		}
		templates[p] = t
	}

	return &Handlers{
		list:      list,
		articles:  articles,
		tiers:     tiers,
		cfg:       cfg,
		logger:    logger,
		templates: templates,
	}, nil
}

// Register wires the page routes and static assets onto the mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /map", h.Map)
	mux.HandleFunc("GET /articles/{id}", h.Article)
	mux.HandleFunc("GET /login", h.Login)
}

// homeData feeds the article list page.
type homeData struct {
	Page       *listview.Page
	Categories []palette.Color
	Active     string
	Search     string
	TotalPages int
	PrevPage   int
	NextPage   int
	LoadError  bool
}

// Home renders the article list. A listing failure renders the page shell
// with an empty grid rather than an error page; the category sidebar and
// search box must stay usable.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.logger)

	params, err := pagination.ParseQueryParams(r, h.cfg)
	if err != nil {
		params = pagination.Params{Page: h.cfg.DefaultPage, Limit: h.cfg.DefaultLimit}
	}

	q := listview.Query{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Page:     params.Page,
		Cookie:   r.Header.Get("Cookie"),
	}

	data := homeData{
		Categories: palette.All(),
		Active:     q.Category,
		Search:     q.Search,
		PrevPage:   params.Page - 1,
		NextPage:   params.Page + 1,
	}

	page, err := h.list.GetPage(ctx, q)
	if err != nil {
		logger.Error("home listing failed", slog.String("error", err.Error()))
		data.Page = &listview.Page{Articles: nil, Page: params.Page}
		data.LoadError = true
		data.TotalPages = 1
	} else {
		data.Page = page
		data.TotalPages = pagination.CalculateTotalPages(int64(page.TotalFound), listview.PageSize)
	}

	h.render(w, logger, "home", data)
}

// mapData feeds the map page shell. Config is serialized into a script tag
// and read by static/map.js, which implements the browser half of the
// debounce and popup contract.
type mapData struct {
	Legend     []palette.Color
	ConfigJSON template.JS
}

// mapConfig mirrors the constants the browser map script needs.
type mapConfig struct {
	DebounceMS     int               `json:"debounceMs"`
	SearchDebounce int               `json:"searchDebounceMs"`
	PopupGraceMS   int               `json:"popupGraceMs"`
	ClusterMaxZoom int               `json:"clusterMaxZoom"`
	ClusterRadius  int               `json:"clusterRadius"`
	Tiers          mapview.Tiers     `json:"tiers"`
	CategoryColors map[string]string `json:"categoryColors"`
	FallbackColor  string            `json:"fallbackColor"`
}

// Map renders the map page shell.
func (h *Handlers) Map(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.logger)

	colors := make(map[string]string)
	for _, c := range palette.All() {
		colors[c.ID] = c.Hex
	}

	clusterer := mapview.NewLibraryClusterer()
	cfg := mapConfig{
		DebounceMS:     int(mapview.DebounceInterval.Milliseconds()),
		SearchDebounce: int(mapview.SearchDebounce.Milliseconds()),
		PopupGraceMS:   int(mapview.PopupGrace.Milliseconds()),
		ClusterMaxZoom: clusterer.MaxZoom,
		ClusterRadius:  clusterer.Radius,
		Tiers:          h.tiers,
		CategoryColors: colors,
		FallbackColor:  palette.Hex(""),
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		logger.Error("map config marshal failed", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, logger, "map", mapData{
		Legend:     palette.All(),
		ConfigJSON: template.JS(raw),
	})
}

// articleData feeds the detail page.
type articleData struct {
	Article      *entity.SummarizedArticle
	Implications []string
}

// Article renders the detail page for one article. Unknown IDs get 404;
// upstream failures get a minimal error page with the upstream message when
// it is structured.
func (h *Handlers) Article(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.logger)

	id, err := pathutil.ArticleID(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	art, err := h.articles.GetArticle(ctx, id, r.Header.Get("Cookie"))
	if err != nil {
		if apiErr, ok := upstream.AsAPIError(err); ok && apiErr.Status == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		logger.Warn("article page fetch failed",
			slog.String("article_id", id),
			slog.String("error", err.Error()))
		http.Error(w, "article temporarily unavailable", http.StatusBadGateway)
		return
	}

	h.render(w, logger, "article", articleData{
		Article:      art,
		Implications: splitLines(art.FutureImplications),
	})
}

// Login renders the login form. Submission goes to /api/users/login from
// the browser; this tier never sees credentials outside that pass-through.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.logger)
	h.render(w, logger, "login", nil)
}

func (h *Handlers) render(w http.ResponseWriter, logger *slog.Logger, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates[page].ExecuteTemplate(w, "layout.html", data); err != nil {
		logger.Error("template render failed",
			slog.String("page", page),
			slog.String("error", err.Error()))
	}
}
