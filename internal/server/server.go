// Package server is the HTTP surface over a loaded region collection:
// listing and filtering regions, point lookups, the current selection
// and point picking. It owns no region logic of its own.
package server

import (
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	regionmap "github.com/Ahmedramadaan333/RegionMapFilter"
	"github.com/Ahmedramadaan333/RegionMapFilter/internal/metrics"
)

const (
	defaultCacheTTL     = 5 * time.Minute
	defaultCacheCleanup = 30 * time.Minute
)

type Options struct {
	CacheTTL       time.Duration
	CacheCleanup   time.Duration
	CacheCellLevel int
}

type Server struct {
	log       *zap.Logger
	regions   regionmap.Regions
	selection *regionmap.Selection
	picker    *regionmap.Picker
	cache     *gocache.Cache
	cellLevel int
}

func New(log *zap.Logger, regions regionmap.Regions, opts Options) *Server {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.CacheCleanup <= 0 {
		opts.CacheCleanup = defaultCacheCleanup
	}
	if opts.CacheCellLevel <= 0 {
		opts.CacheCellLevel = regionmap.DefaultCellLevel
	}
	selection := regionmap.NewSelection(regions)
	return &Server{
		log:       log,
		regions:   regions,
		selection: selection,
		picker:    regionmap.NewPicker(selection),
		cache:     gocache.New(opts.CacheTTL, opts.CacheCleanup),
		cellLevel: opts.CacheCellLevel,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/regions", s.handleRegions)
	mux.HandleFunc("/v1/regions/", s.handleRegion)
	mux.HandleFunc("/v1/lookup", s.handleLookup)
	mux.HandleFunc("/v1/selection", s.handleSelection)
	mux.HandleFunc("/v1/selection/point", s.handleSelectionPoint)
	mux.Handle("/metrics", metrics.Handler())
	return requestLogger(s.log, mux)
}
