package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/tidwall/geojson/geometry"
	"go.uber.org/zap"

	regionmap "github.com/Ahmedramadaan333/RegionMapFilter"
	"github.com/Ahmedramadaan333/RegionMapFilter/internal/metrics"
)

type regionSummary struct {
	Name          string `json:"name"`
	LocalizedName string `json:"localized_name,omitempty"`
	Rings         int    `json:"rings"`
}

type regionDetail struct {
	regionSummary
	Bound  *boundJSON  `json:"bound,omitempty"`
	Center *[2]float64 `json:"center,omitempty"`
}

type boundJSON struct {
	Min [2]float64 `json:"min"`
	Max [2]float64 `json:"max"`
}

type lookupResponse struct {
	Cell    string          `json:"cell"`
	Regions []regionSummary `json:"regions"`
}

type pickRequest struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type pickResponse struct {
	Session  string      `json:"session"`
	Region   string      `json:"region"`
	Inside   bool        `json:"inside"`
	Location *[2]float64 `json:"location,omitempty"`
}

type selectRequest struct {
	Name string `json:"name"`
}

func summarize(r *regionmap.Region) regionSummary {
	return regionSummary{
		Name:          r.Name(),
		LocalizedName: r.LocalizedName(),
		Rings:         r.NumRings(),
	}
}

func detail(r *regionmap.Region) regionDetail {
	d := regionDetail{regionSummary: summarize(r)}
	if r.IsEmpty() {
		return d
	}
	bound := r.Bound()
	center := r.Center()
	d.Bound = &boundJSON{
		Min: [2]float64{bound.Min.X, bound.Min.Y},
		Max: [2]float64{bound.Max.X, bound.Max.Y},
	}
	d.Center = &[2]float64{center.X, center.Y}
	return d
}

// GET /v1/regions[?q=...]
func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	regions := s.regions.Filter(r.Context(), r.URL.Query().Get("q"))
	summaries := make([]regionSummary, 0, len(regions))
	for _, region := range regions {
		summaries = append(summaries, summarize(region))
	}
	writeJSON(w, http.StatusOK, summaries)
}

// GET /v1/regions/{name}
func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/v1/regions/")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	region, err := s.regions.Lookup(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusNotFound, "region not found")
		return
	}
	writeJSON(w, http.StatusOK, detail(region))
}

// GET /v1/lookup?lon=..&lat=..
//
// Results are cached per H3 cell: lookups for points falling in the
// same cell share one response until the cache entry expires.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if errLon != nil || errLat != nil {
		writeError(w, http.StatusBadRequest, "lon and lat query parameters are required")
		return
	}

	metrics.LookupsTotal.Inc()
	started := time.Now()
	defer func() {
		metrics.LookupDurationMs.Observe(float64(time.Since(started).Milliseconds()))
	}()

	cell := regionmap.CellFromLonLat(lon, lat, s.cellLevel).String()
	if cached, ok := s.cache.Get(cell); ok {
		metrics.LookupCacheHitsTotal.Inc()
		writeJSON(w, http.StatusOK, cached.(lookupResponse))
		return
	}
	metrics.LookupCacheMissesTotal.Inc()

	matched := s.regions.FindContaining(r.Context(), lon, lat)
	if len(matched) == 0 {
		metrics.EmptyLookupsTotal.Inc()
	}
	resp := lookupResponse{
		Cell:    cell,
		Regions: make([]regionSummary, 0, len(matched)),
	}
	for _, region := range matched {
		resp.Regions = append(resp.Regions, summarize(region))
	}
	s.cache.Set(cell, resp, gocache.DefaultExpiration)
	writeJSON(w, http.StatusOK, resp)
}

// GET, PUT and DELETE /v1/selection
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		region, ok := s.selection.Selected(r.Context())
		if !ok {
			writeError(w, http.StatusNotFound, "no region selected")
			return
		}
		writeJSON(w, http.StatusOK, summarize(region))
	case http.MethodPut:
		var req selectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			writeError(w, http.StatusBadRequest, "body must carry a region name")
			return
		}
		region, err := s.selection.Select(r.Context(), req.Name)
		if err != nil {
			writeError(w, http.StatusNotFound, "region not found")
			return
		}
		metrics.SelectionChangesTotal.Inc()
		s.log.Info("region selected", zap.String("region", region.Name()))
		writeJSON(w, http.StatusOK, summarize(region))
	case http.MethodDelete:
		s.selection.Clear()
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// POST /v1/selection/point
func (s *Server) handleSelectionPoint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req pickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "body must carry lon and lat")
		return
	}
	session, err := s.picker.Begin(r.Context())
	if errors.Is(err, regionmap.ErrNothingSelected) {
		writeError(w, http.StatusConflict, "no region selected")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "pick session failed")
		return
	}

	resp := pickResponse{
		Session: session.ID(),
		Region:  session.Region().Name(),
	}
	point := geometry.Point{X: req.Lon, Y: req.Lat}
	switch err := session.Pick(point); {
	case errors.Is(err, regionmap.ErrOutsidePickRegion):
		metrics.PicksRejectedTotal.Inc()
	case err != nil:
		writeError(w, http.StatusInternalServerError, "pick failed")
		return
	default:
		resp.Inside = true
		resp.Location = &[2]float64{point.X, point.Y}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// client disconnects are not actionable here
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
