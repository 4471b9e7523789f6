package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/dalilcare/provider-directory/internal/search"
	"github.com/dalilcare/provider-directory/internal/services"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search runs a directory search from shareable URL parameters. Filter
// parameters follow the documented names; `sort`, `lat` and `lng` ride
// alongside them.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	req := services.SearchRequest{
		Filters: search.Deserialize(params),
		Sort:    search.ParseSortKey(params.Get("sort")),
	}

	if lat, lng, ok := parseCoords(params.Get("lat"), params.Get("lng")); ok {
		req.Lat = &lat
		req.Lng = &lng
	}

	results, err := h.searchService.Search(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("Search failed")
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

func parseCoords(latStr, lngStr string) (float64, float64, bool) {
	if latStr == "" || lngStr == "" {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
