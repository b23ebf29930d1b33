package handlers

import (
	"tophits/internal/models"
	"tophits/internal/services"
)

// ResolveEntryRequest represents one chart entry to resolve
type ResolveEntryRequest struct {
	Year     int      `json:"year"`
	Position int      `json:"position"`
	Title    string   `json:"title" binding:"required"`
	Artists  []string `json:"artists" binding:"required,min=1"`
	LocalAct bool     `json:"local_act,omitempty"`
}

// ToEntry converts the request into a chart entry
func (r ResolveEntryRequest) ToEntry() models.SourceEntry {
	return models.SourceEntry{
		Year:     r.Year,
		Position: r.Position,
		Title:    r.Title,
		Artists:  r.Artists,
		LocalAct: r.LocalAct,
	}
}

// ResolveChartRequest represents a whole chart year to resolve
type ResolveChartRequest struct {
	Year    int                   `json:"year" binding:"required"`
	Entries []ResolveEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// ToChart converts the request into a chart
func (r ResolveChartRequest) ToChart() models.ChartInfo {
	chart := models.ChartInfo{Year: r.Year, Entries: make([]models.SourceEntry, len(r.Entries))}
	for i, entry := range r.Entries {
		chart.Entries[i] = entry.ToEntry()
	}
	return chart
}

// ResolutionResponse represents the outcome for one entry
type ResolutionResponse struct {
	Entry      models.SourceEntry       `json:"entry"`
	Searched   *models.SourceEntry      `json:"searched,omitempty"`
	Matched    bool                     `json:"matched"`
	Track      *models.CandidateTrack   `json:"track,omitempty"`
	Score      float64                  `json:"score,omitempty"`
	PoolSize   int                      `json:"pool_size"`
	Tiers      map[string]int           `json:"tiers"`
	Candidates []models.ScoredCandidate `json:"candidates,omitempty"`
}

// ChartResolutionResponse represents the outcome for a chart year
type ChartResolutionResponse struct {
	Year    int                  `json:"year"`
	Total   int                  `json:"total"`
	Matched int                  `json:"matched"`
	Results []ResolutionResponse `json:"results"`
}

// StoredMatchesResponse lists the stored outcomes of a chart year
type StoredMatchesResponse struct {
	Year    int                   `json:"year"`
	Count   int                   `json:"count"`
	Matches []*models.MatchRecord `json:"matches"`
}

func newResolutionResponse(res *services.Resolution) ResolutionResponse {
	resp := ResolutionResponse{
		Entry:    res.Entry,
		Matched:  res.Matched(),
		Track:    res.Track(),
		Score:    res.Score(),
		PoolSize: res.PoolSize,
		Tiers:    res.TierCounts,
	}
	if !sameEntry(res.Entry, res.Searched) {
		searched := res.Searched
		resp.Searched = &searched
	}
	for _, rating := range res.Selection.Diagnostics {
		resp.Candidates = append(resp.Candidates, rating.ToScoredCandidate())
	}
	return resp
}

func newChartResolutionResponse(chart *services.ChartResolution) ChartResolutionResponse {
	resp := ChartResolutionResponse{
		Year:    chart.Year,
		Total:   len(chart.Resolutions),
		Matched: chart.MatchedCount(),
		Results: make([]ResolutionResponse, len(chart.Resolutions)),
	}
	for i, res := range chart.Resolutions {
		resp.Results[i] = newResolutionResponse(res)
	}
	return resp
}

func sameEntry(a, b models.SourceEntry) bool {
	if a.Title != b.Title || len(a.Artists) != len(b.Artists) {
		return false
	}
	for i := range a.Artists {
		if a.Artists[i] != b.Artists[i] {
			return false
		}
	}
	return true
}
