package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"tophits/internal/models"
)

// HTTPTestHelper drives a gin router in-process and decodes its JSON replies.
type HTTPTestHelper struct {
	t      *testing.T
	router *gin.Engine
}

func NewHTTPTestHelper(t *testing.T, router *gin.Engine) *HTTPTestHelper {
	return &HTTPTestHelper{t: t, router: router}
}

// PostJSON encodes payload and posts it to path
func (h *HTTPTestHelper) PostJSON(path string, payload any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(payload)
	require.NoError(h.t, err, "encode request body")
	return h.PostRaw(path, raw)
}

// PostRaw posts body as is, which lets tests send malformed JSON
func (h *HTTPTestHelper) PostRaw(path string, body []byte) *httptest.ResponseRecorder {
	return h.serve(http.MethodPost, path, bytes.NewReader(body))
}

func (h *HTTPTestHelper) GetJSON(path string) *httptest.ResponseRecorder {
	return h.serve(http.MethodGet, path, nil)
}

func (h *HTTPTestHelper) serve(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

// AssertJSONResponse checks the status and content type, then decodes the body into target
func (h *HTTPTestHelper) AssertJSONResponse(rec *httptest.ResponseRecorder, status int, target any) {
	require.Equal(h.t, status, rec.Code, "body: %s", rec.Body.String())
	require.Equal(h.t, gin.MIMEJSON+"; charset=utf-8", rec.Header().Get("Content-Type"))
	require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), target), "decode response body")
}

// AssertErrorResponse checks the status and that the "error" field mentions substr
func (h *HTTPTestHelper) AssertErrorResponse(rec *httptest.ResponseRecorder, status int, substr string) {
	require.Equal(h.t, status, rec.Code, "body: %s", rec.Body.String())

	var reply struct {
		Error *string `json:"error"`
	}
	require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &reply), "decode error body")
	require.NotNil(h.t, reply.Error, "reply has no error field")
	require.Contains(h.t, *reply.Error, substr)
}

// MockSpotifyServer serves the token and search endpoints of the Spotify API
type MockSpotifyServer struct {
	server *httptest.Server

	mu            sync.Mutex
	searchHandler http.HandlerFunc
	tokenRequests int
	queries       []string
	tokens        []string
}

// NewMockSpotifyServer starts a server answering every search with an empty result
func NewMockSpotifyServer() *MockSpotifyServer {
	m := &MockSpotifyServer{}
	m.searchHandler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SpotifySearchResponse())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", m.handleToken)
	mux.HandleFunc("/v1/search", m.handleSearch)
	m.server = httptest.NewServer(mux)
	return m
}

// TokenURL is the client credentials endpoint
func (m *MockSpotifyServer) TokenURL() string {
	return m.server.URL + "/api/token"
}

// BaseURL is the Web API root
func (m *MockSpotifyServer) BaseURL() string {
	return m.server.URL + "/v1"
}

// Close stops the server
func (m *MockSpotifyServer) Close() {
	m.server.Close()
}

// OnSearch replaces the search handler
func (m *MockSpotifyServer) OnSearch(handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchHandler = handler
}

// RespondWithTracks answers every search with the given tracks
func (m *MockSpotifyServer) RespondWithTracks(tracks ...models.CandidateTrack) {
	items := make([]map[string]any, len(tracks))
	for i, track := range tracks {
		items[i] = SpotifyTrackResponse(track)
	}
	m.OnSearch(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SpotifySearchResponse(items...))
	})
}

// RespondWithStatus answers every search with a bare status code
func (m *MockSpotifyServer) RespondWithStatus(status int) {
	m.OnSearch(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, map[string]any{
			"error": map[string]any{"status": status, "message": http.StatusText(status)},
		})
	})
}

// TokenRequests returns how many access tokens were issued
func (m *MockSpotifyServer) TokenRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokenRequests
}

// Queries returns the received search queries in order
func (m *MockSpotifyServer) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// Tokens returns the bearer tokens the searches were sent with
func (m *MockSpotifyServer) Tokens() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tokens...)
}

func (m *MockSpotifyServer) handleToken(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.tokenRequests++
	token := "mock-access-token-" + strconv.Itoa(m.tokenRequests)
	m.mu.Unlock()

	writeJSON(w, http.StatusOK, SpotifyTokenResponse(token))
}

func (m *MockSpotifyServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.queries = append(m.queries, r.URL.Query().Get("q"))
	m.tokens = append(m.tokens, r.Header.Get("Authorization"))
	handler := m.searchHandler
	m.mu.Unlock()

	handler(w, r)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// SpotifyTokenResponse is the body of a client credentials grant
func SpotifyTokenResponse(token string) map[string]any {
	return map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   3600,
	}
}

// SpotifyTrackResponse renders a candidate the way the search endpoint returns it
func SpotifyTrackResponse(track models.CandidateTrack) map[string]any {
	artists := make([]map[string]any, len(track.ArtistNames))
	for i, name := range track.ArtistNames {
		artists[i] = map[string]any{"id": "artist-" + name, "name": name}
	}
	return map[string]any{
		"id":      track.ID,
		"name":    track.Title,
		"uri":     track.URI,
		"artists": artists,
		"album": map[string]any{
			"id":           "album-" + track.ID,
			"name":         track.AlbumTitle,
			"release_date": track.ReleaseDate,
		},
		"duration_ms":  track.DurationMs,
		"popularity":   track.Popularity,
		"track_number": track.TrackNumber,
	}
}

// SpotifySearchResponse wraps rendered tracks in a search page
func SpotifySearchResponse(tracks ...map[string]any) map[string]any {
	if tracks == nil {
		tracks = []map[string]any{}
	}
	return map[string]any{
		"tracks": map[string]any{
			"items": tracks,
			"total": len(tracks),
		},
	}
}
