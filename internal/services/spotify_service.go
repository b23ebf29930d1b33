package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"tophits/internal/config"
	"tophits/internal/models"
	"tophits/internal/search"
)

const (
	spotifyPlatform = "spotify"

	// the search endpoint rejects larger pages
	spotifyMaxLimit = 50
)

// spotifyService searches the Spotify catalog with an app token obtained
// through the client credentials flow.
type spotifyService struct {
	http    *resty.Client
	token   *appToken
	baseURL string
	market  string
	limit   int
}

// NewSpotifyService creates a new Spotify catalog service
func NewSpotifyService(cfg config.CatalogConfig) CatalogService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(retryThrottledOrUnavailable)

	limit := min(cfg.SearchLimit, spotifyMaxLimit)
	if limit <= 0 {
		limit = 20
	}

	return &spotifyService{
		http: httpClient,
		token: &appToken{conf: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}},
		baseURL: cfg.BaseURL,
		market:  cfg.Market,
		limit:   limit,
	}
}

func retryThrottledOrUnavailable(r *resty.Response, _ error) bool {
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (s *spotifyService) Name() string {
	return spotifyPlatform
}

// Search runs a raw catalog query. An empty result is reported as search.ErrNotFound.
func (s *spotifyService) Search(ctx context.Context, query string) ([]models.CandidateTrack, error) {
	page, status, err := s.fetchPage(ctx, query)
	if err == nil && status == http.StatusUnauthorized {
		// token revoked before its expiry
		s.token.reject()
		page, status, err = s.fetchPage(ctx, query)
	}
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK && status != http.StatusNotFound {
		return nil, &PlatformError{
			Platform:   spotifyPlatform,
			Operation:  "search",
			Message:    fmt.Sprintf("API returned status %d", status),
			Query:      query,
			StatusCode: status,
		}
	}
	if status == http.StatusNotFound || len(page.Tracks.Items) == 0 {
		return nil, &PlatformError{
			Platform:   spotifyPlatform,
			Operation:  "search",
			Message:    "no tracks found",
			Query:      query,
			StatusCode: http.StatusNotFound,
			Err:        search.ErrNotFound,
		}
	}

	candidates := make([]models.CandidateTrack, len(page.Tracks.Items))
	for i, item := range page.Tracks.Items {
		candidates[i] = item.candidate()
	}
	return candidates, nil
}

func (s *spotifyService) fetchPage(ctx context.Context, query string) (*spotifySearchPage, int, error) {
	bearer, err := s.token.get(ctx)
	if err != nil {
		return nil, 0, err
	}

	req := s.http.R().
		SetContext(ctx).
		SetAuthToken(bearer).
		SetQueryParam("q", query).
		SetQueryParam("type", "track").
		SetQueryParam("limit", strconv.Itoa(s.limit))
	if s.market != "" {
		req.SetQueryParam("market", s.market)
	}

	page := &spotifySearchPage{}
	resp, err := req.SetResult(page).Get(s.baseURL + "/search")
	if err != nil {
		return nil, 0, &PlatformError{
			Platform:  spotifyPlatform,
			Operation: "search",
			Message:   "request failed",
			Query:     query,
			Err:       err,
		}
	}
	return page, resp.StatusCode(), nil
}

// Health checks that an access token can be obtained
func (s *spotifyService) Health(ctx context.Context) error {
	_, err := s.token.get(ctx)
	return err
}

// appToken holds the current client credentials token. A token is reused
// until it expires or reject is called.
type appToken struct {
	conf *clientcredentials.Config

	mu  sync.Mutex
	tok *oauth2.Token
}

func (a *appToken) get(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tok.Valid() {
		return a.tok.AccessToken, nil
	}

	tok, err := a.conf.Token(ctx)
	if err != nil {
		return "", &PlatformError{
			Platform:  spotifyPlatform,
			Operation: "auth",
			Message:   "could not obtain app token",
			Err:       err,
		}
	}
	if tok.Expiry.IsZero() {
		tok.Expiry = time.Now().Add(time.Hour)
	}
	a.tok = tok

	slog.Info("Spotify app token acquired", "expires_at", tok.Expiry)
	return tok.AccessToken, nil
}

func (a *appToken) reject() {
	a.mu.Lock()
	a.tok = nil
	a.mu.Unlock()
}

// wire format of GET /v1/search?type=track
type spotifySearchPage struct {
	Tracks struct {
		Items []spotifyTrackItem `json:"items"`
		Total int                `json:"total"`
	} `json:"tracks"`
}

type spotifyTrackItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	URI     string `json:"uri"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name        string `json:"name"`
		ReleaseDate string `json:"release_date"`
	} `json:"album"`
	DurationMs  int `json:"duration_ms"`
	Popularity  int `json:"popularity"`
	TrackNumber int `json:"track_number"`
}

func (t spotifyTrackItem) candidate() models.CandidateTrack {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return models.CandidateTrack{
		ID:          t.ID,
		Title:       t.Name,
		ArtistNames: names,
		AlbumTitle:  t.Album.Name,
		ReleaseDate: t.Album.ReleaseDate,
		Popularity:  t.Popularity,
		DurationMs:  t.DurationMs,
		TrackNumber: t.TrackNumber,
		URI:         t.URI,
	}
}
