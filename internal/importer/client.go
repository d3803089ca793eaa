package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"enduro/internal/store"
)

// BaseURL is the provider API root.
const BaseURL = "https://www.strava.com/api/v3"

// Client fetches activities from the provider, rate-limited and
// authenticated via a refreshing oauth2.TokenSource.
type Client struct {
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient builds a Client over tokenSource.
func NewClient(tokenSource oauth2.TokenSource) *Client {
	return &Client{
		httpClient:  oauth2.NewClient(context.Background(), tokenSource),
		rateLimiter: NewRateLimiter(),
	}
}

// providerActivity is the provider's wire shape for one activity, decoded
// then mapped into the inbound Record shape by toRecord.
type providerActivity struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	PrivateNote      string  `json:"private_note"`
	Type             string  `json:"type"`
	SportType        string  `json:"sport_type"`
	StartDateLocal   string  `json:"start_date_local"`
	MovingTime       int     `json:"moving_time"`
	Distance         float64 `json:"distance"` // meters
	AverageHeartrate float64 `json:"average_heartrate"`
	MaxHeartrate     float64 `json:"max_heartrate"`
	HasHeartrate     bool    `json:"has_heartrate"`
	Trainer          bool    `json:"trainer"` // provider's own indoor flag
	DeviceName       string  `json:"device_name"`
	SufferScore      int     `json:"suffer_score"`
	PerceivedExertion int    `json:"perceived_exertion"`
}

func (a providerActivity) toRecord() Record {
	start, _ := time.Parse("2006-01-02T15:04:05Z", a.StartDateLocal)
	rec := Record{
		ActivityID:       strconv.FormatInt(a.ID, 10),
		Source:           "provider",
		SportType:        a.Type,
		DurationMinutes:  float64(a.MovingTime) / 60,
		HasGPS:           !a.Trainer,
		DeviceName:       a.DeviceName,
		Name:             a.Name,
		Description:      a.Description,
		PrivateNote:      a.PrivateNote,
	}
	if !start.IsZero() {
		rec.ActivityDate = start.Format("2006-01-02")
		rec.StartTime = &start
	}
	if a.Distance > 0 {
		km := a.Distance / 1000
		rec.DistanceKM = &km
	}
	if a.HasHeartrate {
		avg := int(a.AverageHeartrate)
		max := int(a.MaxHeartrate)
		rec.AverageHR = &avg
		rec.MaxHR = &max
	}
	if a.SufferScore > 0 {
		rec.RelativeEffort = &a.SufferScore
	}
	if a.PerceivedExertion > 0 {
		rec.PerceivedExertion = &a.PerceivedExertion
	}
	return rec
}

// FetchActivities fetches every activity after the given time, paginating
// automatically and reporting progress via onProgress.
func (c *Client) FetchActivities(ctx context.Context, after time.Time, onProgress func(fetched int)) ([]Record, error) {
	var all []Record
	page := 1
	const perPage = 100

	for {
		batch, err := c.fetchPage(ctx, after, page, perPage)
		if err != nil {
			return all, fmt.Errorf("fetching page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}
		for _, a := range batch {
			all = append(all, a.toRecord())
		}
		if onProgress != nil {
			onProgress(len(all))
		}
		if len(batch) < perPage {
			break
		}
		page++
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, after time.Time, page, perPage int) ([]providerActivity, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	if !after.IsZero() {
		params.Set("after", strconv.FormatInt(after.Unix(), 10))
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	reqURL := BaseURL + "/athlete/activities?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, store.NewError(store.KindNetworkError, "importer.fetchPage", reqURL, err)
	}
	defer resp.Body.Close()

	c.rateLimiter.UpdateFromHeaders(resp.Header)

	if resp.StatusCode == http.StatusTooManyRequests {
		resetAt := time.Now().Add(15 * time.Minute)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if secs, err := strconv.Atoi(retryAfter); err == nil {
				resetAt = time.Now().Add(time.Duration(secs) * time.Second)
			}
		}
		c.rateLimiter.PauseUntilReset(resetAt)
		return nil, store.NewError(store.KindRateLimit, "importer.fetchPage", reqURL,
			fmt.Errorf("rate limited, resets at %s", resetAt.Format(time.RFC3339)))
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		body, _ := io.ReadAll(resp.Body)
		return nil, store.NewError(store.KindAuthError, "importer.fetchPage", reqURL,
			fmt.Errorf("provider auth error %d: %s", resp.StatusCode, string(body)))
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, store.NewError(store.KindNetworkError, "importer.fetchPage", reqURL,
			fmt.Errorf("provider API error %d: %s", resp.StatusCode, string(body)))
	}

	var activities []providerActivity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decoding activities: %w", err)
	}
	return activities, nil
}
