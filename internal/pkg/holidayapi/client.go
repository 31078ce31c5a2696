package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/domain/holiday"
)

const (
	DefaultBaseURL = "https://holidays-jp.github.io/api/v1"
	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 1 << 20
)

// Client fetches public holidays from a holidays-jp compatible endpoint:
// GET {baseURL}/{year}/date.json returning {"YYYY-MM-DD": "name", ...}.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a holiday API client. A zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// FetchHolidays implements holiday.Source.
func (c *Client) FetchHolidays(ctx context.Context, year int) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + "/" + strconv.Itoa(year) + "/date.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", holiday.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: year %d: %v", holiday.ErrFetchFailed, year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: year %d: %s", holiday.ErrUnexpectedStatus, year, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: year %d: %v", holiday.ErrFetchFailed, year, err)
	}

	return parseDates(body)
}

func parseDates(body []byte) ([]time.Time, error) {
	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", holiday.ErrInvalidPayload, err)
	}

	dates := make([]time.Time, 0, len(payload))
	for key := range payload {
		d, err := time.Parse("2006-01-02", key)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", holiday.ErrInvalidPayload, key)
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return dates, nil
}
