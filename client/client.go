package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tennis-watch/logger"
	"tennis-watch/types"
)

const (
	searchPath   = "/jsp/site/Portal.jsp?page=recherche&action=rechercher_creneau"
	planningPath = "/jsp/site/Portal.jsp?page=recherche&action=ajax_load_planning"
	userAgent    = "Mozilla/5.0 (compatible; TennisWatch/1.0)"
)

// Surface-type and indoor/outdoor codes the search endpoint expects as
// repeated fields. Fixed upstream values, not configurable.
var (
	coatingCodes = []string{"96", "2095", "94", "1324", "2016", "92"}
	inOutCodes   = []string{"V", "F"}
)

// Doer issues one HTTP request. Overriding it swaps the transport (proxied,
// recorded, fake) without touching request construction.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NetworkError reports a failed exchange with the booking site: transport
// failure, non-2xx status, or a body that does not parse.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("network: %s returned status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("network: %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client talks to the booking site. One Client serves both the availability
// search and the planning pages.
type Client struct {
	baseURL string
	doer    Doer
	log     logger.Logger
}

// New creates a Client with a default http.Client bound by timeout.
func New(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return NewWithDoer(baseURL, &http.Client{Timeout: timeout}, log)
}

// NewWithDoer creates a Client with an explicit transport.
func NewWithDoer(baseURL string, doer Doer, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		log:     log,
	}
}

// FetchAvailability queries facility-level availability for the criteria's
// date and hour range and returns the raw feature list.
func (c *Client) FetchAvailability(criteria types.SearchCriteria) ([]types.RawFeature, error) {
	form := url.Values{}
	form.Set("hourRange", criteria.HourRange())
	form.Set("when", criteria.When())
	form["selCoating[]"] = coatingCodes
	form["selInOut[]"] = inOutCodes

	endpoint := c.baseURL + searchPath
	c.log.Info("fetching availability",
		"when", criteria.When(),
		"hourRange", criteria.HourRange(),
	)

	body, err := c.postForm(endpoint, form)
	if err != nil {
		return nil, err
	}

	var parsed types.AvailabilityResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &NetworkError{URL: endpoint, Err: fmt.Errorf("decoding features: %w", err)}
	}

	c.log.Info("availability fetched", "features", len(parsed.Features))
	return parsed.Features, nil
}

// FetchPlanning loads the planning HTML fragment for one facility and date.
// when uses the same DD/MM/YYYY form as the search request.
func (c *Client) FetchPlanning(facility, when string) (string, error) {
	form := url.Values{}
	form.Set("name_tennis", facility)
	form.Set("date_selected", when)

	endpoint := c.baseURL + planningPath
	c.log.Info("fetching planning", "facility", facility, "when", when)

	body, err := c.postForm(endpoint, form)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) postForm(endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &NetworkError{URL: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{URL: endpoint, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: endpoint, Err: err}
	}
	return body, nil
}
