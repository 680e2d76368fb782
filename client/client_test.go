package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tennis-watch/logger"
	"tennis-watch/types"
)

func testCriteria() types.SearchCriteria {
	return types.SearchCriteria{
		HourRangeStart: 9,
		HourRangeEnd:   12,
		WhenDay:        1,
		WhenMonth:      7,
		WhenYear:       2026,
		Facilities:     []string{"La Rauze"},
	}
}

func TestFetchAvailabilitySendsExpectedForm(t *testing.T) {
	var gotForm map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Write([]byte(`{"features":[{"properties":{"available":true,"general":{"_nomSrtm":"La Rauze","_id":"101"},"courts":[{"_formattedAirNum":5,"_airNom":"Court 05","_airCvt":"V"}]}}]}`))
	}))
	defer server.Close()

	rec := logger.NewRecorder()
	c := New(server.URL, 5*time.Second, rec)

	features, err := c.FetchAvailability(testCriteria())
	require.NoError(t, err)
	require.Len(t, features, 1)

	p := features[0].Properties
	assert.True(t, p.Available)
	assert.Equal(t, "La Rauze", p.General.Name)
	require.Len(t, p.Courts, 1)
	assert.Equal(t, 5, p.Courts[0].Number)
	assert.Equal(t, "V", p.Courts[0].Covered)

	assert.Equal(t, []string{"9-12"}, gotForm["hourRange"])
	assert.Equal(t, []string{"01/07/2026"}, gotForm["when"])
	assert.Equal(t, coatingCodes, gotForm["selCoating[]"])
	assert.Equal(t, inOutCodes, gotForm["selInOut[]"])

	// Progress logging is part of the fetcher contract.
	msgs := rec.Messages("info")
	assert.Contains(t, msgs, "fetching availability")
	assert.Contains(t, msgs, "availability fetched")
}

func TestFetchAvailabilityNon2xxIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, logger.Nop())

	_, err := c.FetchAvailability(testCriteria())
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusBadGateway, netErr.Status)
}

func TestFetchAvailabilityMalformedBodyIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, logger.Nop())

	_, err := c.FetchAvailability(testCriteria())
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestFetchAvailabilityTransportFailureIsNetworkError(t *testing.T) {
	c := New("http://127.0.0.1:1", 100*time.Millisecond, logger.Nop())

	_, err := c.FetchAvailability(testCriteria())
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestFetchPlanning(t *testing.T) {
	const fragment = `<table><tr><th>Court 01</th></tr></table>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "La Rauze", r.PostForm.Get("name_tennis"))
		assert.Equal(t, "01/07/2026", r.PostForm.Get("date_selected"))
		w.Write([]byte(fragment))
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, logger.Nop())

	html, err := c.FetchPlanning("La Rauze", "01/07/2026")
	require.NoError(t, err)
	assert.Equal(t, fragment, html)
}

type failingDoer struct{ err error }

func (d failingDoer) Do(*http.Request) (*http.Response, error) { return nil, d.err }

func TestInjectedTransportOverride(t *testing.T) {
	want := errors.New("blocked by test transport")
	c := NewWithDoer("https://tennis.example.fr", failingDoer{err: want}, logger.Nop())

	_, err := c.FetchPlanning("La Rauze", "01/07/2026")
	require.Error(t, err)
	assert.ErrorIs(t, err, want)
}
