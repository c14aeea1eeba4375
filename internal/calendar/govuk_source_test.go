package calendar

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestGovUKSource_Fetch(t *testing.T) {
	fixture, err := os.ReadFile("testdata/bank-holidays.json")
	require.NoError(t, err)

	var gotAccept atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept.Store(r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}))
	defer server.Close()

	src := NewGovUKSource(server.URL, zaptest.NewLogger(t))
	dataset, err := src.Fetch()
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotAccept.Load())
	require.Len(t, dataset, 3)
	assert.Len(t, dataset["england-and-wales"].Events, 8)
	assert.Equal(t, "scotland", dataset["scotland"].Division)

	last := dataset["england-and-wales"].Events[7]
	assert.Equal(t, Event{Title: "Boxing Day", Date: "2026-12-28", Notes: "Substitute day"}, last)
}

func TestGovUKSource_DefaultsAndTimeout(t *testing.T) {
	src := NewGovUKSource("", nil)
	assert.Equal(t, DefaultSourceURL, src.url)
	assert.Equal(t, defaultTimeout, src.httpClient.Timeout)
}

func TestGovUKSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantErr: ErrSourceStatus,
		},
		{
			name: "not found status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantErr: ErrSourceStatus,
		},
		{
			name: "invalid JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>maintenance</html>`))
			},
			wantErr: ErrParse,
		},
		{
			name: "null document",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`null`))
			},
			wantErr: ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			src := NewGovUKSource(server.URL, zaptest.NewLogger(t))
			_, err := src.Fetch()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGovUKSource_TransportFailure(t *testing.T) {
	dialErr := errors.New("dial tcp: lookup www.gov.uk: no such host")

	src := NewGovUKSource(DefaultSourceURL, zaptest.NewLogger(t))
	src.httpClient.Transport = RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, dialErr
	})

	_, err := src.Fetch()
	require.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, dialErr)
	assert.NotErrorIs(t, err, ErrSourceStatus)
}

func TestGovUKSource_FeedsCalendar(t *testing.T) {
	fixture, err := os.ReadFile("testdata/bank-holidays.json")
	require.NoError(t, err)

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write(fixture)
	}))
	defer server.Close()

	cal, err := NewWorkingDayCalendar("Northern-Ireland", NewGovUKSource(server.URL, nil), zaptest.NewLogger(t))
	require.NoError(t, err)

	h, err := cal.IsPublicHoliday(d(2026, 3, 17))
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "St Patrick’s Day", h.Name)

	_, err = cal.MonthSummary(2026, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())
}
