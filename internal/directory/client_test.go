package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/locselect/internal/directory/directorytest"
)

func newTestDirectory(t *testing.T) *directorytest.Server {
	t.Helper()
	srv := directorytest.NewServer()
	srv.AddCities("India", "Karnataka", "Bengaluru", "Mysuru")
	srv.AddCities("India", "Maharashtra", "Mumbai", "Pune")
	srv.AddCities("France", "Occitanie", "Toulouse")
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:9100/", time.Second, zerolog.Nop())
	assert.Equal(t, "http://localhost:9100", client.BaseURL())
	assert.Equal(t, time.Second, client.httpClient.Timeout)
}

func TestListCountries(t *testing.T) {
	srv := newTestDirectory(t)
	client := NewClient(srv.URL, time.Second, zerolog.Nop())

	countries, err := client.ListCountries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"India", "France"}, countries)
}

func TestListStates(t *testing.T) {
	srv := newTestDirectory(t)
	client := NewClient(srv.URL, time.Second, zerolog.Nop())

	states, err := client.ListStates(context.Background(), "India")
	require.NoError(t, err)
	assert.Equal(t, []string{"Karnataka", "Maharashtra"}, states)
	assert.Equal(t, 1, srv.Hits("/country=India/states"))
}

func TestListCities(t *testing.T) {
	srv := newTestDirectory(t)
	client := NewClient(srv.URL, time.Second, zerolog.Nop())

	cities, err := client.ListCities(context.Background(), "India", "Karnataka")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bengaluru", "Mysuru"}, cities)
}

func TestListCities_EscapesNames(t *testing.T) {
	srv := directorytest.NewServer()
	srv.AddCities("United States", "New York", "New York City", "Buffalo")
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, zerolog.Nop())

	states, err := client.ListStates(context.Background(), "United States")
	require.NoError(t, err)
	assert.Equal(t, []string{"New York"}, states)

	cities, err := client.ListCities(context.Background(), "United States", "New York")
	require.NoError(t, err)
	assert.Equal(t, []string{"New York City", "Buffalo"}, cities)
}

func TestListStates_UnknownCountryIsEmpty(t *testing.T) {
	srv := newTestDirectory(t)
	client := NewClient(srv.URL, time.Second, zerolog.Nop())

	states, err := client.ListStates(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.NotNil(t, states)
	assert.Empty(t, states)
}

func TestListStates_UpstreamError(t *testing.T) {
	srv := newTestDirectory(t)
	srv.FailPath("/country=India/states", http.StatusInternalServerError)
	client := NewClient(srv.URL, time.Second, zerolog.Nop())

	states, err := client.ListStates(context.Background(), "India")
	require.Error(t, err)
	assert.Nil(t, states)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
	assert.Equal(t, "/country=India/states", upstream.Path)
}

func TestListCountries_TransportError(t *testing.T) {
	srv := directorytest.NewServer()
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, zerolog.Nop())

	countries, err := client.ListCountries(context.Background())
	require.Error(t, err)
	assert.Nil(t, countries)

	var transport *TransportError
	assert.True(t, errors.As(err, &transport))
}

func TestListCountries_MalformedBodyIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"countries": [`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, zerolog.Nop())

	_, err := client.ListCountries(context.Background())
	var transport *TransportError
	require.True(t, errors.As(err, &transport))
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestListCountries_NullBodyIsEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, zerolog.Nop())

	countries, err := client.ListCountries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, countries)
	assert.Empty(t, countries)
}

func TestListCountries_SendsRequestID(t *testing.T) {
	var requestID, accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/countries", r.URL.Path)
		requestID = r.Header.Get("X-Request-ID")
		accept = r.Header.Get("Accept")
		w.Write([]byte(`["India"]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, zerolog.Nop())

	_, err := client.ListCountries(context.Background())
	require.NoError(t, err)
	assert.Len(t, requestID, 36)
	assert.Equal(t, "application/json", accept)
}

func TestListCountries_CancelledContext(t *testing.T) {
	srv := newTestDirectory(t)
	client := NewClient(srv.URL, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListCountries(ctx)
	var transport *TransportError
	require.True(t, errors.As(err, &transport))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestListCountries_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, 50*time.Millisecond, zerolog.Nop())

	_, err := client.ListCountries(context.Background())
	var transport *TransportError
	assert.True(t, errors.As(err, &transport))
}

func TestErrorMessages(t *testing.T) {
	transport := &TransportError{Path: "/countries", Err: errors.New("connection refused")}
	assert.Equal(t, "directory request /countries failed: connection refused", transport.Error())

	upstream := &UpstreamError{Path: "/countries", StatusCode: 503}
	assert.Equal(t, "directory request /countries returned status 503", upstream.Error())
}
