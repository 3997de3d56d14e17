package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/model/external"
	"rainwatch/pkg/http"
)

const forecastBody = `{
  "cod": "200",
  "cnt": 2,
  "list": [
    {"dt": 1718020800, "dt_txt": "2024-06-10 12:00:00", "weather": [{"id": 500, "main": "Rain", "description": "chuva leve"}]},
    {"dt": 1718204400, "dt_txt": "2024-06-12 15:00:00", "weather": [{"id": 800, "main": "Clear", "description": "céu limpo"}]}
  ],
  "city": {"name": "Salvador", "country": "BR", "timezone": -10800}
}`

func TestWeatherGateway_GetForecast(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/data/2.5/forecast", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "-12.9777", query.Get("lat"))
		assert.Equal(t, "-38.5016", query.Get("lon"))
		assert.Equal(t, "secret", query.Get("appid"))
		assert.Equal(t, "metric", query.Get("units"))
		assert.Equal(t, "pt_br", query.Get("lang"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, "secret", http.ClientOptions{})

	response, err := gateway.GetForecast(context.Background(), -12.9777, -38.5016)

	require.NoError(t, err)
	require.Len(t, response.List, 2)
	assert.Equal(t, "Rain", response.List[0].Weather[0].Main)
	assert.Equal(t, "2024-06-12 15:00:00", response.List[1].DtTxt)
	assert.Equal(t, "Salvador", response.City.Name)
}

func TestWeatherGateway_GetForecastError(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
	}))
	defer server.Close()

	gateway := NewWeatherGateway(server.URL, "wrong", http.ClientOptions{})

	_, err := gateway.GetForecast(context.Background(), 1, 2)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
	var statusErr *http.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

type stubWeatherGateway struct {
	calls    int
	response *external.OpenWeatherForecastResponse
	err      error
}

func (s *stubWeatherGateway) GetForecast(context.Context, float64, float64) (*external.OpenWeatherForecastResponse, error) {
	s.calls++
	return s.response, s.err
}

type mapCache struct {
	entries map[string][]byte
}

func (m *mapCache) GetOrSet(_ context.Context, key string, dest interface{}, loader func() (interface{}, error)) (bool, error) {
	if data, ok := m.entries[key]; ok {
		return true, json.Unmarshal(data, dest)
	}
	value, err := loader()
	if err != nil {
		return false, err
	}
	data, _ := json.Marshal(value)
	m.entries[key] = data
	return false, json.Unmarshal(data, dest)
}

func TestCachedWeatherGateway_ServesRepeatedLookupsFromCache(t *testing.T) {
	delegate := &stubWeatherGateway{response: &external.OpenWeatherForecastResponse{Cod: "200", Cnt: 1}}
	cache := &mapCache{entries: map[string][]byte{}}
	gateway := NewCachedWeatherGateway(delegate, cache)

	first, err := gateway.GetForecast(context.Background(), -12.97771, -38.5016)
	require.NoError(t, err)
	second, err := gateway.GetForecast(context.Background(), -12.97771, -38.5016)
	require.NoError(t, err)

	assert.Equal(t, 1, delegate.calls)
	assert.Equal(t, first, second)
	assert.Contains(t, cache.entries, "-12.9777:-38.5016")
}

func TestCachedWeatherGateway_DoesNotCacheFailures(t *testing.T) {
	delegate := &stubWeatherGateway{err: errors.New("timeout")}
	cache := &mapCache{entries: map[string][]byte{}}
	gateway := NewCachedWeatherGateway(delegate, cache)

	_, err := gateway.GetForecast(context.Background(), 1, 2)

	assert.EqualError(t, err, "timeout")
	assert.Empty(t, cache.entries)
}

func TestNewCachedWeatherGateway_NilCache(t *testing.T) {
	delegate := &stubWeatherGateway{}

	assert.Same(t, delegate, NewCachedWeatherGateway(delegate, nil))
}

type countingLimiter struct {
	acquired int
	err      error
}

func (l *countingLimiter) Acquire(context.Context) error {
	l.acquired++
	return l.err
}

func TestTaskGateway_CreateTask(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"data":{"name":"Reforçar estoque","notes":"Previsão de chuva","projects":["p-1"],"due_on":"2024-06-10"}}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"gid":"123","name":"Reforçar estoque","due_on":"2024-06-10","completed":false}}`))
	}))
	defer server.Close()

	limiter := &countingLimiter{}
	gateway := NewTaskGateway(server.URL, "token-1", limiter, http.ClientOptions{})

	task, err := gateway.CreateTask(context.Background(), "p-1", entity.Task{
		Name:  "Reforçar estoque",
		Notes: "Previsão de chuva",
		DueOn: entity.Date{Year: 2024, Month: time.June, Day: 10},
	})

	require.NoError(t, err)
	assert.Equal(t, "123", task.GID)
	assert.Equal(t, entity.Date{Year: 2024, Month: time.June, Day: 10}, task.DueOn)
	assert.Equal(t, 1, limiter.acquired)
}

func TestTaskGateway_CreateTaskIsNotRetriedAfterServerError(t *testing.T) {
	var posts atomic.Int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if posts.Add(1) == 1 {
			w.WriteHeader(nethttp.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"gid":"2","name":"Reforçar estoque"}}`))
	}))
	defer server.Close()

	gateway := NewTaskGateway(server.URL, "t", nil, http.ClientOptions{
		Backoff:            http.DefaultBackoffConfig(),
		CircuitBreakerName: "asana",
	})

	task, err := gateway.CreateTask(context.Background(), "p-1", entity.Task{Name: "Reforçar estoque"})

	require.Error(t, err)
	assert.Nil(t, task)
	var statusErr *http.StatusError
	assert.True(t, errors.As(err, &statusErr))
	assert.Equal(t, int32(1), posts.Load())
}

func TestTaskGateway_ReadsStillRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(nethttp.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"gid":"s-1","name":"A fazer"}]}`))
	}))
	defer server.Close()

	gateway := NewTaskGateway(server.URL, "t", nil, http.ClientOptions{
		Backoff: &http.BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond},
	})

	sections, err := gateway.ListSections(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Len(t, sections, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTaskGateway_AddTaskToSection(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "/sections/s-9/addTask", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"data":{"task":"123"}}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	gateway := NewTaskGateway(server.URL, "t", nil, http.ClientOptions{})

	assert.NoError(t, gateway.AddTaskToSection(context.Background(), "s-9", "123"))
}

func TestTaskGateway_ListSectionsAndGetTask(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/projects/p-1/sections":
			_, _ = w.Write([]byte(`{"data":[{"gid":"s-1","name":"Backlog"},{"gid":"s-2","name":"Reposição"}]}`))
		case "/tasks/123":
			assert.Contains(t, r.URL.Query().Get("opt_fields"), "completed")
			_, _ = w.Write([]byte(`{"data":{"gid":"123","completed":true}}`))
		default:
			w.WriteHeader(nethttp.StatusNotFound)
		}
	}))
	defer server.Close()

	gateway := NewTaskGateway(server.URL, "t", nil, http.ClientOptions{})

	sections, err := gateway.ListSections(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, []entity.Section{{GID: "s-1", Name: "Backlog"}, {GID: "s-2", Name: "Reposição"}}, sections)

	task, err := gateway.GetTask(context.Background(), "123")
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.True(t, task.DueOn.IsZero())
}

func TestTaskGateway_ErrorCarriesVendorMessage(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":[{"message":"project: Not a recognized ID"}]}`))
	}))
	defer server.Close()

	gateway := NewTaskGateway(server.URL, "t", nil, http.ClientOptions{})

	_, err := gateway.CreateTask(context.Background(), "bad", entity.Task{Name: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "project: Not a recognized ID")
	var statusErr *http.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, nethttp.StatusForbidden, statusErr.StatusCode)
}

func TestTaskGateway_RateLimited(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("rate limit exceeded")}
	gateway := NewTaskGateway("http://127.0.0.1:0", "t", limiter, http.ClientOptions{})

	_, err := gateway.GetTask(context.Background(), "123")

	assert.ErrorContains(t, err, "rate limit exceeded")
}
