package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rainwatch/internal/application/middleware"
	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/evaluator"
	"rainwatch/internal/domain/model"
	"rainwatch/internal/domain/usecase/forecast"
	"rainwatch/internal/domain/usecase/task"
)

type mockForecastUseCase struct {
	mock.Mock
}

func (m *mockForecastUseCase) Evaluate(samples []entity.WeatherSample, referenceNow time.Time, labels []string) (*model.EvaluationResponse, error) {
	args := m.Called(samples, referenceNow, labels)
	response, _ := args.Get(0).(*model.EvaluationResponse)
	return response, args.Error(1)
}

func (m *mockForecastUseCase) ListRegions() []entity.Region {
	return m.Called().Get(0).([]entity.Region)
}

func (m *mockForecastUseCase) FindRegion(name string) (*entity.Region, error) {
	args := m.Called(name)
	region, _ := args.Get(0).(*entity.Region)
	return region, args.Error(1)
}

func (m *mockForecastUseCase) EvaluateRegion(ctx context.Context, region entity.Region) (*model.EvaluationResponse, error) {
	args := m.Called(ctx, region)
	response, _ := args.Get(0).(*model.EvaluationResponse)
	return response, args.Error(1)
}

func (m *mockForecastUseCase) EvaluateAllRegions(ctx context.Context) []model.RegionPreview {
	return m.Called(ctx).Get(0).([]model.RegionPreview)
}

func (m *mockForecastUseCase) CheckRegion(ctx context.Context, region entity.Region, requestID string) (*model.RegionCheckResult, error) {
	args := m.Called(ctx, region, requestID)
	result, _ := args.Get(0).(*model.RegionCheckResult)
	return result, args.Error(1)
}

func (m *mockForecastUseCase) ScheduleAllRegions(ctx context.Context, requestID string) error {
	return m.Called(ctx, requestID).Error(0)
}

func (m *mockForecastUseCase) ListDispatches(ctx context.Context, page int, size int) (*model.Page[entity.AlertDispatch], error) {
	args := m.Called(ctx, page, size)
	result, _ := args.Get(0).(*model.Page[entity.AlertDispatch])
	return result, args.Error(1)
}

type mockTaskUseCase struct {
	mock.Mock
}

func (m *mockTaskUseCase) CreateTask(ctx context.Context, name string, notes string, dueOn entity.Date) (*entity.Task, error) {
	args := m.Called(ctx, name, notes, dueOn)
	created, _ := args.Get(0).(*entity.Task)
	return created, args.Error(1)
}

func (m *mockTaskUseCase) CreateTestTask(ctx context.Context) (*entity.Task, error) {
	args := m.Called(ctx)
	created, _ := args.Get(0).(*entity.Task)
	return created, args.Error(1)
}

func (m *mockTaskUseCase) ListSections(ctx context.Context) ([]entity.Section, error) {
	args := m.Called(ctx)
	sections, _ := args.Get(0).([]entity.Section)
	return sections, args.Error(1)
}

func (m *mockTaskUseCase) GetTask(ctx context.Context, taskGID string) (*entity.Task, error) {
	args := m.Called(ctx, taskGID)
	found, _ := args.Get(0).(*entity.Task)
	return found, args.Error(1)
}

type mockTrackingUseCase struct {
	mock.Mock
}

func (m *mockTrackingUseCase) RegisterSubmission(ctx context.Context, dto model.CreateTrackingRowDTO) (*entity.TrackingRow, error) {
	args := m.Called(ctx, dto)
	row, _ := args.Get(0).(*entity.TrackingRow)
	return row, args.Error(1)
}

func (m *mockTrackingUseCase) SyncCompletions(ctx context.Context, requestID string) (*model.SyncReport, error) {
	args := m.Called(ctx, requestID)
	report, _ := args.Get(0).(*model.SyncReport)
	return report, args.Error(1)
}

func (m *mockTrackingUseCase) FindAll(ctx context.Context, page int, size int) (*model.Page[entity.TrackingRow], error) {
	args := m.Called(ctx, page, size)
	rows, _ := args.Get(0).(*model.Page[entity.TrackingRow])
	return rows, args.Error(1)
}

type staticHealthUseCase struct {
	response model.HealthResponse
}

func (s staticHealthUseCase) CheckHealth() model.HealthResponse { return s.response }

func newServer() (*echo.Echo, *echo.Group) {
	e := echo.New()
	middleware.SetupValidator(e)
	return e, e.Group("/rainwatch")
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &value))
	return value
}

func newForecastServer() (*echo.Echo, *mockForecastUseCase, *ForecastController) {
	e, api := newServer()
	useCase := &mockForecastUseCase{}
	controller := NewForecastController(api, useCase)
	controller.async = func(f func()) { f() }
	controller.InitForecastRoutes()
	return e, useCase, controller
}

func TestForecastController_Evaluate(t *testing.T) {
	e, useCase, _ := newForecastServer()
	reference := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	date := entity.Date{Year: 2024, Month: time.June, Day: 12}
	samples := []entity.WeatherSample{{Timestamp: time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC), Conditions: []string{"Clear"}}}
	useCase.On("Evaluate", samples, reference, []string(nil)).Return(&model.EvaluationResponse{
		EvaluationResult: entity.EvaluationResult{HasQualifyingDay: true, QualifyingDate: &date},
	}, nil)

	rec := serve(e, http.MethodPost, "/rainwatch/forecast/evaluate",
		`{"referenceNow":"2024-06-10T09:00:00Z","samples":[{"timestamp":"2024-06-12T12:00:00Z","conditions":["Clear"]}]}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["hasQualifyingDay"])
	assert.Equal(t, "2024-06-12", body["qualifyingDate"])
}

func TestForecastController_EvaluateRejectsBadInput(t *testing.T) {
	e, useCase, _ := newForecastServer()
	useCase.On("Evaluate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: bad", evaluator.ErrInvalidInput))

	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/rainwatch/forecast/evaluate", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/rainwatch/forecast/evaluate", `{"samples":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/rainwatch/forecast/evaluate", `{"referenceNow":"0001-01-01T00:00:00Z"}`).Code)
}

func TestForecastController_PreviewRegion(t *testing.T) {
	e, useCase, _ := newForecastServer()
	region := entity.Region{Name: "Nordeste", City: "Salvador"}
	useCase.On("FindRegion", "Nordeste").Return(&region, nil)
	useCase.On("FindRegion", "Oeste").Return(nil, fmt.Errorf("%w: Oeste", forecast.ErrRegionNotFound))
	useCase.On("EvaluateRegion", mock.Anything, region).Return(&model.EvaluationResponse{}, nil)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/rainwatch/forecast/regions/Nordeste", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/rainwatch/forecast/regions/Oeste", "").Code)
}

func TestForecastController_PreviewRegionForecastFailure(t *testing.T) {
	e, useCase, _ := newForecastServer()
	region := entity.Region{Name: "Sul"}
	useCase.On("FindRegion", "Sul").Return(&region, nil)
	useCase.On("EvaluateRegion", mock.Anything, region).Return(nil, errors.New("openweather: 503"))

	rec := serve(e, http.MethodGet, "/rainwatch/forecast/regions/Sul", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "openweather: 503", decode[map[string]string](t, rec)["error"])
}

func TestForecastController_PreviewAllIsNotShadowedByName(t *testing.T) {
	e, useCase, _ := newForecastServer()
	useCase.On("EvaluateAllRegions", mock.Anything).Return([]model.RegionPreview{{Region: entity.Region{Name: "Nordeste"}}})

	rec := serve(e, http.MethodGet, "/rainwatch/forecast/regions/preview", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.RegionPreview](t, rec), 1)
	useCase.AssertNotCalled(t, "FindRegion", mock.Anything)
}

func TestForecastController_Schedule(t *testing.T) {
	e, useCase, _ := newForecastServer()
	useCase.On("ScheduleAllRegions", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	rec := serve(e, http.MethodGet, "/rainwatch/forecast/schedule", "")

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.NotEmpty(t, decode[map[string]string](t, rec)["requestId"])
	useCase.AssertNumberOfCalls(t, "ScheduleAllRegions", 1)
}

func TestForecastController_ListDispatchesClampsPagination(t *testing.T) {
	e, useCase, _ := newForecastServer()
	useCase.On("ListDispatches", mock.Anything, 0, 100).Return(model.NewPage([]entity.AlertDispatch{}, 0, 100, 0), nil)

	rec := serve(e, http.MethodGet, "/rainwatch/forecast/dispatches?page=-2&size=1000", "")

	require.Equal(t, http.StatusOK, rec.Code)
	useCase.AssertExpectations(t)
}

func TestForecastController_ListDispatchesCapsHugePage(t *testing.T) {
	e, useCase, _ := newForecastServer()
	maxPage := math.MaxInt32 / 50
	useCase.On("ListDispatches", mock.Anything, maxPage, 50).Return(model.NewPage([]entity.AlertDispatch{}, maxPage, 50, 0), nil)

	rec := serve(e, http.MethodGet, "/rainwatch/forecast/dispatches?page=9223372036854775807&size=50", "")

	require.Equal(t, http.StatusOK, rec.Code)
	useCase.AssertExpectations(t)
}

func TestTaskController_Create(t *testing.T) {
	e, api := newServer()
	useCase := &mockTaskUseCase{}
	NewTaskController(api, useCase).InitTaskRoutes()
	due := entity.Date{Year: 2024, Month: time.June, Day: 20}
	useCase.On("CreateTask", mock.Anything, "Comprar palhetas", "", due).Return(&entity.Task{GID: "42", DueOn: due}, nil)

	rec := serve(e, http.MethodPost, "/rainwatch/tasks", `{"name":"Comprar palhetas","dueOn":"2024-06-20"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "42", decode[entity.Task](t, rec).GID)
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/rainwatch/tasks", `{"notes":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/rainwatch/tasks", `{"name":"x","dueOn":"20/06/2024"}`).Code)
}

func TestTaskController_CreateTestAndSections(t *testing.T) {
	e, api := newServer()
	useCase := &mockTaskUseCase{}
	NewTaskController(api, useCase).InitTaskRoutes()
	useCase.On("CreateTestTask", mock.Anything).Return(nil, fmt.Errorf("%w: empty", task.ErrInvalidTask))
	useCase.On("ListSections", mock.Anything).Return([]entity.Section{{GID: "1", Name: "Compras"}}, nil)

	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/rainwatch/tasks/test", "").Code)

	rec := serve(e, http.MethodGet, "/rainwatch/tasks/sections", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []entity.Section{{GID: "1", Name: "Compras"}}, decode[[]entity.Section](t, rec))
}

func TestTrackingController(t *testing.T) {
	e, api := newServer()
	useCase := &mockTrackingUseCase{}
	controller := NewTrackingController(api, useCase)
	controller.async = func(f func()) { f() }
	controller.InitTrackingRoutes()

	dto := model.CreateTrackingRowDTO{Title: "Trocar palhetas"}
	useCase.On("RegisterSubmission", mock.Anything, dto).Return(&entity.TrackingRow{ID: 1, Title: dto.Title, TaskID: "42"}, nil)
	useCase.On("FindAll", mock.Anything, 2, 5).Return(model.NewPage([]entity.TrackingRow{}, 2, 5, 0), nil)
	useCase.On("SyncCompletions", mock.Anything, mock.AnythingOfType("string")).Return(&model.SyncReport{}, nil)

	rec := serve(e, http.MethodPost, "/rainwatch/tracking", `{"title":"Trocar palhetas"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "42", decode[entity.TrackingRow](t, rec).TaskID)

	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/rainwatch/tracking", `{}`).Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/rainwatch/tracking?page=2&size=5", "").Code)
	assert.Equal(t, http.StatusAccepted, serve(e, http.MethodGet, "/rainwatch/tracking/sync", "").Code)
	useCase.AssertExpectations(t)
}

func TestHealthController(t *testing.T) {
	tests := []struct {
		status model.HealthStatus
		want   int
	}{
		{model.StatusUp, http.StatusOK},
		{model.StatusDown, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			e, api := newServer()
			NewHealthController(api, staticHealthUseCase{model.HealthResponse{Status: tt.status}}).InitHealthRoutes()

			rec := serve(e, http.MethodGet, "/rainwatch/health", "")

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.status, decode[model.HealthResponse](t, rec).Status)
		})
	}
}
