package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/model"
)

type fakeTrackingGateway struct {
	rows        []entity.TrackingRow
	createErr   error
	completeErr map[uint]error
}

func (f *fakeTrackingGateway) Migrate() error { return nil }

func (f *fakeTrackingGateway) Create(_ context.Context, row entity.TrackingRow) (*entity.TrackingRow, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	row.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, row)
	return &row, nil
}

func (f *fakeTrackingGateway) find(id uint) *entity.TrackingRow {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i]
		}
	}
	return nil
}

func (f *fakeTrackingGateway) UpdateTaskID(_ context.Context, id uint, taskID string) error {
	row := f.find(id)
	if row == nil {
		return errors.New("record not found")
	}
	row.TaskID = taskID
	return nil
}

func (f *fakeTrackingGateway) MarkCompleted(_ context.Context, id uint, completedAt time.Time) error {
	if err := f.completeErr[id]; err != nil {
		return err
	}
	row := f.find(id)
	row.Completed = true
	row.CompletedAt = &completedAt
	return nil
}

func (f *fakeTrackingGateway) FindPending(context.Context) ([]entity.TrackingRow, error) {
	var pending []entity.TrackingRow
	for _, row := range f.rows {
		if row.TaskID != "" && !row.Completed {
			pending = append(pending, row)
		}
	}
	return pending, nil
}

func (f *fakeTrackingGateway) FindAll(_ context.Context, offset int, limit int) ([]entity.TrackingRow, error) {
	end := min(offset+limit, len(f.rows))
	if offset >= end {
		return []entity.TrackingRow{}, nil
	}
	return f.rows[offset:end], nil
}

func (f *fakeTrackingGateway) CountAll(context.Context) (int64, error) {
	return int64(len(f.rows)), nil
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

var syncTime = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func newUseCase(gateway *fakeTrackingGateway, tasks *mockTaskUseCase) UseCase {
	return NewTrackingUseCase(gateway, tasks, func() time.Time { return syncTime })
}

func TestRegisterSubmission_LinksTaskToRow(t *testing.T) {
	gateway := &fakeTrackingGateway{}
	tasks := &mockTaskUseCase{}
	ctx := context.Background()
	tasks.On("CreateTask", ctx, "Trocar palhetas", "loja 12", entity.Date{}).Return(&entity.Task{GID: "77"}, nil)

	row, err := newUseCase(gateway, tasks).RegisterSubmission(ctx, model.CreateTrackingRowDTO{Title: " Trocar palhetas ", Notes: "loja 12"})

	require.NoError(t, err)
	assert.Equal(t, uint(1), row.ID)
	assert.Equal(t, "77", row.TaskID)
	assert.Equal(t, "77", gateway.rows[0].TaskID)
	tasks.AssertExpectations(t)
}

func TestRegisterSubmission_TaskFailureKeepsRow(t *testing.T) {
	gateway := &fakeTrackingGateway{}
	tasks := &mockTaskUseCase{}
	tasks.On("CreateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("401"))

	row, err := newUseCase(gateway, tasks).RegisterSubmission(context.Background(), model.CreateTrackingRowDTO{Title: "x"})

	require.Error(t, err)
	require.NotNil(t, row)
	assert.Empty(t, gateway.rows[0].TaskID)
}

func TestRegisterSubmission_RequiresTitle(t *testing.T) {
	gateway := &fakeTrackingGateway{}

	_, err := newUseCase(gateway, &mockTaskUseCase{}).RegisterSubmission(context.Background(), model.CreateTrackingRowDTO{Title: "  "})

	assert.ErrorIs(t, err, ErrInvalidRow)
	assert.Empty(t, gateway.rows)
}

func TestSyncCompletions_ProcessesEveryPendingRow(t *testing.T) {
	gateway := &fakeTrackingGateway{rows: []entity.TrackingRow{
		{ID: 1, TaskID: "a"},
		{ID: 2, TaskID: "b"},
		{ID: 3, TaskID: "c"},
		{ID: 4},
		{ID: 5, TaskID: "e", Completed: true},
		{ID: 6, TaskID: "f"},
	}}
	gateway.completeErr = map[uint]error{6: errors.New("deadlock")}
	tasks := &mockTaskUseCase{}
	tasks.On("GetTask", mock.Anything, "a").Return(&entity.Task{GID: "a", Completed: true}, nil)
	tasks.On("GetTask", mock.Anything, "b").Return(&entity.Task{GID: "b"}, nil)
	tasks.On("GetTask", mock.Anything, "c").Return(nil, errors.New("404"))
	tasks.On("GetTask", mock.Anything, "f").Return(&entity.Task{GID: "f", Completed: true}, nil)

	report, err := newUseCase(gateway, tasks).SyncCompletions(context.Background(), "req-1")

	require.NoError(t, err)
	assert.Equal(t, &model.SyncReport{Checked: 4, Completed: 1, Failed: 2}, report)
	assert.True(t, gateway.rows[0].Completed)
	assert.Equal(t, syncTime, *gateway.rows[0].CompletedAt)
	assert.False(t, gateway.rows[1].Completed)
	tasks.AssertNotCalled(t, "GetTask", mock.Anything, "e")
}

func TestSyncCompletions_StopsOnCancelledContext(t *testing.T) {
	gateway := &fakeTrackingGateway{rows: []entity.TrackingRow{{ID: 1, TaskID: "a"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newUseCase(gateway, &mockTaskUseCase{}).SyncCompletions(ctx, "req-1")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Checked)
}

func TestFindAll_Paginates(t *testing.T) {
	gateway := &fakeTrackingGateway{rows: []entity.TrackingRow{{ID: 1}, {ID: 2}, {ID: 3}}}

	page, err := newUseCase(gateway, &mockTaskUseCase{}).FindAll(context.Background(), 0, 2)

	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, int64(3), page.TotalElements)
}
