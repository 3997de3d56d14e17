package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainwatch/internal/domain/entity"
	"rainwatch/internal/domain/model"
)

type stubForecastUseCase struct {
	checked   []entity.Region
	requestID string
	err       error
}

func (s *stubForecastUseCase) Evaluate([]entity.WeatherSample, time.Time, []string) (*model.EvaluationResponse, error) {
	return nil, nil
}

func (s *stubForecastUseCase) ListRegions() []entity.Region { return nil }

func (s *stubForecastUseCase) FindRegion(string) (*entity.Region, error) { return nil, nil }

func (s *stubForecastUseCase) EvaluateRegion(context.Context, entity.Region) (*model.EvaluationResponse, error) {
	return nil, nil
}

func (s *stubForecastUseCase) EvaluateAllRegions(context.Context) []model.RegionPreview { return nil }

func (s *stubForecastUseCase) CheckRegion(_ context.Context, region entity.Region, requestID string) (*model.RegionCheckResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.checked = append(s.checked, region)
	s.requestID = requestID
	return &model.RegionCheckResult{Region: region.Name}, nil
}

func (s *stubForecastUseCase) ScheduleAllRegions(context.Context, string) error { return nil }

func (s *stubForecastUseCase) ListDispatches(context.Context, int, int) (*model.Page[entity.AlertDispatch], error) {
	return nil, nil
}

func message(body string) types.Message {
	return types.Message{MessageId: aws.String("m-1"), Body: aws.String(body)}
}

func TestHandleMessage_ChecksRegion(t *testing.T) {
	useCase := &stubForecastUseCase{}
	body := `{"requestId":"req-1","region":{"name":"Nordeste","city":"Salvador","latitude":-12.9777,"longitude":-38.5016}}`

	err := NewRegionProcessor(useCase).HandleMessage(context.Background(), message(body))

	require.NoError(t, err)
	require.Len(t, useCase.checked, 1)
	assert.Equal(t, "Salvador", useCase.checked[0].City)
	assert.Equal(t, -12.9777, useCase.checked[0].Latitude)
	assert.Equal(t, "req-1", useCase.requestID)
}

func TestHandleMessage_Rejects(t *testing.T) {
	tests := []struct {
		name string
		msg  types.Message
	}{
		{"no body", types.Message{MessageId: aws.String("m-1")}},
		{"invalid json", message("{")},
		{"no region", message(`{"requestId":"req-1"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &stubForecastUseCase{}
			err := NewRegionProcessor(useCase).HandleMessage(context.Background(), tt.msg)
			assert.Error(t, err)
			assert.Empty(t, useCase.checked)
		})
	}
}

func TestHandleMessage_PropagatesCheckFailure(t *testing.T) {
	useCase := &stubForecastUseCase{err: errors.New("forecast unavailable")}

	err := NewRegionProcessor(useCase).HandleMessage(context.Background(), message(`{"region":{"name":"Sul"}}`))

	assert.ErrorContains(t, err, "forecast unavailable")
}
