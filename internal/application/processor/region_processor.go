package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"rainwatch/internal/domain/model"
	"rainwatch/internal/domain/usecase/forecast"
	"rainwatch/pkg/log"
	"rainwatch/pkg/sqs"
)

type RegionProcessor struct {
	forecastUseCase forecast.UseCase
}

var _ sqs.Handler = (*RegionProcessor)(nil)

func NewRegionProcessor(forecastUseCase forecast.UseCase) *RegionProcessor {
	return &RegionProcessor{
		forecastUseCase: forecastUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface. A returned error leaves
// the message on the queue for redelivery.
func (p *RegionProcessor) HandleMessage(ctx context.Context, msg types.Message) error {
	if msg.Body == nil {
		return fmt.Errorf("received message without body")
	}

	var message model.RegionMessage
	if err := json.Unmarshal([]byte(*msg.Body), &message); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}
	if message.Region.Name == "" {
		return fmt.Errorf("message carries no region")
	}

	log.Info("Processing region message",
		zap.String("request_id", message.RequestID),
		zap.String("region", message.Region.Name))

	result, err := p.forecastUseCase.CheckRegion(ctx, message.Region, message.RequestID)
	if err != nil {
		return fmt.Errorf("failed to check region %s: %w", message.Region.Name, err)
	}

	log.Info("Region message processed",
		zap.String("request_id", message.RequestID),
		zap.String("region", result.Region),
		zap.String("task_id", result.TaskID),
		zap.Bool("duplicate", result.Duplicate))
	return nil
}
