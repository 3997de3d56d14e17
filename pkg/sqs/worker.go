package sqs

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"rainwatch/pkg/log"
)

// HandlerFunc defines a function that handles a SQS Message
type HandlerFunc func(ctx context.Context, msg types.Message) error

// HandleMessage implements the Handler interface for HandlerFunc
func (f HandlerFunc) HandleMessage(ctx context.Context, msg types.Message) error {
	return f(ctx, msg)
}

// Handler defines an interface that processes a SQS Message. A nil error
// deletes the message; any error leaves it for redelivery.
type Handler interface {
	HandleMessage(ctx context.Context, msg types.Message) error
}

// LogLevel represents the logging level for the Worker
type LogLevel int

const (
	// Silent logs at debug only
	Silent LogLevel = iota
	// ErrorLevel logs only errors
	ErrorLevel
	// InfoLevel logs informational and error messages
	InfoLevel
)

// WorkerConfig defines the configuration options for a Worker
type WorkerConfig struct {
	MaxNumberOfMessages int32
	WaitTimeSeconds     int32
	PoolSize            int
	LogLevel            LogLevel
}

// WorkerAPI is the part of the SQS client a Worker uses
type WorkerAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// WorkerStatus is the coarse state reported by HealthCheck
type WorkerStatus string

const (
	StatusUp   WorkerStatus = "UP"
	StatusDown WorkerStatus = "DOWN"
)

// maxReceiveFailures is the number of consecutive receive errors after which
// the worker reports itself DOWN.
const maxReceiveFailures = 3

// Receive errors are retried after receiveRetryDelay times the number of
// consecutive failures, capped at maxReceiveRetryDelay.
const (
	receiveRetryDelay    = time.Second
	maxReceiveRetryDelay = 30 * time.Second
)

// WorkerHealth is a snapshot of the worker's polling state
type WorkerHealth struct {
	Status  WorkerStatus
	Details map[string]string
}

// Worker polls and processes messages from a SQS queue
type Worker struct {
	sqsClient           WorkerAPI
	queueName           string
	queueURL            string
	maxNumberOfMessages int32
	waitTimeSeconds     int32
	poolSize            int
	logLevel            LogLevel
	handler             Handler
	retryDelay          time.Duration

	running          atomic.Bool
	receiveFailures  atomic.Int32
	processed        atomic.Int64
	failed           atomic.Int64
	lastReceiveNanos atomic.Int64
}

// NewWorker creates and returns a new Worker.
//
// If the provided WorkerConfig is nil or its fields are zero,
// the following defaults will be used:
//   - MaxNumberOfMessages: 10
//   - WaitTimeSeconds: 20
//   - PoolSize: 1
//   - LogLevel: Silent
//
// Validations:
//   - MaxNumberOfMessages must be between 1 and 10.
//   - WaitTimeSeconds must be between 1 and 20.
//   - PoolSize must be greater than 0.
func NewWorker(ctx context.Context, sqsClient WorkerAPI, queueName string, handler Handler, config *WorkerConfig) (*Worker, error) {
	var maxMessages int32 = 10
	var waitTime int32 = 20
	poolSize := 1
	logLevel := Silent

	if config != nil {
		if config.MaxNumberOfMessages != 0 {
			maxMessages = config.MaxNumberOfMessages
		}
		if config.WaitTimeSeconds != 0 {
			waitTime = config.WaitTimeSeconds
		}
		if config.PoolSize != 0 {
			poolSize = config.PoolSize
		}
		logLevel = config.LogLevel
	}

	if maxMessages < 1 || maxMessages > 10 {
		return nil, errors.New("maxNumberOfMessages must be between 1 and 10")
	}
	if waitTime < 1 || waitTime > 20 {
		return nil, errors.New("waitTimeSeconds must be between 1 and 20")
	}
	if poolSize < 1 {
		return nil, errors.New("poolSize must be greater than 0")
	}
	if handler == nil {
		return nil, errors.New("handler is required")
	}

	queueURL, err := getQueueURL(ctx, sqsClient, queueName)
	if err != nil {
		return nil, err
	}

	return &Worker{
		sqsClient:           sqsClient,
		queueName:           queueName,
		queueURL:            queueURL,
		maxNumberOfMessages: maxMessages,
		waitTimeSeconds:     waitTime,
		poolSize:            poolSize,
		logLevel:            logLevel,
		handler:             handler,
		retryDelay:          receiveRetryDelay,
	}, nil
}

// Start polls with PoolSize goroutines until ctx is canceled, then waits for
// in-flight messages to finish.
func (w *Worker) Start(ctx context.Context) {
	w.running.Store(true)
	defer w.running.Store(false)

	var wg sync.WaitGroup

	for i := 0; i < w.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.pollMessages(ctx)
		}()
	}

	wg.Wait()
}

func (w *Worker) pollMessages(ctx context.Context) {
	var inFlight sync.WaitGroup
	defer inFlight.Wait()

	for {
		if ctx.Err() != nil {
			return
		}

		output, err := w.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            &w.queueURL,
			MaxNumberOfMessages: w.maxNumberOfMessages,
			WaitTimeSeconds:     w.waitTimeSeconds,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			failures := w.receiveFailures.Add(1)
			w.logf(ErrorLevel, "failed to receive messages from %s: %v", w.queueName, err)
			if !w.waitBeforeRetry(ctx, failures) {
				return
			}
			continue
		}
		w.receiveFailures.Store(0)
		w.lastReceiveNanos.Store(time.Now().UnixNano())

		for _, msg := range output.Messages {
			inFlight.Add(1)
			go func(m types.Message) {
				defer inFlight.Done()
				w.handleMessage(ctx, m)
			}(msg)
		}
	}
}

// waitBeforeRetry blocks for the receive retry delay and reports false when
// ctx was canceled meanwhile.
func (w *Worker) waitBeforeRetry(ctx context.Context, failures int32) bool {
	delay := min(w.retryDelay*time.Duration(failures), maxReceiveRetryDelay)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg types.Message) {
	if err := w.handler.HandleMessage(ctx, msg); err != nil {
		w.failed.Add(1)
		w.logf(ErrorLevel, "error processing message ID %s: %v", safeMessageID(msg), err)
		return
	}
	w.processed.Add(1)

	_, err := w.sqsClient.DeleteMessage(context.WithoutCancel(ctx), &sqs.DeleteMessageInput{
		QueueUrl:      &w.queueURL,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		w.logf(ErrorLevel, "failed to delete message ID %s: %v", safeMessageID(msg), err)
	} else {
		w.logf(InfoLevel, "successfully deleted message ID %s", safeMessageID(msg))
	}
}

// QueueName returns the name of the polled queue
func (w *Worker) QueueName() string {
	return w.queueName
}

// HealthCheck reports DOWN when the worker is not polling or the last
// receives kept failing.
func (w *Worker) HealthCheck() WorkerHealth {
	running := w.running.Load()
	failures := w.receiveFailures.Load()

	details := map[string]string{
		"queue":            w.queueName,
		"running":          strconv.FormatBool(running),
		"receive_failures": strconv.Itoa(int(failures)),
		"processed":        strconv.FormatInt(w.processed.Load(), 10),
		"failed":           strconv.FormatInt(w.failed.Load(), 10),
	}
	if last := w.lastReceiveNanos.Load(); last > 0 {
		details["last_receive"] = time.Unix(0, last).UTC().Format(time.RFC3339)
	}

	status := StatusUp
	if !running || failures >= maxReceiveFailures {
		status = StatusDown
	}
	return WorkerHealth{Status: status, Details: details}
}

func (w *Worker) logf(level LogLevel, format string, v ...interface{}) {
	if w.logLevel == Silent {
		log.Debugf(format, v...)
	}
	if level == ErrorLevel && (w.logLevel == ErrorLevel || w.logLevel == InfoLevel) {
		log.Errorf(format, v...)
	}
	if level == InfoLevel && w.logLevel == InfoLevel {
		log.Infof(format, v...)
	}
}

func safeMessageID(msg types.Message) string {
	if msg.MessageId == nil {
		return ""
	}
	return *msg.MessageId
}
