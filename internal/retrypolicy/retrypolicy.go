// Package retrypolicy classifies transient remote-storage failures and
// bounds their retries. The classifier is a pure predicate; callers that
// perform remote operations opt into Retry explicitly.
package retrypolicy

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	maxElapsedRetryDurationConstant  = 10 * time.Second
	maxAttemptCountConstant          = 5
	retryNotificationMessageConstant = "retrying after transient failure"
	logFieldRetryDelayConstant       = "retry_delay"
)

var transientSystemErrors = []error{
	syscall.ECONNRESET,
	syscall.ECONNABORTED,
	syscall.EPIPE,
}

// IsTransient reports whether the failure belongs to the retryable class of
// remote-storage errors: timeouts, connection resets, and truncated reads.
func IsTransient(failure error) bool {
	if failure == nil {
		return false
	}

	if errors.Is(failure, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(failure, os.ErrDeadlineExceeded) || errors.Is(failure, context.DeadlineExceeded) {
		return true
	}
	for _, transientSystemError := range transientSystemErrors {
		if errors.Is(failure, transientSystemError) {
			return true
		}
	}

	var networkError net.Error
	if errors.As(failure, &networkError) && networkError.Timeout() {
		return true
	}

	return false
}

// NewBackOff builds the shared retry schedule: exponential backoff that stops
// after ten seconds of elapsed time or five total attempts, whichever comes
// first.
func NewBackOff() backoff.BackOff {
	exponentialBackOff := backoff.NewExponentialBackOff()
	exponentialBackOff.MaxElapsedTime = maxElapsedRetryDurationConstant
	return backoff.WithMaxRetries(exponentialBackOff, maxAttemptCountConstant-1)
}

// Retry runs the operation under the shared schedule, retrying only
// transient failures and logging each retry. Non-transient failures stop the
// schedule immediately and are returned to the caller.
func Retry(executionContext context.Context, logger *zap.Logger, operation func() error) error {
	return RetryWithBackOff(executionContext, logger, NewBackOff(), operation)
}

// RetryWithBackOff behaves like Retry using the supplied schedule.
func RetryWithBackOff(executionContext context.Context, logger *zap.Logger, retrySchedule backoff.BackOff, operation func() error) error {
	guardedOperation := func() error {
		operationError := operation()
		if operationError == nil {
			return nil
		}
		if !IsTransient(operationError) {
			return backoff.Permanent(operationError)
		}
		return operationError
	}

	notifyRetry := func(failure error, retryDelay time.Duration) {
		logger.Warn(
			retryNotificationMessageConstant,
			zap.Error(failure),
			zap.Duration(logFieldRetryDelayConstant, retryDelay),
		)
	}

	return backoff.RetryNotify(guardedOperation, backoff.WithContext(retrySchedule, executionContext), notifyRetry)
}
