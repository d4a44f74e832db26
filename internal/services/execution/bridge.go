// Package execution mediates between code submissions and whatever
// grades them. The default deployment has no server-side runner and
// trusts the outcome the submitting client computed; plugging in an
// Evaluator moves grading server-side without touching the callers.
package execution

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ktanaka/coderelay-go/internal/model"
)

// DefaultTimeout bounds a single evaluation
const DefaultTimeout = 5 * time.Second

// Evaluator runs submitted code against a problem's test cases
type Evaluator interface {
	Evaluate(ctx context.Context, problem model.Problem, code string) (*model.ExecutionReport, error)
}

// ReportedResult is the grading outcome the submitting client computed
// locally against the visible test cases
type ReportedResult struct {
	IsSuccess   bool
	TestResults []model.TestResult
}

// Bridge grades submissions. A nil evaluator means trust-the-client.
type Bridge struct {
	evaluator Evaluator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewBridge creates a bridge. Pass a nil evaluator to accept
// client-reported results; a zero timeout falls back to DefaultTimeout.
func NewBridge(evaluator Evaluator, timeout time.Duration, logger *slog.Logger) *Bridge {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Bridge{
		evaluator: evaluator,
		timeout:   timeout,
		logger:    logger.With(slog.String("component", "execution-bridge")),
	}
}

// Grade produces the authoritative report for a submission
func (b *Bridge) Grade(ctx context.Context, problem model.Problem, code string, reported ReportedResult) (*model.ExecutionReport, error) {
	if b.evaluator == nil {
		return &model.ExecutionReport{
			Passed:  reported.IsSuccess,
			Results: reported.TestResults,
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	report, err := b.evaluator.Evaluate(ctx, problem, code)
	if err != nil {
		b.logger.Error("evaluation failed",
			slog.String("problem_id", string(problem.ID)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", model.ErrExecutionFailure, err)
	}
	return report, nil
}
