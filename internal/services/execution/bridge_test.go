package execution_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktanaka/coderelay-go/internal/model"
	"github.com/ktanaka/coderelay-go/internal/services/execution"
	"github.com/ktanaka/coderelay-go/internal/testutil"
)

type fakeEvaluator struct {
	report *model.ExecutionReport
	err    error
	// block makes Evaluate wait for ctx cancellation
	block bool
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, problem model.Problem, code string) (*model.ExecutionReport, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.report, f.err
}

func testProblem() model.Problem {
	return model.Problem{ID: "reverse-string", MaxPlayers: 5, TimeLimitSeconds: 60}
}

func TestGradeTrustsClientWithoutEvaluator(t *testing.T) {
	bridge := execution.NewBridge(nil, 0, testutil.NopLogger())

	reported := execution.ReportedResult{
		IsSuccess:   true,
		TestResults: []model.TestResult{{Passed: true}},
	}
	report, err := bridge.Grade(context.Background(), testProblem(), "code", reported)
	require.NoError(t, err)
	assert.True(t, report.Passed)
	assert.Len(t, report.Results, 1)
}

func TestGradeTrustsClientFailure(t *testing.T) {
	bridge := execution.NewBridge(nil, 0, testutil.NopLogger())

	report, err := bridge.Grade(context.Background(), testProblem(), "code", execution.ReportedResult{IsSuccess: false})
	require.NoError(t, err)
	assert.False(t, report.Passed)
}

func TestGradeUsesEvaluatorOverReported(t *testing.T) {
	eval := &fakeEvaluator{report: &model.ExecutionReport{Passed: false}}
	bridge := execution.NewBridge(eval, 0, testutil.NopLogger())

	// the client claims success; the evaluator's verdict wins
	report, err := bridge.Grade(context.Background(), testProblem(), "code", execution.ReportedResult{IsSuccess: true})
	require.NoError(t, err)
	assert.False(t, report.Passed)
}

func TestGradeWrapsEvaluatorError(t *testing.T) {
	eval := &fakeEvaluator{err: errors.New("runner crashed")}
	bridge := execution.NewBridge(eval, 0, testutil.NopLogger())

	_, err := bridge.Grade(context.Background(), testProblem(), "code", execution.ReportedResult{})
	assert.ErrorIs(t, err, model.ErrExecutionFailure)
}

func TestGradeTimesOut(t *testing.T) {
	eval := &fakeEvaluator{block: true}
	bridge := execution.NewBridge(eval, 10*time.Millisecond, testutil.NopLogger())

	_, err := bridge.Grade(context.Background(), testProblem(), "code", execution.ReportedResult{})
	assert.ErrorIs(t, err, model.ErrExecutionFailure)
}
