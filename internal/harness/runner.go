package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNoSuchCase is returned for case numbers outside the table.
var ErrNoSuchCase = errors.New("no such case")

// Outcome is the checked result of one case.
type Outcome struct {
	Number      int      `json:"number"`
	Description string   `json:"description"`
	Args        []string `json:"args"`
	Result      *Result  `json:"result"`
	Mismatches  []string `json:"mismatches,omitempty"`
}

// Passed reports whether the invocation matched every expectation.
func (o *Outcome) Passed() bool {
	return len(o.Mismatches) == 0
}

// CountFailed returns how many outcomes did not pass.
func CountFailed(outcomes []*Outcome) int {
	failed := 0
	for _, o := range outcomes {
		if !o.Passed() {
			failed++
		}
	}
	return failed
}

type Runner struct {
	executor Executor
	logger   *zerolog.Logger
}

func NewRunner(executor Executor, logger *zerolog.Logger) *Runner {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Runner{
		executor: executor,
		logger:   logger,
	}
}

// RunCase runs the case with the given 1-based number.
func (r *Runner) RunCase(ctx context.Context, cases []Case, number int) (*Outcome, error) {
	if number < 1 || number > len(cases) {
		return nil, fmt.Errorf("%w: %d (table has %d)", ErrNoSuchCase, number, len(cases))
	}

	c := cases[number-1]
	args := c.Args(number)

	r.logger.Debug().
		Int("case", number).
		Strs("args", args).
		Msg("Running fixture case")

	result, err := r.executor.Execute(ctx, []byte(c.Stdin), args...)
	if err != nil {
		return nil, fmt.Errorf("case %d (%s): %w", number, c.Description, err)
	}

	outcome := &Outcome{
		Number:      number,
		Description: c.Description,
		Args:        args,
		Result:      result,
		Mismatches:  c.Expect.compare(result),
	}

	if !outcome.Passed() {
		r.logger.Info().
			Int("case", number).
			Strs("mismatches", outcome.Mismatches).
			Msg("Fixture case failed")
	}

	return outcome, nil
}

// RunAll runs every case with at most limit cases in flight (no limit when
// limit < 1). Outcomes are returned in table order.
func (r *Runner) RunAll(ctx context.Context, cases []Case, limit int) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(cases))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := range cases {
		g.Go(func() error {
			outcome, err := r.RunCase(ctx, cases, i+1)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func (e Expectation) compare(result *Result) []string {
	var mismatches []string

	if e.Stdout != nil && *e.Stdout != result.Stdout {
		mismatches = append(mismatches, fmt.Sprintf("stdout: expected %q, got %q", *e.Stdout, result.Stdout))
	}
	if e.Stderr != nil && *e.Stderr != result.Stderr {
		mismatches = append(mismatches, fmt.Sprintf("stderr: expected %q, got %q", *e.Stderr, result.Stderr))
	}
	if e.ExitCode != result.ExitCode {
		mismatches = append(mismatches, fmt.Sprintf("exit code: expected %d, got %d", e.ExitCode, result.ExitCode))
	}

	return mismatches
}
