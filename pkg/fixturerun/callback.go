package fixturerun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	clierrors "github.com/snyk/error-catalog-golang-public/cli"
	"github.com/snyk/go-application-framework/pkg/configuration"
	"github.com/snyk/go-application-framework/pkg/workflow"

	"github.com/snyk/cli-test-fixture/internal/harness"
)

const (
	contentTypeJSON    = "application/json"
	contentLocationKey = "Content-Location"
)

func callback(ictx workflow.InvocationContext, data []workflow.Data) ([]workflow.Data, error) {
	binary := ictx.GetConfiguration().GetString(FlagBinary)
	if binary == "" {
		binary = DefaultBinary
	}
	return callbackWithDI(ictx, data, harness.NewExecutor(binary))
}

func callbackWithDI(ictx workflow.InvocationContext, _ []workflow.Data, executor harness.Executor) ([]workflow.Data, error) {
	config := ictx.GetConfiguration()
	logger := ictx.GetEnhancedLogger()

	logger.Print("Fixture run workflow start")

	outcomes, err := Run(context.Background(), config, executor, logger)
	if err != nil {
		return nil, err
	}

	workflowOutputData, err := mapToWorkflowData(outcomes)
	if err != nil {
		return nil, err
	}
	logger.Printf("Fixture run workflow done (%d cases)", len(outcomes))

	if failed := harness.CountFailed(outcomes); failed > 0 {
		return workflowOutputData, newExitCodeError(
			exitCodeCasesFailed,
			fmt.Sprintf("%d of %d fixture cases failed", failed, len(outcomes)),
			nil,
		)
	}

	return workflowOutputData, nil
}

// Run loads the configured case table and runs the configured case, or every
// case when none is selected.
func Run(
	ctx context.Context,
	config configuration.Configuration,
	executor harness.Executor,
	logger *zerolog.Logger,
) ([]*harness.Outcome, error) {
	casesPath := config.GetString(FlagCases)
	if casesPath == "" {
		return nil, newExitCodeError(exitCodeUsage, fmt.Sprintf("%s, use --%s", errNoCaseTable, FlagCases), errNoCaseTable)
	}

	cases, err := harness.LoadCases(casesPath)
	if err != nil {
		return nil, err
	}

	runner := harness.NewRunner(executor, logger)

	number := config.GetInt(FlagCase)
	if number == 0 {
		return runner.RunAll(ctx, cases, config.GetInt(FlagConcurrency))
	}

	outcome, err := runner.RunCase(ctx, cases, number)
	if errors.Is(err, harness.ErrNoSuchCase) {
		return nil, newExitCodeError(exitCodeUsage, err.Error(), err)
	}
	if err != nil {
		return nil, err
	}

	return []*harness.Outcome{outcome}, nil
}

func mapToWorkflowData(outcomes []*harness.Outcome) ([]workflow.Data, error) {
	outcomeList := make([]workflow.Data, 0, len(outcomes))
	for _, outcome := range outcomes {
		payload, err := json.Marshal(outcome)
		if err != nil {
			return nil, fmt.Errorf("failed to encode outcome of case %d: %w", outcome.Number, err)
		}

		data := workflow.NewData(DataTypeID, contentTypeJSON, payload)
		data.SetMetaData(contentLocationKey, outcome.Description)
		if !outcome.Passed() {
			data.AddError(clierrors.NewGeneralSCAFailureError(
				fmt.Sprintf("case %d (%s): %s", outcome.Number, outcome.Description, strings.Join(outcome.Mismatches, "; ")),
			))
		}
		outcomeList = append(outcomeList, data)
	}
	return outcomeList, nil
}
