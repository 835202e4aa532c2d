// Package fixturerun exposes the fixture case runner as a go-application-framework
// workflow, so a host CLI can run fixture case tables like any other command.
package fixturerun

import (
	"fmt"

	"github.com/snyk/go-application-framework/pkg/workflow"
)

const (
	workflowIDStr = "fixture-run"
)

var (
	// WorkflowID is the unique identifier for this workflow. It should be used as
	// a reference everywhere.
	WorkflowID workflow.Identifier = workflow.NewWorkflowIdentifier(workflowIDStr)

	// DataTypeID is the unique identifier for the data type that is being returned
	// from this workflow.
	DataTypeID workflow.Identifier = workflow.NewTypeIdentifier(WorkflowID, workflowIDStr)
)

// Init initializes the fixture-run workflow.
func Init(engine workflow.Engine) error {
	_, err := engine.Register(
		WorkflowID,
		workflow.ConfigurationOptionsFromFlagset(FlagSet()),
		callback)
	if err != nil {
		return fmt.Errorf("failed to register workflow: %w", err)
	}

	return nil
}
