package booking

import (
	"context"

	"corpay/config"
	"corpay/models"
)

// ProgramProvider supplies the organization's corporate program state.
// The real provider is an external system; the engine only reads it.
type ProgramProvider interface {
	ProgramState(ctx context.Context, userID string) (models.CorporateProgramState, error)
}

// ConfigProgramProvider serves a fixed program state from configuration.
// Used when no external program provider is wired.
type ConfigProgramProvider struct{}

func (ConfigProgramProvider) ProgramState(_ context.Context, _ string) (models.CorporateProgramState, error) {
	return models.CorporateProgramState{
		Status:      models.ProgramStatus(config.AppConfig.ProgramStatus),
		GraceActive: config.AppConfig.GraceActive,
	}, nil
}
