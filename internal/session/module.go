package session

import (
	"go.uber.org/fx"

	"github.com/Shanthi551/telecom-data-plan/internal/config"
)

// Module provides the process-wide session registry.
var Module = fx.Provide(newManager)

func newManager(cfg *config.Config) *Manager {
	return NewManager(cfg.SessionTTL)
}
