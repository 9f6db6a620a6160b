package catalogfeed

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Shanthi551/telecom-data-plan/internal/config"
)

// Module exposes the catalog feed client to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.CatalogFeedURL == "" {
		return Disabled{}, nil
	}
	return NewHTTPClient(p.Config.CatalogFeedURL, p.Logger)
}
