package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/mkhera/voluntree-cli/internal/config"
	"github.com/mkhera/voluntree-cli/pkg/clients/opportunityclient"
	"github.com/mkhera/voluntree-cli/pkg/session"
	"github.com/mkhera/voluntree-cli/pkg/store"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg           *config.Config
	Sessions      *session.Store
	Client        *opportunityclient.Client
	Opportunities *store.Store
	Logger        *zap.Logger
	Ctx           context.Context
}
