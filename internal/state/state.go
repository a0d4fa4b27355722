package state

import (
	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/storage"
)

// State bundles the process wide collaborators handed to the service and web constructors.
type State struct {
	DB      db.DB
	Config  config.Configuration
	Storage storage.Storage
}
