package core

import (
	"sync"

	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/state"
	"github.com/sidereusnuntius/gopress/internal/storage"
)

const BcryptCost = 10

type AppService struct {
	Config  config.Configuration
	DB      db.DB
	Storage storage.Storage
	// blogs maps a blog id to an *atomic.Pointer[domain.Blog] holding its active snapshot.
	blogs sync.Map
}

func New(state *state.State) service.Service {
	return &AppService{
		Config:  state.Config,
		DB:      state.DB,
		Storage: state.Storage,
	}
}
