package initialization

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/config"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/plugin"
	"github.com/sidereusnuntius/gopress/internal/plugin/admin"
	"github.com/sidereusnuntius/gopress/internal/plugin/comment"
	"github.com/sidereusnuntius/gopress/internal/plugin/moderation"
	"github.com/sidereusnuntius/gopress/internal/plugin/script"
	"github.com/sidereusnuntius/gopress/internal/plugin/trackback"
	"github.com/sidereusnuntius/gopress/internal/service"
	"github.com/sidereusnuntius/gopress/internal/throttle"
)

// Plugin names, as used in chains.
const (
	PluginMath       = "math-comment-authentication"
	PluginComment    = "comment"
	PluginTrackback  = "trackback"
	PluginAdmin      = "admin"
	PluginEntries    = "edit-blog-entries"
	PluginCategories = "edit-blog-categories"
	PluginProperties = "edit-blog-properties"
	PluginUsers      = "edit-blog-users"
	PluginPhrases    = "spam-phrase-moderation"
	PluginLinks      = "link-spam-moderation"
	PluginAddresses  = "ip-address-moderation"
	PluginScript     = "moderation-script"
)

// NewThrottles builds one admission map per response kind and sweeps them until ctx is done.
func NewThrottles(ctx context.Context, cfg *config.Configuration) plugin.Throttles {
	t := plugin.Throttles{
		Comments:   throttle.New("comments", cfg.ThrottleCapacity, cfg.ThrottleSweep),
		Trackbacks: throttle.New("trackbacks", cfg.ThrottleCapacity, cfg.ThrottleSweep),
		Pingbacks:  throttle.New("pingbacks", cfg.ThrottleCapacity, cfg.ThrottleSweep),
	}
	go t.Comments.Run(ctx)
	go t.Trackbacks.Run(ctx)
	go t.Pingbacks.Run(ctx)
	return t
}

// InitPlugins registers every plugin and initializes them once. Plugins that fail to initialize are logged and
// left out of every chain; the registry is usable either way.
func InitPlugins(cfg *config.Configuration, s service.Service, b *event.Broadcaster, t plugin.Throttles) *plugin.Registry {
	r := plugin.NewRegistry()
	// Interceptors run in registration order: the moderation rules come before the comment math check.
	r.Register(PluginAddresses, moderation.NewAddresses)
	r.Register(PluginPhrases, moderation.NewPhrases)
	r.Register(PluginLinks, moderation.NewLinks)
	r.Register(PluginScript, script.New)
	r.Register(PluginMath, moderation.NewMath)
	r.Register(PluginComment, comment.New)
	r.Register(PluginTrackback, trackback.New)
	r.Register(PluginAdmin, admin.NewAdministration)
	r.Register(PluginEntries, admin.NewEntries)
	r.Register(PluginCategories, admin.NewCategories)
	r.Register(PluginProperties, admin.NewProperties)
	r.Register(PluginUsers, admin.NewUsers)

	err := r.Init(plugin.Config{
		App:         *cfg,
		Service:     s,
		Broadcaster: b,
		Throttles:   t,
	})
	if err != nil {
		log.Error().Err(err).Msg("some plugins failed to initialize")
	}
	return r
}
