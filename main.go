package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/client"
	"github.com/sidereusnuntius/gopress/internal/config"
	db "github.com/sidereusnuntius/gopress/internal/db/impl"
	"github.com/sidereusnuntius/gopress/internal/event"
	"github.com/sidereusnuntius/gopress/internal/initialization"
	"github.com/sidereusnuntius/gopress/internal/queue"
	service "github.com/sidereusnuntius/gopress/internal/service/impl"
	"github.com/sidereusnuntius/gopress/internal/state"
	"github.com/sidereusnuntius/gopress/internal/storage/filestore"
	"github.com/sidereusnuntius/gopress/internal/web"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc"
	"github.com/sidereusnuntius/gopress/internal/xmlrpc/handler"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read configuration")
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := initialization.OpenDB(cfg.DbUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer d.Close()
	log.Info().Msg("database connection established")

	if os.Getenv("SETUP") != "" {
		err = initialization.SetupDB(&cfg, d, cfg.MigrationsFolder, cfg.DbUrl)
	} else {
		err = initialization.EnsureInstance(d, &cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare database")
	}

	q, err := initialization.InitQueue(&cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to connect with backlite database")
	}

	store, err := filestore.New(cfg.ResourcesDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ResourcesDir).Msg("failed to open resources directory")
	}

	dd := db.New(cfg, d)
	st := state.State{
		DB:      dd,
		Config:  cfg,
		Storage: store,
	}
	s := service.New(&st)
	bus := event.NewBroadcaster()

	httpClient, err := client.FromDB(ctx, dd, &http.Client{Timeout: 30 * time.Second}, cfg.Url)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build http client")
	}

	jobs, err := queue.New(ctx, httpClient, queue.NewMailer(cfg.Smtp), cfg.Webhooks, q)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start queue")
	}
	notifier := queue.NewNotifier(jobs)
	bus.AddListener(notifier, notifier.Types())

	throttles := initialization.NewThrottles(ctx, &cfg)
	registry := initialization.InitPlugins(&cfg, s, bus, throttles)
	defer registry.Destroy()

	rpc := xmlrpc.NewServer(s)
	handler.New(s, bus, httpClient).WithThrottle(throttles.Pingbacks).Register(rpc)

	key := cfg.SessionKey
	if key == "" {
		key, err = randomKey()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to generate session key")
		}
		log.Warn().Msg("no session key configured; admin sessions will not survive a restart")
	}
	manager := scs.NewCookieManager(key)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if cfg.Debug {
		router.Use(requestLogger)
	}
	h := web.New(&cfg, s, manager, registry, store, rpc)
	h.Mount(router)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Msg("failed to shut down server")
		}
	}()

	log.Info().Uint16("port", cfg.Port).Strs("xmlrpc", rpc.Methods()).Msg("started server")
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server stopped")
	}
}

func randomKey() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
