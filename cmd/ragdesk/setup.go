package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sandevgo/ragdesk/internal/config"
	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/internal/providers/embedding"
	"github.com/sandevgo/ragdesk/internal/providers/extract"
	"github.com/sandevgo/ragdesk/internal/providers/fetch"
	"github.com/sandevgo/ragdesk/internal/providers/llm"
	"github.com/sandevgo/ragdesk/internal/providers/vectordb/memory"
	"github.com/sandevgo/ragdesk/internal/providers/vectordb/qdrant"
	"github.com/sandevgo/ragdesk/internal/service/booking"
	"github.com/sandevgo/ragdesk/internal/service/chat"
	"github.com/sandevgo/ragdesk/internal/service/command"
	"github.com/sandevgo/ragdesk/internal/service/health"
	"github.com/sandevgo/ragdesk/internal/service/ingestion"
	"github.com/sandevgo/ragdesk/internal/service/rag"
	sessionstore "github.com/sandevgo/ragdesk/internal/storage/badger"
	"github.com/sandevgo/ragdesk/internal/storage/sqlite"
	"github.com/sandevgo/ragdesk/internal/transport/cli"
	"github.com/sandevgo/ragdesk/internal/transport/telegram"
	"github.com/sandevgo/ragdesk/pkg/log"
	"github.com/sandevgo/ragdesk/pkg/srv"
)

const fetchTimeout = 30 * time.Second

// app builds dependencies on first use so that short commands such as
// `documents` never dial the model provider. Construction failures are fatal.
type app struct {
	ctx     context.Context
	cfg     *config.AppConfig
	storage *config.StorageConfig
	closers []srv.Service

	db        *sql.DB
	sessions  *sessionstore.SessionStore
	embedCfg  *config.EmbeddingConfig
	embedder  *embedding.Embedder
	index     core.VectorIndex
	llmCfg    *config.LLMConfig
	provider  llm.Provider
	responder *rag.Responder
	ingestCfg *config.IngestionConfig
	ingestor  *ingestion.Service
	bookings  *booking.Service
}

func newApp(ctx context.Context) *app {
	return &app{
		ctx:     ctx,
		cfg:     config.NewAppConfig(ctx),
		storage: config.NewStorageConfig(ctx),
	}
}

func (a *app) fatal(err error, msg string) {
	log.FromCtx(a.ctx).Fatal().Err(err).Msg(msg)
}

// Close releases everything opened so far, newest first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Shutdown(a.ctx); err != nil {
			log.FromCtx(a.ctx).Error().Err(err).Msgf("%T failed to shutdown", a.closers[i])
		}
	}
	a.closers = nil
}

func (a *app) DB() *sql.DB {
	if a.db == nil {
		db, err := sqlite.NewDB(a.ctx, a.cfg.GetDatabasePath())
		if err != nil {
			a.fatal(err, "failed to initialize database")
		}
		a.db = db
		a.closers = append(a.closers, srv.NewCloser("database", db.Close))
	}
	return a.db
}

func (a *app) Sessions() *sessionstore.SessionStore {
	if a.sessions == nil {
		s, err := sessionstore.Open(a.ctx, a.cfg.GetSessionsPath(), a.storage.SessionsInMemory, a.storage.SessionTTL)
		if err != nil {
			a.fatal(err, "failed to open session store")
		}
		a.sessions = s
		a.closers = append(a.closers, srv.NewCloser("sessions", s.Close))
	}
	return a.sessions
}

func (a *app) EmbeddingConfig() *config.EmbeddingConfig {
	if a.embedCfg == nil {
		a.embedCfg = config.NewEmbeddingConfig(a.ctx)
	}
	return a.embedCfg
}

func (a *app) Embedder() *embedding.Embedder {
	if a.embedder == nil {
		cfg := a.EmbeddingConfig()
		e, err := embedding.NewEmbedder(a.ctx, cfg, cfg.BatchSize)
		if err != nil {
			a.fatal(err, "failed to initialize embedder")
		}
		a.embedder = e
	}
	return a.embedder
}

func (a *app) VectorIndex() core.VectorIndex {
	if a.index != nil {
		return a.index
	}
	dim := a.EmbeddingConfig().Dimension

	switch a.storage.VectorDBType {
	case config.VectorDBQdrant:
		x := qdrant.NewIndex(qdrant.Config{
			URL:        a.storage.QdrantURL,
			APIKey:     a.storage.QdrantAPIKey,
			Collection: a.storage.QdrantCollection,
			Dimension:  dim,
		})
		if err := x.Init(a.ctx); err != nil {
			a.fatal(err, "failed to initialize qdrant collection")
		}
		a.index = x
	case config.VectorDBMemory:
		log.FromCtx(a.ctx).Warn().Msg("using in-memory vector index, documents are lost on exit")
		a.index = memory.NewIndex(dim)
	default:
		a.index = sqlite.NewVectorsRepo(a.DB(), dim)
	}
	return a.index
}

func (a *app) LLMConfig() *config.LLMConfig {
	if a.llmCfg == nil {
		a.llmCfg = config.NewLLMConfig(a.ctx)
	}
	return a.llmCfg
}

func (a *app) Provider() llm.Provider {
	if a.provider == nil {
		cfg := a.LLMConfig()
		p, err := llm.NewProvider(a.ctx, cfg, cfg.RequestTimeout)
		if err != nil {
			a.fatal(err, "failed to initialize LLM provider")
		}
		a.provider = p
	}
	return a.provider
}

func (a *app) Responder() *rag.Responder {
	if a.responder == nil {
		ragCfg := config.NewRAGConfig(a.ctx)
		retriever := rag.NewRetriever(a.Embedder(), a.VectorIndex(), ragCfg.TopK, ragCfg.SimilarityThreshold)
		a.responder = rag.NewResponder(ragCfg, retriever, a.Sessions(), a.Provider())
	}
	return a.responder
}

func (a *app) Ingestor() *ingestion.Service {
	if a.ingestor == nil {
		embedCfg := a.EmbeddingConfig()
		svc, err := ingestion.NewService(
			a.IngestionConfig(),
			extract.New(),
			a.Embedder(),
			a.VectorIndex(),
			sqlite.NewDocumentsRepo(a.DB()),
			ingestion.WithWorkers(embedCfg.Workers),
			ingestion.WithBatchSize(embedCfg.BatchSize),
		)
		if err != nil {
			a.fatal(err, "failed to initialize ingestion")
		}
		a.ingestor = svc
		a.closers = append(a.closers, srv.NewCloser("ingestion pool", func() error {
			svc.Release()
			return nil
		}))
	}
	return a.ingestor
}

func (a *app) IngestionConfig() *config.IngestionConfig {
	if a.ingestCfg == nil {
		a.ingestCfg = config.NewIngestionConfig(a.ctx)
	}
	return a.ingestCfg
}

func (a *app) Fetcher() *fetch.Fetcher {
	return fetch.New(fetchTimeout, a.IngestionConfig().MaxFileSize())
}

func (a *app) Bookings() *booking.Service {
	if a.bookings == nil {
		a.bookings = booking.NewService(sqlite.NewBookingsRepo(a.DB()))
	}
	return a.bookings
}

func (a *app) Chat() *chat.Service {
	responder := a.Responder()
	router := command.NewRouter(command.Deps{
		Provider: a.LLMConfig(),
		Models:   a.Provider(),
		Store:    a.Sessions(),
		Answerer: responder,
		Booker:   a.Bookings(),
	})
	return chat.NewService(router, responder, rag.NewKeywordClassifier())
}

func (a *app) Health() *health.Checker {
	c := health.NewChecker(0).
		Register("database", sqlite.NewPinger(a.DB())).
		Register("sessions", a.Sessions())
	if p, ok := a.VectorIndex().(core.Pinger); ok {
		c.Register("vectors", p)
	}
	if p, ok := a.Provider().(core.Pinger); ok {
		c.Register("llm", p)
	}
	return c
}

// Services returns the long-running services for `ragdesk start`. Shutdown
// runs in slice order, so transports stop before the stores they use.
func (a *app) Services(onCLIExit func()) []srv.Service {
	handler := a.Chat()
	var services []srv.Service

	if a.cfg.IsTelegramSelected() {
		bot, err := telegram.NewBot(a.ctx, config.NewTelegramConfig(a.ctx), handler)
		if err != nil {
			a.fatal(err, "failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	if a.cfg.EnableCLI {
		rl, err := cli.NewReadLine(handler, a.cfg, cli.DefaultSessionID)
		if err != nil {
			a.fatal(err, "failed to initialize readline")
		}
		services = append(services, &exitNotifier{Service: rl, onExit: onCLIExit})
	}

	services = append(services, a.Sessions())
	return append(services, a.closers...)
}

func loadEnv(runtimePath string) error {
	envFile := (&config.AppConfig{RuntimePath: runtimePath}).GetEnvPath()

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(envFile)
}

// exitNotifier reports when a foreground service returns on its own, such as
// the REPL after the user types exit.
type exitNotifier struct {
	srv.Service
	onExit func()
}

func (e *exitNotifier) Start(ctx context.Context) error {
	err := e.Service.Start(ctx)
	if e.onExit != nil {
		e.onExit()
	}
	return err
}

func (e *exitNotifier) Name() string { return "cli" }
