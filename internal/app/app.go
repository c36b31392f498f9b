// Package app wires configuration, repositories, clients, and services into
// a ready-to-use application.
package app

import (
	"github.com/draftwatch/draftwatch/external/discord"
	"github.com/draftwatch/draftwatch/external/fpldraft"
	"github.com/draftwatch/draftwatch/internal/config"
	"github.com/draftwatch/draftwatch/internal/infrastructure/repository/fsjson"
	"github.com/draftwatch/draftwatch/internal/infrastructure/updatehook"
	"github.com/draftwatch/draftwatch/internal/infrastructure/viewer"
	"github.com/draftwatch/draftwatch/internal/platform/cache"
	"github.com/draftwatch/draftwatch/internal/platform/logging"
	"github.com/draftwatch/draftwatch/internal/usecase"
)

// App holds every constructed service, ready for the CLI to call.
type App struct {
	Config  config.Config
	Logger  *logging.Logger
	Change  *usecase.ChangeService
	Updater usecase.UpdateRunner
	Sync    *usecase.SyncService
	Scoring *usecase.ScoringService
	Waivers *usecase.WaiverService
	Trades  *usecase.TradeService
	Reports *usecase.ReportService
	Graphs  *usecase.GraphService
	Notify  *usecase.NotifyService
}

func New(cfg config.Config) *App {
	var logger *logging.Logger
	if cfg.AppEnv == config.EnvProd {
		logger = logging.NewJSON(cfg.LogLevel)
	} else {
		logger = logging.NewConsole(cfg.LogLevel)
	}
	logging.SetDefault(logger)

	store := fsjson.NewStore(cfg.DataDir)
	leagueRepo := fsjson.NewLeagueRepo(store)
	playerRepo := fsjson.NewPlayerRepo(store)
	gameweekRepo := fsjson.NewGameweekRepo(store)
	transactionRepo := fsjson.NewTransactionRepo(store)
	tradeRepo := fsjson.NewTradeRepo(store)
	scoringRepo := fsjson.NewScoringRepo(store)
	notifyRepo := fsjson.NewNotifyRepo(store)
	artifactRepo := fsjson.NewArtifactRepo(store)

	cacheStore := cache.NewStore(cfg.CacheTTL)

	apiClient := fpldraft.NewClient(fpldraft.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: cfg.FPLMaxRetries,
		Logger:     logger,
	})
	// The change detector gets a non-retrying client: a flaky fetch should
	// surface immediately instead of delaying the cron slot.
	checkClient := fpldraft.NewClient(fpldraft.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: 0,
		Logger:     logger,
	})
	discordClient := discord.NewClient(discord.ClientConfig{
		Timeout: cfg.DiscordTimeout,
		Logger:  logger,
	})

	syncService := usecase.NewSyncService(
		apiClient, leagueRepo, playerRepo, gameweekRepo,
		transactionRepo, tradeRepo, scoringRepo,
		cfg.PullMaxWorkers, logger,
	)
	scoringService := usecase.NewScoringService(
		leagueRepo, playerRepo, gameweekRepo, scoringRepo, cacheStore, logger,
	)
	waiverService := usecase.NewWaiverService(
		leagueRepo, playerRepo, gameweekRepo, transactionRepo, cacheStore, logger,
	)
	tradeService := usecase.NewTradeService(
		leagueRepo, playerRepo, gameweekRepo, tradeRepo, cacheStore, logger,
	)
	reportService := usecase.NewReportService(
		leagueRepo, playerRepo, gameweekRepo, transactionRepo, tradeRepo,
		scoringRepo, cacheStore, logger,
	)
	notifyService := usecase.NewNotifyService(
		notifyRepo, gameweekRepo, transactionRepo, tradeRepo,
		reportService, discordClient, logger,
	)
	graphService := usecase.NewGraphService(
		leagueRepo, scoringRepo, tradeRepo, artifactRepo, viewer.NewSystemOpener(), logger,
	)

	var updater usecase.UpdateRunner
	if cfg.UpdateCommand != "" {
		updater = updatehook.NewScriptRunner(cfg.UpdateCommand, logger)
	} else {
		updater = usecase.NewUpdateService(
			syncService, scoringService, waiverService, tradeService,
			notifyService, logger,
		)
	}

	changeService := usecase.NewChangeService(
		checkClient, transactionRepo, updater, cfg.TempDir, logger,
	)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Change:  changeService,
		Updater: updater,
		Sync:    syncService,
		Scoring: scoringService,
		Waivers: waiverService,
		Trades:  tradeService,
		Reports: reportService,
		Graphs:  graphService,
		Notify:  notifyService,
	}
}
