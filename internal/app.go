package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/adapters/chat"
	"github.com/amggit2025/amg-realestate-sub000/internal/adapters/imagestore"
	"github.com/amggit2025/amg-realestate-sub000/internal/adapters/imaging"
	token_adapter "github.com/amggit2025/amg-realestate-sub000/internal/adapters/jwt"
	"github.com/amggit2025/amg-realestate-sub000/internal/adapters/notifier"
	postgres_adapter "github.com/amggit2025/amg-realestate-sub000/internal/adapters/postgres"
	rabbitmq_adapter "github.com/amggit2025/amg-realestate-sub000/internal/adapters/rabbitmq"
	redis_adapter "github.com/amggit2025/amg-realestate-sub000/internal/adapters/redis"
	"github.com/amggit2025/amg-realestate-sub000/internal/adapters/rest"
	"github.com/amggit2025/amg-realestate-sub000/internal/configs"
	"github.com/amggit2025/amg-realestate-sub000/internal/constants"
	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/usecase"
	"github.com/amggit2025/amg-realestate-sub000/internal/metrics"
	"github.com/amggit2025/amg-realestate-sub000/pkg/postgres"
	"github.com/amggit2025/amg-realestate-sub000/pkg/rabbitmq/rabbitmq_common"
	"github.com/amggit2025/amg-realestate-sub000/pkg/rabbitmq/rabbitmq_producer"
	redisclient "github.com/amggit2025/amg-realestate-sub000/pkg/redis"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 15 * time.Second

// App is the HTTP process: public site API, wizard and back office.
type App struct {
	config      *configs.AppConfig
	dbPool      *pgxpool.Pool
	redis       *goredis.Client
	connManager *rabbitmq_common.ConnectionManager
	publisher   *rabbitmq_producer.Publisher
	notifier    *notifier.SSENotifier
	apiServer   *rest.Server
	bootstrap   *usecase.BootstrapAdminUseCase

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}
	if err := appConfig.ValidateAPI(); err != nil {
		return nil, err
	}

	baseLogger, fluentClient, err := newBaseLogger(appConfig, "api")
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	a := &App{config: appConfig, logger: appLogger, fluentClient: fluentClient}
	if err := a.wire(baseLogger); err != nil {
		appLogger.Error("Failed to initialize application", err, nil)
		a.close()
		return nil, err
	}
	return a, nil
}

// wire builds every dependency. On error the partially built App is
// released by close.
func (a *App) wire(baseLogger port.LoggerPort) error {
	cfg := a.config
	ctx := context.Background()

	dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.Database.URL, MaxConns: cfg.Database.MaxConns})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	a.logger.Info("Successfully connected to PostgreSQL pool!", nil)

	redisClient, err := redisclient.NewClient(ctx, redisclient.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	a.redis = redisClient
	a.logger.Info("Successfully connected to Redis!", nil)

	connManager, err := rabbitmq_common.NewConnectionManager(cfg.RabbitMQ.URL,
		rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})))
	if err != nil {
		return fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager

	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: cfg.RabbitMQ.URL},
		ExchangeName:             constants.PortalExchange,
		ExchangeType:             constants.PortalExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_publisher"})),
	}, connManager)
	if err != nil {
		return fmt.Errorf("failed to create publisher: %w", err)
	}
	a.publisher = publisher

	// --- adapters
	listingRepo, err := postgres_adapter.NewPostgresListingRepository(dbPool)
	if err != nil {
		return err
	}
	contentRepo, err := postgres_adapter.NewPostgresContentRepository(dbPool)
	if err != nil {
		return err
	}
	portfolioRepo, err := postgres_adapter.NewPostgresPortfolioRepository(dbPool)
	if err != nil {
		return err
	}
	productRepo, err := postgres_adapter.NewPostgresProductRepository(dbPool)
	if err != nil {
		return err
	}
	userRepo, err := postgres_adapter.NewPostgresUserRepository(dbPool)
	if err != nil {
		return err
	}

	drafts, err := redis_adapter.NewDraftStore(redisClient, cfg.Wizard.DraftTTL)
	if err != nil {
		return err
	}
	contentCache, err := redis_adapter.NewContentCache(redisClient, cfg.Content.CacheTTL)
	if err != nil {
		return err
	}

	storage, err := imagestore.NewCloudinaryClient(imagestore.Config{
		BaseURL:   cfg.Cloudinary.BaseURL,
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	}, &http.Client{})
	if err != nil {
		return err
	}

	events, err := rabbitmq_adapter.NewSubmissionEventsAdapter(publisher, constants.RoutingKeyListingSubmitted)
	if err != nil {
		return err
	}

	tokens, err := token_adapter.NewTokenService(cfg.JWT.SigningKey)
	if err != nil {
		return err
	}
	hasher := token_adapter.NewBcryptHasher(bcrypt.DefaultCost)

	a.notifier = notifier.NewSSENotifier(baseLogger)
	processor := imaging.NewProcessor(imaging.DefaultPreviewSize)
	recorder := metrics.NewRecorder()
	a.logger.Info("Adapters initialized.", nil)

	// --- use cases
	intakeCfg := usecase.ImageIntakeConfig{
		FolderRoot: cfg.Cloudinary.Folder,
		MaxBytes:   cfg.Upload.MaxBytes,
		MaxImages:  cfg.Upload.MaxImages,
		Timeout:    cfg.Upload.Timeout,
	}
	limits := rest.UploadLimits{MaxBytes: cfg.Upload.MaxBytes, MaxImages: cfg.Upload.MaxImages}

	wizardHandler := rest.NewWizardHandler(
		usecase.NewCreateDraftUseCase(drafts),
		usecase.NewGetDraftUseCase(drafts),
		usecase.NewUpdateDraftUseCase(drafts),
		usecase.NewNavigateDraftUseCase(drafts, recorder),
		usecase.NewAddDraftImagesUseCase(drafts, processor, storage, recorder, intakeCfg),
		usecase.NewRemoveDraftImageUseCase(drafts, storage),
		usecase.NewSubmitDraftUseCase(drafts, listingRepo, events, a.notifier, recorder),
		limits,
	)
	listingHandler := rest.NewListingHandler(
		usecase.NewSubmitListingUseCase(listingRepo, events, a.notifier, processor, storage, recorder, intakeCfg),
		usecase.NewListListingRequestsUseCase(listingRepo),
		usecase.NewGetListingRequestUseCase(listingRepo),
		usecase.NewUpdateListingStatusUseCase(listingRepo, a.notifier),
		limits,
	)
	uploadHandler := rest.NewUploadHandler(
		usecase.NewUploadImageUseCase(storage, processor, recorder, intakeCfg),
		usecase.NewDeleteImageUseCase(storage, cfg.Cloudinary.Folder),
		limits,
	)
	contentHandler := rest.NewContentHandler(
		usecase.NewGetContentUseCase(contentRepo, contentCache),
		usecase.NewUpdateContentUseCase(contentRepo, contentCache),
	)
	portfolioHandler := rest.NewPortfolioHandler(
		usecase.NewListPortfolioUseCase(portfolioRepo),
		usecase.NewGetPortfolioItemUseCase(portfolioRepo),
		usecase.NewCreatePortfolioItemUseCase(portfolioRepo),
		usecase.NewUpdatePortfolioItemUseCase(portfolioRepo),
		usecase.NewDeletePortfolioItemUseCase(portfolioRepo, storage),
		usecase.NewAddPortfolioImageUseCase(portfolioRepo),
		usecase.NewReorderPortfolioImagesUseCase(portfolioRepo),
		usecase.NewDeletePortfolioImageUseCase(portfolioRepo, storage),
	)
	storeHandler := rest.NewStoreHandler(
		usecase.NewListProductsUseCase(productRepo),
		usecase.NewGetProductUseCase(productRepo),
		usecase.NewSaveProductUseCase(productRepo),
		usecase.NewDeleteProductUseCase(productRepo),
		usecase.NewPlaceOrderUseCase(productRepo),
		usecase.NewListOrdersUseCase(productRepo),
	)
	authHandler := rest.NewAuthHandler(
		usecase.NewLoginAdminUseCase(userRepo, tokens, hasher, cfg.JWT.AccessTokenTTL),
		usecase.NewGetCurrentUserUseCase(userRepo),
	)
	a.bootstrap = usecase.NewBootstrapAdminUseCase(userRepo, hasher)
	a.logger.Info("All use cases initialized.", nil)

	a.apiServer = rest.NewServer(cfg.Rest.PORT, rest.Handlers{
		Wizard:        wizardHandler,
		Listings:      listingHandler,
		Uploads:       uploadHandler,
		Content:       contentHandler,
		Portfolio:     portfolioHandler,
		Store:         storeHandler,
		Chat:          rest.NewChatHandler(usecase.NewChatUseCase(chat.NewRuleAssistant())),
		Auth:          authHandler,
		Events:        rest.NewEventsHandler(a.notifier),
		ValidateToken: usecase.NewValidateTokenUseCase(tokens),
	}, rest.RouterOptions{AllowedOrigins: cfg.Rest.CORSAllowedOrigins}, baseLogger)
	a.logger.Info("REST API server configured.", nil)
	return nil
}

func (a *App) Run() error {
	defer a.close()

	ctx := contextkeys.ContextWithLogger(context.Background(), a.logger)
	if created, err := a.bootstrap.Execute(ctx, a.config.Admin.Email, a.config.Admin.Password); err != nil {
		a.logger.Error("Admin bootstrap failed", err, nil)
	} else if created {
		a.logger.Info("Admin account created from configuration", nil)
	}

	errorsCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil {
			errorsCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-errorsCh:
		a.logger.Error("HTTP server failed, shutting down", runErr, nil)
	}

	// streams end when the notifier stops, so Shutdown is not held by them
	a.notifier.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}
	return runErr
}

// close releases whatever has been built, in reverse order.
func (a *App) close() {
	if a.notifier != nil {
		a.notifier.Stop()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing publisher", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
	a.logger.Info("Application shut down gracefully.", nil)
	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
	}
}
