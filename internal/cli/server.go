package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizhub/internal/app"
	"quizhub/internal/auth"
	"quizhub/internal/config"
	"quizhub/internal/infra/memory"
	"quizhub/internal/infra/postgres"
	redisinfra "quizhub/internal/infra/redis"
	transport "quizhub/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Auth.Secret == "" {
		return fmt.Errorf("auth secret not configured")
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	db := postgres.NewDB(cfg.Postgres.URL)
	defer db.Close()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	users := postgres.NewUserRepository(db)
	subjects := postgres.NewSubjectRepository(db)
	chapters := postgres.NewChapterRepository(db)
	quizzes := postgres.NewQuizRepository(db)
	questions := postgres.NewQuestionRepository(db)
	signups := postgres.NewSignupRepository(db)
	scores := postgres.NewScoreRepository(db)
	search := postgres.NewSearchRepository(pool)

	quizTTL := config.TTLDuration(cfg.Quiz.CacheTTL, 10*time.Minute)
	loader := postgres.NewQuizLoader(pool)
	var content app.QuizContentCache
	if redisClient != nil {
		content = redisinfra.NewQuizCache(redisClient, loader, quizTTL)
	} else {
		content = memory.NewQuizCache(loader, quizTTL)
	}

	var revocations app.RevocationStore
	if redisClient != nil {
		revocations = redisinfra.NewRevocationStore(redisClient)
	} else {
		revocations = memory.NewRevocationStore()
	}

	tokenTTL := config.TTLDuration(cfg.Auth.TokenTTL, 24*time.Hour)
	issuer := auth.NewIssuer(cfg.Auth.Secret, tokenTTL)

	authService := app.NewAuthService(users, issuer, revocations)
	adminService := app.NewAdminService(users)
	catalogService := app.NewCatalogService(subjects, chapters)
	quizService := app.NewQuizService(chapters, quizzes, questions, content)
	attemptService := app.NewAttemptService(quizzes, questions, signups, scores, content)
	searchService := app.NewSearchService(search)

	gate := transport.NewAuthenticator(issuer, revocations)
	router := transport.NewRouter(transport.Handlers{
		Auth:     transport.NewAuthHandler(authService),
		Catalog:  transport.NewCatalogHandler(catalogService, searchService),
		Quiz:     transport.NewQuizHandler(quizService, catalogService, searchService),
		Attempt:  transport.NewAttemptHandler(attemptService),
		Admin:    transport.NewAdminHandler(adminService, searchService),
		AuthGate: gate,
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quizhub on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
