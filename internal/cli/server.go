package cli

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/config"
	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/infra/memory"
	pgstore "adaptive-quiz-service/internal/infra/postgres"
	redisstore "adaptive-quiz-service/internal/infra/redis"
	transport "adaptive-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
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

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(sampleQuestionSets())
	if pool != nil {
		loader = pgstore.NewQuestionLoader(pool)
	}

	questionTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var questionRepo app.QuestionRepository
	if redisClient != nil {
		questionRepo = redisstore.NewQuestionRepository(redisClient, loader, questionTTL)
	} else {
		questionRepo = memory.NewQuestionRepository(loader, questionTTL)
	}

	var scores app.ScoreStore
	switch {
	case cfg.Postgres.URL != "":
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		db := bun.NewDB(sqldb, pgdialect.New())
		defer db.Close()
		scores = pgstore.NewScoreStore(db)
	case redisClient != nil:
		scores = redisstore.NewScoreStore(redisClient)
	default:
		scores = memory.NewScoreStore()
	}

	service := app.NewQuizService(questionRepo, scores, cfg.Quiz.TimerPerQuestion)
	wsHandler := transport.NewWSHandler(service, cfg.Quiz.SuccessThreshold)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting adaptive quiz service on :%s", finalPort)
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

// sampleQuestionSets provides a minimal question bank; swap the loader with a
// Postgres-backed one in production.
func sampleQuestionSets() map[string][]domain.Question {
	return map[string][]domain.Question{
		"default": {
			{
				ID:          "q1",
				Text:        "What is the capital of France?",
				Options:     []string{"Paris", "Rome", "Berlin", "Madrid"},
				AnswerIndex: 0,
				Topic:       "Geography",
				Difficulty:  domain.DifficultyEasy,
			},
			{
				ID:          "q2",
				Text:        "What is 7 x 8?",
				Options:     []string{"54", "56", "64"},
				AnswerIndex: 1,
				Topic:       "Math",
				Difficulty:  domain.DifficultyEasy,
			},
			{
				ID:          "q3",
				Text:        "Which planet has the most moons?",
				Options:     []string{"Jupiter", "Saturn", "Neptune"},
				AnswerIndex: 1,
				Topic:       "Science",
				Difficulty:  domain.DifficultyMedium,
				Explanation: "Saturn overtook Jupiter after the 2023 moon discoveries.",
			},
			{
				ID:          "q4",
				Text:        "What is the derivative of x^2?",
				Options:     []string{"x", "2x", "x^2/2"},
				AnswerIndex: 1,
				Topic:       "Math",
				Difficulty:  domain.DifficultyHard,
			},
		},
	}
}
