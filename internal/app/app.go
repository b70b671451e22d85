package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/lingosteps/backend/internal/adapter/postgres"
	completionrepo "github.com/lingosteps/backend/internal/adapter/postgres/completion"
	sentencerepo "github.com/lingosteps/backend/internal/adapter/postgres/sentence"
	steprepo "github.com/lingosteps/backend/internal/adapter/postgres/step"
	textrepo "github.com/lingosteps/backend/internal/adapter/postgres/text"
	userrepo "github.com/lingosteps/backend/internal/adapter/postgres/user"
	wordrepo "github.com/lingosteps/backend/internal/adapter/postgres/word"
	"github.com/lingosteps/backend/internal/audio"
	"github.com/lingosteps/backend/internal/auth"
	"github.com/lingosteps/backend/internal/config"
	"github.com/lingosteps/backend/internal/provider"
	"github.com/lingosteps/backend/internal/provider/generate"
	"github.com/lingosteps/backend/internal/provider/translate"
	authsvc "github.com/lingosteps/backend/internal/service/auth"
	completionsvc "github.com/lingosteps/backend/internal/service/completion"
	practicesvc "github.com/lingosteps/backend/internal/service/practice"
	stepssvc "github.com/lingosteps/backend/internal/service/steps"
	textsvc "github.com/lingosteps/backend/internal/service/text"
	vocabularysvc "github.com/lingosteps/backend/internal/service/vocabulary"
	"github.com/lingosteps/backend/internal/transport/middleware"
	"github.com/lingosteps/backend/internal/transport/rest"
)

// requestsPerMinute caps per-IP traffic across the whole API.
const requestsPerMinute = 300

// Run is the application entry point. It loads configuration, connects
// the database and the audio pipeline backends, wires repositories,
// services and handlers together, and serves HTTP until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	words := wordrepo.New(pool)
	texts := textrepo.New(pool)
	sentences := sentencerepo.New(pool)
	steps := steprepo.New(pool)
	completions := completionrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL)

	var translator interface {
		Translate(ctx context.Context, text, sourceLang, targetLang string) (provider.TranslationResult, error)
	}
	if cfg.Translator.UseStub {
		logger.Warn("using stub translator")
		translator = translate.NewStub()
	} else {
		translator = translate.New(cfg.Translator.BaseURL, cfg.Translator.APIKey, cfg.Translator.Timeout, logger)
	}
	generator := generate.New(cfg.Generator.BaseURL, cfg.Generator.APIKey, cfg.Generator.Timeout, logger)

	healthHandler := rest.NewHealthHandler(BuildVersion())
	healthHandler.AddCheck("database", pool)

	// The audio pipeline is optional: without it texts simply stay in
	// audio status pending.
	var audioQueue interface {
		Enqueue(ctx context.Context, job audio.Job) error
	}
	if cfg.Audio.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()

		minioClient, err := minio.New(cfg.ObjectStore.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.ObjectStore.AccessKey, cfg.ObjectStore.SecretKey, ""),
			Secure: cfg.ObjectStore.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("connect to object store: %w", err)
		}

		store := audio.NewStore(minioClient, cfg.ObjectStore.Bucket, cfg.ObjectStore.PublicURL)
		if err := store.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("ensure audio bucket: %w", err)
		}

		var synthesizer audio.Synthesizer
		if cfg.Audio.UseStub {
			logger.Warn("using stub speech synthesizer")
			synthesizer = audio.StubSynthesizer{}
		} else {
			synthesizer = audio.NewHTTPSynthesizer(cfg.Audio.SpeechBaseURL, cfg.Audio.SpeechAPIKey, nil)
		}

		queue := audio.NewQueue(redisClient, cfg.Audio.QueueKey)
		audioQueue = queue
		healthHandler.AddCheck("queue", redisPinger{client: redisClient})

		worker := audio.NewWorker(audio.WorkerDeps{
			Queue:       queue,
			Texts:       texts,
			Sentences:   sentences,
			Words:       words,
			Store:       store,
			Synthesizer: synthesizer,
			Voice:       cfg.Audio.Voice,
			PollTimeout: cfg.Audio.PollTimeout,
			Logger:      logger,
		})
		go worker.Run(ctx)

		sweeper := audio.NewSweeper(texts, cfg.Audio.StuckMaxAge, cfg.Audio.SweepInterval, logger)
		if err := sweeper.Start(ctx); err != nil {
			return fmt.Errorf("start audio sweeper: %w", err)
		}
		defer sweeper.Stop()
	}

	authService := authsvc.NewService(logger, users, jwtManager)
	textService := textsvc.NewService(logger, texts, sentences, words, steps, txManager, translator, generator, audioQueue, cfg.Generator)
	vocabularyService := vocabularysvc.NewService(logger, words)
	completionService := completionsvc.NewService(logger, completions, words)
	stepsService := stepssvc.NewService(logger, steps, texts)
	practiceService := practicesvc.NewService(logger, sentences, words, completionService)

	cookie := rest.CookieParams{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
		TTL:    cfg.Auth.SessionTTL,
	}
	mux := rest.NewRouter(rest.Handlers{
		Auth:       rest.NewAuthHandler(authService, cookie, logger),
		Texts:      rest.NewTextHandler(textService, logger),
		Vocabulary: rest.NewVocabularyHandler(vocabularyService, logger),
		Completion: rest.NewCompletionHandler(completionService, logger),
		Steps:      rest.NewStepHandler(stepsService, logger),
		Practice:   rest.NewPracticeHandler(practiceService, logger),
		Health:     healthHandler,
	})

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(requestsPerMinute),
		middleware.Auth(jwtManager, cfg.Auth.CookieName),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("http server listening", slog.String("addr", srv.Addr))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// redisPinger adapts the redis client to the health check interface.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
