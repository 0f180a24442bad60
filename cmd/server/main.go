package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snowday/internal/adapter/api"
	"snowday/internal/adapter/api/web"
	"snowday/internal/adapter/client"
	"snowday/internal/adapter/notify"
	"snowday/internal/adapter/store"
	"snowday/internal/config"
	"snowday/internal/domain/repository"
	"snowday/internal/logger"
	"snowday/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// judgeThreshold is the snow-day chance, in percent, that triggers emails.
const judgeThreshold = 75

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "snowday",
		Short:         "Snow day prediction board",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configFile)
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a config file (default: ./configs/config.yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the prediction page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configFile)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "predict",
		Short: "Run the snow day prediction once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return predictOnce(cmd.Context(), configFile)
		},
	})
	return root
}

type app struct {
	cfg       *config.Config
	log       logger.Logger
	files     *store.FileStore
	predictor *usecase.SnowDayPredictor
}

func bootstrap(ctx context.Context, configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format).
		With(map[string]interface{}{"app": cfg.App.Name, "env": cfg.App.Environment})

	fs := afero.NewOsFs()
	files, err := store.NewFileStore(fs, cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, files: files}
	if !cfg.GenAI.Enabled() || cfg.Weather.APIKey == "" {
		log.Warn("prediction pipeline disabled: genai or weather api not configured", nil)
		return a, nil
	}

	policy, err := store.ReadPolicy(fs, cfg.School.PolicyFile)
	if err != nil {
		return nil, err
	}
	recipients, err := cfg.Notify.Recipients()
	if err != nil {
		return nil, err
	}

	genaiClient, err := client.NewGenAIClient(ctx, cfg.GenAI.APIKey, cfg.GenAI.Project, cfg.GenAI.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to init genai client: %w", err)
	}
	primaryModel := client.NewGeminiClientFromClient(genaiClient, cfg.GenAI.PrimaryModel)
	fallbackModel := client.NewGeminiClientFromClient(genaiClient, cfg.GenAI.FallbackModel)
	provider := usecase.NewResilientProvider(primaryModel, fallbackModel, cfg.GenAI.Timeout, log)
	judge := client.NewGeminiJudge(genaiClient, cfg.GenAI.JudgeModel, judgeThreshold)

	forecasts := client.NewWeatherAPIClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.School.ZipCode, cfg.Weather.Timeout)

	var notifier repository.Notifier
	if cfg.Notify.Enabled {
		sesClient, err := notify.NewSESClient(ctx, cfg.Notify.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to init ses client: %w", err)
		}
		notifier = notify.NewSESNotifier(sesClient, cfg.Notify.From, log)
	}

	a.predictor = usecase.NewSnowDayPredictor(forecasts, provider, judge, files, notifier, usecase.PredictorConfig{
		School:      cfg.School.Entity(),
		Policy:      policy,
		Recipients:  recipients,
		Subject:     cfg.Notify.Subject,
		TestingMode: cfg.App.TestingMode,
	}, log)
	return a, nil
}

func predictOnce(ctx context.Context, configFile string) error {
	a, err := bootstrap(ctx, configFile)
	if err != nil {
		return err
	}
	if a.predictor == nil {
		return fmt.Errorf("cannot predict: genai and weather api must be configured")
	}
	run, err := a.predictor.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(run.Prediction)
	return nil
}

func serve(ctx context.Context, configFile string) error {
	a, err := bootstrap(ctx, configFile)
	if err != nil {
		return err
	}
	cfg, log := a.cfg, a.log

	template := web.IndexHTML
	if cfg.Page.TemplateFile != "" {
		if template, err = os.ReadFile(cfg.Page.TemplateFile); err != nil {
			return fmt.Errorf("failed to read page template: %w", err)
		}
	}

	fetcher, err := client.NewHTTPResourceFetcher(cfg.Page.ResourceBaseURL, nil)
	if err != nil {
		return err
	}
	schoolLoc, err := time.LoadLocation(cfg.School.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load school timezone: %w", err)
	}
	dates := usecase.NewDateAnnouncer(cfg.Page.DateOffsetDays, schoolLoc, log)
	loader := usecase.NewPredictionLoader(fetcher, cfg.Page.ResourcePath, log)

	// Redis for refresh rate limiting
	var limiter repository.RefreshLimiter
	if a.predictor != nil {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, refresh requests will fail until it is", nil)
		}
		cancel()
		limiter = store.NewRedisLimiter(rdb, cfg.Redis.RefreshLimit, cfg.Redis.RefreshWindow)
	}

	server := fiber.New(fiber.Config{
		AppName:               "Snow Day Predictor",
		DisableStartupMessage: true,
	})
	api.SetupRouter(server,
		api.NewPageHandler(template, dates, loader, log),
		api.NewPredictionHandler(a.files, a.predictor, limiter, log),
		api.BuildInfo{Version: cfg.App.Version, Environment: cfg.App.Environment},
	)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-sigCtx.Done()
		_ = server.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info("snowday running", map[string]interface{}{"port": cfg.App.Port})
	return server.Listen(":" + cfg.App.Port)
}
