package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	visiontech "github.com/leadwithvicky/visiontech-blogs"
	"github.com/leadwithvicky/visiontech-blogs/auth"
	"github.com/leadwithvicky/visiontech-blogs/bolt"
	"github.com/leadwithvicky/visiontech-blogs/dispatch"
	"github.com/leadwithvicky/visiontech-blogs/http"
	"github.com/leadwithvicky/visiontech-blogs/local"
	"github.com/leadwithvicky/visiontech-blogs/rabbitmq"
	"github.com/leadwithvicky/visiontech-blogs/s3"
	"github.com/leadwithvicky/visiontech-blogs/smtp"
)

func main() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}

	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("db.path", "visiontech.db")
	viper.SetDefault("uploads.dir", "uploads")

	var config *visiontech.Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatal(err)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn: config.Sentry.DSN,
	}); err != nil {
		log.Fatalf("sentry.Init: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	a := newApp(config)

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		cancel()
	}()

	if err := a.Run(ctx); err != nil {
		_ = a.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	<-ctx.Done()

	if err := a.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	config     *visiontech.Config
	logger     zerolog.Logger
	db         *bolt.DB
	queue      visiontech.QueueService
	cron       *cron.Cron
	httpServer *http.Server
}

func newApp(config *visiontech.Config) *app {
	httpServer, err := http.NewServer()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
	return &app{
		config:     config,
		logger:     zerolog.New(os.Stdout).With().Timestamp().Logger(),
		db:         bolt.NewDB(config.DB.Path),
		cron:       cron.New(),
		httpServer: httpServer,
	}
}

func (a *app) Run(ctx context.Context) error {
	if err := a.db.Open(); err != nil {
		return err
	}

	a.httpServer.Addr = a.config.HTTP.Addr
	a.httpServer.AdminEmail = a.config.Admin.Email
	a.httpServer.AdminPassword = a.config.Admin.Password

	if a.config.Uploads.S3.Bucket == "" {
		a.httpServer.UploadsDir = a.config.Uploads.Dir
	}

	if err := a.httpServer.Open(); err != nil {
		return err
	}

	subscriptions := bolt.NewSubscriptionService(a.db)
	newsletters := bolt.NewNewsletterService(a.db)
	mailer := smtp.NewMailer(a.config, a.httpServer.URL())

	if a.config.AMQP.URL != "" {
		queue, err := rabbitmq.NewQueueService(a.config.AMQP.URL)
		if err != nil {
			return err
		}
		a.queue = queue
	} else {
		a.queue = dispatch.NewMemQueue()
	}

	dispatcher := dispatch.NewService(subscriptions, newsletters, mailer, a.queue, a.logger)
	go func() {
		if err := dispatcher.Run(ctx); err != nil {
			a.logger.Error().Err(err).Msg("dispatch worker stopped")
			sentry.CaptureException(err)
		}
	}()

	a.httpServer.SubscriptionService = subscriptions
	a.httpServer.NewsletterService = newsletters
	a.httpServer.Mailer = mailer
	a.httpServer.Dispatcher = dispatcher
	a.httpServer.TokenService = auth.NewTokenService(a.config.JWT.Secret)

	if a.config.Uploads.S3.Bucket != "" {
		store, err := s3.NewImageStore(ctx, a.config)
		if err != nil {
			return err
		}
		a.httpServer.ImageStore = store
	} else {
		baseURL := a.config.Uploads.BaseURL
		if baseURL == "" {
			baseURL = a.httpServer.URL() + "/uploads"
		}
		a.httpServer.ImageStore = local.NewImageStore(a.config.Uploads.Dir, baseURL)
	}

	if spec := a.config.Stats.Cron.Spec; spec != "" {
		if _, err := a.cron.AddFunc(spec, func() {
			stats, err := subscriptions.Stats()
			if err != nil {
				a.logger.Error().Err(err).Msg("stats report failed")
				sentry.CaptureException(err)
				return
			}
			a.logger.Info().
				Int("total", stats.Total).
				Int("active", stats.Active).
				Int("unsubscribed", stats.Unsubscribed).
				Int("pending", stats.Pending).
				Msg("subscriber stats")
		}); err != nil {
			return err
		}
		a.cron.Start()
	}

	return nil
}

func (a *app) Close() error {
	a.cron.Stop()

	if a.httpServer != nil {
		if err := a.httpServer.Close(); err != nil {
			return err
		}
	}

	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			return err
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return err
		}
	}

	return nil
}
