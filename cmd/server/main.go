package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/auth"
	"workforce/backend/internal/commands"
	"workforce/backend/internal/pkg/config"
	"workforce/backend/internal/pkg/repository/postgresql"
	"workforce/backend/internal/repository/postgres/attendance"
	"workforce/backend/internal/router"
	"workforce/backend/internal/service/roster"
	"workforce/backend/internal/service/tracker"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run(log zerolog.Logger) error {
	var flags struct {
		ConfigPath string `conf:"default:./config.yaml"`
		Port       string `conf:"default::8080"`
	}

	if err := conf.Parse(os.Args[1:], "SERVER", &flags); err != nil {
		if err == conf.ErrHelpWanted {
			usage, err := conf.Usage("SERVER", &flags)
			if err != nil {
				return errors.Wrap(err, "generating usage")
			}
			fmt.Println(usage)
			return nil
		}
		return errors.Wrap(err, "parsing config")
	}

	cfg, err := config.NewConfig(flags.ConfigPath)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	postgresDB := postgresql.NewDB(cfg)
	defer postgresDB.Close()

	commands.MigrateUP(postgresDB)
	log.Info().Msg("migrations applied")

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost,
		Password: cfg.RedisPassword,
	})
	defer redisDB.Close()

	authenticator, err := auth.New(cfg.PrivateKeyPath)
	if err != nil {
		return errors.Wrap(err, "constructing authenticator")
	}

	attendancePostgres := attendance.NewRepository(postgresDB)
	sessionTracker := tracker.New(attendancePostgres, tracker.DefaultInterval, log)
	defer sessionTracker.StopAll()

	notifier := roster.NewNotifier(redisDB, log)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	app := web.NewApp(shutdown)

	r := router.NewRouter(app, postgresDB, redisDB, flags.Port, authenticator, sessionTracker, notifier)

	log.Info().Str("port", flags.Port).Msg("server starting")
	return r.Init()
}
