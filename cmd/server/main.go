package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/internal/config"
	"github.com/jeremyhappach/rule-your-poker-sub003/internal/jwt"
	"github.com/jeremyhappach/rule-your-poker-sub003/internal/mux"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/db"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/table"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadKeys()

	// run the db migrations
	db.Migrate()

	go recoverySweep()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// recoverySweep periodically abandons rounds stuck in processing. A round
// only sits there if the caller that claimed it crashed mid-settlement;
// forcing it to settled with no payout is the safe outcome since a retry
// could pay twice.
func recoverySweep() {
	cfg := config.Instance().Recovery

	interval := time.Minute
	if cfg.SweepInterval > 0 {
		interval = time.Second * time.Duration(cfg.SweepInterval)
	}

	maxAge := time.Minute * 2
	if cfg.MaxAge > 0 {
		maxAge = time.Second * time.Duration(cfg.MaxAge)
	}

	for range time.Tick(interval) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)

		rounds, err := table.GetStuckRounds(ctx, maxAge)
		if err != nil {
			logrus.WithError(err).Error("could not get stuck rounds")
			cancel()
			continue
		}

		for _, round := range rounds {
			settler := table.NewSettler(table.NewSQLStore(round.TableUUID), logrus.StandardLogger())
			if err := settler.ForceSettle(ctx, round.ID); err != nil {
				logrus.WithError(err).WithField("round", round.ID).Error("could not force-settle round")
			}
		}

		cancel()
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
