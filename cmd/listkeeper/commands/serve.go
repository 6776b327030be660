package commands

import (
	"context"
	"time"

	"github.com/listkeeper-dev/listkeeper/db"
	"github.com/listkeeper-dev/listkeeper/internal/config"
	"github.com/listkeeper-dev/listkeeper/internal/logging"
	"github.com/listkeeper-dev/listkeeper/internal/router"
	"github.com/listkeeper-dev/listkeeper/internal/session"
	"github.com/listkeeper-dev/listkeeper/internal/store"
	"github.com/spf13/cobra"
)

// sessionPurgeInterval is how often expired session rows are swept.
const sessionPurgeInterval = 15 * time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := logging.Default()
		ctx := context.Background()

		if err := db.ConnectDatabase(cfg.DatabaseDSN); err != nil {
			return err
		}

		if err := db.MigrateDatabase(); err != nil {
			return err
		}

		sessions := session.NewManager(store.NewGormSessionStore(db.DB), cfg.SessionTTL)

		go purgeSessions(ctx, sessions, log)

		stores := router.Stores{
			Users: store.NewGormUserStore(db.DB),
			Lists: store.NewGormListStore(db.DB),
			Items: store.NewGormItemStore(db.DB),
		}

		r := router.NewRouter(cfg, stores, sessions, log)

		log.Info(ctx, "starting server", "addr", cfg.HTTPAddr, "session_ttl", cfg.SessionTTL.String())

		return r.Run(cfg.HTTPAddr)
	},
}

func purgeSessions(ctx context.Context, sessions *session.Manager, log logging.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		purged, err := sessions.PurgeExpired(ctx)
		if err != nil {
			log.Warn(ctx, "session purge failed", "error", err)
			continue
		}
		if purged > 0 {
			log.Info(ctx, "purged expired sessions", "count", purged)
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
