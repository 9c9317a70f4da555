package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nmdsi/sponsor-cli/internal/config"
	"github.com/nmdsi/sponsor-cli/internal/session"
	"github.com/nmdsi/sponsor-cli/internal/store"
	"github.com/nmdsi/sponsor-cli/pkg/predictapi"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sponsor-cli",
	Short: "University sponsorship prospect prediction",
	Long:  "Searches the company universe, predicts sponsorship likelihood per model variant, manages training data and deployments, and exports prospect summary PDFs.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initStore opens and migrates the local SQLite store.
func initStore(ctx context.Context) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// newClient builds an API client, attaching the stored bearer token when
// a session exists.
func newClient(ctx context.Context, st store.Store) (predictapi.Client, *session.Manager, error) {
	opts := []predictapi.Option{
		predictapi.WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second),
	}

	sess, err := st.GetSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	if sess != nil {
		opts = append(opts, predictapi.WithToken(sess.Token))
	}

	client := predictapi.NewClient(cfg.API.BaseURL, opts...)
	return client, session.NewManager(client, st), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
