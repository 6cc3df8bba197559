package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hourei/hourei-backend/internal/cache"
	"github.com/hourei/hourei-backend/internal/lawapi"
	"github.com/hourei/hourei-backend/internal/platform/logger"
	"github.com/hourei/hourei-backend/internal/store"
)

var (
	upstreamFlag string
	retriesFlag  int
	storeFlag    string
	rootCmd      = &cobra.Command{
		Use:   "houreictl",
		Short: "CLI client for the statute exploration backend",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&upstreamFlag, "upstream", "a", lawapi.DefaultBaseURL, "Upstream law API base URL")
	rootCmd.PersistentFlags().IntVar(&retriesFlag, "retries", lawapi.DefaultMaxRetries, "Max retries for upstream requests")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", defaultStorePath(), "History store file (sqlite)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient builds a law client for one invocation. The CLI keeps a
// memory-tier cache only; results rarely repeat within a run.
func newClient() *lawapi.Client {
	log := logger.New("houreictl")
	return lawapi.New(lawapi.Config{
		BaseURL:        upstreamFlag,
		MaxRetries:     retriesFlag,
		RetryBaseDelay: 300 * time.Millisecond,
	},
		lawapi.WithCache(cache.New(log)),
		lawapi.WithLogger(log),
	)
}

// openStore opens the history store, degrading to memory on failure.
func openStore() store.Store {
	return store.Open(storeFlag, logger.New("houreictl"))
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "houreictl.db"
	}
	return home + "/.houreictl/history.db"
}
