// apps/wordle-engine/main.go
//
// Entry point. Two commands share one word bank and one game engine:
//   - serve: the HTTP API (see serve.go); also the default.
//   - play:  a terminal game (see play.go).
//
// A .env file in the working directory is loaded before anything else.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wordle",
		Short:         "Category word-guessing game: HTTP server and terminal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			_ = godotenv.Load()
			if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
				zerolog.SetGlobalLevel(lvl)
			}
		},
	}
	serve := newServeCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, newPlayCmd())
	return root
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
