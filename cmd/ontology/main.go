package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ontology/core/config"
	"github.com/dmitrymomot/ontology/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := &app{}
	err := newRootCommand(a).ExecuteContext(ctx)
	a.close(context.WithoutCancel(ctx))
	stop()

	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ontology",
		Short: "Query anatomic location concepts and create their embeddings",
		Long: `ontology reads SNOMED CT-derived anatomic location concepts from MongoDB,
searches them, and creates embedding vectors through OpenAI or Google.

Connection and provider settings come from the environment (or a .env file):
MONGODB_URL, ONTOLOGY_DATABASE, ONTOLOGY_COLLECTION, EMBEDDING_PROVIDER,
OPENAI_API_KEY, GOOGLE_API_KEY, EMBEDDING_MODEL, EMBEDDING_DIMENSIONS.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(&a.cfg); err != nil {
				return err
			}
			if err := a.cfg.validate(); err != nil {
				return err
			}
			a.log = logger.New(
				logger.WithEnvironment(a.cfg.Env, "ontology"),
				logger.WithLevelString(a.cfg.LogLevel),
				logger.WithOutput(cmd.ErrOrStderr()),
			)
			return nil
		},
	}

	root.AddCommand(
		newCountCommand(a),
		newGetCommand(a),
		newRandomCommand(a),
		newSearchCommand(a),
		newEmbedCommand(a),
		newIndexCommand(a),
		newPingCommand(a),
	)

	return root
}
