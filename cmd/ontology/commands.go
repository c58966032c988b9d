package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ontology/core/logger"
	"github.com/dmitrymomot/ontology/pkg/async"
	"github.com/dmitrymomot/ontology/pkg/ontology"
)

func newCountCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored concepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			n, err := repo.Count(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
}

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id> [id...]",
		Short: "Print concepts by identifier",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				c, err := repo.Concept(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if c == nil {
					return fmt.Errorf("concept %s not found", args[0])
				}
				return writeJSON(cmd.OutOrStdout(), c)
			}

			concepts, err := repo.Concepts(cmd.Context(), args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), concepts)
		},
	}
}

func newRandomCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "random <n>",
		Short: "Print n randomly sampled concepts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := positiveInt(args[0])
			if err != nil {
				return err
			}
			repo, err := a.repository(cmd.Context())
			if err != nil {
				return err
			}
			concepts, err := repo.RandomConcepts(cmd.Context(), n)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), concepts)
		},
	}
}

func newSearchCommand(a *app) *cobra.Command {
	var (
		limit    int
		semantic bool
	)

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search concepts by text, or by meaning with --semantic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := a.repository(ctx)
			if err != nil {
				return err
			}

			if !semantic {
				concepts, err := repo.TextSearch(ctx, args[0], limit)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), concepts)
			}

			creator, err := a.creator(ctx)
			if err != nil {
				return err
			}
			vec, err := creator.CreateEmbedding(ctx, ontology.Concept{Description: args[0]}, a.embedOptions()...)
			if err != nil {
				return err
			}
			concepts, err := repo.VectorSearch(ctx, vec, limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), concepts)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "maximum number of results")
	cmd.Flags().BoolVar(&semantic, "semantic", false, "embed the term and use vector search")
	return cmd
}

func newEmbedCommand(a *app) *cobra.Command {
	var textOnly bool

	cmd := &cobra.Command{
		Use:   "embed <id> [id...]",
		Short: "Print embedding vectors for concepts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := a.repository(ctx)
			if err != nil {
				return err
			}

			pending := repo.Async().Concepts(ctx, args)

			if textOnly {
				concepts, err := pending.Await()
				if err != nil {
					return err
				}
				texts := make(map[string]string, len(concepts))
				for _, c := range concepts {
					texts[c.ID] = ontology.TextForEmbedding(c)
				}
				return writeJSON(cmd.OutOrStdout(), texts)
			}

			creator, err := a.creator(ctx)
			if err != nil {
				return err
			}
			concepts, err := pending.Await()
			if err != nil {
				return err
			}
			vectors, err := creator.CreateEmbeddings(ctx, concepts, a.embedOptions()...)
			if err != nil {
				return err
			}

			out := make(map[string][]float32, len(concepts))
			for i, c := range concepts {
				out[c.ID] = vectors[i]
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&textOnly, "text", false, "print the embedding text instead of calling the service")
	return cmd
}

func newIndexCommand(a *app) *cobra.Command {
	var random int

	cmd := &cobra.Command{
		Use:   "index [id...]",
		Short: "Embed concepts and store the vectors on their documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && random <= 0 {
				return fmt.Errorf("pass concept ids or --random N")
			}

			ix, err := a.indexer(cmd.Context())
			if err != nil {
				return err
			}

			var res ontology.IndexResult
			if len(args) > 0 {
				res, err = ix.IndexConcepts(cmd.Context(), args)
			} else {
				res, err = ix.IndexRandom(cmd.Context(), random)
			}
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().IntVar(&random, "random", 0, "index N randomly sampled concepts")
	return cmd
}

func newPingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that MongoDB and the embedding provider are configured and reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db := async.Exec(ctx, a, func(ctx context.Context, a *app) error {
				return a.pingStore(ctx)
			})
			provider := async.Exec(ctx, a, func(ctx context.Context, a *app) error {
				return a.pingProvider(ctx)
			})

			if err := async.ExecAll(db, provider); err != nil {
				a.log.ErrorContext(ctx, "Ping failed", logger.Error(err))
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return err
		},
	}
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive integer, got %q", s)
	}
	return n, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
