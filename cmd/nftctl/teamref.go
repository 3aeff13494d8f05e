package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nftforge/internal/infra"
	"nftforge/internal/reference"
)

// openBackend is replaced in tests.
var openBackend = func(ctx context.Context) (*reference.Backend, error) {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, err
	}
	backend, err := reference.OpenTeamBackend(ctx, cfg, infra.NewLogger(cfg.AppEnv))
	if err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, errors.New("set MONGODB_URI or DATABASE_URL to manage team references")
	}
	return backend, nil
}

func newTeamRefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teamref",
		Short: "Read and write persisted team jersey prompts",
	}

	get := &cobra.Command{
		Use:   "get <team_name>",
		Short: "Print a team's base prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd.Context(), func(ctx context.Context, b *reference.Backend) error {
				prompt, err := b.Store.LoadTeamBasePrompt(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), prompt)
				return nil
			})
		},
	}

	var file string
	put := &cobra.Command{
		Use:   "put <team_name> [base_prompt]",
		Short: "Create or replace a team's base prompt",
		Long:  "The prompt comes from the second argument, or from --file ('-' reads stdin). It should contain {PLAYER_NAME} and {PLAYER_NUMBER}.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := promptArg(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}
			if !strings.Contains(prompt, "{PLAYER_NAME}") || !strings.Contains(prompt, "{PLAYER_NUMBER}") {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: prompt has no {PLAYER_NAME}/{PLAYER_NUMBER} placeholder")
			}
			return withBackend(cmd.Context(), func(ctx context.Context, b *reference.Backend) error {
				if err := b.Prepare(ctx); err != nil {
					return err
				}
				if err := b.Store.PutTeamBasePrompt(ctx, args[0], prompt); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "stored %s (%s)\n", args[0], b.Name)
				return nil
			})
		},
	}
	put.Flags().StringVarP(&file, "file", "f", "", "read the prompt from a file")

	cmd.AddCommand(get, put)
	return cmd
}

func withBackend(parent context.Context, fn func(context.Context, *reference.Backend) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()
	backend, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close(context.Background()) }()
	return fn(ctx, backend)
}

func promptArg(stdin io.Reader, args []string, file string) (string, error) {
	var raw string
	switch {
	case len(args) == 2 && file != "":
		return "", errors.New("pass the prompt as an argument or with --file, not both")
	case len(args) == 2:
		raw = args[1]
	case file == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		raw = string(b)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		raw = string(b)
	default:
		return "", errors.New("a base prompt is required")
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("a base prompt is required")
	}
	return raw, nil
}
