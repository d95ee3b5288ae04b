// Package main Chat Relay API Server
//
//	@title			Chat Relay API
//	@version		1.0
//	@description	Streams LLM chat completions, tracks usage statistics, pushes them to websocket observers and summarizes PDF documents
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"chat-relay/internal/config"
	"chat-relay/internal/server"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "relay-server",
		Short:         "LLM chat relay with live usage statistics",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runServe,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to YAML config file")
	rootCmd.Flags().String("addr", "", "listen address (overrides config)")
	rootCmd.Flags().Bool("require-auth", false, "require a bearer token on chat, document and stats endpoints")

	rootCmd.AddCommand(newCheckConfigCmd())
	return rootCmd
}

func newCheckConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration and print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			redacted := *cfg
			if redacted.LLM.APIKey != "" {
				redacted.LLM.APIKey = "********"
			}
			if redacted.Auth.SecretKey != "" {
				redacted.Auth.SecretKey = "********"
			}
			if redacted.Redis.Password != "" {
				redacted.Redis.Password = "********"
			}

			out, err := yaml.Marshal(redacted)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("addr"); f != nil && f.Changed {
		cfg.Server.Addr = f.Value.String()
	}
	if f := cmd.Flags().Lookup("require-auth"); f != nil && f.Changed {
		cfg.Auth.RequireAuth, _ = cmd.Flags().GetBool("require-auth")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Starting chat relay...")
	srv, err := server.NewServer(ctx, *cfg)
	if err != nil {
		return err
	}
	if err := srv.Start(context.WithoutCancel(ctx)); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("Chat relay stopped.")
	return nil
}
