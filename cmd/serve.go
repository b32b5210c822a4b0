package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SvenDH/inkwell/choice/wschoice"
	"github.com/SvenDH/inkwell/observe"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve player choices over websockets",
	Long: `Start the websocket choice server. Players connect to /ws with a token
from "inkwell token"; /metrics exposes the engine metrics to Prometheus.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Serve.JWTSecret == "" {
			return errors.New("serve.jwt_secret is required to serve")
		}
		var metrics http.Handler
		if cfg.Serve.Metrics {
			mp, h, err := observe.NewPrometheus(true)
			if err != nil {
				return err
			}
			defer mp.Shutdown(context.Background())
			metrics = h
		}

		tokens := wschoice.NewTokens(cfg.Serve.JWTSecret, cfg.Serve.TokenTTL)
		srv := &http.Server{
			Addr:              cfg.Serve.Addr,
			Handler:           wschoice.NewServer(tokens, logger).Routes(metrics),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("http server started", "addr", srv.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.Info("http server stopping")
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token <player>",
	Short: "Issue a websocket token for a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Serve.JWTSecret == "" {
			return errors.New("serve.jwt_secret is required to issue tokens")
		}
		token, err := wschoice.NewTokens(cfg.Serve.JWTSecret, cfg.Serve.TokenTTL).Issue(args[0])
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write([]byte(token + "\n"))
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	serveCmd.Flags().String("addr", "", "listen address")
	bind(serveCmd, "serve.addr", "addr")
}
