package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scbrown/cnf/internal/engine"
	"github.com/scbrown/cnf/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daemon that holds the pending suggestion",
	Long: `Start the cnf daemon. It opens the package index read-only and serves
the feedback and prediction endpoints the shell hooks call, so that a
suggestion computed when a command fails is still there when the next line is
typed.

If the index cannot be opened the daemon still starts, but answers every query
with "no suggestion" so the shell integration degrades quietly.`,
	Example: `  cnf serve
  cnf serve --addr 127.0.0.1:9000 --index /path/to/index.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Listen()
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := engine.Open(ctx, engine.Options{
			IndexPath:     cfg.Index(),
			InstallPrefix: cfg.Prefix(),
			Logger:        logger,
		})
		if err != nil {
			if !errors.Is(err, engine.ErrIndexUnavailable) {
				return err
			}
			logger.Warn("serving without install suggestions", zap.Error(err))
			e = nil
		} else {
			defer e.Close()
		}

		srv := server.FromEngine(e, logger.Named("server"))

		// Listen first so we can report the actual address.
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "cnf serve listening on %s\n", ln.Addr())

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on (default localhost:7274)")
	rootCmd.AddCommand(serveCmd)
}
