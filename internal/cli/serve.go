package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	gerrors "github.com/gedvault/gedvault/pkg/errors"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string // listen address
}

// newServeCmd creates the serve command: a small HTTP preview server over
// a generated vault directory, handy for checking notes and the canvas
// JSON without opening Obsidian.
func newServeCmd() *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve <vault-dir>",
		Short: "Preview a generated vault over HTTP",
		Long: `Serve a generated vault directory over HTTP for quick inspection.

Examples:
  gedvault serve vault/
  gedvault serve vault/ --addr :9000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			dir := args[0]
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return gerrors.New(gerrors.ErrCodeFileNotFound, "vault directory %s not found", dir)
			}

			router := chi.NewRouter()
			router.Use(chimiddleware.RequestID)
			router.Use(chimiddleware.RealIP)
			router.Use(chimiddleware.Recoverer)

			router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok", "vault": dir})
			})
			router.Handle("/*", http.FileServer(http.Dir(dir)))

			srv := &http.Server{
				Addr:              opts.addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving vault", "dir", dir, "addr", opts.addr)
				printInfo("Serving %s on http://localhost%s", dir, opts.addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				logger.Info("shutting down")
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", ":8080", "listen address")
	return cmd
}
