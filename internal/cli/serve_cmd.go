package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Adhavansuren/EPiC-Grasshopper/epicdb"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the database and the estimator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := app.Config.Listen
			if listen != "" {
				addr = listen
			}

			api := server.New(app.DB, server.WithDefaultDesignLife(app.Config.DesignLife))
			httpServer := &http.Server{
				Addr:    addr,
				Handler: api.Handler(),
			}

			shutdownDone := make(chan struct{})
			go func() {
				signalChan := make(chan os.Signal, 1)
				signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
				<-signalChan

				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					slog.Error("shutdown failed", "err", err)
				}
				close(shutdownDone)
			}()

			slog.Info("starting epic api server", "listen", addr, "database", epicdb.Version)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			<-shutdownDone
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "addr to listen to, overrides the configuration")

	return cmd
}
