package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hrimport/config"
	"hrimport/storage"
	"hrimport/web"
)

var (
	servePort   int
	serveHost   string
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local import API",
	Long: `Start a local HTTP server exposing the import pipeline.

Endpoints:
- POST /api/import/preview  upload a roster, get headers, suggested bindings and previews
- POST /api/import          upload a roster with an optional "mapping" JSON and import it
- GET  /api/employees       stored employees
- GET  /api/employees/summary  per-department headcount
- GET  /api/catalog         employee fields

The server is meant for a single local user and binds to localhost by default.`,
	Example: `
  # Start local server on default port
  hrimport serve

  # Start with explicit db and port
  hrimport serve --port 9090 --db ./hrimport.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(serveDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		addr := serveAddress(serveHost, servePort)
		server := &http.Server{
			Addr:              addr,
			Handler:           web.NewServer(store, *cfg, commandLogger(cmd)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		fmt.Printf("Listening on http://%s\n", addr)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP port for the local web server")
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Interface to bind")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "./hrimport.db", "Path to local SQLite database")
}

func serveAddress(host string, port int) string {
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s:%d", host, port)
}
