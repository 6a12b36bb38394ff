package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rsaniceto14/investctl/internal/certs"
	"github.com/rsaniceto14/investctl/internal/config"
	"github.com/rsaniceto14/investctl/internal/devserver"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development API server",
		Long: `Start serving the investment-control API on the configured address.

The server answers the same endpoints the production service does and
keeps its records in the local sqlite database.`,
		RunE: runServe,
	}

	// Flags
	cmd.Flags().StringP("addr", "a", "localhost:8600", "Address to listen on")
	cmd.Flags().Duration("latency", 0, "Simulated latency added to every request")
	cmd.Flags().Bool("tls", false, "Serve HTTPS with a self-signed localhost certificate")

	// Bind to viper
	_ = viper.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("serve.latency", cmd.Flags().Lookup("latency"))
	_ = viper.BindPFlag("serve.tls", cmd.Flags().Lookup("tls"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var opts []devserver.Option
	if latency := viper.GetDuration("serve.latency"); latency > 0 {
		slog.Info("Simulating latency on every request", "latency", latency)
		opts = append(opts, devserver.WithSimulatedLatency(latency))
	}

	server := &http.Server{
		Addr:              viper.GetString("serve.addr"),
		Handler:           devserver.New(store, opts...).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheme := "http"
	if viper.GetBool("serve.tls") {
		tlsConfig, err := serverTLSConfig()
		if err != nil {
			return err
		}
		server.TLSConfig = tlsConfig
		scheme = "https"
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("investd listening", "url", fmt.Sprintf("%s://%s", scheme, server.Addr))

		var err error
		if server.TLSConfig != nil {
			err = server.ListenAndServeTLS("", "")
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}

// serverTLSConfig loads or generates the self-signed localhost certificate.
func serverTLSConfig() (*tls.Config, error) {
	configDir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}

	cert, err := certs.NewProvider(filepath.Join(configDir, "certs")).GetOrCreateCertificate()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare TLS certificate: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
