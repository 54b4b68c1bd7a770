package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	internalshm "github.com/srediag/shmopen/internal/shm"
	"github.com/srediag/shmopen/pkg/health"
)

const shutdownTimeout = 5 * time.Second

func newHealthMux(gs *globalState) *http.ServeMux {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	h := health.NewHandler(health.Config{
		Prefix:           gs.cfg.NamePrefix,
		Dir:              internalshm.Dir(),
		MinFreeBytes:     gs.cfg.MinFreeBytes,
		Registry:         reg,
		MetricsNamespace: "shmopen",
	})
	mux := http.NewServeMux()
	mux.HandleFunc("/live", h.LiveEndpoint)
	mux.HandleFunc("/ready", h.ReadyEndpoint)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}

func getCmdServeHealth(gs *globalState) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-health",
		Short: "Serve /live, /ready and /metrics for the shared memory namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			srv := &http.Server{Handler: newHealthMux(gs), ReadHeaderTimeout: 5 * time.Second}

			ctx := cmd.Context()
			done := make(chan struct{})
			go func() {
				defer close(done)
				<-ctx.Done()
				sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(sctx); err != nil {
					gs.logger.WithError(err).Warn("health server shutdown")
				}
			}()

			gs.logger.WithField("addr", ln.Addr().String()).Info("serving health")
			fmt.Fprintf(gs.stdout, "listening on %s\n", ln.Addr())
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			<-done
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", gs.cfg.HealthAddr, "listen address")
	return cmd
}
