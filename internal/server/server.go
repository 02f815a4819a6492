// SPDX-License-Identifier: MIT OR Apache-2.0

package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/go-logr/logr"
)

// Run starts listening on addr and serves handler until ctx is
// cancelled, logging the peer address of every accepted connection at
// Debug verbosity.
func Run(ctx context.Context, addr string, handler http.Handler, log logr.Logger) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		ConnState: func(conn net.Conn, state http.ConnState) {
			if state == http.StateNew {
				log.V(1).Info("accepted connection", "remote_addr", conn.RemoteAddr().String())
			}
		},
	}

	log.Info("listening", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	}
}
