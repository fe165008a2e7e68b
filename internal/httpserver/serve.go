package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ldisk/gatehouse/internal/logutil"
)

// Serve runs handler on bind until ctx is cancelled, then drains in-flight
// requests before returning. Timeouts are sized for static content plus the
// occasional slow password hash, not for long-lived streams.
func Serve(ctx context.Context, bind string, handler http.Handler) error {
	server := http.Server{
		Handler:           handler,
		Addr:              bind,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: time.Second * 30,
		IdleTimeout:       time.Minute * 2,
	}
	log := logutil.GetOrDefault(ctx).With().Str("server.addr", server.Addr).Logger()
	firstErr := make(chan error, 1)
	serverCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		log.Info().Msg("Starting HTTP server")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			// shutdown was asked for, not an error
			log.Info().Msg("Server closed")
			return
		}
		firstErr <- err
	}()
	select {
	case <-serverCtx.Done():
	case <-ctx.Done():
		log.Info().Msg("Initiating shutdown process")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), time.Minute)
		defer cancelShutdown()
		server.Shutdown(shutdownCtx)
		log.Info().Msg("Shutdown completed")
	}
	select {
	case err := <-firstErr:
		return err
	default:
		return nil
	}
}
