// Package lifecycle runs a set of long lived services and coordinates
// their shutdown on signal or failure.
package lifecycle

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	ShutdownTimeout = 10 * time.Second
)

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions holds the named services to run.
type ServerOptions struct {
	ServiceName string
	Services    []Service
}

// RunServer starts the provided services and blocks until a shutdown
// signal arrives, a service fails, or the context is canceled.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	// Create error channel for service errors
	errChan := make(chan error, 1)

	for _, svc := range opts.Services {
		go func(svc Service) {
			if err := svc.Start(ctx); err != nil {
				select {
				case errChan <- err:
				default:
					log.Printf("Service error: %v", err)
				}
			}
		}(svc)
	}

	return handleShutdown(ctx, cancel, opts.Services, errChan)
}

func handleShutdown(
	ctx context.Context, cancel context.CancelFunc, services []Service, errChan chan error) error {
	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(sigChan)

	var runErr error

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)
		runErr = fmt.Errorf("service error: %w", err)
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")
		runErr = ctx.Err()
	}

	// Create timeout context for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	// Cancel main context
	cancel()

	// Stop services in reverse start order
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(shutdownCtx); err != nil {
			log.Printf("Error during service shutdown: %v", err)

			if runErr == nil {
				runErr = fmt.Errorf("shutdown error: %w", err)
			}
		}
	}

	return runErr
}
