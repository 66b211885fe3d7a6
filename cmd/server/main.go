package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/redis/go-redis/v9"

	"github.com/jrsteele09/go-onboarding-server/internal/config"
	"github.com/jrsteele09/go-onboarding-server/lookup"
	"github.com/jrsteele09/go-onboarding-server/lookup/lookupfakes"
	"github.com/jrsteele09/go-onboarding-server/lookup/registryhttp"
	"github.com/jrsteele09/go-onboarding-server/server"
	"github.com/jrsteele09/go-onboarding-server/session"
	"github.com/jrsteele09/go-onboarding-server/session/redisrepo"
	"github.com/jrsteele09/go-onboarding-server/session/repofakes"
	"github.com/jrsteele09/go-onboarding-server/session/sqliterepo"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	repo, cleanup, err := sessionRepo(c)
	if err != nil {
		return fmt.Errorf("session repo: %w", err)
	}
	defer cleanup()

	srv, err := server.New(c, repo, adapters(c))
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// sessionRepo selects the durable backend from config.
func sessionRepo(c config.Config) (session.Repo, func(), error) {
	switch c.GetStoreBackend() {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
		})
		return redisrepo.New(client), func() { _ = client.Close() }, nil
	case "memory":
		return repofakes.NewFakeSessionRepo(), func() {}, nil
	default:
		repo, err := sqliterepo.New(c.GetDataFolder())
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	}
}

// adapters wires the production registry client when a base URL is
// configured, and falls back to the simulated stand-ins otherwise. The
// document and logo providers ship as stand-ins until their upstream
// services are available.
func adapters(c config.Config) server.Adapters {
	fakeOpts := []lookupfakes.Option{
		lookupfakes.WithLatency(300 * time.Millisecond),
		lookupfakes.WithFailureRate(c.GetSimulatedFailureRate(), time.Now().UnixNano()),
	}

	var registry lookup.Registry = lookupfakes.NewFakeRegistry(fakeOpts...)
	if baseURL := c.GetRegistryBaseURL(); baseURL != "" {
		client, err := registryhttp.New(baseURL)
		if err == nil {
			registry = client
		} else {
			log.Printf("Falling back to simulated registry: %v\n", err)
		}
	}

	return server.Adapters{
		Registry:  registry,
		Documents: lookupfakes.NewFakeDocumentProvider(fakeOpts...),
		Logos:     lookupfakes.NewFakeLogoProvider(fakeOpts...),
	}
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
