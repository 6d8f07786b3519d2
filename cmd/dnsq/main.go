package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Pesteves2002/DNS-Client/internal/dns/common/clock"
	"github.com/Pesteves2002/DNS-Client/internal/dns/common/log"
	"github.com/Pesteves2002/DNS-Client/internal/dns/config"
	"github.com/Pesteves2002/DNS-Client/internal/dns/domain"
	"github.com/Pesteves2002/DNS-Client/internal/dns/gateways/transport"
	"github.com/Pesteves2002/DNS-Client/internal/dns/gateways/wire"
	"github.com/Pesteves2002/DNS-Client/internal/dns/repos/dnscache"
	"github.com/Pesteves2002/DNS-Client/internal/dns/services/resolver"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "dnsq"
)

// Application holds all the components of the DNS client
type Application struct {
	config   *config.AppConfig
	resolver *resolver.Resolver
}

func main() {
	args := os.Args[1:]
	if len(args) == 1 {
		switch args[0] {
		case "-h", "--help":
			usage()
			return
		case "--version":
			fmt.Printf("%s %s\n", appName, version)
			return
		}
	}

	question, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		usage()
		os.Exit(2)
	}

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Configure global logging
	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Debug(map[string]any{
		"version":  version,
		"env":      cfg.Env,
		"servers":  cfg.Servers,
		"timeout":  cfg.Timeout,
		"attempts": cfg.Attempts,
		"backoff":  cfg.Backoff,
		"udp_size": cfg.UDPSize,
	}, "Starting dnsq")

	// Build application with all dependencies
	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	// Cancel the in-flight query on Ctrl-C instead of dying mid-exchange
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Debug(map[string]any{"signal": sig.String()}, "Interrupt received")
		cancel()
	}()

	msg, err := app.resolver.Resolve(ctx, question)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}

	fmt.Print(msg.String())
}

// usage prints the invocation synopsis to stderr.
func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <domain> [TYPE] [CLASS]\n", appName)
	fmt.Fprintln(os.Stderr, "  TYPE defaults to A, CLASS defaults to IN.")
	fmt.Fprintln(os.Stderr, "  Upstream servers and retry behavior come from DNS_* environment variables.")
}

// parseArgs turns the positional arguments into the question to resolve.
func parseArgs(args []string) (domain.Question, error) {
	if len(args) < 1 || len(args) > 3 {
		return domain.Question{}, fmt.Errorf("expected <domain> [TYPE] [CLASS], got %d arguments", len(args))
	}

	rrtype := domain.RRTypeA
	if len(args) >= 2 {
		rrtype = domain.RRTypeFromString(strings.ToUpper(args[1]))
		if !rrtype.IsValid() {
			return domain.Question{}, fmt.Errorf("unsupported record type %q", args[1])
		}
	}

	class := domain.RRClassIN
	if len(args) == 3 {
		class = domain.ParseRRClass(strings.ToUpper(args[2]))
		if !class.IsValid() {
			return domain.Question{}, fmt.Errorf("unsupported record class %q", args[2])
		}
	}

	return domain.NewQuestion(args[0], rrtype, class)
}

// buildApplication constructs all components and wires them together
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	// Create shared clock for consistent time across all components
	clk := &clock.RealClock{}

	// Initialize logger (already configured globally)
	logger := log.GetLogger()

	// Create DNS wire codec
	codec := wire.NewMessageCodec(logger)

	// Create response cache
	cache, err := buildCache(cfg, clk)
	if err != nil {
		return nil, err
	}

	// Create the two transport legs
	udp := transport.NewUDPExchanger(transport.UDPOptions{
		BufferSize: cfg.UDPSize,
		Logger:     logger,
	})
	tcp := transport.NewTCPExchanger(transport.TCPOptions{
		Logger: logger,
	})

	// Build service layer
	resolverService := resolver.New(resolver.Options{
		Servers:      cfg.Servers,
		Timeout:      cfg.Timeout,
		Attempts:     cfg.Attempts,
		Backoff:      cfg.Backoff,
		BackoffDelay: cfg.BackoffDelay,
		UDPSize:      cfg.UDPSize,
		Codec:        codec,
		UDP:          udp,
		TCP:          tcp,
		Cache:        cache,
		Clock:        clk,
		Logger:       logger,
	})

	return &Application{
		config:   cfg,
		resolver: resolverService,
	}, nil
}

// buildCache creates the response cache, or nothing when caching is disabled.
func buildCache(cfg *config.AppConfig, clk clock.Clock) (resolver.Cache, error) {
	if cfg.DisableCache {
		log.Debug(map[string]any{"disabled": true}, "DNS response caching disabled")
		return nil, nil
	}

	// Safely convert uint to int with bounds check
	cacheSize := cfg.CacheSize
	if cacheSize > uint(^uint(0)>>1) { // Check if it exceeds max int
		return nil, fmt.Errorf("cache size too large: %d (max %d)", cacheSize, ^uint(0)>>1)
	}

	cache, err := dnscache.New(int(cacheSize), clk)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	log.Debug(map[string]any{
		"type": "LRU",
		"size": cfg.CacheSize,
	}, "DNS response cache configured")

	return cache, nil
}
