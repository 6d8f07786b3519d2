package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pesteves2002/DNS-Client/internal/dns/common/log"
	"github.com/Pesteves2002/DNS-Client/internal/dns/config"
)

// BenchmarkBuildApplication measures the time to construct the full client
func BenchmarkBuildApplication(b *testing.B) {
	// Setup noop logger to silence output
	originalLogger := log.GetLogger()
	log.SetLogger(log.NewNoopLogger())
	defer log.SetLogger(originalLogger)

	cfg, err := config.Load()
	require.NoError(b, err)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		app, err := buildApplication(cfg)
		require.NoError(b, err)
		_ = app // Use the app to prevent optimization
	}
}

// BenchmarkParseArgs measures argument parsing and question construction
func BenchmarkParseArgs(b *testing.B) {
	args := []string{"www.example.com", "AAAA", "IN"}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = parseArgs(args)
	}
}
