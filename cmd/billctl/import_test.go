package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/bill-center/backend/config"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestConnectRedis(t *testing.T) {
	server := miniredis.RunT(t)

	tests := []struct {
		name       string
		cfg        config.RedisConfig
		wantClient bool
		wantWarn   bool
	}{
		{name: "cache disabled", cfg: config.RedisConfig{URL: "redis://" + server.Addr() + "/0"}},
		{name: "reachable", cfg: config.RedisConfig{URL: "redis://" + server.Addr() + "/0", CacheEnabled: true}, wantClient: true},
		{name: "unreachable", cfg: config.RedisConfig{URL: "redis://127.0.0.1:1/0", CacheEnabled: true}, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)

			client := connectRedis(&tt.cfg)
			if client != nil {
				defer client.Close()
			}
			if (client != nil) != tt.wantClient {
				t.Errorf("client = %v, want client %v", client, tt.wantClient)
			}
			warned := strings.Contains(logs.String(), "running without reply cache")
			if warned != tt.wantWarn {
				t.Errorf("warning logged = %v, want %v (logs: %s)", warned, tt.wantWarn, logs.String())
			}
		})
	}
}
