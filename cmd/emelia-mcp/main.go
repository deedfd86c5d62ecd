package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emelia-io/emelia-mcp/internal/config"
	"github.com/emelia-io/emelia-mcp/internal/emelia"
	"github.com/emelia-io/emelia-mcp/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	sess := emelia.NewSession()
	if cfg.APIKey != "" {
		sess.SetKey(cfg.APIKey)
	}
	client := emelia.NewClient(cfg.BaseURL, cfg.Timeout(), sess, log)

	log.Info("starting emelia-mcp",
		zap.String("version", server.Version),
		zap.String("base_url", client.BaseURL()),
		zap.Bool("preauthenticated", sess.Authenticated()))

	srv := server.New(client, log)
	if err := server.Run(srv); err != nil {
		log.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

// newLogger builds a zap logger writing to stderr only; stdout carries
// the MCP wire protocol and must stay clean.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
