package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/samestrin/mcp-engine/pkg/mcp"
)

const (
	serverName    = "mcp-server-demo"
	serverVersion = "0.1.0"
)

var (
	configPath string
	verbose    bool
	batchLimit int
)

func main() {
	rootCmd := &cobra.Command{
		Use:     serverName,
		Short:   "Demo MCP engine server exposing a handful of sample tools over stdio",
		Version: serverVersion,
		Long: `mcp-server-demo hosts a small fixed set of tools — arithmetic evaluation,
JSON querying, text diffing, gitignore matching, and config format conversion —
behind the engine's stdio JSON-RPC transport. It is meant as a worked example
of wiring tools onto the engine, not a production tool server.`,
		RunE: runServer,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML config file (see config.go)")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug-level logging to stderr")
	rootCmd.Flags().IntVar(&batchLimit, "batch-limit", mcp.DefaultBatchLimit, "Maximum concurrent requests handled per JSON-RPC batch")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "%s: waiting for JSON-RPC requests on stdin (attach an MCP client rather than a terminal)\n", serverName)
	}

	registry := buildRegistry(cfg)
	server := mcp.NewServer(serverName, serverVersion, registry, logger)
	server.SetInstructions(cfg.Instructions)
	server.SetBatchLimit(batchLimit)

	fmt.Fprintf(os.Stderr, "%s v%s starting with %d tools\n", serverName, serverVersion, len(registry.List()))

	transport := mcp.NewStdioTransport(os.Stdin, os.Stdout)
	if err := server.Run(transport); err != nil {
		logger.Error("server exited", zap.Error(err))
		return err
	}
	return nil
}
