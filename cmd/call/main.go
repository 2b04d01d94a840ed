// Command call invokes one marketdata tool and prints its JSON result,
// without starting an MCP transport.
//
//	go run ./cmd/call -tool get_current_quote -args '{"symbol":"AAPL"}'
//	go run ./cmd/call -tool compare_stocks -args '{"symbols":["AAPL","MSFT"]}'
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"market_mcp/internal/app/di"
	"market_mcp/internal/feature/marketdata/transport/tool"
	"market_mcp/internal/platform/config"
	"market_mcp/internal/platform/logger"
)

func main() {
	name := flag.String("tool", "", "tool name, e.g. get_current_quote")
	rawArgs := flag.String("args", "{}", "tool arguments as a JSON object")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	lg := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	if *name == "" {
		flag.Usage()
		os.Exit(2)
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(*rawArgs), &args); err != nil {
		lg.Fatal().Err(err).Msg("-args must be a JSON object")
	}

	market, err := di.NewMarket(cfg, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to create upstream provider")
	}
	registry := di.NewToolRegistry(cfg, market, lg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := registry.Call(ctx, *name, args)
	if err != nil {
		lg.Fatal().Err(err).Str("tool", *name).Msg("call failed")
	}
	if res.IsError {
		fmt.Fprintln(os.Stderr, tool.TextOf(res))
		os.Exit(1)
	}
	fmt.Println(tool.TextOf(res))
}
