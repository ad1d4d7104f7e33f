// crossweb serves the routes, filters and static files a configuration document declares.
//
// Usage:
//
//	crossweb [--config crossweb.json] [--address host] [--port 3000] [--env-file .env]
//
// Environment variables are read from the env file first, when it exists,
// without replacing any already set. PORT overrides both the document and --port.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/xy-planning-network/crossweb/config"
	"github.com/xy-planning-network/crossweb/ranger"
)

const defaultConfigPath = "crossweb.json"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		address string
		cfgPath string
		envFile string
		port    int
	)

	flagSet := pflag.NewFlagSet("crossweb", pflag.ContinueOnError)
	flagSet.StringVarP(&cfgPath, "config", "c", defaultConfigPath, "path to the configuration document")
	flagSet.StringVarP(&address, "address", "a", "", "address to listen on (default: the document's, or every interface)")
	flagSet.IntVarP(&port, "port", "p", 0, "port to listen on (default: the document's, or 3000)")
	flagSet.StringVar(&envFile, "env-file", ".env", "file to load environment variables from")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not load %s: %w", envFile, err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if flagSet.Changed("address") {
		cfg.Address = address
	}

	if flagSet.Changed("port") {
		cfg.Port = port
	}

	rng, err := ranger.New(ranger.WithConfig(cfg))
	if err != nil {
		return err
	}

	return rng.Guide()
}
