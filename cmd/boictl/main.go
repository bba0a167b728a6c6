package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/comda/boi-proxy/internal/boi"
	"github.com/comda/boi-proxy/internal/boi/events"
	"github.com/comda/boi-proxy/internal/boi/service"
	"github.com/comda/boi-proxy/pkg/config"
	"github.com/comda/boi-proxy/pkg/logger"
)

var Version = "dev"

// errFailed is returned when a backend call completed with a failed result
var errFailed = errors.New("request failed")

type options struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "boictl",
		Short:         "boictl - operator tool for the BOI proxy backends",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to boi-proxy.yaml (default: ./config or /etc/boi-proxy)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")

	rootCmd.AddCommand(employeeCmd(opts))
	rootCmd.AddCommand(pictureCmd(opts))
	rootCmd.AddCommand(smsCmd(opts))
	rootCmd.AddCommand(callbackCmd(opts))
	rootCmd.AddCommand(fieldsCmd(opts))

	return rootCmd
}

func (o *options) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile("boi-proxy", o.configPath)
	} else {
		cfg, err = config.Load("boi-proxy")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// service builds the BOI service. Outcome events are never published from the CLI.
func (o *options) service() (*service.BoiService, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithWriter("boictl", os.Stderr).WithLevel(o.logLevel)
	return boi.NewService(cfg.Boi, events.NopPublisher{}, log), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
