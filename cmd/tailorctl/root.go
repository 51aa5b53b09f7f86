package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/alanyang/tailor-flow/internal/config"
	"github.com/alanyang/tailor-flow/internal/domain/distribution"
	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
)

var exampleUsage = strings.TrimSpace(`
  tailorctl distribute --orders orders.json
  tailorctl distribute --orders orders.json --roster Maris,Ferry,Opik --json
  tailorctl roster --config $HOME/.tailor-flow/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// newRootCmd builds the command tree. getenv is injected so tests can control the
// config lookup.
func newRootCmd(getenv func(string) string) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "tailorctl",
		Short:        "Split workshop orders fairly across tailors",
		Example:      exampleUsage,
		Version:      getVersion(),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $HOME/.tailor-flow/config.toml)")

	loadConfig := func() (config.Config, error) {
		return config.LoadWith(func(key string) string {
			if key == "TAILOR_CONFIG" && cfgPath != "" {
				return cfgPath
			}
			return getenv(key)
		})
	}

	root.AddCommand(newDistributeCmd(loadConfig), newRosterCmd(loadConfig))
	return root
}

func newDistributeCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	var (
		ordersPath string
		roster     []string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Compute a distribution from a JSON orders file",
		Long: strings.TrimSpace(`
Reads a JSON array of orders, each {"order_code", "model", "sizes": [{"size", "count"}]},
and prints the per-tailor sheet. Without --roster the configured roster is used.
Use "-" to read orders from stdin.`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := readOrders(cmd.InOrStdin(), ordersPath)
			if err != nil {
				return err
			}

			if !flagChanged(cmd.Flags(), "roster") {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				roster = cfg.Roster
			}

			report, err := distribution.Allocate(orders, roster)
			if err != nil {
				return fmt.Errorf("distribute: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			_, err = fmt.Fprintln(out, distsvc.FormatMessage(orders, report))
			return err
		},
	}

	cmd.Flags().StringVarP(&ordersPath, "orders", "o", "", "orders JSON file, or - for stdin")
	cmd.Flags().StringSliceVarP(&roster, "roster", "r", nil, "tailor names in priority order")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the allocation report as JSON")
	_ = cmd.MarkFlagRequired("orders")
	return cmd
}

func newRosterCmd(loadConfig func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Print the configured roster in priority order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for i, name := range cfg.Roster {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, name)
			}
			return nil
		},
	}
}

func readOrders(stdin io.Reader, path string) ([]distribution.Order, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}

	var orders []distribution.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("parse orders: %w", err)
	}
	return orders, nil
}

func flagChanged(fs *pflag.FlagSet, name string) bool {
	changed := false
	fs.Visit(func(f *pflag.Flag) {
		if f.Name == name {
			changed = true
		}
	})
	return changed
}
