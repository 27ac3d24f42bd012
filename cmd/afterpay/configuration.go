package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Batareeed/afterpay-go/afterpay"
	"github.com/Batareeed/afterpay-go/configcache"
)

var (
	configurationRefresh bool
	configurationJSON    bool
)

var configurationCmd = &cobra.Command{
	Use:   "configuration",
	Short: "Show the merchant payment configuration",
	Long: `Show the merchant's order limits, served from the persistent cache
and refetched from the API once the freshness window lapses.

Examples:
  afterpay configuration
  afterpay configuration --refresh
  afterpay configuration --json`,
	RunE: runConfiguration,
}

func init() {
	configurationCmd.Flags().BoolVar(&configurationRefresh, "refresh", false, "refetch even if the cached copy is still fresh")
	configurationCmd.Flags().BoolVar(&configurationJSON, "json", false, "output as JSON")
}

func runConfiguration(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	store, closeStore, err := cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	ttl, err := cfg.CacheTTL()
	if err != nil {
		return err
	}
	var opts []configcache.Option
	if ttl > 0 {
		opts = append(opts, configcache.WithTTL(ttl))
	}
	cache := configcache.New(store, cfg.Client(), opts...)

	var configuration afterpay.Configuration
	if configurationRefresh {
		configuration, err = cache.Refresh(ctx)
	} else {
		configuration, err = cache.Configuration(ctx)
	}
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	if configurationJSON {
		return outputConfigurationJSON(configuration)
	}
	return outputConfigurationHuman(configuration)
}

func outputConfigurationJSON(configuration afterpay.Configuration) error {
	output := struct {
		Currency string `json:"currency"`
		Minimum  string `json:"minimum,omitempty"`
		Maximum  string `json:"maximum"`
	}{
		Currency: configuration.Currency,
		Maximum:  configuration.Maximum.String(),
	}
	if configuration.Minimum != nil {
		output.Minimum = configuration.Minimum.String()
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

func outputConfigurationHuman(configuration afterpay.Configuration) error {
	fmt.Printf("Currency: %s\n", configuration.Currency)
	if configuration.Minimum != nil {
		fmt.Printf("Minimum:  %s %s\n", configuration.Minimum, configuration.Currency)
	} else {
		fmt.Println("Minimum:  none")
	}
	fmt.Printf("Maximum:  %s %s\n", configuration.Maximum, configuration.Currency)
	return nil
}
