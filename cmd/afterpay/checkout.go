package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Batareeed/afterpay-go/afterpay"
	"github.com/Batareeed/afterpay-go/checkout"
	"github.com/Batareeed/afterpay-go/configcache"
)

var checkoutEmail string

var checkoutCmd = &cobra.Command{
	Use:   "checkout [amount]",
	Short: "Create a checkout and print its redirect URL",
	Long: `Create a checkout for the given amount in the merchant's currency.
The amount is checked against the cached merchant limits first.

Examples:
  afterpay checkout 120.00 --email shopper@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckout,
}

func init() {
	checkoutCmd.Flags().StringVarP(&checkoutEmail, "email", "e", "", "customer email (required)")
	checkoutCmd.MarkFlagRequired("email")
}

func runCheckout(cmd *cobra.Command, args []string) error {
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

	client := cfg.Client()
	cache := configcache.New(store, client)

	configuration, err := cache.Configuration(ctx)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	amount, err := afterpay.NewMoney(args[0], configuration.Currency)
	if err != nil {
		return err
	}
	value, err := amount.Decimal()
	if err != nil {
		return err
	}
	if configuration.Minimum != nil && value.LessThan(*configuration.Minimum) {
		return fmt.Errorf("amount %s is below the merchant minimum %s %s",
			args[0], configuration.Minimum, configuration.Currency)
	}
	if value.GreaterThan(configuration.Maximum) {
		return fmt.Errorf("amount %s is above the merchant maximum %s %s",
			args[0], configuration.Maximum, configuration.Currency)
	}

	redirect, err := checkout.NewRepository(client).Checkout(ctx, checkoutEmail, amount)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	fmt.Println(redirect)
	return nil
}
