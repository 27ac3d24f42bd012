// Command afterpay is a demo client for the Afterpay SDK. It reads the
// merchant configuration through the persistent cache and creates checkouts
// against the sandbox or production API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "afterpay",
		Short:   "Afterpay - demo client for the Afterpay payments SDK",
		Version: Version,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.afterpay.yaml)")

	rootCmd.AddCommand(configurationCmd)
	rootCmd.AddCommand(checkoutCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
