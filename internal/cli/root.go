// Package cli implements the adaudit command line interface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adaudit/adaudit/pkg/client"
)

var (
	cfgFile    string
	serverURL  string
	outputFmt  string
	actingUser int64
	windowDays int
)

// NewRootCmd creates the root command
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "adaudit",
		Short: "Ad campaign anomaly analysis",
		Long: `adaudit inspects detected ad performance anomalies: campaign
segments, health comparisons, timing patterns, metric categories and
correlation findings.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.adaudit.yaml)")
	root.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "AdAudit server URL")
	root.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "output format (table, json, yaml)")
	root.PersistentFlags().Int64VarP(&actingUser, "user", "u", 0, "acting user ID")
	root.PersistentFlags().IntVar(&windowDays, "days", 30, "trailing window in days")

	viper.BindPFlag("server", root.PersistentFlags().Lookup("server"))
	viper.BindPFlag("output", root.PersistentFlags().Lookup("output"))
	viper.BindPFlag("user", root.PersistentFlags().Lookup("user"))

	cobra.OnInitialize(initConfig)

	root.AddCommand(newStatusCmd())
	root.AddCommand(newAnomalyCmd())
	root.AddCommand(newAnalyzeCmd())

	return root
}

// Execute runs the CLI
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".adaudit")
		}
	}

	viper.SetEnvPrefix("ADAUDIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if v := viper.GetString("server"); v != "" {
			serverURL = v
		}
		if v := viper.GetString("output"); v != "" {
			outputFmt = v
		}
		if v := viper.GetInt64("user"); v != 0 && actingUser == 0 {
			actingUser = v
		}
	}
}

func apiClient() *client.Client {
	return client.New(serverURL, actingUser)
}

func window() (time.Time, time.Time) {
	to := time.Now().UTC()
	return to.AddDate(0, 0, -windowDays), to
}
