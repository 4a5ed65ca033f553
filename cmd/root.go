// Copyright © 2025 The tinysexpr authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tinysexpr",
	Short: "tinysexpr is a streaming s-expression reader",
	Long: `tinysexpr reads s-expression source text into atom and list trees.

Getting started:
  tinysexpr read file.sexpr       Read a source file and print each expression
  tinysexpr read -e '(a b c)'     Read expressions from the command line
  tinysexpr read                  Read expressions from stdin
  tinysexpr repl                  Start an interactive reader loop

Syntax overview:
  Lists are parenthesized: (a b (c d)).  Atoms are bare words or delimited
  text: "escaped\ntext" supports backslash escapes, |verbatim text| does
  not.  Comments run from ; to the end of the line.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tinysexpr.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".tinysexpr" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".tinysexpr")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
