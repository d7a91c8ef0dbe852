package cmd

import "github.com/spf13/cobra"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mailmsg",
	Short: "Tools for reading email messages",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")
}

func Execute() error {
	return rootCmd.Execute()
}
