package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-mailmsg/cmd/mailmsg/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
