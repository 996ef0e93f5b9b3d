package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jorkle/chatscreen/internal/version"
)

var versionLong bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		if !versionLong {
			fmt.Fprintln(cmd.OutOrStdout(), info.Version)
			return
		}
		out, _ := json.MarshalIndent(info, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionLong, "long", false, "Print detailed version information as JSON")
	rootCmd.AddCommand(versionCmd)
}
