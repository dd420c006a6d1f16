package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/cbench/cmd/bench"
	"github.com/ValentinKolb/cbench/cmd/selftest"
	"github.com/ValentinKolb/cbench/cmd/send"
	"github.com/ValentinKolb/cbench/cmd/serve"
	"github.com/ValentinKolb/cbench/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "cbench",
		Short: "codec benchmark and batch rpc",
		Long: fmt.Sprintf(`cbench (v%s)

Compares JSON, XML and Protocol Buffers on the same set of employee
records (encode and decode latency, size, round-trip fidelity) and
sends a batch of records to a server in one request.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of cbench",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cbench v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(bench.BenchCmd)
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(send.SendCmd)
	RootCmd.AddCommand(selftest.SelftestCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
	key = "schema"
	RootCmd.PersistentFlags().String(key, "", util.WrapString("Path to the schema, a FileDescriptorSet in text (.txtpb) or binary (.pb) form. The built-in employee schema is used if empty"))
	key = "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix, http)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
