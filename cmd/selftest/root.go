package selftest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ValentinKolb/cbench/cmd/send"
	"github.com/ValentinKolb/cbench/cmd/util"
	"github.com/ValentinKolb/cbench/lib/report"
	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/ValentinKolb/cbench/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	SelftestCmd = &cobra.Command{
		Use:     "selftest",
		Short:   "Start a server in-process, send one batch and shut it down",
		Long:    `Start a server on an ephemeral address with the selected transport, send the batch once, print the reply with the round-trip time and shut the server down again.`,
		PreRunE: util.BindCommandFlags,
		RunE:    run,
	}
)

func init() {
	key := "report-format"
	SelftestCmd.Flags().String(key, report.FormatTable, util.WrapString("Output format (table, json, yaml)"))

	util.SetupDataFlags(SelftestCmd)
}

func run(cmd *cobra.Command, _ []string) error {
	s, err := util.GetSchema()
	if err != nil {
		return err
	}

	batch, err := util.GetBatch()
	if err != nil {
		return err
	}

	transportName := viper.GetString("transport")
	t, err := util.NewServerTransport(transportName)
	if err != nil {
		return err
	}

	// ephemeral endpoint
	endpoint := "127.0.0.1:0"
	if transportName == "unix" {
		dir, err := os.MkdirTemp("", "cbench-selftest")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)
		endpoint = filepath.Join(dir, "cbench.sock")
	}

	serv := server.NewRPCServer(common.ServerConfig{
		Endpoint: endpoint,
		LogLevel: viper.GetString("log-level"),
		Socket:   common.DefaultSocketConf(),
	}, t, s)
	if err := serv.Bind(); err != nil {
		return err
	}

	served := make(chan error, 1)
	go func() { served <- serv.Serve() }()

	calls := send.SendAll(cmd.Context(), common.ClientConfig{
		Endpoint: serv.Addr().String(),
		Socket:   common.DefaultSocketConf(),
	}, transportName, s, batch, 1)

	if err := serv.Close(); err != nil {
		util.Logger.Errorf("Failed to close server: %v", err)
	}
	if err := <-served; err != nil {
		return err
	}

	if err := report.WriteCalls(os.Stdout, viper.GetString("report-format"), calls); err != nil {
		return err
	}
	if calls[0].Error != "" {
		return fmt.Errorf("selftest failed: %s", calls[0].Error)
	}
	if calls[0].Received != len(batch) {
		return fmt.Errorf("selftest failed: sent %d records, server received %d", len(batch), calls[0].Received)
	}
	return nil
}
