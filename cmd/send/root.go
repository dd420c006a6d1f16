package send

import (
	"context"
	"fmt"
	"os"

	"github.com/ValentinKolb/cbench/cmd/util"
	"github.com/ValentinKolb/cbench/lib/record"
	"github.com/ValentinKolb/cbench/lib/report"
	"github.com/ValentinKolb/cbench/lib/schema"
	"github.com/ValentinKolb/cbench/rpc/client"
	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	SendCmd = &cobra.Command{
		Use:     "send",
		Short:   "Send a batch of employees to a server",
		Long:    `Send the batch as exactly one SendEmployees request per client and print the reply together with the round-trip time. Failed calls are reported, never retried.`,
		PreRunE: util.BindCommandFlags,
		RunE:    run,
	}
)

func init() {
	key := "endpoint"
	SendCmd.Flags().String(key, common.DefaultEndpoint, util.WrapString("The address of the server (host:port, a socket path for unix or a url for http)"))

	key = "timeout"
	SendCmd.Flags().Int64(key, 0, util.WrapString("How long to wait for the reply in seconds (0 waits until the reply arrives)"))

	key = "clients"
	SendCmd.Flags().Int(key, 1, util.WrapString("Number of clients sending the batch in parallel, each on its own connection"))

	key = "report-format"
	SendCmd.Flags().String(key, report.FormatTable, util.WrapString("Output format (table, json, yaml)"))

	util.SetupDataFlags(SendCmd)
	util.SetupSocketFlags(SendCmd)
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

	clients := viper.GetInt("clients")
	if clients < 1 {
		return fmt.Errorf("clients must be at least 1, got %d", clients)
	}

	config := common.ClientConfig{
		Endpoint:      viper.GetString("endpoint"),
		TimeoutSecond: viper.GetInt64("timeout"),
		Socket:        util.GetSocketConf(),
	}
	util.Logger.Debugf("%s", config.String())

	calls := SendAll(cmd.Context(), config, viper.GetString("transport"), s, batch, clients)
	if err := report.WriteCalls(os.Stdout, viper.GetString("report-format"), calls); err != nil {
		return err
	}

	for _, c := range calls {
		if c.Error != "" {
			return fmt.Errorf("%d of %d calls failed", countFailed(calls), len(calls))
		}
	}
	return nil
}

// SendAll lets n clients send the batch concurrently, each with exactly one call
// on its own connection. The outcome of every call is returned in client order.
func SendAll(
	ctx context.Context,
	config common.ClientConfig,
	transportName string,
	s *schema.Schema,
	batch record.Batch,
	n int,
) []report.Call {
	if ctx == nil {
		ctx = context.Background()
	}

	calls := make([]report.Call, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			calls[i] = sendOnce(ctx, i+1, config, transportName, s, batch)
			return nil
		})
	}
	_ = g.Wait()
	return calls
}

func sendOnce(
	ctx context.Context,
	id int,
	config common.ClientConfig,
	transportName string,
	s *schema.Schema,
	batch record.Batch,
) report.Call {
	t, err := util.NewClientTransport(transportName)
	if err != nil {
		return report.NewCall(id, config.Endpoint, len(batch), false, 0, 0, err)
	}

	c, err := client.NewEmployeeClient(config, t, s)
	if err != nil {
		return report.NewCall(id, config.Endpoint, len(batch), false, 0, 0, err)
	}
	defer c.Close()

	call := c.SendEmployees(ctx, batch)
	ack, err := call.Wait()
	if err != nil {
		util.Logger.Warningf("Client %d: %v", id, err)
	}
	return report.NewCall(id, config.Endpoint, len(batch), ack.Ok, ack.Received, call.Elapsed(), err)
}

func countFailed(calls []report.Call) int {
	n := 0
	for _, c := range calls {
		if c.Error != "" {
			n++
		}
	}
	return n
}
