package serve

import (
	"os"
	"os/signal"
	"syscall"

	cmdUtil "github.com/ValentinKolb/cbench/cmd/util"
	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/ValentinKolb/cbench/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the SendEmployees server",
		Long:    `Start the server that acknowledges batches of employee records. The configuration can be set via command line flags or environment variables. The format of the environment variables is CBENCH_<flag> (e.g. CBENCH_ENDPOINT=0.0.0.0:50051)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	key := "endpoint"
	ServeCmd.Flags().String(key, common.DefaultEndpoint, cmdUtil.WrapString("The address on which the server will listen (host:port, or a socket path for unix)"))

	key = "timeout"
	ServeCmd.Flags().Int64(key, 0, cmdUtil.WrapString("Read and write deadline per request in seconds (0 disables it)"))

	key = "workers"
	ServeCmd.Flags().Int(key, 16, cmdUtil.WrapString("Maximum number of requests handled in parallel per connection"))

	key = "metrics-endpoint"
	ServeCmd.Flags().String(key, "", cmdUtil.WrapString("Address of the metrics endpoint (GET /metrics), disabled if empty"))

	cmdUtil.SetupSocketFlags(ServeCmd)
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, args []string) error {
	if err := cmdUtil.BindCommandFlags(cmd, args); err != nil {
		return err
	}

	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MaxWorkersPerConn = viper.GetInt("workers")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.Socket = cmdUtil.GetSocketConf()

	return nil
}

// run starts the server and blocks until it receives SIGINT or SIGTERM
func run(_ *cobra.Command, _ []string) error {
	s, err := cmdUtil.GetSchema()
	if err != nil {
		return err
	}

	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(*serveCmdConfig, t, s)
	if err := serv.Bind(); err != nil {
		return err
	}

	// Shut down on signal
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		sig := <-sigs
		cmdUtil.Logger.Infof("Received %s, shutting down", sig)
		if err := serv.Close(); err != nil {
			cmdUtil.Logger.Errorf("Failed to close server: %v", err)
		}
	}()

	cmdUtil.Logger.Infof("Listening on %s (%s)", serv.Addr(), viper.GetString("transport"))
	return serv.Serve()
}
