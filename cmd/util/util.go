package util

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ValentinKolb/cbench/lib/codec"
	"github.com/ValentinKolb/cbench/lib/record"
	"github.com/ValentinKolb/cbench/lib/schema"
	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/ValentinKolb/cbench/rpc/transport"
	"github.com/ValentinKolb/cbench/rpc/transport/http"
	"github.com/ValentinKolb/cbench/rpc/transport/tcp"
	"github.com/ValentinKolb/cbench/rpc/transport/unix"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Logger = logger.GetLogger("cli")

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables (CBENCH_<FLAG>)
	EnvPrefix = "cbench"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads .env files and enables environment overrides for all flags
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper and initializes the loggers
// with the configured log level
func BindCommandFlags(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return common.InitLoggers(viper.GetString("log-level"))
}

// --------------------------------------------------------------------------
// Shared flags
// --------------------------------------------------------------------------

// SetupDataFlags adds the flags selecting the batch to a command
func SetupDataFlags(cmd *cobra.Command) {
	key := "data"
	cmd.Flags().String(key, "", WrapString("JSON or YAML file with the records ({\"employee\": [...]}). Without a file the built-in sample of three employees is used"))

	key = "records"
	cmd.Flags().Int(key, 0, WrapString("Generate a synthetic batch with this many records instead of the sample (ignored if --data is set)"))
}

// SetupSocketFlags adds the socket option flags to a command
func SetupSocketFlags(cmd *cobra.Command) {
	key := "write-buffer"
	cmd.Flags().Int(key, 0, WrapString("The size of the socket write buffer (in KB, 0 keeps the system default, ignored for http)"))

	key = "read-buffer"
	cmd.Flags().Int(key, 0, WrapString("The size of the socket read buffer (in KB, 0 keeps the system default, ignored for http)"))

	key = "tcp-nodelay"
	cmd.Flags().Bool(key, true, WrapString("Whether to enable TCP_NODELAY (only for tcp)"))

	key = "tcp-keepalive"
	cmd.Flags().Int(key, 0, WrapString("The keepalive interval (in seconds, 0 disables it, only for tcp)"))

	key = "tcp-linger"
	cmd.Flags().Int(key, -1, WrapString("The linger time (in seconds, negative keeps the system default, only for tcp)"))
}

// --------------------------------------------------------------------------
// Config accessors
// --------------------------------------------------------------------------

// GetSocketConf reads the socket options from viper
func GetSocketConf() common.SocketConf {
	return common.SocketConf{
		TCPNoDelay:      viper.GetBool("tcp-nodelay"),
		TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
		TCPLingerSec:    viper.GetInt("tcp-linger"),
		WriteBufferSize: viper.GetInt("write-buffer") * 1024,
		ReadBufferSize:  viper.GetInt("read-buffer") * 1024,
	}
}

// GetSchema loads the schema given by --schema, or the built-in one
func GetSchema() (*schema.Schema, error) {
	if path := viper.GetString("schema"); path != "" {
		return schema.Load(path)
	}
	return schema.Default()
}

// GetBatch returns the batch selected by --data and --records
func GetBatch() (record.Batch, error) {
	if path := viper.GetString("data"); path != "" {
		return record.LoadFile(path)
	}
	if n := viper.GetInt("records"); n > 0 {
		return record.Generate(n), nil
	}
	return record.Sample(), nil
}

// GetCodecs creates the codecs named in --codecs, one json codec per entry of --json-indent
func GetCodecs(s *schema.Schema) ([]codec.ICodec, error) {
	indents, err := ParseIntList(viper.GetString("json-indent"))
	if err != nil {
		return nil, fmt.Errorf("invalid json-indent: %w", err)
	}
	return NewCodecs(strings.Split(viper.GetString("codecs"), ","), indents, s)
}

// NewCodecs creates the codecs for the given format names
func NewCodecs(formats []string, jsonIndents []int, s *schema.Schema) ([]codec.ICodec, error) {
	var codecs []codec.ICodec
	for _, format := range formats {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case codec.FormatJSON:
			if len(jsonIndents) == 0 {
				jsonIndents = []int{0}
			}
			for _, indent := range jsonIndents {
				c, err := codec.NewJSONCodec(indent)
				if err != nil {
					return nil, err
				}
				codecs = append(codecs, c)
			}
		case codec.FormatXML:
			codecs = append(codecs, codec.NewXMLCodec())
		case codec.FormatProto, "protobuf":
			codecs = append(codecs, codec.NewProtoCodec(s))
		case "":
		default:
			return nil, fmt.Errorf("invalid codec %s (expected one of: json, xml, proto)", format)
		}
	}
	if len(codecs) == 0 {
		return nil, fmt.Errorf("no codec selected")
	}
	return codecs, nil
}

// ParseIntList parses a comma separated list of integers, empty entries are skipped
func ParseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

// --------------------------------------------------------------------------
// Transports
// --------------------------------------------------------------------------

// GetServerTransport creates the server transport selected by --transport
func GetServerTransport() (transport.IRPCServerTransport, error) {
	return NewServerTransport(viper.GetString("transport"))
}

// NewServerTransport creates a server transport by name
func NewServerTransport(name string) (transport.IRPCServerTransport, error) {
	switch name {
	case "tcp":
		return tcp.NewTCPServerTransport(), nil
	case "unix":
		return unix.NewUnixServerTransport(), nil
	case "http":
		return http.NewHttpServerTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", name)
	}
}

// NewClientTransport creates a client transport by name
func NewClientTransport(name string) (transport.IRPCClientTransport, error) {
	switch name {
	case "tcp":
		return tcp.NewTCPClientTransport(), nil
	case "unix":
		return unix.NewUnixClientTransport(), nil
	case "http":
		return http.NewHttpClientTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", name)
	}
}
