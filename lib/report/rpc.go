package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Call is the serializable outcome of one SendEmployees call
type Call struct {
	Client    int    `json:"client" yaml:"client"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Sent      int    `json:"sent" yaml:"sent"`
	Ok        bool   `json:"ok" yaml:"ok"`
	Received  int    `json:"received" yaml:"received"`
	ElapsedNs int64  `json:"elapsed_ns" yaml:"elapsed_ns"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewCall builds a call report. err may be nil.
func NewCall(client int, endpoint string, sent int, ok bool, received int, elapsed time.Duration, err error) Call {
	c := Call{
		Client:    client,
		Endpoint:  endpoint,
		Sent:      sent,
		Ok:        ok,
		Received:  received,
		ElapsedNs: elapsed.Nanoseconds(),
	}
	if err != nil {
		c.Error = err.Error()
	}
	return c
}

// WriteCalls renders the outcome of one or more SendEmployees calls in the given format
func WriteCalls(w io.Writer, format string, calls []Call) error {
	switch strings.ToLower(format) {
	case FormatTable, "markdown", "md", "":
		return generateCallTable(w, calls)
	case FormatJSON:
		return generateJSON(w, calls)
	case FormatYAML, "yml":
		return generateYAML(w, calls)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func generateCallTable(w io.Writer, calls []Call) error {
	if len(calls) == 0 {
		return fmt.Errorf("no calls to report")
	}

	fmt.Fprintln(w, "## SendEmployees")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Client | Endpoint | Sent | Reply | Received | Round Trip |")
	fmt.Fprintln(w, "|--------|----------|------|-------|----------|------------|")

	for _, c := range calls {
		reply := fmt.Sprintf("ok=%v", c.Ok)
		received := fmt.Sprintf("%d", c.Received)
		if c.Error != "" {
			reply = "ERROR"
			received = "-"
		}
		fmt.Fprintf(w, "| %d | %s | %d | %s | %s | %s |\n",
			c.Client, c.Endpoint, c.Sent, reply, received, formatDuration(time.Duration(c.ElapsedNs)))
	}

	var failed []Call
	for _, c := range calls {
		if c.Error != "" {
			failed = append(failed, c)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors:")
		for _, c := range failed {
			fmt.Fprintf(w, "  - client %d: %s\n", c.Client, c.Error)
		}
	}

	return nil
}
