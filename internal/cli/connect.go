package cli

import (
	"fmt"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/seregonwar/CoreBaseApplication/internal/network"
	"github.com/spf13/cobra"
)

// connectResult is the --json payload of the connect command.
type connectResult struct {
	ID       string `json:"id"`
	Address  string `json:"address"`
	Protocol string `json:"protocol"`
	Sent     string `json:"sent,omitempty"`
	Received string `json:"received,omitempty"`
}

func (a *app) connectCmd() *cobra.Command {
	var (
		protocol string
		send     string
		receive  bool
		timeout  string
		insecure bool
	)

	cmd := &cobra.Command{
		Use:   "connect <host:port>",
		Short: "Open a connection and optionally exchange a message",
		Long: `Open a connection through the registry using the network defaults from
.corebase.yaml, optionally send a text message and wait for one reply, then
close it again.

Examples:
  corebase connect localhost:8080
  corebase connect example.com:443 --protocol https
  corebase connect localhost:7 --send ping --receive
  corebase connect localhost:9000 --protocol ws --timeout 2s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, port, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			d, err := parseDuration("timeout", timeout)
			if err != nil {
				return err
			}

			s, err := a.openSession(nil)
			if err != nil {
				return err
			}
			defer s.Close()

			cfg := s.facade.Defaults()
			cfg.Host, cfg.Port = host, port
			if protocol != "" {
				p, ok := network.ParseProtocol(protocol)
				if !ok {
					return errors.New(errors.ErrInvalidParameter,
						fmt.Sprintf("Unknown protocol %q", protocol),
						"Use tcp, udp, http, https, ws, mqtt, amqp, grpc or custom")
				}
				cfg.Protocol = p
				cfg.UseTLS = cfg.UseTLS || p == network.ProtocolHTTPS
			}
			if d > 0 {
				cfg = cfg.WithTimeout(d)
			}
			if insecure {
				cfg = cfg.WithTLS(false)
			}

			conn, err := s.facade.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			result := connectResult{
				ID:       conn.ID.String(),
				Address:  cfg.Address(),
				Protocol: cfg.Protocol.String(),
			}
			if !a.jsonOut {
				printSuccess(a.stdout, "Connected to %s over %s (%s)", result.Address, result.Protocol, result.ID)
			}

			if send != "" {
				if err := s.facade.Registry().SendTo(conn.ID, network.NewTextMessage(send)); err != nil {
					return err
				}
				result.Sent = send
				if !a.jsonOut {
					printSuccess(a.stdout, "Sent %d bytes", len(send))
				}
			}

			if receive {
				msg, err := conn.ReceiveWithTimeout(cmd.Context(), cfg.Timeout)
				if err != nil {
					return err
				}
				result.Received = string(msg.Payload)
				if !a.jsonOut {
					fmt.Fprintln(a.stdout, result.Received)
				}
			}

			if err := s.facade.Registry().Close(conn.ID); err != nil {
				return err
			}

			if a.jsonOut {
				return WriteJSONSuccess(a.stdout, result)
			}
			printMuted(a.stdout, "Connection closed")
			return nil
		},
	}

	cmd.Flags().StringVarP(&protocol, "protocol", "p", "", "protocol: tcp, udp, http, https, ws, ... (default: network.protocol)")
	cmd.Flags().StringVar(&send, "send", "", "text message to send after connecting")
	cmd.Flags().BoolVar(&receive, "receive", false, "wait for one message before closing")
	cmd.Flags().StringVar(&timeout, "timeout", "", "connect and receive timeout, e.g. 2s (default: network.timeout)")
	cmd.Flags().BoolVar(&insecure, "insecure", false, "use TLS without verifying the server certificate")
	return cmd
}
