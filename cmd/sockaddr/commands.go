// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"net/netip"
	"strings"

	"github.com/bassosimone/sockaddr"
	"github.com/bassosimone/sockaddr/tcp"
	"github.com/urfave/cli/v3"
)

// createCommands creates all the subcommands.
func createCommands() []*cli.Command {
	return []*cli.Command{
		createParseCommand(),
		createUnixCommand(),
		createResolveCommand(),
		createIPv6Command(),
		createOptionsCommand(),
	}
}

// withEnvironment adapts an action taking an [*environment].
func withEnvironment(action func(ctx context.Context, cmd *cli.Command, env *environment) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		return action(ctx, cmd, env)
	}
}

// emptyArg stands for an empty NODE or SERVICE on the command line.
const emptyArg = "-"

// requireArgs fails with a usage error unless cmd has exactly count arguments.
func requireArgs(cmd *cli.Command, count int) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) != count {
		return nil, newUsageError("%s: expected %d argument(s), got %d", cmd.Name, count, len(args))
	}
	return args, nil
}

func createParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "parse a socket address",
		ArgsUsage: "TEXT",
		Action: withEnvironment(func(ctx context.Context, cmd *cli.Command, env *environment) error {
			args, err := requireArgs(cmd, 1)
			if err != nil {
				return err
			}
			pipeline := sockaddr.Compose3(sockaddr.ParseAddressFunc, describeFunc, printFunc(env.stdout))
			_, err = sockaddr.Apply(pipeline, args[0]).Call(ctx, sockaddr.Unit{})
			return err
		}),
	}
}

func createUnixCommand() *cli.Command {
	return &cli.Command{
		Name:      "unix",
		Usage:     "build a Unix-domain socket address",
		ArgsUsage: "PATH",
		Action: withEnvironment(func(ctx context.Context, cmd *cli.Command, env *environment) error {
			args, err := requireArgs(cmd, 1)
			if err != nil {
				return err
			}
			addr, err := sockaddr.UnixAddress(args[0])
			if err != nil {
				return err
			}
			_, err = sockaddr.Compose3(sockaddr.NewAddressFunc(addr), describeFunc, printFunc(env.stdout)).
				Call(ctx, sockaddr.Unit{})
			return err
		}),
	}
}

// describeFunc is a [sockaddr.Func] rendering the address fields.
var describeFunc = sockaddr.FuncAdapter[sockaddr.Address, string](
	func(ctx context.Context, addr sockaddr.Address) (string, error) {
		var sb strings.Builder
		fmt.Fprintf(&sb, "family: %s\n", addr.Family())
		if addr.Family() == sockaddr.FamilyUnix {
			fmt.Fprintf(&sb, "path: %s\n", addr.Path())
			return sb.String(), nil
		}
		port, _ := addr.Port()
		fmt.Fprintf(&sb, "host: %s\n", addr.Host())
		fmt.Fprintf(&sb, "port: %d\n", port)
		fmt.Fprintf(&sb, "reserved: %t\n", port.IsReserved())
		fmt.Fprintf(&sb, "address: %s\n", addr)
		return sb.String(), nil
	})

// printFunc returns a [sockaddr.Func] writing its input to w.
func printFunc(w io.Writer) sockaddr.Func[string, sockaddr.Unit] {
	return sockaddr.FuncAdapter[string, sockaddr.Unit](
		func(ctx context.Context, text string) (sockaddr.Unit, error) {
			_, err := io.WriteString(w, text)
			return sockaddr.Unit{}, err
		})
}

func createResolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "resolve a node and a service into socket addresses (use - for an empty one)",
		ArgsUsage: "NODE SERVICE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "family",
				Usage: "address family: unspec, ipv4 or ipv6",
				Value: "unspec",
			},
			&cli.StringFlag{
				Name:  "socktype",
				Usage: "socket type: any, stream or dgram",
				Value: "any",
			},
			&cli.BoolFlag{Name: "passive", Usage: "return wildcard addresses for an empty node"},
			&cli.BoolFlag{Name: "numeric-host", Usage: "do not look up the node by name"},
			&cli.BoolFlag{Name: "numeric-serv", Usage: "do not look up the service by name"},
			&cli.BoolFlag{Name: "canonname", Usage: "print the canonical name"},
			&cli.StringFlag{
				Name:  "dns-server",
				Usage: "resolve names using this DNS server over UDP, with TCP fallback (e.g., 8.8.8.8:53)",
			},
		},
		Action: withEnvironment(cmdResolve),
	}
}

func cmdResolve(ctx context.Context, cmd *cli.Command, env *environment) error {
	args, err := requireArgs(cmd, 2)
	if err != nil {
		return err
	}
	hints, err := parseHints(cmd)
	if err != nil {
		return err
	}

	logger := env.spanLogger()
	cfg := sockaddr.NewConfig()
	server := env.config.DNSServer
	if cmd.IsSet("dns-server") {
		server = cmd.String("dns-server")
	}
	if server != "" {
		endpoint, err := netip.ParseAddrPort(server)
		if err != nil {
			return newUsageError("invalid DNS server %q: %w", server, err)
		}
		cfg.Resolver = sockaddr.NewDNSResolver(cfg, logger, endpoint)
	}

	ctx, cancel := context.WithTimeout(ctx, env.config.Timeout)
	defer cancel()

	ai, err := sockaddr.NewAddrInfoFunc(cfg, logger).Call(ctx, sockaddr.AddrInfoRequest{
		Node:    resolveArg(args[0]),
		Service: resolveArg(args[1]),
		Hints:   hints,
	})
	if err != nil {
		return err
	}
	defer ai.Close()

	for record := range ai.All() {
		if record.CanonName != "" {
			fmt.Fprintf(env.stdout, "canonname: %s\n", record.CanonName)
		}
		fmt.Fprintf(env.stdout, "%s %s %s\n", record.SocketType, record.Protocol, record.Address)
	}
	return nil
}

// resolveArg maps [emptyArg] to the empty string.
func resolveArg(arg string) string {
	if arg == emptyArg {
		return ""
	}
	return arg
}

// parseHints builds the resolver hints from the resolve flags.
func parseHints(cmd *cli.Command) (*sockaddr.Hints, error) {
	hints := &sockaddr.Hints{}
	switch strings.ToLower(cmd.String("family")) {
	case "unspec", "":
	case "ipv4", "4":
		hints.Family = sockaddr.FamilyIPv4
	case "ipv6", "6":
		hints.Family = sockaddr.FamilyIPv6
	default:
		return nil, newUsageError("invalid family %q", cmd.String("family"))
	}
	switch strings.ToLower(cmd.String("socktype")) {
	case "any", "":
	case "stream":
		hints.SocketType = sockaddr.SocketTypeStream
	case "dgram":
		hints.SocketType = sockaddr.SocketTypeDgram
	default:
		return nil, newUsageError("invalid socket type %q", cmd.String("socktype"))
	}
	flags := []struct {
		name string
		flag sockaddr.Flags
	}{
		{"passive", sockaddr.FlagPassive},
		{"numeric-host", sockaddr.FlagNumericHost},
		{"numeric-serv", sockaddr.FlagNumericServ},
		{"canonname", sockaddr.FlagCanonName},
	}
	for _, entry := range flags {
		if cmd.Bool(entry.name) {
			hints.Flags |= entry.flag
		}
	}
	return hints, nil
}

func createIPv6Command() *cli.Command {
	return &cli.Command{
		Name:  "ipv6",
		Usage: "report whether any local interface has an IPv6 address",
		Action: withEnvironment(func(ctx context.Context, cmd *cli.Command, env *environment) error {
			cfg := sockaddr.NewConfig()
			supported, err := sockaddr.NewIPv6SupportFunc(cfg, env.spanLogger()).Call(ctx, sockaddr.Unit{})
			if err != nil {
				return err
			}
			fmt.Fprintf(env.stdout, "ipv6 supported: %t\n", supported)
			return nil
		}),
	}
}

func createOptionsCommand() *cli.Command {
	return &cli.Command{
		Name:      "options",
		Usage:     "list the transport options or parse an option set",
		ArgsUsage: "[NAMES...]",
		Action: withEnvironment(func(ctx context.Context, cmd *cli.Command, env *environment) error {
			text := strings.Join(cmd.Args().Slice(), "|")
			if text == "" {
				text = env.config.Options
			}
			if text == "" {
				for _, opt := range tcp.AllOptions() {
					fmt.Fprintln(env.stdout, opt)
				}
				return nil
			}
			set, err := tcp.ParseOptionSet(text)
			if err != nil {
				return newUsageError("%w", err)
			}
			fmt.Fprintln(env.stdout, set)
			return nil
		}),
	}
}
