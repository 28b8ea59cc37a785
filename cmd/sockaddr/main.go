// SPDX-License-Identifier: GPL-3.0-or-later

// Command sockaddr inspects socket addresses and name resolution.
//
// Usage:
//
//	sockaddr [global options] <command> [arguments]
//
// Global options:
//
//	-c, --config    YAML or JSON configuration file
//	--log-file      write structured logs to a rotating file
//	-v, --verbose   emit debug structured logs
//	-t, --timeout   resolution timeout (default: 10s)
//
// Commands:
//
//	parse TEXT             parse "<ipv4>:<port>", "*:<port>", "[<ipv6>]:<port>" or "unix:<path>"
//	unix PATH              build a Unix-domain socket address
//	resolve NODE SERVICE   resolve using getaddrinfo semantics ("-" means empty)
//	ipv6                   report whether any interface has an IPv6 address
//	options [NAMES...]     list or parse transport options
//
// Exit codes:
//
//	0: success
//	1: the operation failed
//	2: usage error
//
// Examples:
//
//	sockaddr parse '[::1]:8080'
//	sockaddr resolve --family ipv4 --socktype stream example.com https
//	sockaddr resolve --dns-server 8.8.8.8:53 example.com 443
//	sockaddr resolve --passive --socktype stream - 8080
//	sockaddr -v --log-file /tmp/sockaddr.log resolve localhost 80
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
)

// defaultTimeout is the default resolution timeout.
const defaultTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// createApp creates the CLI application writing to stdout and stderr.
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "sockaddr",
		Usage:     "inspect socket addresses and name resolution",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML or JSON configuration file",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "write structured logs to a rotating file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "emit debug structured logs",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "resolution timeout",
				Value:   defaultTimeout,
			},
		},
		Commands: createCommands(),
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
			return &usageError{err: err}
		},
		// run maps errors to exit codes, so the framework must not exit.
		ExitErrHandler: func(ctx context.Context, cmd *cli.Command, err error) {},
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := createApp(stdout, stderr).Run(ctx, args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "usage error: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// usageError indicates invalid command line arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// newUsageError returns a [*usageError] with the given message.
func newUsageError(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}
