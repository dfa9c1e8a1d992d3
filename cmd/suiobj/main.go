package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"xdao.co/suiobj/config"
	"xdao.co/suiobj/internal/logging"
	"xdao.co/suiobj/internal/telemetry"
	"xdao.co/suiobj/nodes"
	"xdao.co/suiobj/suiobj"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	app := newApp(out, errOut)
	if err := app.Run(append([]string{app.Name}, args...)); err != nil {
		fmt.Fprintf(errOut, "suiobj: %v\n", err)
		return 1
	}
	return 0
}

// session is the state shared by all subcommands of one invocation.
type session struct {
	out    io.Writer
	errOut io.Writer

	cfg     config.Config
	node    suiobj.Node
	closers []func() error
}

func newApp(out io.Writer, errOut io.Writer) *cli.App {
	s := &session{out: out, errOut: errOut}
	return &cli.App{
		Name:      "suiobj",
		Usage:     "read and validate Sui objects",
		Writer:    out,
		ErrWriter: errOut,
		// Errors are reported by run; never exit from inside the app.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "JSON or YAML config file"},
			&cli.StringFlag{Name: "node-url", Usage: "full node JSON-RPC endpoint (overrides config)"},
			&cli.StringFlag{Name: "backend", Usage: fmt.Sprintf("node backend %v (overrides config)", nodes.Names())},
			&cli.StringFlag{Name: "grpc-target", Usage: "suiobj-proxyd address for --backend=grpc"},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn, error (overrides config)"},
		},
		Before: s.open,
		After:  s.close,
		Commands: []*cli.Command{
			ownedCommand(s),
			ticketsCommand(s),
			objectCommand(s),
			ownerCommand(s),
			cidCommand(s),
			archiveCommand(s),
		},
	}
}

func (s *session) open(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("node-url") {
		cfg.NodeURL = c.String("node-url")
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("grpc-target") {
		cfg.GRPCTarget = c.String("grpc-target")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	lvl, _ := cfg.Level()
	logging.Setup(lvl, s.errOut, true)

	shutdown, err := telemetry.Setup(c.Context, "suiobj", cfg.OTELEndpoint)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, func() error { return shutdown(c.Context) })

	node, closeNode, err := nodes.Open(cfg)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, closeNode)

	s.cfg = cfg
	s.node = node
	log.Debug().Str("backend", cfg.Backend).Str("node_url", cfg.NodeURL).Msg("node opened")
	return nil
}

func (s *session) close(*cli.Context) error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}
