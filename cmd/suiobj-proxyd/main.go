package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"xdao.co/suiobj/archive"
	"xdao.co/suiobj/config"
	"xdao.co/suiobj/internal/httpapi"
	"xdao.co/suiobj/internal/logging"
	"xdao.co/suiobj/internal/telemetry"
	"xdao.co/suiobj/nodegrpc"
	"xdao.co/suiobj/nodes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, errOut io.Writer) int {
	app := &cli.App{
		Name:           "suiobj-proxyd",
		Usage:          "serve Sui object reads over gRPC and HTTP",
		Writer:         errOut,
		ErrWriter:      errOut,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "JSON or YAML config file"},
			&cli.StringFlag{Name: "grpc-listen", Usage: "gRPC listen address (overrides config)"},
			&cli.StringFlag{Name: "http-listen", Usage: "HTTP listen address (overrides config)"},
			&cli.BoolFlag{Name: "list-backends", Usage: "list node backends and exit"},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("list-backends") {
				for _, b := range nodes.List() {
					fmt.Fprintf(errOut, "%s\t%s\n", b.Name, b.Description)
				}
				return nil
			}

			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if c.IsSet("grpc-listen") {
				cfg.GRPCListen = c.String("grpc-listen")
			}
			if c.IsSet("http-listen") {
				cfg.HTTPListen = c.String("http-listen")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			lvl, _ := cfg.Level()
			logging.Setup(lvl, errOut, false)

			grpcLis, err := net.Listen("tcp", cfg.GRPCListen)
			if err != nil {
				return err
			}
			httpLis, err := net.Listen("tcp", cfg.HTTPListen)
			if err != nil {
				_ = grpcLis.Close()
				return err
			}
			return serve(c.Context, cfg, grpcLis, httpLis)
		},
	}
	if err := app.RunContext(ctx, append([]string{app.Name}, args...)); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return 0
}

// serve runs both servers until ctx is done or one of them fails.
func serve(ctx context.Context, cfg config.Config, grpcLis, httpLis net.Listener) error {
	shutdownTracing, err := telemetry.Setup(ctx, "suiobj-proxyd", cfg.OTELEndpoint)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	node, closeNode, err := nodes.Open(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeNode() }()

	arch, err := archive.OpenDirs(cfg.ArchiveDirs()...)
	if err != nil {
		return err
	}

	gs := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	nodegrpc.RegisterNodeReaderServer(gs, &nodegrpc.Server{Node: node})

	hs := &http.Server{
		Handler:           httpapi.NewHandler(node, arch).Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 2)
	go func() { errc <- gs.Serve(grpcLis) }()
	go func() { errc <- hs.Serve(httpLis) }()

	log.Info().
		Str("grpc", grpcLis.Addr().String()).
		Str("http", httpLis.Addr().String()).
		Str("backend", cfg.Backend).
		Msg("suiobj-proxyd listening")

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	gs.GracefulStop()

	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) && !errors.Is(serveErr, grpc.ErrServerStopped) {
		return serveErr
	}
	log.Info().Msg("suiobj-proxyd stopped")
	return nil
}
