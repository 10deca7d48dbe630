package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"github.com/xplshn/tracerr2"

	"github.com/angeloszaimis/dirserve/config"
	"github.com/angeloszaimis/dirserve/internal/handler"
	"github.com/angeloszaimis/dirserve/internal/httpserver"
	"github.com/angeloszaimis/dirserve/internal/metrics"
	"github.com/angeloszaimis/dirserve/internal/netaddr"
	"github.com/angeloszaimis/dirserve/pkg/logger"
)

const (
	listenPort = 10999
	listenAddr = "0.0.0.0:10999"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		if e, ok := err.(*tracerr.Error); ok {
			e.Print()
		} else {
			slog.Error("dirserve failed", slog.Any("err", err))
		}
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "dirserve",
		Usage: "List directories and serve text files from the working directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to config file"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd.String("config"))
		},
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return tracerr.Wrapf(err, "failed to load config")
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.AddSource, cfg.Server.Environment, os.Stdout)

	ip, err := netaddr.LocalIPv4()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get local IP address: %v\n", err)
		return nil
	}

	fmt.Println(netaddr.Banner(ip, listenPort))

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fsys, err := newFileSystem(handler.BaseDir)
	if err != nil {
		return tracerr.Wrapf(err, "failed to open base directory %s", handler.BaseDir)
	}

	collector := metrics.NewCollector(cfg.Metrics.BufferSize, log)
	collector.Start(ctx)

	fileListHandler := handler.NewFileListHandler(log, fsys, collector)

	servers, err := newServers(cfg, fileListHandler, collector)
	if err != nil {
		return tracerr.Wrapf(err, "failed to create server")
	}

	for _, srv := range servers {
		if err := srv.Listen(); err != nil {
			return tracerr.Wrapf(err, "failed to bind")
		}
		log.Info("Listening", slog.String("addr", srv.Addr().String()))
	}

	srvErrCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			srvErrCh <- srv.Serve()
		}()
	}

	var serveErr error

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case serveErr = <-srvErrCh:
		if serveErr != nil {
			log.Error("Error serving requests", slog.Any("err", serveErr))
		}
	}

	for _, srv := range servers {
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	}

	snap := collector.Snapshot()
	log.Info("Served requests",
		slog.Int64("total", snap.TotalRequests),
		slog.Int64("bytes", snap.BytesServed),
		slog.Any("outcomes", snap.Outcomes))

	return serveErr
}

// newFileSystem confines file access to dir, read-only.
func newFileSystem(dir string) (afero.Fs, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), abs)), nil
}

// newServers returns the file server first, followed by the admin server when
// a metrics address is configured.
func newServers(cfg *config.Config, fileListHandler *handler.FileListHandler, collector *metrics.Collector) ([]*httpserver.Server, error) {
	srv, err := httpserver.New(listenAddr, setupRouter(fileListHandler))
	if err != nil {
		return nil, err
	}

	servers := []*httpserver.Server{srv}

	if cfg.Metrics.Address != "" {
		admin, err := httpserver.New(cfg.Metrics.Address, setupAdminRouter(collector))
		if err != nil {
			return nil, err
		}
		servers = append(servers, admin)
	}

	return servers, nil
}
