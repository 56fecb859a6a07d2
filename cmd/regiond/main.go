package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	regionmap "github.com/Ahmedramadaan333/RegionMapFilter"
	"github.com/Ahmedramadaan333/RegionMapFilter/internal/config"
	"github.com/Ahmedramadaan333/RegionMapFilter/internal/server"
)

func main() {
	fs := flag.NewFlagSet("regiond", flag.ExitOnError)
	var (
		confFilename = fs.String("config", "regiond.yml", "Sets configuration filename. Default is regiond.yml in the current folder.")
	)
	fs.Usage = usageFor(fs, os.Args[0]+" [flags]")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Printf("[ERROR] fs.Parse(%v) => %v\n", os.Args[1:], err)
		os.Exit(1)
	}

	envConfFilename := os.Getenv("CONFIG")
	if len(envConfFilename) > 0 {
		*confFilename = envConfFilename
	}
	conf, err := config.FromFile(*confFilename)
	if err != nil {
		fmt.Printf("[ERROR] config.FromFile(%s) => %v\n", *confFilename, err)
		os.Exit(1)
	}

	logger, err := conf.BuildLogger()
	if err != nil {
		fmt.Printf("[ERROR] conf.BuildLogger() => %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugarLogger := logger.Sugar()

	regions, err := loadRegions(conf.Dataset)
	if err != nil {
		sugarLogger.Errorf("failed to load regions: %v", err)
		os.Exit(1)
	}
	sugarLogger.Infof("loaded %d regions from %s", regions.Len(), conf.Dataset.Path)

	srv := server.New(logger, regions, server.Options{
		CacheTTL:       time.Duration(conf.Server.CacheTTLSeconds) * time.Second,
		CacheCleanup:   time.Duration(conf.Server.CacheCleanupSeconds) * time.Second,
		CacheCellLevel: conf.Server.CacheCellLevel,
	})
	httpServer := &http.Server{
		Addr:    conf.ServerAddr(),
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		sugarLogger.Infof("run: HTTP server on %s", conf.ServerAddr())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown: HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			sugarLogger.Error(err)
		}
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugarLogger.Infof("exit: %v", err)
		os.Exit(1)
	}
}

// loadRegions reads the dataset as a msgpack snapshot when the file
// carries the snapshot extension, and as GeoJSON otherwise.
func loadRegions(dataset config.Dataset) (regionmap.Regions, error) {
	raw, err := os.ReadFile(dataset.Path)
	if err != nil {
		return nil, err
	}
	var regions []*regionmap.Region
	if filepath.Ext(dataset.Path) == ".snapshot" {
		regions, err = regionmap.DecodeSnapshot(raw)
	} else {
		regions, err = regionmap.DecodeRegions(raw, dataset.DecodeOptions()...)
	}
	if err != nil {
		return nil, err
	}
	return regionmap.NewMemoryRegions(regions...), nil
}

func usageFor(fs *flag.FlagSet, short string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "USAGE\n")
		fmt.Fprintf(os.Stderr, "  %s\n", short)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		w := tabwriter.NewWriter(os.Stderr, 0, 2, 2, ' ', 0)
		fs.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(w, "\t-%s %s\t%s\n", f.Name, f.DefValue, f.Usage)
		})
		w.Flush()
		fmt.Fprintf(os.Stderr, "\n")
	}
}
