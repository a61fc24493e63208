// Command wsqfx converts saved activity pages into OFX statements.
//
//	wsqfx [-v=N -logtostderr] convert -variant chequing -in page.html [-out dir] [-config wsqfx.yaml]
//	wsqfx [-v=N -logtostderr] serve [-addr :8080] [-config wsqfx.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"

	"github.com/rockstardevs/wsqfx/internal/config"
	"github.com/rockstardevs/wsqfx/internal/dom"
	"github.com/rockstardevs/wsqfx/internal/extract"
	"github.com/rockstardevs/wsqfx/internal/server"
	"github.com/rockstardevs/wsqfx/internal/sink"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] convert|serve [command flags]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	var err error
	switch args[0] {
	case "convert":
		err = convert(ctx, args[1:])
	case "serve":
		err = serve(ctx, args[1:])
	default:
		usage()
		os.Exit(2)
	}
	if errors.Is(err, extract.ErrNoCandidates) || errors.Is(err, extract.ErrNoTransactions) {
		fmt.Fprintf(os.Stderr, "%v. Make sure the activity page is fully loaded before saving it.\n", err)
		glog.Flush()
		os.Exit(1)
	}
	if err != nil {
		glog.Exitf("%s: %v", args[0], err)
	}
}

func convert(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	variantName := fs.String("variant", extract.ChequingName, "page layout: chequing or creditcard")
	in := fs.String("in", "-", "saved HTML page, - for stdin")
	out := fs.String("out", "", "output directory, overrides output.dir")
	configPath := fs.String("config", "", "YAML configuration file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *out != "" {
		cfg.Output.Dir = *out
	}
	variant, err := extract.VariantByName(*variantName, cfg, dom.Delay{})
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if *in != "-" {
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	root, err := dom.ParseHTML(r)
	if err != nil {
		return err
	}

	result, err := (&extract.Pipeline{Variant: variant}).Run(ctx, root)
	if err != nil {
		return err
	}
	location, err := sinkFor(cfg).Export(ctx, result.Filename, result.Document)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d transactions to %s\n", result.Stats.Exported, location)
	return nil
}

func serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "listen address, overrides server.addr")
	configPath := fs.String("config", "", "YAML configuration file")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	srv := &server.Server{Config: cfg, Settler: dom.Delay{}}
	if cfg.Output.GCSBucket != "" {
		srv.Archive = sinkFor(cfg)
	}
	return srv.Run(ctx)
}

func sinkFor(cfg *config.Config) sink.Sink {
	if cfg.Output.GCSBucket != "" {
		return sink.GCS{Bucket: cfg.Output.GCSBucket, Prefix: cfg.Output.GCSPrefix}
	}
	return sink.File{Dir: cfg.Output.Dir}
}
