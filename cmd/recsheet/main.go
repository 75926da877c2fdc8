// Copyright 2021, 2026 Tamás Gulácsi. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/UNO-SOFT/recsheet"
	"github.com/UNO-SOFT/recsheet/download"
	"github.com/UNO-SOFT/recsheet/httpapi"
	"github.com/UNO-SOFT/recsheet/sheetlib"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	var flagTZ string
	location := func() (*time.Location, error) {
		if flagTZ == "" {
			return time.Local, nil
		}
		return time.LoadLocation(flagTZ)
	}

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flagEnc := fs.String("charset", recsheet.EncName, "csv charset name")
	flagFormat := fs.String("format", "xlsx", "output format: xlsx, ods or pdf")
	flagOut := fs.String("o", "", "output directory (default: current)")
	flagFile := fs.String("file", "", "output file name (default: datos.<format>)")
	flagSheet := fs.String("sheet", recsheet.DefaultSheetLabel, "sheet name")
	fs.StringVar(&flagTZ, "tz", "", "time zone of date-times without zone (default: local)")
	convertCmd := ffcli.Command{Name: "convert", FlagSet: fs,
		ShortUsage: "convert [flags] <records.json|records.csv|->",
		ShortHelp:  "convert a JSON array of records, or a CSV, into a spreadsheet",
		Options:    []ff.Option{ff.WithEnvVarPrefix("RECSHEET")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				args = append(args, "-")
			}
			format, err := recsheet.ParseFormat(*flagFormat)
			if err != nil {
				return fmt.Errorf("%q: %w", *flagFormat, err)
			}
			loc, err := location()
			if err != nil {
				return err
			}
			records, err := readRecords(args[0], *flagEnc)
			if err != nil {
				return fmt.Errorf("read %q: %w", args[0], err)
			}

			queue := download.NewQueue(1, logger)
			defer queue.Close()
			exp := recsheet.Exporter{
				Library:    sheetlib.New(),
				Host:       download.NewFileHost(*flagOut),
				Executor:   queue,
				Logger:     logger,
				Format:     format,
				Classifier: recsheet.Classifier{Location: loc},
			}
			return exp.Export(*flagFile, *flagSheet, records)
		},
	}

	fs = flag.NewFlagSet("serve", flag.ContinueOnError)
	flagAddr := fs.String("addr", ":8080", "address to listen on")
	fs.StringVar(&flagTZ, "tz", "", "time zone of date-times without zone (default: local)")
	serveCmd := ffcli.Command{Name: "serve", FlagSet: fs,
		ShortUsage: "serve [flags]",
		ShortHelp:  "serve POST /export",
		Options:    []ff.Option{ff.WithEnvVarPrefix("RECSHEET")},
		Exec: func(ctx context.Context, args []string) error {
			loc, err := location()
			if err != nil {
				return err
			}
			queue := download.NewQueue(64, logger)
			defer queue.Close()
			api := httpapi.Server{
				Library:    sheetlib.New(),
				Executor:   queue,
				Logger:     logger,
				Classifier: recsheet.Classifier{Location: loc},
			}
			srv := http.Server{
				Addr:              *flagAddr,
				Handler:           api.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}
			go func() {
				<-ctx.Done()
				shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutCtx)
			}()
			logger.Info("listening", "addr", *flagAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	fs = flag.NewFlagSet("recsheet", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	app := ffcli.Command{Name: "recsheet", FlagSet: fs,
		ShortUsage:  "recsheet [-v] <convert|serve> [flags]",
		Options:     []ff.Option{ff.WithEnvVarPrefix("RECSHEET")},
		Subcommands: []*ffcli.Command{&convertCmd, &serveCmd},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}
	if err := app.Parse(os.Args[1:]); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}

func readRecords(fn, encName string) ([]recsheet.Record, error) {
	var r io.Reader = os.Stdin
	if !(fn == "" || fn == "-") {
		fh, err := os.Open(fn)
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		r = fh
	}
	if strings.EqualFold(filepath.Ext(fn), ".csv") {
		return recsheet.ReadCSV(r, encName)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	return recsheet.ParseJSONRecords(b)
}
