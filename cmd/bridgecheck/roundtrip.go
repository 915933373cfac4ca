package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/hostrt"
	"github.com/wippyai/strbridge/transcoder"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
)

type roundtripResult struct {
	err   error
	path  string
	bytes int
	units int32
}

func newRoundtripCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip <files...>",
		Short: "Convert files to host strings and back, checking the bytes survive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			rt, err := openHost(ctx, a.cfg.Host)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			results, err := roundtripFiles(ctx, rt, args, a.cfg.Roundtrip.Jobs, a.logger)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), results)
		},
	}
	cmd.Flags().Int("jobs", 0, "files converted in parallel (0 = GOMAXPROCS)")
	return cmd
}

// roundtripFiles converts every file in parallel. Per-file failures land in
// the results; only cancellation fails the whole run.
func roundtripFiles(ctx context.Context, rt hostrt.Runtime, files []string, jobs int, logger *zap.Logger) ([]roundtripResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]roundtripResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = roundtripFile(rt, path)
			if results[i].err != nil {
				logger.Debug("roundtrip failed", zap.String("path", path), zap.Error(results[i].err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func roundtripFile(rt hostrt.Runtime, path string) roundtripResult {
	res := roundtripResult{path: path}

	data, err := readInput(path)
	if err != nil {
		res.err = err
		return res
	}
	res.bytes = len(data)

	s, err := transcoder.ToHostString(rt, strbridge.NewStringData(data))
	if err != nil {
		res.err = err
		return res
	}
	if res.units, err = rt.GetStringLength(s); err != nil {
		rt.DeleteLocalRef(s)
		res.err = err
		return res
	}

	buf, err := transcoder.ToEngineBytes(rt, s, strbridge.DropLocalReference)
	if err != nil {
		res.err = err
		return res
	}
	defer buf.Release()

	if !bytes.Equal(buf.Data(), data) {
		res.err = fmt.Errorf("round trip changed the contents: %d bytes in, %d bytes out", len(data), buf.Len())
	}
	return res
}

func report(w io.Writer, results []roundtripResult) error {
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			failColor.Fprint(w, "FAIL")
			fmt.Fprintf(w, " %s: %v\n", r.path, r.err)
			continue
		}
		okColor.Fprint(w, "OK  ")
		fmt.Fprintf(w, " %s (%s, %d code units)\n", r.path, humanize.Bytes(uint64(r.bytes)), r.units)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
