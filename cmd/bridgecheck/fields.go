package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/wippyai/strbridge"
	"github.com/wippyai/strbridge/hostrt"
	"github.com/wippyai/strbridge/interop"
	"github.com/wippyai/strbridge/transcoder"
)

type fieldSession struct {
	rt     hostrt.Runtime
	store  *interop.LevelStore
	fields *interop.Fields
}

func openFields(ctx context.Context, cfg config) (*fieldSession, error) {
	rt, err := openHost(ctx, cfg.Host)
	if err != nil {
		return nil, err
	}
	store, err := interop.OpenLevelStore(cfg.Store.Path)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	return &fieldSession{rt: rt, store: store, fields: interop.NewFields(rt, store)}, nil
}

func (s *fieldSession) close(ctx context.Context) {
	_ = s.store.Close()
	_ = s.rt.Close(ctx)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newPutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "put <key> <file>",
		Short: "Store a file's text as a string field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			key, path := args[0], args[1]

			data, err := readInput(path)
			if err != nil {
				return err
			}

			sess, err := openFields(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer sess.close(ctx)

			s, err := transcoder.ToHostString(sess.rt, strbridge.NewStringData(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := sess.fields.SetString(key, s, strbridge.DropLocalReference); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s (%s)\n", key, humanize.Bytes(uint64(len(data))))
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a stored string field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			sess, err := openFields(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer sess.close(ctx)

			s, err := sess.fields.GetString(args[0])
			if err != nil {
				return err
			}
			buf, err := transcoder.ToEngineBytes(sess.rt, s, strbridge.DropLocalReference)
			if err != nil {
				return err
			}
			defer buf.Release()

			if buf.IsNull() {
				fmt.Fprintln(cmd.OutOrStdout(), "<null>")
				return nil
			}
			_, err = cmd.OutOrStdout().Write(buf.Data())
			return err
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored field keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := interop.OpenLevelStore(a.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			keys, err := store.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}
