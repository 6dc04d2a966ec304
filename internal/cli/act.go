package cli

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/mission"
)

// transitions are the workflow actions exposed as subcommands.
var transitions = []actions.Name{actions.Confirm, actions.Reject, actions.Execute, actions.Complete}

// run sends one action through a dispatcher, so the CLI logs and times it
// the way the dashboard does.
func (o *options) run(cmd *cobra.Command, key actions.Key, call func(context.Context) error) error {
	d := actions.NewDispatcher(nil, o.logger(cmd))
	return d.Run(cmd.Context(), actions.Request{Key: key, Call: call}).Err
}

func actionCmd(o *options, n actions.Name) *cobra.Command {
	var motif string
	cmd := &cobra.Command{
		Use:   string(n) + " <mandat|ordre> <id>",
		Short: "Run the " + string(n) + " action on one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := o.requireToken()
			if err != nil {
				return err
			}
			f, id, err := recordArgs(args)
			if err != nil {
				return err
			}
			c := o.client(cmd)
			err = o.run(cmd, actions.Key{Family: f, ID: id, Action: n}, func(ctx context.Context) error {
				switch n {
				case actions.Confirm:
					return c.Confirm(ctx, token, f, id)
				case actions.Reject:
					return c.Reject(ctx, token, f, id, motif)
				case actions.Execute:
					return c.Execute(ctx, token, f, id)
				default:
					return c.Complete(ctx, token, f, id)
				}
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s #%d\n", color.New(color.FgGreen).Sprint(i18n.T(o.lang, "flash."+string(n)+".ok")), f, id)
			return nil
		},
	}
	if n == actions.Reject {
		cmd.Flags().StringVar(&motif, "motif", "", "reason sent with the rejection")
	}
	return cmd
}

func pdfCmd(o *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pdf <mandat|ordre> <id>",
		Short: "Download the printable document of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := o.requireToken()
			if err != nil {
				return err
			}
			f, id, err := recordArgs(args)
			if err != nil {
				return err
			}
			doc, err := o.client(cmd).PDF(cmd.Context(), token, f, id)
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = filepath.Base(doc.Filename)
			}
			if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: the name sent by the backend)")
	return cmd
}

func attachCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <ordre-id> <file>...",
		Short: "Upload receipts of an ordre de mission in one request",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := o.requireToken()
			if err != nil {
				return err
			}
			_, id, err := recordArgs([]string{string(mission.FamilyOrdre), args[0]})
			if err != nil {
				return err
			}
			uploads := make([]backend.Upload, 0, len(args)-1)
			for _, p := range args[1:] {
				data, err := os.ReadFile(p)
				if err != nil {
					return err
				}
				if len(data) == 0 {
					return fmt.Errorf("%s is empty", p)
				}
				uploads = append(uploads, backend.Upload{Name: filepath.Base(p), ContentType: contentType(p, data), Data: data})
			}
			c := o.client(cmd)
			key := actions.Key{Family: mission.FamilyOrdre, ID: id, Action: actions.AddAttachments}
			err = o.run(cmd, key, func(ctx context.Context) error {
				return c.UploadAttachments(ctx, token, id, uploads)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ordre #%d (%d)\n", color.New(color.FgGreen).Sprint(i18n.T(o.lang, "flash.addAttachments.ok")), id, len(uploads))
			return nil
		},
	}
}

func contentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
