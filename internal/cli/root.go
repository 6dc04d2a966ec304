// Package cli implements missionctl, a terminal client for the mission
// backend. It shares the backend client, filters and action tracker with
// the dashboard.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/diewo77/go-missions/i18n"
	"github.com/diewo77/go-missions/internal/backend"
	"github.com/diewo77/go-missions/internal/mission"
)

// Environment variables read when the matching flag is not set.
const (
	EnvBackend = "MISSIONS_BACKEND_URL"
	EnvToken   = "MISSIONS_TOKEN"
)

const defaultBackend = "http://localhost:8081"

type options struct {
	backend string
	token   string
	timeout time.Duration
	lang    string
	verbose bool
}

func (o *options) logger(cmd *cobra.Command) *log.Logger {
	if o.verbose {
		return log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

func (o *options) client(cmd *cobra.Command) *backend.Client {
	return backend.New(o.backend, o.timeout, backend.WithLogger(o.logger(cmd)))
}

func (o *options) requireToken() (string, error) {
	if o.token == "" {
		return "", fmt.Errorf("no token: pass --token or set %s (see `missionctl login`)", EnvToken)
	}
	return o.token, nil
}

// Root builds the missionctl command tree.
func Root() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "missionctl",
		Short:         "Work with mandats and ordres de mission from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.backend == "" {
				o.backend = defaultBackend
			}
			o.lang = i18n.Normalize(o.lang)
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&o.backend, "backend", os.Getenv(EnvBackend), "backend base URL (env "+EnvBackend+")")
	f.StringVar(&o.token, "token", os.Getenv(EnvToken), "bearer token (env "+EnvToken+")")
	f.DurationVar(&o.timeout, "timeout", 15*time.Second, "request timeout")
	f.StringVar(&o.lang, "lang", i18n.Default, "output language (fr, en)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log backend requests to stderr")

	root.AddCommand(loginCmd(o))
	root.AddCommand(listCmd(o))
	for _, a := range transitions {
		root.AddCommand(actionCmd(o, a))
	}
	root.AddCommand(pdfCmd(o))
	root.AddCommand(attachCmd(o))
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("error:"), describe(err))
		return 1
	}
	return 0
}

func describe(err error) string {
	var be *backend.Error
	if errors.As(err, &be) {
		if be.Transport {
			return "backend unreachable: " + be.Path
		}
		return fmt.Sprintf("%s (HTTP %d)", be.Message, be.Status)
	}
	return err.Error()
}

// recordArgs parses "<family> <id>".
func recordArgs(args []string) (mission.Family, uint, error) {
	f, err := mission.ParseFamily(args[0])
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil || id == 0 {
		return "", 0, fmt.Errorf("invalid id %q", args[1])
	}
	return f, uint(id), nil
}

func loginCmd(o *options) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a token and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			resp, err := o.client(cmd).Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.FgGreen).Sprintf("logged in as %s", resp.User.Username))
			fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}
