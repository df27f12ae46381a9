package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gezibash/geoclient/internal/api"
	"github.com/gezibash/geoclient/internal/cli"
	"github.com/gezibash/geoclient/internal/command"
	"github.com/gezibash/geoclient/internal/config"
	"github.com/gezibash/geoclient/internal/observability"
	geoerrors "github.com/gezibash/geoclient/pkg/errors"
	"github.com/gezibash/geoclient/pkg/logging"
)

const helpWidth = 78

const description = `geoclient sends one command to a geospatial feature API and prints the ` +
	`response. add and update upload a GeoJSON file as a multipart form field named ` +
	`"geojson"; add, update and delete print the feature UUID returned by the ` +
	`server; get_uuid and get_uuids print the response body unchanged.`

// clientFactory builds the FeatureClient for a validated host.
type clientFactory func(host *url.URL, opts ...api.Option) FeatureClient

func newAPIClient(host *url.URL, opts ...api.Option) FeatureClient {
	return api.New(host, opts...)
}

type rootFlags struct {
	command string
	file    string
	uuid    string
}

type app struct {
	v         *viper.Viper
	root      *cobra.Command
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
	flags     rootFlags
	format    cli.Format
	host      string // validated endpoint, empty until validation passes
}

func newApp(stdout, stderr io.Writer, newClient clientFactory) *app {
	a := &app{
		v:         viper.New(),
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
	a.root = a.newRootCmd()
	return a
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geoclient -c <command> [-t host] [-f file] [-u uuid]",
		Short: "Geospatial feature API client",
		Long:  wordwrap.String(description, helpWidth) + "\n\nCommands: " + command.Names(),
		Example: `  geoclient -c add -f feature.json
  geoclient -c update -u 0b3f5c4e-8d1a-4c2b-9f6e-7a1d2c3b4e5f -f feature.json
  geoclient -c get_uuids -t https://features.example.com/api/`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: unexpected argument %q", geoerrors.ErrUsage, args[0])
			}
			return nil
		},
		RunE:          a.runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.Flags()
	f.StringP(command.OptHost, "t", "", "API host URI (default "+command.DefaultHost+")")
	f.StringVarP(&a.flags.command, command.OptCommand, "c", "", "command: "+strings.ReplaceAll(command.Names(), ",", ", "))
	f.StringVarP(&a.flags.file, command.OptFile, "f", "", "GeoJSON file (add, update)")
	f.StringVarP(&a.flags.uuid, command.OptUUID, "u", "", "feature UUID (delete, update, get_uuid)")
	_ = a.v.BindPFlag("host", f.Lookup(command.OptHost))

	cmd.PersistentFlags().StringP("output", "o", "", "output format (text, json, markdown)")
	_ = a.v.BindPFlag("output", cmd.PersistentFlags().Lookup("output"))
	config.BindCommonFlags(cmd, a.v)

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", geoerrors.ErrUsage, err)
	})

	cmd.AddCommand(newVersionCmd(a.v))
	return cmd
}

func (a *app) execute(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	a.root.SetOut(a.stdout)
	a.root.SetErr(a.stderr)
	return a.root.ExecuteContext(ctx)
}

func (a *app) runRoot(cmd *cobra.Command, _ []string) (err error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(a.v, configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.format, err = cli.ParseFormat(cfg.Output); err != nil {
		return err
	}

	host := cfg.ResolvedHost()
	if cmd.Flags().Changed(command.OptHost) && strings.TrimSpace(cfg.Host) == "" {
		return fmt.Errorf("%w: --%s given without a value", geoerrors.ErrInvalidHost, command.OptHost)
	}

	inv, err := command.Validate(command.Options{
		Host:    host,
		Command: a.flags.command,
		File:    a.flags.file,
		UUID:    a.flags.uuid,
	})
	if err != nil {
		return err
	}
	a.host = inv.Host.String()

	ctx := cmd.Context()
	obs, err := observability.New(ctx, cfg.obsConfig(), a.stderr)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}
	log := logging.New(obs.Logger)
	defer func() {
		if cerr := obs.Close(context.WithoutCancel(ctx)); cerr != nil {
			log.Warn("observability shutdown", "error", cerr)
		}
	}()

	op, ctx := observability.StartOperation(ctx, obs.Metrics, string(inv.Command),
		attribute.String("geoclient.host", inv.Host.String()),
	)
	defer func() { op.End(err) }()

	client := a.newClient(inv.Host,
		api.WithReporter(api.NewLogReporter(log)),
		api.WithMetrics(obs.Metrics),
	)

	text, err := dispatch(ctx, client, inv)
	if err != nil {
		return err
	}
	return a.render(inv, text)
}

// dispatch runs the single request inv names and returns what to print.
func dispatch(ctx context.Context, c FeatureClient, inv command.Invocation) (string, error) {
	switch inv.Command {
	case command.Add:
		id, err := c.Add(ctx, inv.File)
		if err != nil {
			return "", err
		}
		return id.String(), nil
	case command.Update:
		id, err := c.AddAt(ctx, inv.File, inv.ID)
		if err != nil {
			return "", err
		}
		return id.String(), nil
	case command.Delete:
		id, err := c.Delete(ctx, inv.ID)
		if err != nil {
			return "", err
		}
		return id.String(), nil
	case command.GetUUID:
		return c.Get(ctx, inv.ID)
	case command.GetUUIDs:
		return c.GetAll(ctx)
	}
	return "", fmt.Errorf("%w: unsupported command %q", geoerrors.ErrUsage, inv.Command)
}

func (a *app) render(inv command.Invocation, text string) error {
	body := cli.NewOutput(a.format, a.stdout).
		Body(string(inv.Command), text).
		Set("Host", inv.Host.String())
	if inv.Command.ExpectsIdentifier() {
		body.As("uuid")
	} else if inv.HasID {
		body.Set("UUID", inv.ID.String())
	}
	return body.Render()
}

// reportError writes err to stderr. Errors raised after validation carry
// the host; usage errors are followed by the usage text in every format.
func (a *app) reportError(ce *commandError) {
	resultType := a.flags.command
	if resultType == "" {
		resultType = "geoclient"
	}

	out := cli.NewOutput(a.format, a.stderr)
	e := out.Error(resultType, ce.err)
	if ce.code != "" {
		e.WithCode(ce.code)
	}
	if a.host != "" {
		e.With("Host", a.host)
	}
	_ = e.Render()

	if !ce.usage {
		return
	}
	if out.Format() == cli.FormatText {
		_, _ = fmt.Fprintln(a.stderr)
	}
	_, _ = fmt.Fprint(a.stderr, a.root.UsageString())
}
