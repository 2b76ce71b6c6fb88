package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ashokpds15/Myself/pkg/notifyctl/client"
	"github.com/ashokpds15/Myself/pkg/notifyctl/config"
	"github.com/ashokpds15/Myself/pkg/notifyctl/output"
	"github.com/ashokpds15/Myself/pkg/version"
)

// ErrNoAPIKey is returned by commands that need the admin key when neither
// --key, ADMIN_API_KEY nor the keyring provides one.
var ErrNoAPIKey = errors.New("ADMIN_API_KEY not set: pass --key, export ADMIN_API_KEY or run 'notifyctl key set'")

type Config struct {
	OutputWriter io.Writer
	// ErrorWriter receives --verbose HTTP logs. Default: os.Stderr
	ErrorWriter io.Writer
	Keys        config.KeyStore
	Getenv      func(string) string
}

type runtimeState struct {
	serverFlag   string
	keyFlag      string
	outputFormat string
	timeout      time.Duration
	verbose      bool
	writer       io.Writer
	errWriter    io.Writer
	keys         config.KeyStore
	getenv       func(string) string
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		OutputWriter: os.Stdout,
		ErrorWriter:  os.Stderr,
		Keys:         config.DefaultKeyStore(),
		Getenv:       os.Getenv,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{writer: cfg.OutputWriter, errWriter: cfg.ErrorWriter, keys: cfg.Keys, getenv: cfg.Getenv}
	if rt.writer == nil {
		rt.writer = os.Stdout
	}
	if rt.errWriter == nil {
		rt.errWriter = os.Stderr
	}
	if rt.getenv == nil {
		rt.getenv = os.Getenv
	}

	root := &cobra.Command{
		Use:           "notifyctl",
		Short:         "Trigger and inspect portfolio subscriber notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rt.serverFlag, "server", "", "Backend URL (default $BACKEND_URL or "+config.DefaultServer+")")
	root.PersistentFlags().StringVar(&rt.keyFlag, "key", "", "Admin API key (default $ADMIN_API_KEY or the keyring)")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", string(output.FormatText), "Output format: text, json, yaml")
	root.PersistentFlags().DurationVar(&rt.timeout, "timeout", 30*time.Second, "Request timeout")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Log HTTP requests and responses to stderr")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewNotifyLatestCommand(),
		NewNotifyCommand(),
		NewSubscribersCommand(),
		NewKeyCommand(),
		NewVersionCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) Writer() io.Writer {
	return rt.writer
}

func (rt *runtimeState) OutputFormat() output.Format {
	return output.Format(rt.outputFormat)
}

// buildClient resolves the admin key first so a missing key never results
// in a network call.
func buildClient(rt *runtimeState) (*client.Client, error) {
	key, err := config.ResolveAPIKey(rt.keyFlag, rt.getenv, rt.keys)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, ErrNoAPIKey
	}

	opts := []client.Option{
		client.WithServer(config.ResolveServer(rt.serverFlag, rt.getenv)),
		client.WithAPIKey(key),
		client.WithUserAgent(version.UserAgent("notifyctl")),
		client.WithTimeout(rt.timeout),
	}
	if rt.verbose {
		opts = append(opts, client.WithLogger(newVerboseLogger(rt.errWriter).Named("http")))
	}
	return client.New(opts...)
}

// newVerboseLogger writes human-readable debug logs to w, which is stderr
// outside tests so that stdout stays parseable with -o json.
func newVerboseLogger(w io.Writer) *zap.SugaredLogger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core).Sugar()
}
