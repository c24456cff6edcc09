// Package main implements strobe-cli, a small command-line driver around
// the strobe package: one-shot hashing and authenticated encryption, KAT
// vector replay, and a metrics server for longer-running uses.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v2"

	"github.com/drand/strobe/config"
	"github.com/drand/strobe/crypto"
	"github.com/drand/strobe/internal/entropy"
	"github.com/drand/strobe/internal/version"
	"github.com/drand/strobe/log"
	"github.com/drand/strobe/strobe"
	"github.com/drand/strobe/strobe/metrics"
	"github.com/drand/strobe/strobe/vectors"
)

// Automatically set through -ldflags.
// Example: go install -ldflags "-X main.buildDate=$(date -u +%d/%m/%Y@%H:%M:%S) -X main.gitCommit=$(git rev-parse HEAD)"
var (
	gitCommit = "none"
	buildDate = "unknown"
)

var setVersionPrinter sync.Once

func banner(w io.Writer) {
	v := version.GetAppVersion()
	fmt.Fprintf(w, "strobe-cli %s (date %v, commit %v)\n", v.String(), buildDate, gitCommit)
}

var verboseFlag = &cli.BoolFlag{
	Name:    "verbose",
	Usage:   "If set, verbosity is at the debug level",
	EnvVars: []string{"STROBE_VERBOSE"},
}

var paramFlag = &cli.StringFlag{
	Name:    "param",
	Usage:   fmt.Sprintf("Security parameter to run under, one of: %v", crypto.ListParameters()),
	Value:   crypto.DefaultParameterName,
	EnvVars: []string{"STROBE_PARAMETER"},
}

var domainFlag = &cli.StringFlag{
	Name:  "domain",
	Usage: "Domain separator for the transcript",
	Value: "strobe-cli",
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Usage:   "Path to a TOML file of default param/domain/tag-length overrides",
	EnvVars: []string{"STROBE_CONFIG"},
}

// applyConfigDefaults loads the --config file, if any, and fills in any of
// param/domain/tag-length the command left at its flag default. Must run
// inside a command's own Action, since paramFlag/domainFlag/tag-length are
// registered per-command, not on the app's global flag set.
func applyConfigDefaults(c *cli.Context) error {
	path := c.String(configFlag.Name)
	if path == "" {
		return nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	names := make(map[string]bool)
	for _, f := range c.Command.Flags {
		for _, n := range f.Names() {
			names[n] = true
		}
	}
	setIfPresent := func(name, value string) {
		if names[name] && !c.IsSet(name) && value != "" {
			_ = c.Set(name, value)
		}
	}

	setIfPresent(paramFlag.Name, cfg.Param)
	setIfPresent(domainFlag.Name, cfg.Domain)
	if cfg.TagLength > 0 {
		tagLen := fmt.Sprintf("%d", cfg.TagLength)
		setIfPresent("tag-length", tagLen)
		setIfPresent("length", tagLen)
	}
	return nil
}

func logLevel(c *cli.Context) int {
	if c.Bool(verboseFlag.Name) {
		return log.DebugLevel
	}
	return log.InfoLevel
}

func newLogger(c *cli.Context, name string) log.Logger {
	return log.WithRunID(log.New(nil, logLevel(c), true).Named(name))
}

var hashCmd = &cli.Command{
	Name:  "hash",
	Usage: "Squeeze pseudorandom output from stdin under PRF",
	Flags: []cli.Flag{
		paramFlag,
		domainFlag,
		&cli.IntFlag{Name: "length", Usage: "Output length in bytes", Value: 32},
	},
	Action: func(c *cli.Context) error {
		if err := applyConfigDefaults(c); err != nil {
			return err
		}
		l := newLogger(c, "hash")

		param, err := crypto.ByName(c.String(paramFlag.Name))
		if err != nil {
			return err
		}

		input, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		s := strobe.New([]byte(c.String(domainFlag.Name)), param)
		s.AD(input, false)

		out := make([]byte, c.Int("length"))
		s.PRF(out, false)
		metrics.OperationsTotal.WithLabelValues("cli_hash", param.String()).Inc()

		l.Debugw("hash complete", "bytes_in", len(input), "bytes_out", len(out))
		fmt.Fprintln(c.App.Writer, hex.EncodeToString(out))
		return nil
	},
}

var sealCmd = &cli.Command{
	Name:  "seal",
	Usage: "Encrypt and authenticate stdin under a key",
	Flags: []cli.Flag{
		paramFlag,
		domainFlag,
		&cli.StringFlag{Name: "key", Required: true, Usage: "Hex-encoded key"},
		&cli.StringFlag{Name: "nonce", Usage: "Hex-encoded nonce; if omitted, one is generated"},
		&cli.IntFlag{Name: "nonce-length", Value: 16, Usage: "Length of the generated nonce when --nonce is omitted"},
		&cli.StringFlag{Name: "entropy-source", Usage: "Path to a file to read generated-nonce entropy from, instead of crypto/rand"},
		&cli.IntFlag{Name: "tag-length", Value: 32},
	},
	Action: func(c *cli.Context) error {
		if err := applyConfigDefaults(c); err != nil {
			return err
		}
		l := newLogger(c, "seal")

		param, err := crypto.ByName(c.String(paramFlag.Name))
		if err != nil {
			return err
		}

		key, err := hex.DecodeString(c.String("key"))
		if err != nil {
			return fmt.Errorf("decoding key: %w", err)
		}

		plaintext, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		nonce, err := sealNonce(c, l)
		if err != nil {
			return err
		}

		s := strobe.New([]byte(c.String(domainFlag.Name)), param)
		s.Key(key, false)
		s.RecvCLR(nonce, false)

		ciphertext := append([]byte(nil), plaintext...)
		s.SendENC(ciphertext, false)

		tag := make([]byte, c.Int("tag-length"))
		s.SendMAC(tag, false)

		l.Debugw("seal complete", "bytes", len(plaintext))
		fmt.Fprintf(c.App.Writer, "%s:%s:%s\n", hex.EncodeToString(nonce), hex.EncodeToString(ciphertext), hex.EncodeToString(tag))
		return nil
	},
}

// sealNonce resolves the nonce sealCmd should bind into the transcript:
// the explicit --nonce if given, otherwise freshly generated entropy, read
// from --entropy-source when set or crypto/rand otherwise. l is the seal
// command's own logger, so its entropy-source line carries the same run ID.
func sealNonce(c *cli.Context, l log.Logger) ([]byte, error) {
	if nonceHex := c.String("nonce"); nonceHex != "" {
		nonce, err := hex.DecodeString(nonceHex)
		if err != nil {
			return nil, fmt.Errorf("decoding nonce: %w", err)
		}
		return nonce, nil
	}

	var source io.ReadCloser
	if path := c.String("entropy-source"); path != "" {
		r, err := entropy.OpenSource(path, l)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		source = r
	}
	return entropy.Nonce(source, uint32(c.Int("nonce-length")))
}

var katCmd = &cli.Command{
	Name:      "kat",
	Usage:     "Replay authenticated-encryption vectors from a JSON file",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		l := newLogger(c, "kat")

		if c.Args().Len() != 1 {
			return fmt.Errorf("kat expects exactly one vector file argument")
		}
		path := c.Args().First()

		vs, err := vectors.Load(path)
		if err != nil {
			return err
		}

		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
		s.Suffix = fmt.Sprintf("  running %d vectors from %s", len(vs), path)
		s.Start()
		err = vectors.RunAll(vs)
		s.Stop()

		if err != nil {
			l.Errorw("vector run failed", "err", err)
			return err
		}

		l.Infow("all vectors passed", "count", len(vs))
		fmt.Fprintf(c.App.Writer, "ok: %d vectors passed\n", len(vs))
		return nil
	},
}

var serveMetricsCmd = &cli.Command{
	Name:  "serve-metrics",
	Usage: "Start a Prometheus metrics endpoint and block",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "listen", Value: ":8080"},
	},
	Action: func(c *cli.Context) error {
		l := newLogger(c, "serve-metrics")

		listener := metrics.Serve(c.String("listen"))
		if listener == nil {
			return fmt.Errorf("failed to start metrics server on %s", c.String("listen"))
		}
		defer listener.Close()

		l.Infow("metrics server listening", "addr", listener.Addr().String())
		select {}
	},
}

// CLI assembles the strobe-cli application.
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = "strobe-cli"
	app.Usage = "hash, encrypt, and replay STROBE transcripts from the command line"
	app.EnableBashCompletion = true

	v := version.GetAppVersion()
	setVersionPrinter.Do(func() {
		cli.VersionPrinter = func(c *cli.Context) {
			banner(c.App.Writer)
		}
	})
	app.Version = v.String()

	app.Flags = []cli.Flag{verboseFlag, configFlag}
	app.Commands = []*cli.Command{hashCmd, sealCmd, katCmd, serveMetricsCmd}
	app.ExitErrHandler = func(c *cli.Context, err error) {
		// overridden so tests can run multiple invocations of the app
		// without the default os.Exit(1) tearing down the process.
	}
	return app
}

func main() {
	if err := CLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
