package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/jdec/i18n"
	"github.com/reoring/jdec/internal/logging"
	"github.com/reoring/jdec/jsonvalue"
	"github.com/reoring/jdec/source/gojson"
	sjson "github.com/reoring/jdec/source/json"
	"github.com/reoring/jdec/source/jsontext"
)

// options holds the persistent flags shared by every command.
type options struct {
	driver   string
	dup      string
	maxDepth int
	maxBytes int64
	yaml     bool
	cbor     bool
	lang     string
	logLevel string

	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{log: logging.NewNop()}
	root := &cobra.Command{
		Use:           "jdec",
		Short:         "Format, describe and check JSON documents",
		Long:          `jdec parses JSON, YAML or CBOR documents, infers decoders from samples and checks documents against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(o.logLevel)
			if err != nil {
				return err
			}
			o.log = logging.NewWriter(cmd.ErrOrStderr(), level)
			i18n.SetLanguage(o.lang)
			return nil
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&o.driver, "driver", gojson.Name, "JSON token driver: go-json, encoding/json or jsontext")
	f.StringVar(&o.dup, "dup", "error", "duplicate object keys: ignore, warn or error")
	f.IntVar(&o.maxDepth, "max-depth", 0, "maximum container nesting (0 disables)")
	f.Int64Var(&o.maxBytes, "max-bytes", 0, "maximum input size in bytes (0 disables)")
	f.BoolVar(&o.yaml, "yaml", false, "read input as YAML")
	f.BoolVar(&o.cbor, "cbor", false, "read input as CBOR")
	f.StringVar(&o.lang, "lang", "en", "message language: en or ja")
	f.StringVar(&o.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	root.AddCommand(newFmtCmd(o), newSchemaCmd(o), newCheckCmd(o), newServeCmd(o), newVersionCmd())
	return root
}

func (o *options) parseOpt() (jsonvalue.ParseOpt, error) {
	opt := jsonvalue.ParseOpt{MaxDepth: o.maxDepth, MaxBytes: o.maxBytes}
	switch o.driver {
	case gojson.Name:
		opt.Driver = gojson.Driver()
	case sjson.Name:
		opt.Driver = sjson.Driver()
	case jsontext.Name:
		opt.Driver = jsontext.Driver()
	default:
		return opt, fmt.Errorf("unknown driver %q", o.driver)
	}
	switch o.dup {
	case "ignore":
		opt.Strictness.OnDuplicateKey = jsonvalue.Ignore
	case "warn":
		opt.Strictness.OnDuplicateKey = jsonvalue.Warn
	case "error":
		opt.Strictness.OnDuplicateKey = jsonvalue.Error
	default:
		return opt, fmt.Errorf("unknown duplicate key mode %q", o.dup)
	}
	opt.IssueSink = func(is jsonvalue.Issue) {
		o.log.Warn("input issue", "code", is.Code, "path", is.Path, "msg", is.Message)
	}
	return opt, nil
}

// load reads and parses the document at path. An empty path or "-" reads
// stdin.
func (o *options) load(cmd *cobra.Command, path string) (jsonvalue.Value, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
		path = "stdin"
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	o.log.Debug("loaded input", "path", path, "bytes", len(data), "yaml", o.yaml, "cbor", o.cbor)

	var v jsonvalue.Value
	switch {
	case o.yaml && o.cbor:
		return nil, errors.New("--yaml and --cbor are exclusive")
	case o.yaml:
		v, err = jsonvalue.ParseYAML(data)
	case o.cbor:
		v, err = jsonvalue.ParseCBOR(data)
	default:
		opt, optErr := o.parseOpt()
		if optErr != nil {
			return nil, optErr
		}
		v, err = jsonvalue.Parse(data, opt)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func argOrStdin(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
