package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/cborld"
	"github.com/arloliu/cborld/loader"
)

var (
	decodeConfigPath string
	decodeOutPath    string
	decodeOffline    bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode a CBOR-LD file into a JSON-LD document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		opts, err := buildDecodeOptions()
		if err != nil {
			return err
		}

		doc, err := cborld.Decode(cmd.Context(), data, opts...)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		out = append(out, '\n')

		if decodeOutPath != "" {
			return os.WriteFile(decodeOutPath, out, 0o644)
		}
		_, err = os.Stdout.Write(out)

		return err
	},
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeConfigPath, "contexts", "c", "", "YAML file mapping context codes and local context documents")
	decodeCmd.Flags().StringVarP(&decodeOutPath, "out", "o", "", "write the document to a file instead of stdout")
	decodeCmd.Flags().BoolVar(&decodeOffline, "offline", false, "never fetch contexts over the network")
}

// buildDecodeOptions assembles the decoder configuration: local context
// documents from the config file are served first, everything else is
// fetched over HTTP (unless --offline) through a caching layer.
func buildDecodeOptions() ([]cborld.Option, error) {
	logger := newLogger()

	var cfg *config
	if decodeConfigPath != "" {
		var err error
		cfg, err = loadConfig(decodeConfigPath)
		if err != nil {
			return nil, err
		}
	}

	var local *loader.StaticLoader
	if cfg != nil {
		docs, err := cfg.loadDocuments()
		if err != nil {
			return nil, err
		}
		local = loader.NewStaticLoader(docs)
	} else {
		local = loader.NewStaticLoader(nil)
	}

	var docLoader loader.DocumentLoader = local
	if !decodeOffline {
		httpLoader, err := loader.NewHTTPLoader(loader.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		remote := loader.NewCachingLoader(httpLoader)
		docLoader = loader.LoaderFunc(func(ctx context.Context, url string) ([]byte, error) {
			if data, err := local.Load(ctx, url); err == nil {
				return data, nil
			}

			return remote.Load(ctx, url)
		})
	}

	opts := []cborld.Option{cborld.WithDocumentLoader(docLoader)}
	if cfg != nil {
		if len(cfg.Contexts) > 0 {
			opts = append(opts, cborld.WithAppContextMap(cfg.Contexts))
		}
		terms, err := cfg.appTermMap()
		if err != nil {
			return nil, err
		}
		if len(terms) > 0 {
			opts = append(opts, cborld.WithAppTermMap(terms))
		}
	}
	if verbose {
		opts = append(opts, cborld.WithDiagnostic(func(msg string) {
			fmt.Fprintln(os.Stderr, msg)
		}))
	}

	return opts, nil
}
