package main

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/arloliu/cborld/format"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the envelope tag and raw binary tree of a CBOR-LD file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var tag cbor.Tag
		if err := cbor.Unmarshal(data, &tag); err != nil {
			return fmt.Errorf("not a tagged CBOR value: %w", err)
		}

		switch tag.Number {
		case format.TagUncompressed:
			fmt.Printf("envelope: uncompressed (tag 0x%04x)\n", tag.Number)
		case format.TagCompressed:
			fmt.Printf("envelope: compressed (tag 0x%04x)\n", tag.Number)
		default:
			fmt.Printf("envelope: unrecognized tag 0x%04x (legal: 0x%04x, 0x%04x)\n",
				tag.Number, format.TagUncompressed, format.TagCompressed)
		}

		fmt.Printf("size: %d bytes\n", len(data))
		fmt.Printf("raw tree:\n%#v\n", tag.Content)

		if tag.Number == format.TagCompressed {
			printContextRefs(tag.Content)
		}

		return nil
	},
}

// printContextRefs lists the context references found directly in the
// top-level map, with registry URLs where known.
func printContextRefs(content any) {
	m, ok := content.(map[any]any)
	if !ok {
		return
	}

	for k, v := range m {
		id, ok := format.AsTermID(k)
		if !ok || id != format.IDContext {
			continue
		}

		refs := []any{v}
		if list, ok := v.([]any); ok {
			refs = list
		}
		for _, ref := range refs {
			if code, ok := format.AsTermID(ref); ok {
				if url, known := format.RegistryURL(code); known {
					fmt.Printf("context code %d -> %s\n", code, url)
				} else {
					fmt.Printf("context code %d (application-defined)\n", code)
				}
			} else if url, ok := ref.(string); ok {
				fmt.Printf("context url %s\n", url)
			}
		}
	}
}
