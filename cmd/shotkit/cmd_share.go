package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wudi/shotkit/share"
)

var (
	shareCopy bool
	shareMeta []string
	shareOut  string
)

var shareCmd = &cobra.Command{
	Use:   "share <image.png>",
	Short: "Copy a capture as a data URL or embed metadata into it",
	Long: `With --copy, puts a data:image/png;base64 URL on the clipboard.
Otherwise prints the URL. With --meta, writes a copy of the PNG whose
tEXt chunks carry the given key=value pairs (--out names the copy).`,
	Args: cobra.ExactArgs(1),
	RunE: runShare,
}

func init() {
	shareCmd.Flags().BoolVarP(&shareCopy, "copy", "c", false, "copy to clipboard instead of printing")
	shareCmd.Flags().StringSliceVarP(&shareMeta, "meta", "m", nil, "metadata as key=value")
	shareCmd.Flags().StringVarP(&shareOut, "out", "o", "", "output path for --meta (default: overwrite input)")
	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, args []string) error {
	img, err := loadImage(args[0])
	if err != nil {
		return err
	}

	if len(shareMeta) > 0 {
		meta := make(map[string]string, len(shareMeta))
		for _, kv := range shareMeta {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("metadata %q must be key=value", kv)
			}
			meta[k] = v
		}
		out := shareOut
		if out == "" {
			out = args[0]
		}
		if err := share.SaveWithMetadata(img, out, meta); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	if shareCopy {
		if err := share.CopyDataURL(img); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "copied")
		return nil
	}

	url, err := share.DataURL(img)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}
