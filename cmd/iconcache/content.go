package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sanshu/iconcache/types"
)

func newContentCmd(a *app) *cobra.Command {
	var (
		format string
		size   int
		out    string
	)

	cmd := &cobra.Command{
		Use:   "content <id>",
		Short: "Fetch one icon's SVG markup or PNG raster",
		Long: `Content prints the icon's SVG markup, or its base64 PNG, to stdout.
With --out the decoded content is written to a file instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid icon id %q: %w", args[0], err)
			}
			if types.Format(format) == types.FormatBoth {
				return fmt.Errorf("content prints one format at a time; use svg or png")
			}

			svc, err := a.newService(nil)
			if err != nil {
				return err
			}
			defer svc.Close()

			res, err := svc.ResolveContent(cmd.Context(), id, types.Format(format), size)
			if err != nil {
				return err
			}

			data := []byte(res.SVG)
			text := res.SVG
			if res.Format == types.FormatPNG {
				data, err = base64.StdEncoding.DecodeString(res.PNGBase64)
				if err != nil {
					return fmt.Errorf("failed to decode png: %w", err)
				}
				text = res.PNGBase64
			}

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			a.logger.Info("icon written", "id", id, "name", res.Name, "format", res.Format, "path", out, "bytes", len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(types.FormatSVG), "Content format: svg or png")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "PNG size in pixels (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write decoded content to this file")
	return cmd
}
