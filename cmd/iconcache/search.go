package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sanshu/iconcache/types"
)

type searchFlags struct {
	style      string
	fills      string
	sort       string
	page       int
	pageSize   int
	collection bool
}

func newSearchCmd(a *app) *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search icons and print one page as a table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newService(nil)
			if err != nil {
				return err
			}
			defer svc.Close()

			page, err := svc.Search(cmd.Context(), types.SearchParams{
				Query:          strings.Join(args, " "),
				Style:          types.Style(f.style),
				Fills:          types.Fills(f.fills),
				SortType:       types.SortType(f.sort),
				Page:           f.page,
				PageSize:       f.pageSize,
				FromCollection: f.collection,
			})
			if err != nil {
				return err
			}

			t := &table{header: []string{"ID", "NAME", "FONT CLASS", "AUTHOR", "SVG"}}
			for _, icon := range page.Icons {
				svg := "-"
				if icon.SVG != "" {
					svg = "yes"
				}
				t.add(strconv.FormatUint(icon.ID, 10), icon.Name, icon.FontClass, icon.Author, svg)
			}
			out := cmd.OutOrStdout()
			t.render(out)
			fmt.Fprintf(out, "\npage %d (size %d) of %d results, more: %v\n", page.Page, page.PageSize, page.Total, page.HasMore)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.style, "style", "", "Icon style: all, line, fill, flat")
	cmd.Flags().StringVar(&f.fills, "fills", "", "Fill type: all, single, multi")
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort order: relate, new, hot")
	cmd.Flags().IntVarP(&f.page, "page", "p", 0, "Page number (default 1)")
	cmd.Flags().IntVarP(&f.pageSize, "page-size", "n", 0, "Results per page (default from config)")
	cmd.Flags().BoolVar(&f.collection, "collection", false, "Only search curated collections")
	return cmd
}
