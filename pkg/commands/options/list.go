package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/journal/viewmodel"
)

// ListOptions
type ListOptions struct {
	Search     string
	Bookmarked bool
	Ascending  bool
	Flat       bool
	Last       string
	Follow     bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only entries whose title or body contains this text, ignoring case.")
	cmd.Flags().BoolVar(&o.Bookmarked, "bookmarked", false,
		"Only bookmarked entries.")
	cmd.Flags().BoolVar(&o.Ascending, "asc", false,
		"Oldest first. Only applies to --flat listings.")
	cmd.Flags().BoolVar(&o.Flat, "flat", false,
		"One list sorted by date instead of Today, Yesterday and month sections.")
	cmd.Flags().StringVar(&o.Last, "last", "",
		"Only entries from this window, for example 3d or 1w.")
	cmd.Flags().BoolVarP(&o.Follow, "follow", "f", false,
		"Keep running and redraw when the journal changes.")
}

func (o *ListOptions) Query() viewmodel.Query {
	return viewmodel.Query{
		Search:        o.Search,
		BookmarkOnly:  o.Bookmarked,
		SortAscending: o.Ascending,
	}
}
