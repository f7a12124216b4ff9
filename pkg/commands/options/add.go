package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/timeutil"
)

// EntryOptions
type EntryOptions struct {
	Title       string
	Description string
	OnString    string
	Images      []string
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title of the entry.")
	cmd.Flags().StringVarP(&o.Description, "body", "b", "",
		"Body of the entry. Markdown is rendered when printing. Use - to read stdin.")
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Date of the entry, today or earlier, example: --on="2026-2-28", --on="2/28" or --on=yesterday.`)
}

func AddImageArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringSliceVarP(&o.Images, "image", "p", nil,
		"Attach an image file. Repeat for more than one.")
}

// GetOn parses --on relative to now. Unset means nil.
func (o *EntryOptions) GetOn(now time.Time) (*time.Time, error) {
	if o.OnString == "" {
		return nil, nil
	}
	t, err := timeutil.ParseEntryDate(o.OnString, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
