package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/llehouerou/waveplay/internal/config"
	"github.com/llehouerou/waveplay/internal/playlist"
)

var errBadSort = errors.New("invalid sort")

type listParams struct {
	sort     string
	language string
}

func newListCmd(root *rootParams) *cobra.Command {
	var params listParams
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "Print the playlist built from paths as a table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(root.configPath)
			if err != nil {
				return err
			}
			lang := cfg.Language
			if params.language != "" {
				lang = params.language
			}
			paths, err := ExpandPaths(args)
			if err != nil {
				return err
			}
			return runList(cmd.OutOrStdout(), paths, lang, params.sort)
		},
	}
	cmd.Flags().StringVarP(&params.sort, "sort", "s", "", "sort by column, e.g. title or artist:desc")
	cmd.Flags().StringVar(&params.language, "lang", "", "header language (en, de)")
	return cmd
}

// parseSort reads "column" or "column:asc|desc". Column names are matched
// in either header language.
func parseSort(spec string) (playlist.Column, playlist.SortOrder, error) {
	name, dir, _ := strings.Cut(spec, ":")
	col, ok := playlist.ParseColumn(strings.TrimSpace(name))
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown column %q", errBadSort, name)
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
		return col, playlist.Ascending, nil
	case "desc":
		return col, playlist.Descending, nil
	default:
		return 0, 0, fmt.Errorf("%w: unknown order %q", errBadSort, dir)
	}
}

func runList(w io.Writer, paths []string, lang, sortSpec string) error {
	store := playlist.NewStore()
	store.SetLabels(playlist.LabelsFor(lang))
	store.AddTracks(playlist.TracksFromFiles(paths)...)

	if sortSpec != "" {
		col, order, err := parseSort(sortSpec)
		if err != nil {
			return err
		}
		store.Sort(col, order)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"#"}
	for c := range playlist.ColumnCount {
		header = append(header, store.ColumnHeader(playlist.Column(c)))
	}
	t.AppendHeader(append(header, "Size"))

	var total uint64
	for row := range store.RowCount() {
		r := table.Row{row + 1}
		for c := range playlist.ColumnCount {
			r = append(r, store.CellValue(row, playlist.Column(c)))
		}
		size := "-"
		if track, err := store.TrackAt(row); err == nil {
			if info, err := os.Stat(track.Path); err == nil {
				total += uint64(info.Size()) //nolint:gosec // file sizes are non-negative
				size = humanize.Bytes(uint64(info.Size())) //nolint:gosec // same
			}
		}
		t.AppendRow(append(r, size))
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d tracks", store.RowCount()), "", "", "", humanize.Bytes(total)})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
	return nil
}
