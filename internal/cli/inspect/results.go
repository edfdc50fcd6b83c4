package inspect

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/imgprobe/imgprobe/pkg/imghdr"
)

// megapixels formats the pixels count in a human-friendly way.
func megapixels(pixels uint64) string {
	const pixelsInMegapixel = 1_000_000

	return fmt.Sprintf("%.1f MP", float64(pixels)/pixelsInMegapixel)
}

// renderResultsTable renders the table with per-file inspection results and a summary footer.
func renderResultsTable(w io.Writer, stats StatsCollector) {
	var history = stats.History()

	if len(history) == 0 {
		return
	}

	sort.Slice(history, func(i, j int) bool { return history[i].FilePath < history[j].FilePath })

	var tw = table.NewWriter()

	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"File Name", "Type", "Resolution", "Megapixels", "Size"})

	for _, stat := range history {
		tw.AppendRow(table.Row{
			filepath.Base(stat.FilePath),
			stat.FileType,
			fmt.Sprintf("%d×%d", stat.Width, stat.Height),
			megapixels(uint64(stat.Width) * uint64(stat.Height)),
			humanize.IBytes(stat.FileSize),
		})
	}

	tw.AppendFooter(table.Row{
		fmt.Sprintf("Total (%d files)", stats.TotalFiles()),
		fmt.Sprintf("%d PNG / %d JPEG",
			stats.FormatCount(imghdr.FormatPNG.String()),
			stats.FormatCount(imghdr.FormatJPEG.String()),
		),
		"",
		megapixels(stats.TotalPixels()),
		humanize.IBytes(stats.TotalBytes()),
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignCenter, AlignFooter: text.AlignCenter},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	tw.SetStyle(table.StyleLight)

	tw.Render()
}
