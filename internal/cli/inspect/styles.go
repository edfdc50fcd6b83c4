package inspect

import (
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/text"
)

var unitsAsIs = progress.Units{ //nolint:gochecknoglobals
	Notation:         "",
	NotationPosition: progress.UnitsNotationPositionBefore,
	Formatter:        func(value int64) string { return strconv.Itoa(int(value)) },
}

func newProgressBar(expectedTrackersNum int) progress.Writer {
	var progressStyle = progress.Style{
		Name: "StyleCustomized",
		Chars: progress.StyleChars{
			BoxLeft:       "▐",
			BoxRight:      "▌",
			Finished:      "█",
			Finished25:    "░",
			Finished50:    "▒",
			Finished75:    "▓",
			Indeterminate: progress.StyleCharsBlocks.Indeterminate,
			Unfinished:    "░",
		},
		Colors: progress.StyleColors{
			Message: text.Colors{text.FgWhite},
			Error:   text.Colors{text.FgRed, text.Bold},
			Percent: text.Colors{text.FgHiBlue},
			Stats:   text.Colors{text.FgHiBlack},
			Time:    text.Colors{text.FgGreen},
			Tracker: text.Colors{text.FgYellow},
			Value:   text.Colors{text.FgCyan},
		},
		Options:    progress.StyleOptionsDefault,
		Visibility: progress.StyleVisibilityDefault,
	}

	var pw = progress.NewWriter()

	pw.SetNumTrackersExpected(expectedTrackersNum)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetStyle(progressStyle)
	pw.SetUpdateFrequency(time.Millisecond * 100) //nolint:gomnd

	pw.Style().Visibility.Value = true
	pw.Style().Visibility.Percentage = true
	pw.Style().Visibility.ETA = true
	pw.Style().Options.TimeInProgressPrecision = time.Millisecond
	pw.Style().Options.TimeDonePrecision = time.Millisecond

	return pw
}
