package inspect_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgprobe/imgprobe/internal/cli/inspect"
)

func TestStatsStorage(t *testing.T) {
	var (
		ctx, cancel = context.WithCancel(context.Background())
		stats       = inspect.NewStatsStorage(2)
	)

	defer cancel()

	go stats.Watch(ctx)
	defer stats.Close()

	stats.Push(ctx, inspect.InspectionStat{
		FilePath: "/tmp/a.png", FileType: "PNG", Width: 100, Height: 200, FileSize: 1024,
	})
	stats.Push(ctx, inspect.InspectionStat{
		FilePath: "/tmp/b.jpg", FileType: "JPEG", Width: 10, Height: 10, FileSize: 512,
	})

	require.Eventually(t, func() bool { return stats.TotalFiles() == 2 }, time.Second, time.Millisecond)

	assert.EqualValues(t, 1536, stats.TotalBytes())
	assert.EqualValues(t, 100*200+10*10, stats.TotalPixels())
	assert.EqualValues(t, 1, stats.FormatCount("PNG"))
	assert.EqualValues(t, 1, stats.FormatCount("JPEG"))
	assert.EqualValues(t, 0, stats.FormatCount("GIF"))
	assert.Len(t, stats.History(), 2)
}

func TestStatsStorage_PushAfterClose(t *testing.T) {
	var (
		ctx   = context.Background()
		stats = inspect.NewStatsStorage(1)
	)

	stats.Close()
	stats.Close() // repeated closing must not panic

	// must not block
	stats.Push(ctx, inspect.InspectionStat{FilePath: "/tmp/a.png", FileType: "PNG"})

	assert.EqualValues(t, 0, stats.TotalFiles())
}
