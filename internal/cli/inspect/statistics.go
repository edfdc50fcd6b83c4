package inspect

import (
	"context"
	"sync"
	"sync/atomic"
)

type (
	// StatsCollector accumulates the inspection results.
	StatsCollector interface {
		Watch(context.Context)                // starts collecting stats
		Push(context.Context, InspectionStat) // pushes a new stat
		Close()                               // stops collecting stats

		History() []InspectionStat // returns all collected stats
		TotalBytes() uint64        // returns total size of all inspected files
		TotalPixels() uint64       // returns total pixels count of all inspected files
		TotalFiles() uint32        // returns total number of inspected files
		FormatCount(string) uint32 // returns number of files with the given format
	}

	// InspectionStat represents a single successful inspection result.
	InspectionStat struct {
		FilePath, FileType string
		Width, Height      uint32
		FileSize           uint64
	}

	// StatsStorage is a storage for inspection stats.
	StatsStorage struct {
		mu sync.Mutex

		ch      chan InspectionStat
		history []InspectionStat

		totalBytes  uint64
		totalPixels uint64
		byFormat    map[string]uint32

		closed uint32
		close  chan struct{}
	}
)

var _ StatsCollector = (*StatsStorage)(nil) // ensure that struct implements the StatsCollector interface

// NewStatsStorage creates a new StatsStorage.
func NewStatsStorage(expectedHistoryLen int) *StatsStorage {
	return &StatsStorage{
		ch:       make(chan InspectionStat, 1),
		history:  make([]InspectionStat, 0, expectedHistoryLen),
		byFormat: make(map[string]uint32),
		close:    make(chan struct{}),
	}
}

// History returns all collected stats.
func (s *StatsStorage) History() []InspectionStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.history
}

// TotalBytes returns total size of all inspected files.
func (s *StatsStorage) TotalBytes() (total uint64) {
	s.mu.Lock()
	total = s.totalBytes
	s.mu.Unlock()

	return
}

// TotalPixels returns total pixels count of all inspected files.
func (s *StatsStorage) TotalPixels() (total uint64) {
	s.mu.Lock()
	total = s.totalPixels
	s.mu.Unlock()

	return
}

// TotalFiles returns total number of inspected files.
func (s *StatsStorage) TotalFiles() (total uint32) {
	s.mu.Lock()
	total = uint32(len(s.history))
	s.mu.Unlock()

	return
}

// FormatCount returns number of files with the given format.
func (s *StatsStorage) FormatCount(format string) (count uint32) {
	s.mu.Lock()
	count = s.byFormat[format]
	s.mu.Unlock()

	return
}

// Watch starts collecting stats until the context cancellation or the storage closing.
func (s *StatsStorage) Watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case <-s.close:
			return

		case stat, isOpened := <-s.ch:
			if !isOpened {
				return
			}

			s.mu.Lock()
			s.history = append(s.history, stat)
			s.totalBytes += stat.FileSize
			s.totalPixels += uint64(stat.Width) * uint64(stat.Height)
			s.byFormat[stat.FileType]++
			s.mu.Unlock()
		}
	}
}

// Push sends the stat into the storage (in a context-aware way).
func (s *StatsStorage) Push(ctx context.Context, stat InspectionStat) {
	select {
	case <-ctx.Done():
	case <-s.close:
	case s.ch <- stat:
	}
}

// Close stops collecting stats.
func (s *StatsStorage) Close() {
	if atomic.CompareAndSwapUint32(&s.closed, 0, 1) {
		close(s.close)
	}
}
