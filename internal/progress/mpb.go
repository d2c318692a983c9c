package progress

import (
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// MPB is a Reporter backed by github.com/vbauerster/mpb/v8, the multi-bar
// renderer pulled in from deckhouse-deckhouse-cli's go.mod — its
// mpb.BarPriority option maps directly onto the front/back insertion
// positions spec.md §4.I asks the capability to support.
type MPB struct {
	progress *mpb.Progress
}

// NewMPB builds an MPB reporter writing to the process's default output.
func NewMPB() *MPB {
	return &MPB{progress: mpb.New(mpb.WithWidth(48))}
}

func (m *MPB) Insert(index int, label string) Bar {
	return m.newBar(label, mpb.BarPriority(index))
}

func (m *MPB) InsertFromBack(index int, label string) Bar {
	return m.newBar(label, mpb.BarPriority(-index-1))
}

func (m *MPB) newBar(label string, priority mpb.BarOption) Bar {
	bar := m.progress.New(0,
		mpb.BarStyle(),
		priority,
		mpb.PrependDecorators(decor.Name(label, decor.WC{W: len(label) + 1, C: decor.DindentRight})),
		mpb.AppendDecorators(decor.CountersKibiByte("% .1f / % .1f")),
	)
	return &mpbBar{bar: bar}
}

type mpbBar struct {
	bar   *mpb.Bar
	total int64
}

func (b *mpbBar) SetTotal(total int64) {
	b.total = total
	b.bar.SetTotal(total, false)
}

func (b *mpbBar) Increment(n int64) {
	b.bar.IncrBy(int(n))
}

func (b *mpbBar) Done() {
	b.bar.SetTotal(b.total, true)
}
