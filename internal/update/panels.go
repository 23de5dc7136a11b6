package update

import (
	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderUnlockPanel() string {
	p := m.Snapshot.Progress
	hints := make([]string, 0, len(m.Snapshot.Hints))
	for _, h := range m.Snapshot.Hints {
		hints = append(hints, h.Message+" ("+h.Progress+")")
	}
	return views.RenderUnlockPanel(views.UnlockPanelData{
		ProgressView: m.unlockProgress.ViewAs(float64(p.Percentage) / 100),
		Completed:    p.Completed,
		Total:        p.Total,
		Unlocked:     p.Unlocked,
		Available:    p.Available,
		Hints:        hints,
	})
}

func (m Model) renderTrend() string {
	t := m.Snapshot.Trend
	scores := make([]int, 0, len(t.Points))
	for _, p := range t.Points {
		scores = append(scores, p.Score)
	}
	return views.RenderTrend(views.TrendData{Days: len(scores), Scores: scores, Average: t.Average}, model.SuperMood.Score())
}
