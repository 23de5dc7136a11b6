package journal

import (
	"context"
	"time"

	"github.com/sandeepkv93/moodcal/internal/logging"
	"github.com/sandeepkv93/moodcal/internal/model"
	"github.com/sandeepkv93/moodcal/internal/storage"
	"github.com/sandeepkv93/moodcal/internal/unlock"
)

// Trend is the score series behind the trend chart.
type Trend struct {
	Points   []model.MoodRecord
	Recorded int
	Average  float64
}

// DayMood is one cell of the month grid.
type DayMood struct {
	Date   string
	Day    int
	Record model.MoodRecord
	Set    bool
}

// Service records moods for days, enforcing the unlock rules at selection
// time only. Stored records are never re-checked.
type Service struct {
	moods  *storage.MoodStore
	engine *unlock.Engine
	log    *logging.Logger
}

func NewService(moods *storage.MoodStore, engine *unlock.Engine, logger *logging.Logger) *Service {
	return &Service{
		moods:  moods,
		engine: engine,
		log:    logging.OrNop(logger).WithComponent("journal"),
	}
}

func (s *Service) SelectMood(ctx context.Context, date string, mood model.MoodTag) (model.MoodRecord, error) {
	if err := model.ValidateDate(date); err != nil {
		return model.MoodRecord{}, err
	}
	if !mood.IsValid() {
		return model.MoodRecord{}, model.ValidationError("unknown mood " + string(mood))
	}
	if v := s.engine.ValidateMoodSelection(ctx, date, mood); !v.Valid {
		return model.MoodRecord{}, model.ValidationError(v.Reason)
	}
	rec, err := s.moods.Upsert(ctx, date, mood)
	if err != nil {
		return model.MoodRecord{}, err
	}
	s.log.WithDate(date).Infow("mood recorded", "mood", mood, "score", rec.Score)
	return rec, nil
}

func (s *Service) ClearMood(ctx context.Context, date string) error {
	if err := model.ValidateDate(date); err != nil {
		return err
	}
	return s.moods.Delete(ctx, date)
}

func (s *Service) Mood(ctx context.Context, date string) (model.MoodRecord, bool) {
	return s.moods.Get(ctx, date)
}

func (s *Service) Trend(ctx context.Context, days int) Trend {
	points := s.moods.Recent(ctx, days)
	trend := Trend{Points: points}
	total := 0
	for _, p := range points {
		if p.IsSet() {
			trend.Recorded++
			total += p.Score
		}
	}
	if trend.Recorded > 0 {
		trend.Average = float64(total) / float64(trend.Recorded)
	}
	return trend
}

// MonthSummary returns one entry per calendar day of the month, in order.
func (s *Service) MonthSummary(ctx context.Context, year int, month time.Month) []DayMood {
	records := s.moods.Month(ctx, year, month)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	days := first.AddDate(0, 1, -1).Day()
	out := make([]DayMood, 0, days)
	for d := 1; d <= days; d++ {
		date := model.FormatDate(first.AddDate(0, 0, d-1))
		rec, ok := records[date]
		out = append(out, DayMood{Date: date, Day: d, Record: rec, Set: ok})
	}
	return out
}
