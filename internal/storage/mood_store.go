package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/moodcal/internal/logging"
	"github.com/sandeepkv93/moodcal/internal/model"
)

// MoodStore keeps at most one mood record per date, serialized as a single
// JSON array under MoodKey.
type MoodStore struct {
	kv  KV
	log *logging.Logger
	now func() time.Time
}

func NewMoodStore(kv KV, logger *logging.Logger) *MoodStore {
	return &MoodStore{
		kv:  kv,
		log: logging.OrNop(logger).WithComponent("mood-store"),
		now: time.Now,
	}
}

// WithClock replaces the time source used for timestamps and "today".
func (s *MoodStore) WithClock(now func() time.Time) *MoodStore {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *MoodStore) load(ctx context.Context) ([]model.MoodRecord, error) {
	raw, ok, err := s.kv.Get(ctx, MoodKey)
	if err != nil {
		return nil, fmt.Errorf("read mood data: %w", err)
	}
	if !ok || raw == "" {
		return []model.MoodRecord{}, nil
	}
	var records []model.MoodRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode mood data: %w", err)
	}
	return records, nil
}

// loadForWrite refuses to continue from an unreadable collection so a bad
// blob is never replaced by a partial one.
func (s *MoodStore) loadForWrite(ctx context.Context) ([]model.MoodRecord, error) {
	records, err := s.load(ctx)
	if err != nil {
		s.log.Errorw("mood data unreadable, refusing write", "error", err)
		return nil, model.StorageError("mood data could not be read", err)
	}
	return records, nil
}

func (s *MoodStore) save(ctx context.Context, records []model.MoodRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		s.log.Errorw("encode mood data failed", "error", err)
		return model.StorageError("saving mood data failed", err)
	}
	if err := s.kv.Set(ctx, MoodKey, string(payload)); err != nil {
		s.log.Errorw("write mood data failed", "error", err)
		return model.StorageError("saving mood data failed", err)
	}
	return nil
}

// All returns every record. Unreadable data degrades to an empty list.
func (s *MoodStore) All(ctx context.Context) []model.MoodRecord {
	records, err := s.load(ctx)
	if err != nil {
		s.log.Errorw("read mood data failed", "error", err)
		return []model.MoodRecord{}
	}
	return records
}

// Upsert writes the record for date, replacing any existing one in place.
// Unlock eligibility is the caller's concern.
func (s *MoodStore) Upsert(ctx context.Context, date string, mood model.MoodTag) (model.MoodRecord, error) {
	if err := model.ValidateDate(date); err != nil {
		return model.MoodRecord{}, err
	}
	if !mood.IsValid() {
		return model.MoodRecord{}, model.ValidationError(fmt.Sprintf("unknown mood %q", mood))
	}
	records, err := s.loadForWrite(ctx)
	if err != nil {
		return model.MoodRecord{}, err
	}

	rec := model.MoodRecord{
		Date:       date,
		Mood:       mood,
		Score:      mood.Score(),
		RecordedAt: s.now(),
	}
	replaced := false
	for i := range records {
		if records[i].Date == date {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}
	if err := s.save(ctx, records); err != nil {
		return model.MoodRecord{}, err
	}
	s.log.Debugw("mood recorded", "date", date, "mood", mood, "replaced", replaced)
	return rec, nil
}

func (s *MoodStore) Get(ctx context.Context, date string) (model.MoodRecord, bool) {
	for _, rec := range s.All(ctx) {
		if rec.Date == date {
			return rec, true
		}
	}
	return model.MoodRecord{}, false
}

func (s *MoodStore) Delete(ctx context.Context, date string) error {
	records, err := s.loadForWrite(ctx)
	if err != nil {
		return err
	}
	kept := make([]model.MoodRecord, 0, len(records))
	for _, rec := range records {
		if rec.Date != date {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return s.save(ctx, kept)
}

// Recent returns one entry per day for the n days ending today, oldest
// first. Days without a record get a score-0 placeholder.
func (s *MoodStore) Recent(ctx context.Context, n int) []model.MoodRecord {
	byDate := make(map[string]model.MoodRecord)
	for _, rec := range s.All(ctx) {
		byDate[rec.Date] = rec
	}
	dates := model.LastNDates(s.now(), n)
	out := make([]model.MoodRecord, 0, len(dates))
	for _, d := range dates {
		if rec, ok := byDate[d]; ok {
			out = append(out, rec)
			continue
		}
		out = append(out, model.MoodRecord{Date: d, Mood: model.DefaultMood, Score: 0})
	}
	return out
}

// Month returns the records whose date falls in the given month.
func (s *MoodStore) Month(ctx context.Context, year int, month time.Month) map[string]model.MoodRecord {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	out := make(map[string]model.MoodRecord)
	for _, rec := range s.All(ctx) {
		if strings.HasPrefix(rec.Date, prefix) {
			out[rec.Date] = rec
		}
	}
	return out
}
