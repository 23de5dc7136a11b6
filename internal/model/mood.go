package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMood = errors.New("model: invalid mood tag")

type MoodTag string

const (
	MoodCry      MoodTag = "cry"
	MoodSad      MoodTag = "sad"
	MoodAngry    MoodTag = "angry"
	MoodRelax    MoodTag = "relax"
	MoodPleasure MoodTag = "pleasure"
	MoodSurprise MoodTag = "surprise"
	MoodHappy    MoodTag = "happy"
	MoodExcited  MoodTag = "excited"
	MoodKissing  MoodTag = "kissing"
)

// SuperMood is only reachable with every daily todo completed.
const SuperMood = MoodKissing

// DefaultMood fills trend slots for days without a record.
const DefaultMood = MoodRelax

type MoodConfig struct {
	Score int
	Label string
	Color string
}

var moodOrder = []MoodTag{
	MoodCry, MoodSad, MoodAngry, MoodRelax,
	MoodPleasure, MoodSurprise, MoodHappy, MoodExcited,
	MoodKissing,
}

var moodConfig = map[MoodTag]MoodConfig{
	MoodCry:      {Score: 1, Label: "Crying", Color: "#FB8285"},
	MoodSad:      {Score: 2, Label: "Sad", Color: "#81F9FF"},
	MoodAngry:    {Score: 3, Label: "Angry", Color: "#FB83F7"},
	MoodRelax:    {Score: 4, Label: "Relaxed", Color: "#4FB2FF"},
	MoodPleasure: {Score: 5, Label: "Pleased", Color: "#48FBD2"},
	MoodSurprise: {Score: 6, Label: "Surprised", Color: "#5DFA60"},
	MoodHappy:    {Score: 7, Label: "Happy", Color: "#5DFA60"},
	MoodExcited:  {Score: 8, Label: "Ecstatic", Color: "#5DFA60"},
	MoodKissing:  {Score: 9, Label: "Super Mood", Color: "#FFB3D9"},
}

// AllMoods returns every tag in rank order.
func AllMoods() []MoodTag {
	out := make([]MoodTag, len(moodOrder))
	copy(out, moodOrder)
	return out
}

func (m MoodTag) IsValid() bool {
	_, ok := moodConfig[m]
	return ok
}

func (m MoodTag) IsSuper() bool {
	return m == SuperMood
}

func (m MoodTag) Config() MoodConfig {
	return moodConfig[m]
}

func (m MoodTag) Score() int {
	return moodConfig[m].Score
}

// Label falls back to the raw tag for unknown values.
func (m MoodTag) Label() string {
	if cfg, ok := moodConfig[m]; ok {
		return cfg.Label
	}
	return string(m)
}

func ParseMoodTag(raw string) (MoodTag, error) {
	tag := MoodTag(strings.ToLower(strings.TrimSpace(raw)))
	if !tag.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMood, raw)
	}
	return tag, nil
}

type MoodRecord struct {
	Date       string    `json:"date"`
	Mood       MoodTag   `json:"mood"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"timestamp"`
}

// IsSet reports whether the record is a real entry rather than an unset
// placeholder. Placeholders carry score 0, which no tag is configured with.
func (r MoodRecord) IsSet() bool {
	return r.Score > 0
}
