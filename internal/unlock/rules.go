package unlock

import "github.com/sandeepkv93/moodcal/internal/model"

// Rung maps a completed-todo threshold to the mood it unlocks.
type Rung struct {
	RequiredTodos int
	Mood          model.MoodTag
}

var baseMoods = []model.MoodTag{model.MoodCry, model.MoodSad, model.MoodAngry, model.MoodRelax}

// ladder thresholds are strictly increasing; the last rung is the super mood.
var ladder = []Rung{
	{RequiredTodos: 1, Mood: model.MoodPleasure},
	{RequiredTodos: 2, Mood: model.MoodSurprise},
	{RequiredTodos: 3, Mood: model.MoodHappy},
	{RequiredTodos: 4, Mood: model.MoodExcited},
	{RequiredTodos: 5, Mood: model.SuperMood},
}

var rewardTodos = []string{
	"Leave work before 9pm, then grab some snacks and a drink from the convenience store",
	"Play a game for an hour or watch an hour of game streams",
	"Write a journal entry about anything but work: your own thoughts or some gossip",
	"Pick up some fruit on the way home",
	"Do 20 squats before bed",
	"Tidy up your room",
	"Listen to a whole podcast episode and note a few ideas that inspired you",
	"Send a hello to your best friend",
	"Have a chat with your family",
	"Make a playlist that matches your recent mood and give it a name",
}

func BaseMoods() []model.MoodTag {
	out := make([]model.MoodTag, len(baseMoods))
	copy(out, baseMoods)
	return out
}

func Ladder() []Rung {
	out := make([]Rung, len(ladder))
	copy(out, ladder)
	return out
}

func RewardTodos() []string {
	out := make([]string, len(rewardTodos))
	copy(out, rewardTodos)
	return out
}

// TotalMoods counts every tag the ladder can ever offer.
func TotalMoods() int {
	return len(baseMoods) + len(ladder)
}
