package catalog

import "fmt"

// Category groups exercises by training purpose
type Category string

const (
	CategoryWarmup       Category = "warmup"
	CategoryTechnique    Category = "technique"
	CategoryStrength     Category = "strength"
	CategoryCardio       Category = "cardio"
	CategoryCooldown     Category = "cooldown"
	CategoryStretching   Category = "stretching"
	CategoryCombinations Category = "combinations"
)

// Difficulty is the level an exercise is aimed at
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyProfessional Difficulty = "professional"
)

// MuscleGroup is a body area an exercise targets
type MuscleGroup string

const (
	MuscleArms      MuscleGroup = "arms"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleCore      MuscleGroup = "core"
	MuscleLegs      MuscleGroup = "legs"
	MuscleFullBody  MuscleGroup = "full_body"
)

// Exercise is an immutable content record. Optional numeric fields are nil
// when the exercise does not prescribe them.
type Exercise struct {
	ID              string        `yaml:"id" json:"id"`
	Name            string        `yaml:"name" json:"name"`
	Description     string        `yaml:"description" json:"description"`
	Instructions    string        `yaml:"instructions" json:"instructions"`
	Category        Category      `yaml:"category" json:"category"`
	Difficulty      Difficulty    `yaml:"difficulty" json:"difficulty"`
	TargetMuscles   []MuscleGroup `yaml:"target_muscles" json:"targetMuscles"`
	DurationSeconds *int          `yaml:"duration_seconds" json:"durationSeconds,omitempty"`
	Repetitions     *int          `yaml:"repetitions" json:"repetitions,omitempty"`
	Sets            *int          `yaml:"sets" json:"sets,omitempty"`
	RestBetweenSets *int          `yaml:"rest_between_sets" json:"restBetweenSets,omitempty"`
	VideoURL        string        `yaml:"video_url" json:"videoUrl,omitempty"`
	Tips            []string      `yaml:"tips" json:"tips,omitempty"`
	CommonMistakes  []string      `yaml:"common_mistakes" json:"commonMistakes,omitempty"`
	Equipment       []string      `yaml:"equipment" json:"equipment,omitempty"`
}

// Format is the short prescription shown next to the exercise name:
// "sets × reps", else the duration, else "free".
func (e Exercise) Format() string {
	if e.Repetitions != nil && e.Sets != nil {
		return fmt.Sprintf("%d × %d", *e.Sets, *e.Repetitions)
	}
	if e.DurationSeconds != nil {
		minutes, seconds := *e.DurationSeconds/60, *e.DurationSeconds%60
		if minutes > 0 {
			return fmt.Sprintf("%d min %d sec", minutes, seconds)
		}
		return fmt.Sprintf("%d sec", seconds)
	}
	return "free"
}

func intPtr(v int) *int { return &v }
