package catalog

var builtinExercises = []Exercise{
	{
		ID:              "warmup-1",
		Name:            "Footwork Warm-up",
		Description:     "Light bouncing and stance drills",
		Instructions:    "Take your fighting stance and stay light on the balls of your feet.",
		Category:        CategoryWarmup,
		Difficulty:      DifficultyBeginner,
		TargetMuscles:   []MuscleGroup{MuscleLegs, MuscleCore},
		DurationSeconds: intPtr(10),
		Repetitions:     intPtr(10),
		Sets:            intPtr(3),
		RestBetweenSets: intPtr(30),
		Tips:            []string{"Start with small basic hops"},
		CommonMistakes:  []string{"Jumping too high"},
		Equipment:       []string{"Boxing gloves", "Hand wraps"},
	},
	{
		ID:              "technique-1",
		Name:            "Jab",
		Description:     "Straight punch with the lead hand",
		Instructions:    "From your stance, extend the lead hand quickly and return it to guard.",
		Category:        CategoryTechnique,
		Difficulty:      DifficultyBeginner,
		TargetMuscles:   []MuscleGroup{MuscleArms, MuscleShoulders},
		DurationSeconds: intPtr(10),
		Repetitions:     intPtr(10),
		Sets:            intPtr(3),
		RestBetweenSets: intPtr(30),
		VideoURL:        "https://www.youtube.com/watch?v=1D9v6KtBQrk",
		Tips:            []string{"Keep the rear hand at your chin", "Turn the fist over at the end of the punch"},
		CommonMistakes:  []string{"Dropping the rear hand"},
		Equipment:       []string{"Boxing gloves", "Hand wraps"},
	},
	{
		ID:              "technique-2",
		Name:            "Cross",
		Description:     "Straight punch with the rear hand",
		Instructions:    "From your stance, drive the rear hand forward while pivoting the rear foot.",
		Category:        CategoryTechnique,
		Difficulty:      DifficultyIntermediate,
		TargetMuscles:   []MuscleGroup{MuscleArms, MuscleShoulders},
		DurationSeconds: intPtr(15),
		Repetitions:     intPtr(8),
		Sets:            intPtr(3),
		RestBetweenSets: intPtr(30),
		VideoURL:        "https://www.youtube.com/watch?v=2Xo3NJ7LCCw",
		Tips:            []string{"Rotate the hips", "Keep your guard up"},
		CommonMistakes:  []string{"No torso rotation"},
		Equipment:       []string{"Boxing gloves", "Hand wraps"},
	},
	{
		ID:              "combinations-1",
		Name:            "Jab-Cross Combination",
		Description:     "The one-two",
		Instructions:    "Throw a jab followed immediately by a cross.",
		Category:        CategoryCombinations,
		Difficulty:      DifficultyIntermediate,
		TargetMuscles:   []MuscleGroup{MuscleArms, MuscleShoulders},
		DurationSeconds: intPtr(20),
		Repetitions:     intPtr(5),
		Sets:            intPtr(3),
		RestBetweenSets: intPtr(30),
		VideoURL:        "https://www.youtube.com/watch?v=7v0_uipNGao",
		Tips:            []string{"Start slowly", "Focus on accuracy"},
		CommonMistakes:  []string{"Pausing between punches"},
		Equipment:       []string{"Boxing gloves", "Hand wraps", "Heavy bag"},
	},
	{
		ID:              "technique-3",
		Name:            "Shadow Boxing",
		Description:     "Continuous movement against an imagined opponent",
		Instructions:    "Keep moving, mix punches, slips and footwork.",
		Category:        CategoryTechnique,
		Difficulty:      DifficultyAdvanced,
		TargetMuscles:   []MuscleGroup{MuscleFullBody},
		DurationSeconds: intPtr(45),
		Repetitions:     intPtr(2),
		Sets:            intPtr(2),
		RestBetweenSets: intPtr(60),
		VideoURL:        "https://www.youtube.com/watch?v=kqB19LuJ5jE",
		Tips:            []string{"Picture a real opponent", "Vary the pace"},
		CommonMistakes:  []string{"No defensive movement"},
		Equipment:       []string{"Boxing gloves (optional)"},
	},
	{
		ID:              "cardio-1",
		Name:            "Jump Rope",
		Description:     "Endurance cardio",
		Instructions:    "Skip at a steady pace.",
		Category:        CategoryCardio,
		Difficulty:      DifficultyBeginner,
		TargetMuscles:   []MuscleGroup{MuscleLegs, MuscleFullBody},
		DurationSeconds: intPtr(300),
		Tips:            []string{"Keep elbows close to the body"},
		CommonMistakes:  []string{"Jumping too high"},
		Equipment:       []string{"Jump rope"},
	},
}
