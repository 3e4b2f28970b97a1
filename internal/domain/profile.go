package domain

// GoalType is the user's primary fitness goal.
type GoalType string

const (
	GoalLoseWeight   GoalType = "lose_weight"
	GoalGainWeight   GoalType = "gain_weight"
	GoalGainStrength GoalType = "gain_strength"
	GoalMaintain     GoalType = "maintain"
)

// ExperienceLevel controls how much explanation and terminology the generated
// coaching messages use.
type ExperienceLevel string

const (
	ExperienceNovice       ExperienceLevel = "novice"
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// CoachIntensity controls how directive/harsh the generated coaching language is.
type CoachIntensity string

const (
	IntensityLow     CoachIntensity = "low"
	IntensityMedium  CoachIntensity = "medium"
	IntensityHigh    CoachIntensity = "high"
	IntensityExtreme CoachIntensity = "extreme"
)

// Goals holds the numeric weekly/daily targets the pipeline measures against.
// A zero value means "not set"; progression math treats it as goal absent.
type Goals struct {
	CalorieLimit      float64 `bson:"calorieLimit" json:"calorieLimit"`           // kcal per day
	ProteinTarget     float64 `bson:"proteinTarget" json:"proteinTarget"`         // grams per day
	CarbTarget        float64 `bson:"carbTarget" json:"carbTarget"`               // grams per day
	FatTarget         float64 `bson:"fatTarget" json:"fatTarget"`                 // grams per day
	WorkoutsPerWeek   int     `bson:"workoutsPerWeek" json:"workoutsPerWeek"`     // strength sessions
	CardioPerWeek     int     `bson:"cardioPerWeek" json:"cardioPerWeek"`         // cardio sessions
	WaterLitersPerDay float64 `bson:"waterLitersPerDay" json:"waterLitersPerDay"` // liters
	StartingWeightKg  float64 `bson:"startingWeightKg" json:"startingWeightKg"`
}

// Coach is the assigned coach identity: a display name, a free-text persona
// the model should adopt, and optional per-intensity instruction overrides.
// An override, when non-empty, fully replaces the canned text for that level.
type Coach struct {
	Name               string                    `bson:"name" json:"name"`
	Persona            string                    `bson:"persona,omitempty" json:"persona,omitempty"`
	IntensityOverrides map[CoachIntensity]string `bson:"intensityOverrides,omitempty" json:"intensityOverrides,omitempty"`
}

// Profile is the coaching-relevant slice of a user record. Read-only to the
// message pipeline.
type Profile struct {
	Goal       GoalType        `bson:"goal" json:"goal"`
	Goals      Goals           `bson:"goals" json:"goals"`
	Experience ExperienceLevel `bson:"experience" json:"experience"`
	Intensity  CoachIntensity  `bson:"intensity" json:"intensity"`
	Coach      Coach           `bson:"coach" json:"coach"`
}
