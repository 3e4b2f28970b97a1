package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Per-user, per-date records. Each daily collection keys its documents with a
// deterministic string id "<userID>_<YYYY-MM-DD>" so a day's record can be
// fetched with a single point lookup. Absence of a record for a date is a
// normal state, never an error.

// DailyCheckin is the user's morning check-in for one calendar day.
type DailyCheckin struct {
	ID             string    `bson:"_id" json:"id"` // userID_date
	UserID         string    `bson:"userId" json:"userId"`
	Date           string    `bson:"date" json:"date"` // YYYY-MM-DD
	WeightKg       *float64  `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	Steps          *int      `bson:"steps,omitempty" json:"steps,omitempty"`
	SleepHours     *float64  `bson:"sleepHours,omitempty" json:"sleepHours,omitempty"`
	Trained        bool      `bson:"trained" json:"trained"`
	DidCardio      bool      `bson:"didCardio" json:"didCardio"`
	CalorieGoalMet bool      `bson:"calorieGoalMet" json:"calorieGoalMet"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// FoodDiaryDay is the per-day rollup of the food diary: totals only. The
// entry-level arithmetic (servings, macros per entry) happens outside this
// core and is persisted pre-summed.
type FoodDiaryDay struct {
	ID            string    `bson:"_id" json:"id"` // userID_date
	UserID        string    `bson:"userId" json:"userId"`
	Date          string    `bson:"date" json:"date"`
	TotalCalories float64   `bson:"totalCalories" json:"totalCalories"`
	TotalProtein  float64   `bson:"totalProtein" json:"totalProtein"`
	TotalCarbs    float64   `bson:"totalCarbs" json:"totalCarbs"`
	TotalFat      float64   `bson:"totalFat" json:"totalFat"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// WaterLog is the per-day water intake total.
type WaterLog struct {
	ID        string    `bson:"_id" json:"id"` // userID_date
	UserID    string    `bson:"userId" json:"userId"`
	Date      string    `bson:"date" json:"date"`
	TotalMl   int       `bson:"totalMl" json:"totalMl"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SessionType distinguishes strength workouts from cardio.
type SessionType string

const (
	SessionWorkout SessionType = "workout"
	SessionCardio  SessionType = "cardio"
)

// SessionStatus is the lifecycle state of a logged session.
type SessionStatus string

const (
	SessionPlanned   SessionStatus = "planned"
	SessionCompleted SessionStatus = "completed"
	SessionSkipped   SessionStatus = "skipped"
)

// SessionLog is one workout or cardio session. Zero or more may exist per
// date, so these are range-queried rather than point-looked-up.
type SessionLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"userId"`
	Date            string             `bson:"date" json:"date"`
	Type            SessionType        `bson:"type" json:"type"`
	Status          SessionStatus      `bson:"status" json:"status"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	DurationMinutes int                `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// WeeklyCheckin is the user's subjective end-of-week reflection plus the
// weekly averages pre-computed at submission time. At most one per week;
// keyed by "<userID>_<weekStart>".
type WeeklyCheckin struct {
	ID               string    `bson:"_id" json:"id"` // userID_weekStart
	UserID           string    `bson:"userId" json:"userId"`
	WeekStart        string    `bson:"weekStart" json:"weekStart"`             // Monday, YYYY-MM-DD
	EnergyLevel      int       `bson:"energyLevel" json:"energyLevel"`         // 1-10
	MotivationLevel  int       `bson:"motivationLevel" json:"motivationLevel"` // 1-10
	StressLevel      int       `bson:"stressLevel" json:"stressLevel"`         // 1-10
	WentWell         string    `bson:"wentWell,omitempty" json:"wentWell,omitempty"`
	CouldImprove     string    `bson:"couldImprove,omitempty" json:"couldImprove,omitempty"`
	NextWeekFocus    string    `bson:"nextWeekFocus,omitempty" json:"nextWeekFocus,omitempty"`
	AvgWeightKg      float64   `bson:"avgWeightKg,omitempty" json:"avgWeightKg,omitempty"`
	AvgSleepHours    float64   `bson:"avgSleepHours,omitempty" json:"avgSleepHours,omitempty"`
	AvgDailyCalories float64   `bson:"avgDailyCalories,omitempty" json:"avgDailyCalories,omitempty"`
	PhotoObjectKey   string    `bson:"photoObjectKey,omitempty" json:"photoObjectKey,omitempty"` // progress photo in object storage
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

// CoachingMessage is the generated weekly coaching artifact. The weekly
// pipeline persists the result so the following week's run can reference the
// commitments made in it.
type CoachingMessage struct {
	ID          string    `bson:"_id" json:"id"` // userID_weekStart
	UserID      string    `bson:"userId" json:"userId"`
	WeekStart   string    `bson:"weekStart" json:"weekStart"`
	Subject     string    `bson:"subject" json:"subject"`
	Body        string    `bson:"body" json:"body"`
	CoachName   string    `bson:"coachName" json:"coachName"`
	GeneratedAt time.Time `bson:"generatedAt" json:"generatedAt"`
}
