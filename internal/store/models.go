package store

import (
	"fmt"
	"time"
)

// --- Activity -----------------------------------------------------------

// Source identifies where an Activity record came from.
type Source string

const (
	SourceProvider Source = "provider"
	SourceManual   Source = "manual"
)

// Surface is the running/riding surface an activity took place on.
type Surface string

const (
	SurfaceRoad      Surface = "road"
	SurfaceTrack     Surface = "track"
	SurfaceTrail     Surface = "trail"
	SurfaceTreadmill Surface = "treadmill"
	SurfaceIndoor    Surface = "indoor"
	SurfaceUnknown   Surface = "unknown"
)

// SportType is the closed set of canonical sport tags the normalizer
// produces.
type SportType string

const (
	SportRun             SportType = "run"
	SportTrailRun        SportType = "trail_run"
	SportTreadmillRun    SportType = "treadmill_run"
	SportCycle           SportType = "cycle"
	SportSwim            SportType = "swim"
	SportClimb           SportType = "climb"
	SportStrength        SportType = "strength"
	SportHike            SportType = "hike"
	SportCrossfit        SportType = "crossfit"
	SportYogaFlow        SportType = "yoga_flow"
	SportYogaRestorative SportType = "yoga_restorative"
	SportOther           SportType = "other"
)

// IsRunning reports whether a canonical sport tag is a running discipline.
func (s SportType) IsRunning() bool {
	switch s {
	case SportRun, SportTrailRun, SportTreadmillRun:
		return true
	default:
		return false
	}
}

// SessionType is the advisory EASY/MODERATE/QUALITY/RACE classification.
type SessionType string

const (
	SessionEasy     SessionType = "EASY"
	SessionModerate SessionType = "MODERATE"
	SessionQuality  SessionType = "QUALITY"
	SessionRace     SessionType = "RACE"
)

// RPESource is the priority-ordered origin of a chosen RPE estimate.
type RPESource string

const (
	RPESourceUser     RPESource = "user"
	RPESourceHR       RPESource = "hr"
	RPESourceText     RPESource = "text"
	RPESourceRelative RPESource = "relative"
	RPESourceDuration RPESource = "duration"
)

// Confidence is a coarse three-level confidence label used throughout the
// core (RPE estimates, readiness, predictions, recovery estimates).
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Severity ranks injury/illness severity, low to high.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

func (s Severity) rank() int {
	switch s {
	case SeverityMild:
		return 1
	case SeverityModerate:
		return 2
	case SeveritySevere:
		return 3
	default:
		return 0
	}
}

// Worse reports whether s is a strictly higher severity than other.
func (s Severity) Worse(other Severity) bool { return s.rank() > other.rank() }

// RPEEstimate is one candidate RPE reading, tagged by source.
type RPEEstimate struct {
	Source     RPESource  `yaml:"source"`
	Value      float64    `yaml:"value"`
	Confidence Confidence `yaml:"confidence"`
	Reasoning  string     `yaml:"reasoning"`
}

// ChosenRPE is the conflict-resolved RPE plus its full candidate set.
type ChosenRPE struct {
	Value       float64       `yaml:"value"`
	Source      RPESource     `yaml:"source"`
	Confidence  Confidence    `yaml:"confidence"`
	Reasoning   string        `yaml:"reasoning"`
	Alternatives []RPEEstimate `yaml:"alternatives"`
	Conflict    bool          `yaml:"conflict"`
}

// InjuryFlag records a detected injury signal for one body part.
type InjuryFlag struct {
	BodyPart      string   `yaml:"body_part"`
	Severity      Severity `yaml:"severity"`
	RequiresRest  bool     `yaml:"requires_rest"`
	SourceExcerpt string   `yaml:"source_excerpt,omitempty"`
}

// IllnessFlag records a detected illness signal.
type IllnessFlag struct {
	Severity             Severity `yaml:"severity"`
	RecommendedRestDays  int      `yaml:"recommended_rest_days"`
	SourceExcerpt        string   `yaml:"source_excerpt,omitempty"`
}

// ActivityFlags bundles the derived injury/illness signals for an
// activity.
type ActivityFlags struct {
	Injury  *InjuryFlag  `yaml:"injury,omitempty"`
	Illness *IllnessFlag `yaml:"illness,omitempty"`
}

// Activity is the immutable record of one training session.
type Activity struct {
	Header `yaml:",inline"`

	ActivityID string    `yaml:"activity_id"`
	Source     Source    `yaml:"source"`
	ActivityDate string  `yaml:"activity_date"` // YYYY-MM-DD
	StartTime  *time.Time `yaml:"start_time,omitempty"`

	SportType SportType `yaml:"sport_type"`
	SubType   string    `yaml:"sub_type,omitempty"`
	Surface   Surface   `yaml:"surface"`

	DurationMinutes   float64  `yaml:"duration_minutes"`
	DistanceKM        *float64 `yaml:"distance_km,omitempty"`
	AverageHR         *int     `yaml:"average_hr,omitempty"`
	MaxHR             *int     `yaml:"max_hr,omitempty"`
	HasGPS            bool     `yaml:"has_gps"`
	DeviceName        string   `yaml:"device_name,omitempty"`
	RelativeEffort    *int     `yaml:"relative_effort,omitempty"`
	PerceivedExertion *int     `yaml:"perceived_exertion,omitempty"`

	Name          string `yaml:"name,omitempty"`
	Description   string `yaml:"description,omitempty"`
	PrivateNote   string `yaml:"private_note,omitempty"`

	// Derived — written once by the pipeline, never mutated afterwards.
	RPEEstimate       *ChosenRPE     `yaml:"rpe_estimate,omitempty"`
	SystemicLoadAU    float64        `yaml:"systemic_load_au"`
	LowerBodyLoadAU   float64        `yaml:"lower_body_load_au"`
	SessionType       SessionType    `yaml:"session_type,omitempty"`
	Flags             ActivityFlags  `yaml:"flags"`
	WellnessIndicators []string      `yaml:"wellness_indicators,omitempty"`
	NormalizeWarning  string         `yaml:"normalize_warning,omitempty"`
}

func (a *Activity) GetHeader() Header  { return a.Header }
func (a *Activity) SetHeader(h Header) { a.Header = h }

func (a *Activity) Validate() error {
	if a.ActivityID == "" {
		return fmt.Errorf("activity_id is required")
	}
	if a.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be > 0, got %v", a.DurationMinutes)
	}
	if a.RPEEstimate != nil && (a.RPEEstimate.Value < 1 || a.RPEEstimate.Value > 10) {
		return fmt.Errorf("rpe_estimate must be in [1,10], got %v", a.RPEEstimate.Value)
	}
	if a.SystemicLoadAU < 0 || a.LowerBodyLoadAU < 0 {
		return fmt.Errorf("loads must be >= 0")
	}
	if _, err := time.Parse("2006-01-02", a.ActivityDate); err != nil {
		return fmt.Errorf("activity_date: %w", err)
	}
	return nil
}

// MonthKey returns the YYYY-MM shard this activity belongs under, per the
// on-disk layout.
func (a *Activity) MonthKey() (string, error) {
	d, err := time.Parse("2006-01-02", a.ActivityDate)
	if err != nil {
		return "", err
	}
	return d.Format("2006-01"), nil
}

// --- DailyMetrics --------------------------------------------------------

// ActivitySummary is the compact per-activity rollup attached to a day's
// aggregate load.
type ActivitySummary struct {
	ActivityID      string      `yaml:"activity_id"`
	SportType       SportType   `yaml:"sport_type"`
	SystemicLoadAU  float64     `yaml:"systemic_load_au"`
	LowerBodyLoadAU float64     `yaml:"lower_body_load_au"`
	SessionType     SessionType `yaml:"session_type"`
}

// DailyLoad is the aggregated load for one calendar day.
type DailyLoad struct {
	SystemicAU        float64           `yaml:"systemic_au"`
	LowerBodyAU       float64           `yaml:"lower_body_au"`
	ActivitySummaries []ActivitySummary `yaml:"activity_summaries,omitempty"`
	SessionTypes      []SessionType     `yaml:"session_types,omitempty"`
}

// TSBZone is the qualitative training-stress-balance band.
type TSBZone string

const (
	TSBZonePeaked      TSBZone = "peaked"
	TSBZoneFresh       TSBZone = "fresh"
	TSBZoneOptimal     TSBZone = "optimal"
	TSBZoneProductive  TSBZone = "productive"
	TSBZoneOverreached TSBZone = "overreached"
)

// CTLATL bundles the EMA fitness/fatigue/form triad for one day.
type CTLATL struct {
	CTL     float64 `yaml:"ctl"`
	ATL     float64 `yaml:"atl"`
	TSB     float64 `yaml:"tsb"`
	TSBZone TSBZone `yaml:"tsb_zone"`
}

// ACWRZone is the acute:chronic workload ratio's qualitative band.
type ACWRZone string

const (
	ACWRZoneUndertrained ACWRZone = "undertrained"
	ACWRZoneSafe         ACWRZone = "safe"
	ACWRZoneCaution      ACWRZone = "caution"
	ACWRZoneHighRisk     ACWRZone = "high_risk"
)

// ACWR is the acute:chronic workload ratio for one day, or None when fewer
// than acwr_minimum_days of the trailing 28 carry data.
type ACWR struct {
	Value         *float64 `yaml:"value,omitempty"`
	Zone          ACWRZone `yaml:"zone"`
	Acute7d       float64  `yaml:"acute_7d"`
	Chronic28dAvg float64  `yaml:"chronic_28d_avg"`
	DaysOfData    int      `yaml:"days_of_data"`
}

// ReadinessLevel is the coarse band a readiness score maps to.
type ReadinessLevel string

const (
	ReadinessFresh     ReadinessLevel = "fresh"
	ReadinessReady     ReadinessLevel = "ready"
	ReadinessTired     ReadinessLevel = "tired"
	ReadinessExhausted ReadinessLevel = "exhausted"
)

// ReadinessComponents records which weighted inputs were actually available
// and their individual contributions, for explainability.
type ReadinessComponents struct {
	TSB               *float64 `yaml:"tsb,omitempty"`
	LoadTrend         *float64 `yaml:"load_trend,omitempty"`
	SleepQuality      string   `yaml:"sleep_quality,omitempty"`
	SubjectiveSoreness *int    `yaml:"subjective_soreness,omitempty"`
}

// Readiness is the 0-100 composite readiness score for one day.
type Readiness struct {
	Score      int                 `yaml:"score"`
	Level      ReadinessLevel      `yaml:"level"`
	Confidence Confidence          `yaml:"confidence"`
	Components ReadinessComponents `yaml:"components"`
}

// DailyMetrics is the fully-recomputable derived-metrics document for one
// calendar day.
type DailyMetrics struct {
	Header `yaml:",inline"`

	Date                string        `yaml:"date"`
	DailyLoad           DailyLoad     `yaml:"daily_load"`
	CTLATL              CTLATL        `yaml:"ctl_atl"`
	ACWR                ACWR          `yaml:"acwr"`
	Readiness           Readiness     `yaml:"readiness"`
	Flags               ActivityFlags `yaml:"flags"`
	ComputedAt          time.Time     `yaml:"computed_at"`
	BaselineEstablished bool          `yaml:"baseline_established"`
}

func (d *DailyMetrics) GetHeader() Header  { return d.Header }
func (d *DailyMetrics) SetHeader(h Header) { d.Header = h }

func (d *DailyMetrics) Validate() error {
	if _, err := time.Parse("2006-01-02", d.Date); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if d.Readiness.Score < 0 || d.Readiness.Score > 100 {
		return fmt.Errorf("readiness.score must be in [0,100], got %d", d.Readiness.Score)
	}
	if d.DailyLoad.SystemicAU < 0 || d.DailyLoad.LowerBodyAU < 0 {
		return fmt.Errorf("daily_load values must be >= 0")
	}
	return nil
}

// --- WeeklySummary --------------------------------------------------------

// IntensityDistribution is the weekly EASY/MODERATE/QUALITY minute split
// for running sessions, used for 80/20 compliance checks.
type IntensityDistribution struct {
	LowMin          float64 `yaml:"low_min"`
	ModMin          float64 `yaml:"mod_min"`
	HighMin         float64 `yaml:"high_min"`
	LowPct          float64 `yaml:"low_pct"`
	Compliant8020   bool    `yaml:"compliant_80_20"`
}

// WeeklySummary is the rolling per-week rollup document. Only
// the most recently computed week is persisted; historical weeks are
// recomputed on demand from DailyMetrics (see metrics.ComputeWeeklySummary).
type WeeklySummary struct {
	Header `yaml:",inline"`

	WeekStartDate string `yaml:"week_start_date"` // Monday, YYYY-MM-DD
	WeekEndDate   string `yaml:"week_end_date"`   // Sunday, YYYY-MM-DD

	TotalSystemicLoadAU  float64 `yaml:"total_systemic_load_au"`
	TotalLowerBodyLoadAU float64 `yaml:"total_lower_body_load_au"`
	RunSessionCount      int     `yaml:"run_session_count"`
	OtherSessionCount    int     `yaml:"other_session_count"`

	IntensityDistribution  IntensityDistribution `yaml:"intensity_distribution"`
	HighIntensitySessions7d int                  `yaml:"high_intensity_sessions_7d"`

	EndOfWeekCTL float64  `yaml:"end_of_week_ctl"`
	EndOfWeekATL float64  `yaml:"end_of_week_atl"`
	EndOfWeekTSB float64  `yaml:"end_of_week_tsb"`

	PlannedVsActualRatio *float64 `yaml:"planned_vs_actual_ratio,omitempty"`

	ComputedAt time.Time `yaml:"computed_at"`
}

func (w *WeeklySummary) GetHeader() Header  { return w.Header }
func (w *WeeklySummary) SetHeader(h Header) { w.Header = h }

func (w *WeeklySummary) Validate() error {
	start, err := time.Parse("2006-01-02", w.WeekStartDate)
	if err != nil {
		return fmt.Errorf("week_start_date: %w", err)
	}
	if start.Weekday() != time.Monday {
		return fmt.Errorf("week_start_date %s must be a Monday", w.WeekStartDate)
	}
	end, err := time.Parse("2006-01-02", w.WeekEndDate)
	if err != nil {
		return fmt.Errorf("week_end_date: %w", err)
	}
	if !end.Equal(start.AddDate(0, 0, 6)) {
		return fmt.Errorf("week_end_date %s must be start_date + 6 days", w.WeekEndDate)
	}
	return nil
}

// --- TrainingPlan ----------------------------------------------------------

// GoalType is the race distance a training plan targets.
type GoalType string

const (
	Goal5K       GoalType = "5k"
	Goal10K      GoalType = "10k"
	GoalHalf     GoalType = "half"
	GoalMarathon GoalType = "marathon"
)

// PlanPhase is the periodization phase a plan week belongs to.
type PlanPhase string

const (
	PhaseBase  PlanPhase = "base"
	PhaseBuild PlanPhase = "build"
	PhasePeak  PlanPhase = "peak"
	PhaseTaper PlanPhase = "taper"
)

// PhaseWeeks gives the inclusive 1-indexed week-number range of each phase.
type PhaseWeeks struct {
	Base  [2]int `yaml:"base"`
	Build [2]int `yaml:"build"`
	Peak  [2]int `yaml:"peak"`
	Taper [2]int `yaml:"taper"`
}

// WorkoutType is the closed set of prescribable workout kinds.
type WorkoutType string

const (
	WorkoutEasy       WorkoutType = "easy"
	WorkoutLong       WorkoutType = "long"
	WorkoutTempo      WorkoutType = "tempo"
	WorkoutIntervals  WorkoutType = "intervals"
	WorkoutRepetition WorkoutType = "repetition"
	WorkoutRacePace   WorkoutType = "race_pace"
	WorkoutStrides    WorkoutType = "strides"
)

// WorkoutStatus tracks a materialized workout's lifecycle.
type WorkoutStatus string

const (
	WorkoutPlanned  WorkoutStatus = "planned"
	WorkoutCompleted WorkoutStatus = "completed"
	WorkoutSkipped  WorkoutStatus = "skipped"
	WorkoutModified WorkoutStatus = "modified"
)

// PaceRange is an inclusive per-kilometer pace band, in seconds/km.
type PaceRange struct {
	FastSecPerKM int `yaml:"fast_sec_per_km"`
	SlowSecPerKM int `yaml:"slow_sec_per_km"`
}

// HRRange is an inclusive heart-rate band.
type HRRange struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// Workout is one materialized prescription within a populated plan week.
type Workout struct {
	WorkoutID   string        `yaml:"workout_id"`
	Phase       PlanPhase     `yaml:"phase"`
	Date        string        `yaml:"date"`
	Type        WorkoutType   `yaml:"type"`
	DurationMin float64       `yaml:"duration_min"`
	DistanceKM  float64       `yaml:"distance_km"`
	Zone        string        `yaml:"zone"`
	TargetRPE   float64       `yaml:"target_rpe"`
	Pace        *PaceRange    `yaml:"pace,omitempty"`
	HR          *HRRange      `yaml:"hr,omitempty"`
	WarmupMin   float64       `yaml:"warmup_min"`
	CooldownMin float64       `yaml:"cooldown_min"`
	Purpose     string        `yaml:"purpose,omitempty"`
	KeyWorkout  bool          `yaml:"key_workout"`
	Status      WorkoutStatus `yaml:"status"`
}

// QualitySessionSpec is the intent-level description of one quality session
// within a workout_pattern.
type QualitySessionSpec struct {
	Type        WorkoutType `yaml:"type"`
	DistanceKM  float64     `yaml:"distance_km"`
	TargetZone  string      `yaml:"target_zone"`
}

// DayPattern is the intent-level per-day prescription inside a
// workout_pattern.
type DayPattern struct {
	Weekday    time.Weekday          `yaml:"weekday"`
	EasyKM     *float64              `yaml:"easy_km,omitempty"`
	LongKM     *float64              `yaml:"long_km,omitempty"`
	Quality    *QualitySessionSpec   `yaml:"quality,omitempty"`
}

// WorkoutPattern is the intent-level description of a week's structure,
// filled in before workouts[] is materialized.
type WorkoutPattern struct {
	StructureLabel string        `yaml:"structure_label"`
	RunDays        []time.Weekday `yaml:"run_days"`
	LongRunDay     time.Weekday  `yaml:"long_run_day"`
	LongRunPct     float64       `yaml:"long_run_pct"`
	Days           []DayPattern  `yaml:"days,omitempty"`
	PaceZones      map[string]PaceRange `yaml:"pace_zones,omitempty"`
}

// PlanWeek is one week of a training plan, either a macro skeleton entry or
// a populated, materialized week.
type PlanWeek struct {
	WeekNumber            int             `yaml:"week_number"`
	Phase                 PlanPhase       `yaml:"phase"`
	StartDate             string          `yaml:"start_date"` // Monday
	EndDate               string          `yaml:"end_date"`   // Sunday
	TargetVolumeKM        float64         `yaml:"target_volume_km"`
	TargetSystemicLoadAU  *float64        `yaml:"target_systemic_load_au,omitempty"`
	IsRecoveryWeek        bool            `yaml:"is_recovery_week"`
	Notes                 string          `yaml:"notes,omitempty"`
	WorkoutStructureHints string          `yaml:"workout_structure_hints,omitempty"`
	WorkoutPattern         *WorkoutPattern `yaml:"workout_pattern,omitempty"`
	Workouts               []Workout       `yaml:"workouts,omitempty"`
}

// TrainingPlan is the macro skeleton plus whatever weeks have been
// progressively populated.
type TrainingPlan struct {
	Header `yaml:",inline"`

	Goal       GoalType   `yaml:"goal"`
	TotalWeeks int        `yaml:"total_weeks"`
	StartDate  string     `yaml:"start_date"` // Monday
	EndDate    string     `yaml:"end_date"`
	Phases     PhaseWeeks `yaml:"phases"`
	Weeks      []PlanWeek `yaml:"weeks"`
}

func (p *TrainingPlan) GetHeader() Header  { return p.Header }
func (p *TrainingPlan) SetHeader(h Header) { p.Header = h }

func (p *TrainingPlan) Validate() error {
	start, err := time.Parse("2006-01-02", p.StartDate)
	if err != nil {
		return fmt.Errorf("start_date: %w", err)
	}
	if start.Weekday() != time.Monday {
		return fmt.Errorf("start_date %s must be a Monday", p.StartDate)
	}

	seen := make(map[int]bool, len(p.Weeks))
	for _, w := range p.Weeks {
		if seen[w.WeekNumber] {
			return fmt.Errorf("duplicate week_number %d", w.WeekNumber)
		}
		seen[w.WeekNumber] = true

		ws, err := time.Parse("2006-01-02", w.StartDate)
		if err != nil {
			return fmt.Errorf("week %d start_date: %w", w.WeekNumber, err)
		}
		if ws.Weekday() != time.Monday {
			return fmt.Errorf("week %d start_date %s must be a Monday", w.WeekNumber, w.StartDate)
		}
		we, err := time.Parse("2006-01-02", w.EndDate)
		if err != nil {
			return fmt.Errorf("week %d end_date: %w", w.WeekNumber, err)
		}
		if !we.Equal(ws.AddDate(0, 0, 6)) {
			return fmt.Errorf("week %d end_date must be start_date + 6 days", w.WeekNumber)
		}

		if len(w.Workouts) == 0 {
			if w.WorkoutPattern != nil {
				return fmt.Errorf("week %d is a macro week (no workouts) but carries a workout_pattern", w.WeekNumber)
			}
			continue
		}

		var sumKM float64
		for _, wk := range w.Workouts {
			sumKM += wk.DistanceKM
		}
		if w.TargetVolumeKM > 0 {
			deviation := (sumKM - w.TargetVolumeKM) / w.TargetVolumeKM
			if deviation < 0 {
				deviation = -deviation
			}
			if deviation > 0.05 {
				return fmt.Errorf("week %d workouts sum to %.1fkm, outside 5%% of target %.1fkm", w.WeekNumber, sumKM, w.TargetVolumeKM)
			}
		}
	}
	return nil
}

// --- AthleteProfile --------------------------------------------------------

// RunPriority is how running is weighted against other sports.
type RunPriority string

const (
	RunPriorityPrimary   RunPriority = "primary"
	RunPrioritySecondary RunPriority = "secondary"
	RunPriorityEqual     RunPriority = "equal"
)

// ConflictPolicy governs how competing sport/running demands are resolved.
type ConflictPolicy string

const (
	ConflictAskEachTime      ConflictPolicy = "ask_each_time"
	ConflictPrimarySportWins ConflictPolicy = "primary_sport_wins"
	ConflictRunningGoalWins  ConflictPolicy = "running_goal_wins"
)

// PersonalBest is one distance's best recorded time.
type PersonalBest struct {
	Time float64 `yaml:"time_seconds"`
	Date string  `yaml:"date"`
}

// OtherSport describes a non-running activity the athlete regularly does.
type OtherSport struct {
	Sport                 SportType `yaml:"sport"`
	FrequencyPerWeek      float64   `yaml:"frequency_per_week"`
	UnavailableDays       []time.Weekday `yaml:"unavailable_days,omitempty"`
	TypicalDurationMinutes float64  `yaml:"typical_duration_minutes"`
	Paused                bool      `yaml:"paused,omitempty"`
	Reason                string    `yaml:"reason,omitempty"`
}

// Goal is the athlete's current target race.
type Goal struct {
	Type       GoalType `yaml:"type"`
	TargetDate string   `yaml:"target_date"`
	TargetTime *float64 `yaml:"target_time_seconds,omitempty"`
}

// AdaptationThresholds optionally overrides the adaptation toolkit's
// default trigger thresholds.
type AdaptationThresholds struct {
	ACWRElevated        *float64 `yaml:"acwr_elevated,omitempty"`
	ACWRHighRisk        *float64 `yaml:"acwr_high_risk,omitempty"`
	ReadinessLow        *int     `yaml:"readiness_low,omitempty"`
	ReadinessVeryLow    *int     `yaml:"readiness_very_low,omitempty"`
	TSBOverreached      *float64 `yaml:"tsb_overreached,omitempty"`
	LowerBodySpikeRatio *float64 `yaml:"lower_body_spike_ratio,omitempty"`
}

// AthleteProfile is the single per-repository athlete record.
type AthleteProfile struct {
	Header `yaml:",inline"`

	Timezone string `yaml:"timezone"`

	MaxHR        *int `yaml:"max_hr,omitempty"`
	LTHR         *int `yaml:"lthr,omitempty"`
	RestingHR    *int `yaml:"resting_hr,omitempty"`
	Age          *int `yaml:"age,omitempty"`
	YearsRunning *int `yaml:"years_running,omitempty"`

	RunPriority    RunPriority    `yaml:"run_priority"`
	ConflictPolicy ConflictPolicy `yaml:"conflict_policy"`

	MinRunDaysPerWeek int            `yaml:"min_run_days_per_week"`
	MaxRunDaysPerWeek int            `yaml:"max_run_days_per_week"`
	UnavailableDays   []time.Weekday `yaml:"unavailable_days,omitempty"`
	MaxSessionMinutes *float64       `yaml:"max_session_minutes,omitempty"`

	PBs map[string]PersonalBest `yaml:"pbs,omitempty"`

	OtherSports []OtherSport `yaml:"other_sports,omitempty"`

	Goal *Goal `yaml:"goal,omitempty"`

	AdaptationThresholds *AdaptationThresholds `yaml:"adaptation_thresholds,omitempty"`
}

func (p *AthleteProfile) GetHeader() Header  { return p.Header }
func (p *AthleteProfile) SetHeader(h Header) { p.Header = h }

func (p *AthleteProfile) Validate() error {
	if p.UnavailableDays != nil || p.MinRunDaysPerWeek != 0 || p.MaxRunDaysPerWeek != 0 {
		maxPossible := 7 - len(p.UnavailableDays)
		if p.MinRunDaysPerWeek > p.MaxRunDaysPerWeek || p.MaxRunDaysPerWeek > maxPossible {
			return fmt.Errorf("min_run_days_per_week <= max_run_days_per_week <= 7 - unavailable_days must hold (got %d, %d, %d available)", p.MinRunDaysPerWeek, p.MaxRunDaysPerWeek, maxPossible)
		}
	}
	if p.Age != nil && (*p.Age < 10 || *p.Age > 100) {
		return fmt.Errorf("age must be in [10,100], got %d", *p.Age)
	}
	if p.MaxHR != nil && (*p.MaxHR < 100 || *p.MaxHR > 230) {
		return fmt.Errorf("max_hr must be in [100,230], got %d", *p.MaxHR)
	}
	if p.LTHR != nil && p.MaxHR != nil && *p.LTHR >= *p.MaxHR {
		return fmt.Errorf("lthr must be < max_hr")
	}
	if p.Goal != nil {
		d, err := time.Parse("2006-01-02", p.Goal.TargetDate)
		if err != nil {
			return fmt.Errorf("goal.target_date: %w", err)
		}
		if !d.After(time.Now()) {
			return fmt.Errorf("goal.target_date must be strictly in the future")
		}
	}
	return nil
}

// --- Memory ----------------------------------------------------------------

// MemoryType is the closed set of advisory memory kinds.
type MemoryType string

const (
	MemoryInjury    MemoryType = "injury"
	MemoryPreference MemoryType = "preference"
	MemoryContext   MemoryType = "context"
)

// MemoryFact is one immutable, tagged advisory fact the adaptation toolkit
// may consult but never treats as ground truth.
type MemoryFact struct {
	Header `yaml:",inline"`

	Type      MemoryType `yaml:"type"`
	Content   string     `yaml:"content"`
	Tags      []string   `yaml:"tags,omitempty"`
	Confidence Confidence `yaml:"confidence"`
	CreatedAt time.Time  `yaml:"created_at"`
}

func (m *MemoryFact) GetHeader() Header  { return m.Header }
func (m *MemoryFact) SetHeader(h Header) { m.Header = h }

func (m *MemoryFact) Validate() error {
	if m.Content == "" {
		return fmt.Errorf("content is required")
	}
	if m.Type == "" {
		return fmt.Errorf("type is required")
	}
	return nil
}

// --- Settings / Secrets ----------------------------------------------------

// Settings is the non-secret tunables document.
type Settings struct {
	Header `yaml:",inline"`

	CTLTimeConstant      int `yaml:"ctl_time_constant"`
	ATLTimeConstant      int `yaml:"atl_time_constant"`
	ACWRAcuteWindow      int `yaml:"acwr_acute_window"`
	ACWRChronicWindow    int `yaml:"acwr_chronic_window"`
	ACWRMinimumDays      int `yaml:"acwr_minimum_days"`
	BaselineDaysThreshold int `yaml:"baseline_days_threshold"`
	LockTimeoutMS        int `yaml:"lock_timeout_ms"`
	LockRetryCount       int `yaml:"lock_retry_count"`
	LockRetryDelayMS     int `yaml:"lock_retry_delay_ms"`
	MetricsStaleHours    int `yaml:"metrics_stale_hours"`
}

func (s *Settings) GetHeader() Header  { return s.Header }
func (s *Settings) SetHeader(h Header) { s.Header = h }

func (s *Settings) Validate() error {
	if s.CTLTimeConstant <= 0 || s.ATLTimeConstant <= 0 {
		return fmt.Errorf("time constants must be > 0")
	}
	if s.ACWRAcuteWindow <= 0 || s.ACWRChronicWindow <= 0 {
		return fmt.Errorf("acwr windows must be > 0")
	}
	if s.ACWRMinimumDays > s.ACWRChronicWindow {
		return fmt.Errorf("acwr_minimum_days cannot exceed acwr_chronic_window")
	}
	return nil
}

// DefaultSettings returns the documented tunable defaults.
func DefaultSettings() Settings {
	return Settings{
		Header:                NewHeader(string(KindSettings)),
		CTLTimeConstant:       42,
		ATLTimeConstant:       7,
		ACWRAcuteWindow:       7,
		ACWRChronicWindow:     28,
		ACWRMinimumDays:       21,
		BaselineDaysThreshold: 14,
		LockTimeoutMS:         300_000,
		LockRetryCount:        3,
		LockRetryDelayMS:      2000,
		MetricsStaleHours:     24,
	}
}

// Secrets is the importer-credentials document; never committed.
type Secrets struct {
	Header `yaml:",inline"`

	ProviderClientID     string `yaml:"provider_client_id,omitempty"`
	ProviderClientSecret string `yaml:"provider_client_secret,omitempty"`
	ProviderAccessToken  string `yaml:"provider_access_token,omitempty"`
	ProviderRefreshToken string `yaml:"provider_refresh_token,omitempty"`
	ProviderTokenExpiry  *time.Time `yaml:"provider_token_expiry,omitempty"`
}

func (s *Secrets) GetHeader() Header  { return s.Header }
func (s *Secrets) SetHeader(h Header) { s.Header = h }

func (s *Secrets) Validate() error {
	return nil
}
