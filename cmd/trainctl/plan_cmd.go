package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"enduro/internal/plan"
	"enduro/internal/profile"
	"enduro/internal/store"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Planning toolkit: build a macro skeleton, materialize a week, validate a week",
}

func init() {
	planCmd.AddCommand(planInitCmd, planGenerateWeekCmd, planValidateCmd)
}

// --- plan init --------------------------------------------------------

var planInitFlags struct {
	weeks int
	goal  string
	start string
}

var planInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Allocate periodization phases and write a macro plan skeleton",
	RunE:  runPlanInit,
}

func init() {
	f := planInitCmd.Flags()
	f.IntVar(&planInitFlags.weeks, "weeks", 0, "total plan length in weeks (required)")
	f.StringVar(&planInitFlags.goal, "goal", "", "goal distance: 5k|10k|half|marathon (required)")
	f.StringVar(&planInitFlags.start, "start", "", "plan start date, a Monday, YYYY-MM-DD (required)")
	planInitCmd.MarkFlagRequired("weeks")
	planInitCmd.MarkFlagRequired("goal")
	planInitCmd.MarkFlagRequired("start")
}

// runPlanInit allocates base/build/peak/taper phases and
// writes a macro skeleton: every week carries a phase, dates, and a
// target_volume_km interpolated between the safe starting and peak volume
// ranges, but no workout_pattern/workouts[]; a macro week is populated
// later by `plan generate-week`.
func runPlanInit(cmd *cobra.Command, args []string) error {
	repo, _, err := openRepo(cmd)
	if err != nil {
		return err
	}

	start, err := time.Parse("2006-01-02", planInitFlags.start)
	if err != nil {
		return err
	}
	if start.Weekday() != time.Monday {
		return store.NewError(store.KindValidationError, "trainctl.planInit", "", fmt.Errorf("--start %s must be a Monday", planInitFlags.start))
	}
	goal := store.GoalType(planInitFlags.goal)

	phases, err := plan.Allocate(planInitFlags.weeks, goal)
	if err != nil {
		return store.NewError(store.KindValidationError, "trainctl.planInit", "", err)
	}

	ctl, err := currentCTL(repo)
	if err != nil {
		return err
	}
	startLow, _ := plan.SafeStartingVolume(ctl)
	peakLow, peakHigh := plan.SafePeakVolume(ctl, goal, phases.Peak[1]-phases.Peak[0]+1)
	peakVolume := (peakLow + peakHigh) / 2

	weeks := make([]store.PlanWeek, 0, planInitFlags.weeks)
	for n := 1; n <= planInitFlags.weeks; n++ {
		weekStart := start.AddDate(0, 0, (n-1)*7)
		phase := plan.PhaseForWeek(phases, n)

		isRecovery := phase != store.PhaseTaper && n%4 == 0
		var target float64
		switch phase {
		case store.PhaseTaper:
			progress := float64(n-phases.Taper[0]) / float64(phases.Taper[1]-phases.Taper[0]+1)
			target = peakVolume * (1 - 0.5*progress)
		default:
			progress := float64(n-1) / float64(planInitFlags.weeks-1)
			target = startLow + (peakVolume-startLow)*progress
		}
		if isRecovery {
			target *= 0.70
		}

		weeks = append(weeks, store.PlanWeek{
			WeekNumber:     n,
			Phase:          phase,
			StartDate:      weekStart.Format("2006-01-02"),
			EndDate:        weekStart.AddDate(0, 0, 6).Format("2006-01-02"),
			TargetVolumeKM: target,
			IsRecoveryWeek: isRecovery,
		})
	}

	tp := &store.TrainingPlan{
		Header:     store.NewHeader(string(store.KindPlan)),
		Goal:       goal,
		TotalWeeks: planInitFlags.weeks,
		StartDate:  start.Format("2006-01-02"),
		EndDate:    weeks[len(weeks)-1].EndDate,
		Phases:     phases,
		Weeks:      weeks,
	}
	if err := store.Write[store.TrainingPlan, *store.TrainingPlan](repo, store.KindPlan, "", tp); err != nil {
		return err
	}
	if err := store.Write[store.TrainingPlan, *store.TrainingPlan](repo, store.KindPlanMacro, "", tp); err != nil {
		return err
	}

	exitStatus = emitOK(tp)
	return nil
}

// currentCTL reads the most recent daily metrics document to seed safe
// starting/peak volume with the athlete's actual current fitness,
// defaulting to 0 (SafeStartingVolume's 15km/week floor then applies) when
// no history exists yet.
func currentCTL(repo *store.Repository) (float64, error) {
	keys, err := repo.List(store.KindDailyMetrics, "*")
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	latest, err := store.Read[store.DailyMetrics, *store.DailyMetrics](repo, store.KindDailyMetrics, keys[len(keys)-1])
	if err != nil {
		return 0, err
	}
	return latest.CTLATL.CTL, nil
}

// --- plan generate-week -------------------------------------------------

var planGenerateWeekFlags struct {
	week    int
	runDays int
}

var planGenerateWeekCmd = &cobra.Command{
	Use:   "generate-week",
	Short: "Materialize workout_pattern and workouts[] for one macro week",
	RunE:  runPlanGenerateWeek,
}

func init() {
	f := planGenerateWeekCmd.Flags()
	f.IntVar(&planGenerateWeekFlags.week, "week", 0, "week number to materialize (required)")
	f.IntVar(&planGenerateWeekFlags.runDays, "run-days", 4, "number of run days this week (2-6)")
	planGenerateWeekCmd.MarkFlagRequired("week")
}

// runPlanGenerateWeek distributes the week's target volume across
// run-days, materializes one easy/long
// workout per allocated day via CreateWorkout, checks progressive
// disclosure before writing, then validates the result and reports
// violations/warnings alongside the updated plan.
func runPlanGenerateWeek(cmd *cobra.Command, args []string) error {
	repo, _, err := openRepo(cmd)
	if err != nil {
		return err
	}

	tp, err := store.Read[store.TrainingPlan, *store.TrainingPlan](repo, store.KindPlan, "")
	if err != nil {
		return err
	}

	idx := -1
	for i, w := range tp.Weeks {
		if w.WeekNumber == planGenerateWeekFlags.week {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.NewError(store.KindNotFound, "trainctl.planGenerateWeek", "", fmt.Errorf("week %d not found in plan", planGenerateWeekFlags.week))
	}

	completedThrough := 0
	for _, w := range tp.Weeks {
		allCompleted := len(w.Workouts) > 0
		for _, wk := range w.Workouts {
			if wk.Status != store.WorkoutCompleted {
				allCompleted = false
				break
			}
		}
		if allCompleted && w.WeekNumber > completedThrough {
			completedThrough = w.WeekNumber
		}
	}
	hypothetical := append([]store.PlanWeek(nil), tp.Weeks...)
	hypothetical[idx].WorkoutPattern = &store.WorkoutPattern{}
	disclosure := plan.ValidateProgressiveDisclosure(hypothetical, completedThrough)
	if !disclosure.OK {
		return store.NewError(store.KindValidationError, "trainctl.planGenerateWeek", "", fmt.Errorf("%s", disclosure.Summary))
	}

	p, err := profile.Load(repo)
	if err != nil {
		return err
	}
	vdotEst := profile.EstimateVDOT(p, nil, nil, time.Now())
	paces := profile.Paces(vdotEst.VDOT)
	maxHR, lthr := 0, 0
	if p.MaxHR != nil {
		maxHR = *p.MaxHR
	}
	if p.LTHR != nil {
		lthr = *p.LTHR
	}

	week := tp.Weeks[idx]
	dist := plan.DistributeWeek(week.TargetVolumeKM, planGenerateWeekFlags.runDays, week.Phase, week.IsRecoveryWeek, paces.Easy[1], paces.Easy[1])
	if !dist.Feasible {
		return store.NewError(store.KindValidationError, "trainctl.planGenerateWeek", "", fmt.Errorf("%s", dist.Suggestion))
	}

	weekStart, err := time.Parse("2006-01-02", week.StartDate)
	if err != nil {
		return err
	}

	var workouts []store.Workout
	var runWeekdays []time.Weekday
	var longRunDay time.Weekday
	ordinal := 1
	runDates := spreadRunDates(weekStart, len(dist.Days))
	for i, day := range dist.Days {
		wtype := store.WorkoutEasy
		if day.IsLong {
			wtype = store.WorkoutLong
			longRunDay = runDates[i].Weekday()
		}
		durationMin := day.DistanceKM * float64(paces.Easy[1]) / 60
		wk := plan.CreateWorkout(plan.NextWorkoutID(week.WeekNumber, ordinal), wtype, week.Phase, runDates[i].Format("2006-01-02"), durationMin, day.DistanceKM, vdotEst.VDOT, maxHR, lthr)
		workouts = append(workouts, wk)
		runWeekdays = append(runWeekdays, runDates[i].Weekday())
		ordinal++
	}

	week.Workouts = workouts
	week.WorkoutPattern = &store.WorkoutPattern{
		StructureLabel: fmt.Sprintf("%d-day, long run %.0f%% of volume", dist.RunDayCount, dist.LongRunKM/week.TargetVolumeKM*100),
		RunDays:        runWeekdays,
		LongRunDay:     longRunDay,
		LongRunPct:     dist.LongRunKM / week.TargetVolumeKM,
		PaceZones: map[string]store.PaceRange{
			"E": {FastSecPerKM: paces.Easy[0], SlowSecPerKM: paces.Easy[1]},
			"M": {FastSecPerKM: paces.Marathon[0], SlowSecPerKM: paces.Marathon[1]},
			"T": {FastSecPerKM: paces.Threshold[0], SlowSecPerKM: paces.Threshold[1]},
			"I": {FastSecPerKM: paces.Interval[0], SlowSecPerKM: paces.Interval[1]},
			"R": {FastSecPerKM: paces.Repetition[0], SlowSecPerKM: paces.Repetition[1]},
		},
	}
	tp.Weeks[idx] = week

	baseline := plan.FindProgressionBaseline(tp.Weeks, idx)
	result := plan.ValidateWeek(week, baseline)

	if err := store.Write[store.TrainingPlan, *store.TrainingPlan](repo, store.KindPlan, "", tp); err != nil {
		return err
	}

	exitStatus = emitOK(map[string]interface{}{
		"week":       week,
		"validation": result,
	})
	return nil
}

// spreadRunDates lays out n run days across a Monday-starting week,
// putting the long run (index 0 from DistributeWeek) on Sunday and placing
// the remaining easy days at a whole-day step of 6/n days from Monday,
// capped at Saturday (four or more run days fall on consecutive days).
func spreadRunDates(weekStart time.Time, n int) []time.Time {
	if n == 0 {
		return nil
	}
	dates := make([]time.Time, n)
	dates[0] = weekStart.AddDate(0, 0, 6) // long run on Sunday
	remaining := n - 1
	if remaining > 0 {
		step := 6 / (remaining + 1)
		if step < 1 {
			step = 1
		}
		for i := 0; i < remaining; i++ {
			offset := (i + 1) * step
			if offset > 5 {
				offset = 5
			}
			dates[i+1] = weekStart.AddDate(0, 0, offset)
		}
	}
	return dates
}

// --- plan validate -------------------------------------------------------

var planValidateFlags struct {
	week int
}

var planValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run every per-week validator against one populated plan week",
	RunE:  runPlanValidate,
}

func init() {
	planValidateCmd.Flags().IntVar(&planValidateFlags.week, "week", 0, "week number to validate (required)")
	planValidateCmd.MarkFlagRequired("week")
}

func runPlanValidate(cmd *cobra.Command, args []string) error {
	repo, _, err := openRepo(cmd)
	if err != nil {
		return err
	}

	tp, err := store.Read[store.TrainingPlan, *store.TrainingPlan](repo, store.KindPlan, "")
	if err != nil {
		return err
	}

	idx := -1
	for i, w := range tp.Weeks {
		if w.WeekNumber == planValidateFlags.week {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.NewError(store.KindNotFound, "trainctl.planValidate", "", fmt.Errorf("week %d not found in plan", planValidateFlags.week))
	}

	baseline := plan.FindProgressionBaseline(tp.Weeks, idx)
	result := plan.ValidateWeek(tp.Weeks[idx], baseline)

	exitStatus = emitOK(result)
	return nil
}
