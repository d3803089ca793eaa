package main

import (
	"log"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"enduro/internal/metrics"
	"enduro/internal/store"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recompute daily metrics (and the rolling weekly summary) over a date range",
	RunE:  runRecompute,
}

var recomputeFlags struct {
	from string
	to   string
}

func init() {
	f := recomputeCmd.Flags()
	f.StringVar(&recomputeFlags.from, "from", "", "first date to recompute, YYYY-MM-DD (default: earliest activity)")
	f.StringVar(&recomputeFlags.to, "to", "", "last date to recompute, YYYY-MM-DD (default: today)")
}

// runRecompute rebuilds DailyMetrics for every date in [from, to] in
// ascending order, then recomputes the rolling weekly summary for the
// week containing `to`. Each day's recompute is a pure function of the
// activity history up to and including that day, so re-running this
// command against the same inputs is idempotent.
func runRecompute(cmd *cobra.Command, args []string) error {
	repo, settings, err := openRepo(cmd)
	if err != nil {
		return err
	}
	if settings == nil {
		s := store.DefaultSettings()
		settings = &s
	}

	keys, err := repo.List(store.KindActivity, "*")
	if err != nil {
		return err
	}
	activities := make([]*store.Activity, 0, len(keys))
	for _, key := range keys {
		a, err := store.Read[store.Activity, *store.Activity](repo, store.KindActivity, key)
		if err != nil {
			return err
		}
		activities = append(activities, a)
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i].ActivityDate < activities[j].ActivityDate })

	to := time.Now()
	if recomputeFlags.to != "" {
		to, err = time.Parse("2006-01-02", recomputeFlags.to)
		if err != nil {
			return err
		}
	}
	from := to
	if recomputeFlags.from != "" {
		from, err = time.Parse("2006-01-02", recomputeFlags.from)
		if err != nil {
			return err
		}
	} else if len(activities) > 0 {
		from, err = time.Parse("2006-01-02", activities[0].ActivityDate)
		if err != nil {
			return err
		}
	}

	// loadByDate accumulates systemic load per calendar day, across the
	// whole history, so the EMA series fed to each day's recompute always
	// starts from the earliest known day regardless of `from`.
	loadByDate := map[string]float64{}
	for _, a := range activities {
		loadByDate[a.ActivityDate] += a.SystemicLoadAU
	}

	var historyStart time.Time
	if len(activities) > 0 {
		historyStart, _ = time.Parse("2006-01-02", activities[0].ActivityDate)
	} else {
		historyStart = from
	}

	log.Printf("recomputing daily metrics %s..%s", from.Format("2006-01-02"), to.Format("2006-01-02"))

	computedDates := 0
	var lastDaily *store.DailyMetrics
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")

		var series []metrics.DayLoad
		for day := historyStart; !day.After(d); day = day.AddDate(0, 0, 1) {
			key := day.Format("2006-01-02")
			series = append(series, metrics.DayLoad{Date: day, Load: loadByDate[key]})
		}

		var sameDayOrBefore []*store.Activity
		for _, a := range activities {
			if a.ActivityDate <= dateStr {
				sameDayOrBefore = append(sameDayOrBefore, a)
			}
		}

		readinessIn := metrics.ReadinessInputs{
			ColdStart: len(series) < settings.BaselineDaysThreshold,
		}
		for _, a := range sameDayOrBefore {
			if a.ActivityDate != dateStr {
				continue
			}
			if a.Flags.Injury != nil && a.Flags.Injury.RequiresRest {
				readinessIn.ActiveInjury = true
			}
			if a.Flags.Illness != nil {
				readinessIn.IllnessSeverity = a.Flags.Illness.Severity
			}
		}

		dm, err := metrics.ComputeDailyMetrics(dateStr, sameDayOrBefore, series, *settings, time.Now(), readinessIn)
		if err != nil {
			return err
		}
		if err := store.Write[store.DailyMetrics, *store.DailyMetrics](repo, store.KindDailyMetrics, dateStr, dm); err != nil {
			return err
		}
		lastDaily = dm
		computedDates++
	}

	weekStart := to
	for weekStart.Weekday() != time.Monday {
		weekStart = weekStart.AddDate(0, 0, -1)
	}
	dailyKeys, err := repo.List(store.KindDailyMetrics, "*")
	if err != nil {
		return err
	}
	var weekDaily []*store.DailyMetrics
	for _, key := range dailyKeys {
		if key < weekStart.Format("2006-01-02") || key > weekStart.AddDate(0, 0, 6).Format("2006-01-02") {
			continue
		}
		d, err := store.Read[store.DailyMetrics, *store.DailyMetrics](repo, store.KindDailyMetrics, key)
		if err != nil {
			return err
		}
		weekDaily = append(weekDaily, d)
	}
	weekly, err := metrics.ComputeWeeklySummary(weekStart, weekDaily, activities, time.Now())
	if err != nil {
		return err
	}
	if err := store.Write[store.WeeklySummary, *store.WeeklySummary](repo, store.KindWeeklySummary, "current", weekly); err != nil {
		return err
	}

	exitStatus = emitOK(map[string]interface{}{
		"dates_recomputed": computedDates,
		"last_daily":       lastDaily,
		"weekly_summary":   weekly,
	})
	return nil
}
