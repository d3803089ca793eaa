package main

import (
	"github.com/spf13/cobra"

	"enduro/internal/importer"
	"enduro/internal/profile"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Manually log one activity into the repository",
	RunE:  runLog,
}

var logFlags struct {
	id          string
	date        string
	sport       string
	durationMin float64
	distanceKM  float64
	avgHR       int
	maxHR       int
	rpe         int
	notes       string
}

func init() {
	f := logCmd.Flags()
	f.StringVar(&logFlags.id, "id", "", "unique activity id (defaults to the date)")
	f.StringVar(&logFlags.date, "date", "", "activity date, YYYY-MM-DD (required)")
	f.StringVar(&logFlags.sport, "sport", "run", "sport type tag")
	f.Float64Var(&logFlags.durationMin, "duration-minutes", 0, "duration in minutes (required)")
	f.Float64Var(&logFlags.distanceKM, "distance-km", 0, "distance in kilometers")
	f.IntVar(&logFlags.avgHR, "avg-hr", 0, "average heart rate")
	f.IntVar(&logFlags.maxHR, "max-hr", 0, "max heart rate observed during the activity")
	f.IntVar(&logFlags.rpe, "rpe", 0, "subjective RPE, 1-10")
	f.StringVar(&logFlags.notes, "notes", "", "free-text note, scanned for injury/illness signals")
	logCmd.MarkFlagRequired("date")
	logCmd.MarkFlagRequired("duration-minutes")
}

func runLog(cmd *cobra.Command, args []string) error {
	repo, _, err := openRepo(cmd)
	if err != nil {
		return err
	}

	rec := importer.Record{
		ActivityID:      logFlags.id,
		Source:          "manual",
		ActivityDate:    logFlags.date,
		SportType:       logFlags.sport,
		DurationMinutes: logFlags.durationMin,
		Description:     logFlags.notes,
	}
	if rec.ActivityID == "" {
		rec.ActivityID = logFlags.date
	}
	if logFlags.distanceKM > 0 {
		rec.DistanceKM = &logFlags.distanceKM
	}
	if logFlags.avgHR > 0 {
		rec.AverageHR = &logFlags.avgHR
	}
	if logFlags.maxHR > 0 {
		rec.MaxHR = &logFlags.maxHR
	}
	if logFlags.rpe > 0 {
		rec.PerceivedExertion = &logFlags.rpe
	}

	p, err := profile.Load(repo)
	if err != nil {
		return err
	}
	maxHR := 0
	if p.MaxHR != nil {
		maxHR = *p.MaxHR
	}

	activity, err := importer.Import(repo, rec, maxHR)
	if err != nil {
		return err
	}

	exitStatus = emitOK(activity)
	return nil
}
