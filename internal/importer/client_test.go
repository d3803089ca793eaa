package importer

import (
	"testing"
	"time"
)

func TestProviderActivityToRecordMapsFields(t *testing.T) {
	pa := providerActivity{
		ID:               123,
		Name:             "Morning run",
		Type:             "Run",
		StartDateLocal:   "2026-03-02T07:00:00Z",
		MovingTime:       2700, // 45 min
		Distance:         8000, // meters
		AverageHeartrate: 150,
		MaxHeartrate:     170,
		HasHeartrate:     true,
		Trainer:          false,
		SufferScore:      60,
		PerceivedExertion: 6,
	}
	rec := pa.toRecord()

	if rec.ActivityID != "123" || rec.Source != "provider" {
		t.Errorf("identity fields wrong: %+v", rec)
	}
	if rec.ActivityDate != "2026-03-02" {
		t.Errorf("activity_date = %q, want 2026-03-02", rec.ActivityDate)
	}
	if rec.DurationMinutes != 45 {
		t.Errorf("duration_minutes = %v, want 45", rec.DurationMinutes)
	}
	if rec.DistanceKM == nil || *rec.DistanceKM != 8 {
		t.Errorf("distance_km = %v, want 8", rec.DistanceKM)
	}
	if rec.AverageHR == nil || *rec.AverageHR != 150 {
		t.Errorf("average_hr = %v, want 150", rec.AverageHR)
	}
	if rec.MaxHR == nil || *rec.MaxHR != 170 {
		t.Errorf("max_hr = %v, want 170", rec.MaxHR)
	}
	if !rec.HasGPS {
		t.Error("has_gps should be true when trainer=false")
	}
	if rec.RelativeEffort == nil || *rec.RelativeEffort != 60 {
		t.Errorf("relative_effort = %v, want 60", rec.RelativeEffort)
	}
	if rec.PerceivedExertion == nil || *rec.PerceivedExertion != 6 {
		t.Errorf("perceived_exertion = %v, want 6", rec.PerceivedExertion)
	}
}

func TestProviderActivityToRecordTrainerMeansNoGPS(t *testing.T) {
	pa := providerActivity{ID: 1, StartDateLocal: "2026-03-02T07:00:00Z", MovingTime: 1800, Trainer: true}
	rec := pa.toRecord()
	if rec.HasGPS {
		t.Error("trainer activity should have has_gps=false")
	}
}

func TestProviderActivityToRecordOmitsZeroOptionalFields(t *testing.T) {
	pa := providerActivity{ID: 1, StartDateLocal: "2026-03-02T07:00:00Z", MovingTime: 1800}
	rec := pa.toRecord()
	if rec.DistanceKM != nil {
		t.Error("distance_km should be nil when provider distance is 0")
	}
	if rec.AverageHR != nil || rec.MaxHR != nil {
		t.Error("HR fields should be nil when has_heartrate is false")
	}
	if rec.RelativeEffort != nil {
		t.Error("relative_effort should be nil when suffer_score is 0")
	}
}

func TestProviderActivityToRecordHandlesUnparseableStartDate(t *testing.T) {
	pa := providerActivity{ID: 1, StartDateLocal: "", MovingTime: 1800}
	rec := pa.toRecord()
	if rec.ActivityDate != "" || rec.StartTime != nil {
		t.Errorf("expected empty date/time for unparseable start, got %+v", rec)
	}
}

func TestProviderActivityToRecordStartTimeSet(t *testing.T) {
	pa := providerActivity{ID: 1, StartDateLocal: "2026-03-02T07:00:00Z", MovingTime: 1800}
	rec := pa.toRecord()
	if rec.StartTime == nil {
		t.Fatal("expected StartTime to be set")
	}
	want := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	if !rec.StartTime.Equal(want) {
		t.Errorf("start_time = %v, want %v", rec.StartTime, want)
	}
}
