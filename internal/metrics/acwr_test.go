package metrics

import (
	"math"
	"testing"

	"enduro/internal/store"
)

func TestComputeACWRInsufficientData(t *testing.T) {
	loads := make([]float64, 15) // fewer than minimumDays=21
	for i := range loads {
		loads[i] = 100
	}
	res := ComputeACWR(loads, 7, 28, 21)
	if res.Value != nil {
		t.Fatalf("expected nil ACWR value with insufficient data, got %v", *res.Value)
	}
	if res.Zone != store.ACWRZoneSafe {
		t.Errorf("expected SAFE zone for insufficient data, got %v", res.Zone)
	}
	if res.DaysOfData != 15 {
		t.Errorf("got DaysOfData=%d, want 15", res.DaysOfData)
	}
}

func TestComputeACWRSpikeScenario(t *testing.T) {
	// acute_avg=300, chronic_avg=225 => acwr~=1.33, caution zone.
	loads := make([]float64, 28)
	for i := 0; i < 28; i++ {
		loads[i] = 200
	}
	for i := 21; i < 28; i++ {
		loads[i] = 300
	}
	res := ComputeACWR(loads, 7, 28, 21)
	if res.Value == nil {
		t.Fatal("expected a computed ACWR value")
	}
	if res.Acute7d != 2100 {
		t.Errorf("acute7d = %v, want 2100", res.Acute7d)
	}
	wantChronicSum := 21*200 + 7*300
	if res.Chronic28dAvg*28 != float64(wantChronicSum) {
		t.Errorf("chronic sum = %v, want %v", res.Chronic28dAvg*28, wantChronicSum)
	}
	if res.Zone != store.ACWRZoneCaution {
		t.Errorf("acwr=%v zone=%v, want caution", *res.Value, res.Zone)
	}
}

func TestComputeACWRCautionBandInterior(t *testing.T) {
	// a ratio inside (1.3, 1.5] must classify as caution, not high_risk.
	loads := make([]float64, 28)
	for i := range loads {
		loads[i] = 100
	}
	for i := 21; i < 28; i++ {
		loads[i] = 150
	}
	res := ComputeACWR(loads, 7, 28, 21)
	if res.Value == nil {
		t.Fatal("expected computed value")
	}
	wantACWR := (150.0) / ((21*100.0 + 7*150.0) / 28.0)
	if math.Abs(*res.Value-wantACWR) > 1e-9 {
		t.Fatalf("acwr = %v, want %v", *res.Value, wantACWR)
	}
	if res.Zone != store.ACWRZoneCaution {
		t.Errorf("unexpected zone %v for acwr %v, want caution", res.Zone, *res.Value)
	}
}

func TestACWRZoneBands(t *testing.T) {
	cases := []struct {
		acwr float64
		want store.ACWRZone
	}{
		{0.5, store.ACWRZoneUndertrained},
		{0.79, store.ACWRZoneUndertrained},
		{0.8, store.ACWRZoneSafe},
		{1.3, store.ACWRZoneSafe},
		{1.31, store.ACWRZoneCaution},
		{1.5, store.ACWRZoneCaution},
		{1.51, store.ACWRZoneHighRisk},
	}
	for _, c := range cases {
		if got := acwrZone(c.acwr); got != c.want {
			t.Errorf("acwrZone(%v) = %v, want %v", c.acwr, got, c.want)
		}
	}
}
