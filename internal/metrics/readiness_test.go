package metrics

import (
	"testing"

	"enduro/internal/store"
)

func TestReadinessSevereIllnessCap(t *testing.T) {
	soreness := 1
	res := ComputeReadiness(ReadinessInputs{
		SubjectiveSoreness: &soreness,
		IllnessSeverity:    store.SeveritySevere,
	})
	if res.Score > 20 {
		t.Errorf("score = %d, want <= 20 with severe illness", res.Score)
	}
}

func TestReadinessConfidenceScalesWithComponentCount(t *testing.T) {
	tsb := 0.0
	soreness := 3
	one := ComputeReadiness(ReadinessInputs{TSB: &tsb})
	two := ComputeReadiness(ReadinessInputs{TSB: &tsb, SubjectiveSoreness: &soreness})
	three := ComputeReadiness(ReadinessInputs{TSB: &tsb, SubjectiveSoreness: &soreness, SleepQuality: "normal"})

	if one.Confidence != store.ConfidenceLow {
		t.Errorf("1 component: confidence = %v, want low", one.Confidence)
	}
	if two.Confidence != store.ConfidenceMedium {
		t.Errorf("2 components: confidence = %v, want medium", two.Confidence)
	}
	if three.Confidence != store.ConfidenceHigh {
		t.Errorf("3 components: confidence = %v, want high", three.Confidence)
	}
}

func TestReadinessLevelBands(t *testing.T) {
	cases := []struct {
		score float64
		want  store.ReadinessLevel
	}{
		{85, store.ReadinessFresh},
		{80, store.ReadinessFresh},
		{79, store.ReadinessReady},
		{60, store.ReadinessReady},
		{59, store.ReadinessTired},
		{40, store.ReadinessTired},
		{39, store.ReadinessExhausted},
	}
	for _, c := range cases {
		if got := readinessLevel(c.score); got != c.want {
			t.Errorf("readinessLevel(%v) = %v, want %v", c.score, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if clamp(150, 0, 100) != 100 {
		t.Error("clamp should cap at hi")
	}
	if clamp(-10, 0, 100) != 0 {
		t.Error("clamp should floor at lo")
	}
	if clamp(50, 0, 100) != 50 {
		t.Error("clamp should pass through in-range values")
	}
}
