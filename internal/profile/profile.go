// Package profile is a typed CRUD wrapper around the single AthleteProfile
// document, plus the named setters (set_goal, set_pb,
// add_sport/pause_sport/resume_sport). Validation lives on
// store.AthleteProfile itself; this package only orchestrates reads,
// mutations, and writes through the repository.
package profile

import (
	"fmt"
	"time"

	"enduro/internal/plan"
	"enduro/internal/store"
)

// Load reads the athlete profile, returning store.KindNotFound if none has
// been created yet.
func Load(repo *store.Repository) (*store.AthleteProfile, error) {
	return store.Read[store.AthleteProfile, *store.AthleteProfile](repo, store.KindProfile, "")
}

// Save validates and persists the athlete profile.
func Save(repo *store.Repository, p *store.AthleteProfile) error {
	return store.Write[store.AthleteProfile, *store.AthleteProfile](repo, store.KindProfile, "", p)
}

// SetGoal sets or replaces the athlete's current race goal. targetDate must
// be strictly in the future (enforced by AthleteProfile.Validate on save).
func SetGoal(repo *store.Repository, goalType store.GoalType, targetDate string, targetTimeSeconds *float64) (*store.AthleteProfile, error) {
	p, err := Load(repo)
	if err != nil {
		return nil, fmt.Errorf("profile: set goal: %w", err)
	}
	p.Goal = &store.Goal{Type: goalType, TargetDate: targetDate, TargetTime: targetTimeSeconds}
	if err := Save(repo, p); err != nil {
		return nil, fmt.Errorf("profile: set goal: %w", err)
	}
	return p, nil
}

// SetPB records a personal best for category (e.g. "5k", "10k", "half",
// "marathon") at the given time and date.
func SetPB(repo *store.Repository, category string, timeSeconds float64, date string) (*store.AthleteProfile, error) {
	p, err := Load(repo)
	if err != nil {
		return nil, fmt.Errorf("profile: set pb: %w", err)
	}
	if p.PBs == nil {
		p.PBs = map[string]store.PersonalBest{}
	}
	p.PBs[category] = store.PersonalBest{Time: timeSeconds, Date: date}
	if err := Save(repo, p); err != nil {
		return nil, fmt.Errorf("profile: set pb: %w", err)
	}
	return p, nil
}

// AddSport adds or updates a non-running sport in the athlete's routine.
func AddSport(repo *store.Repository, sport store.OtherSport) (*store.AthleteProfile, error) {
	p, err := Load(repo)
	if err != nil {
		return nil, fmt.Errorf("profile: add sport: %w", err)
	}
	found := false
	for i := range p.OtherSports {
		if p.OtherSports[i].Sport == sport.Sport {
			p.OtherSports[i] = sport
			found = true
			break
		}
	}
	if !found {
		p.OtherSports = append(p.OtherSports, sport)
	}
	if err := Save(repo, p); err != nil {
		return nil, fmt.Errorf("profile: add sport: %w", err)
	}
	return p, nil
}

// PauseSport marks sport as paused without removing its history, recording
// reason.
func PauseSport(repo *store.Repository, sport store.SportType, reason string) (*store.AthleteProfile, error) {
	return toggleSportPause(repo, sport, true, reason)
}

// ResumeSport clears a sport's paused flag.
func ResumeSport(repo *store.Repository, sport store.SportType) (*store.AthleteProfile, error) {
	return toggleSportPause(repo, sport, false, "")
}

func toggleSportPause(repo *store.Repository, sport store.SportType, paused bool, reason string) (*store.AthleteProfile, error) {
	p, err := Load(repo)
	if err != nil {
		return nil, fmt.Errorf("profile: toggle sport pause: %w", err)
	}
	for i := range p.OtherSports {
		if p.OtherSports[i].Sport == sport {
			p.OtherSports[i].Paused = paused
			p.OtherSports[i].Reason = reason
			if err := Save(repo, p); err != nil {
				return nil, fmt.Errorf("profile: toggle sport pause: %w", err)
			}
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile: sport %s not found", sport)
}

// EstimateVDOT delegates to the planning toolkit's current-fitness blend
// using the profile's recorded PBs as the race-result source, when present.
func EstimateVDOT(p *store.AthleteProfile, qualitySessions []plan.QualitySession, easyRuns []plan.EasyRun, now time.Time) plan.VDOTEstimate {
	var pb *plan.PersonalBest
	if best, ok := bestPB(p); ok {
		pb = &best
	}
	return plan.EstimateVDOTCurrent(pb, qualitySessions, easyRuns, now)
}

// Paces derives the E/M/T/I/R training pace zones from the profile's
// current fitness estimate.
func Paces(vdot float64) plan.PaceZones {
	return plan.Paces(vdot)
}

var pbDistanceMeters = map[string]float64{
	"5k":       plan.Distance5K,
	"10k":      plan.Distance10K,
	"half":     plan.DistanceHalfMara,
	"marathon": plan.DistanceMarathon,
}

func bestPB(p *store.AthleteProfile) (plan.PersonalBest, bool) {
	var best plan.PersonalBest
	var bestVDOT float64
	found := false
	for category, pb := range p.PBs {
		distance, ok := pbDistanceMeters[category]
		if !ok {
			continue
		}
		date, err := time.Parse("2006-01-02", pb.Date)
		if err != nil {
			continue
		}
		vdot := plan.EstimateVDOTFromPB(distance, pb.Time)
		if vdot > bestVDOT {
			bestVDOT = vdot
			best = plan.PersonalBest{DistanceMeters: distance, DurationSeconds: pb.Time, Date: date}
			found = true
		}
	}
	return best, found
}
