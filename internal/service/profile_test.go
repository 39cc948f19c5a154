package service

import (
	"errors"
	"testing"

	"valomate/backend/internal/models"
)

func newProfileService() (*ProfileService, *memProfileRepo) {
	taxonomy := newMemTaxonomyRepo()
	seedTaxonomy(taxonomy)
	profiles := newMemProfileRepo()
	return NewProfileService(profiles, taxonomy), profiles
}

func jettSelection() AgentSelection {
	return AgentSelection{
		RiotID:    "phantom#EU1",
		Agent:     "Jett",
		Platform:  "PC",
		PlayStyle: "entry fragger",
		Region:    "EU",
		Rank:      "Gold",
	}
}

func TestSelectAgent(t *testing.T) {
	svc, _ := newProfileService()

	profile, err := svc.SelectAgent(1, jettSelection())
	if err != nil {
		t.Fatalf("SelectAgent: %v", err)
	}
	if profile.UserID != 1 || profile.AgentID == 0 || profile.PlatformID == 0 || profile.RegionID == 0 {
		t.Errorf("profile not fully resolved: %+v", profile)
	}
	if profile.RankID == nil {
		t.Error("rank was given but not resolved")
	}
	if !profile.IsComplete() {
		t.Error("resolved profile should be complete")
	}

	// Same agent and play style again is a conflict.
	if _, err := svc.SelectAgent(1, jettSelection()); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate selection err = %v, want ErrConflict", err)
	}

	// Same agent with a different play style is a separate entry.
	alt := jettSelection()
	alt.PlayStyle = "lurker"
	if _, err := svc.SelectAgent(1, alt); err != nil {
		t.Errorf("second play style: %v", err)
	}
}

func TestSelectAgentValidation(t *testing.T) {
	svc, _ := newProfileService()

	cases := []struct {
		name   string
		mutate func(*AgentSelection)
	}{
		{"unknown agent", func(s *AgentSelection) { s.Agent = "Minsc" }},
		{"unknown platform", func(s *AgentSelection) { s.Platform = "DREAMCAST" }},
		{"unknown region", func(s *AgentSelection) { s.Region = "MOON" }},
		{"unknown rank", func(s *AgentSelection) { s.Rank = "Wood" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := jettSelection()
			tc.mutate(&sel)
			if _, err := svc.SelectAgent(1, sel); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}

	// Rank stays optional.
	sel := jettSelection()
	sel.Rank = ""
	profile, err := svc.SelectAgent(1, sel)
	if err != nil {
		t.Fatalf("SelectAgent without rank: %v", err)
	}
	if profile.RankID != nil {
		t.Error("rank should be unset")
	}
}

func TestReplaceAgents(t *testing.T) {
	svc, profiles := newProfileService()
	if _, err := svc.SelectAgent(1, jettSelection()); err != nil {
		t.Fatalf("SelectAgent: %v", err)
	}

	sage := jettSelection()
	sage.Agent = "Sage"
	sage.PlayStyle = "anchor"
	omen := jettSelection()
	omen.Agent = "Omen"
	omen.PlayStyle = "smokes"

	if err := svc.ReplaceAgents(1, []AgentSelection{sage, omen}); err != nil {
		t.Fatalf("ReplaceAgents: %v", err)
	}

	list, _ := profiles.FindByUser(1)
	if len(list) != 2 {
		t.Fatalf("profiles = %d, want 2", len(list))
	}

	// A bad selection rejects the whole batch before anything is touched.
	bad := jettSelection()
	bad.Agent = "Minsc"
	if err := svc.ReplaceAgents(1, []AgentSelection{bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	list, _ = profiles.FindByUser(1)
	if len(list) != 2 {
		t.Errorf("profiles after failed replace = %d, want 2 untouched", len(list))
	}
}

func TestUpdatePlatform(t *testing.T) {
	svc, profiles := newProfileService()
	if _, err := svc.SelectAgent(1, jettSelection()); err != nil {
		t.Fatalf("SelectAgent: %v", err)
	}
	alt := jettSelection()
	alt.Agent = "Sova"
	alt.PlayStyle = "recon"
	if _, err := svc.SelectAgent(1, alt); err != nil {
		t.Fatalf("SelectAgent: %v", err)
	}

	if err := svc.UpdatePlatform(1, "DREAMCAST"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	if err := svc.UpdatePlatform(1, "xbox"); err != nil {
		t.Fatalf("UpdatePlatform: %v", err)
	}
	list, _ := profiles.FindByUser(1)
	for _, p := range list {
		if p.PlatformID != list[0].PlatformID {
			t.Fatal("platform update must hit every entry")
		}
	}
}

func TestUpdateRank(t *testing.T) {
	svc, _ := newProfileService()

	if _, err := svc.UpdateRank(1, "Diamond"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("no profile err = %v, want ErrNotFound", err)
	}

	if _, err := svc.SelectAgent(1, jettSelection()); err != nil {
		t.Fatalf("SelectAgent: %v", err)
	}
	if _, err := svc.UpdateRank(1, "Wood"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown rank err = %v, want ErrNotFound", err)
	}

	profile, err := svc.UpdateRank(1, "Diamond")
	if err != nil {
		t.Fatalf("UpdateRank: %v", err)
	}
	if profile.Rank == nil || profile.Rank.Name != "Diamond" {
		t.Errorf("rank = %+v, want Diamond", profile.Rank)
	}
}

func TestUpdateRegion(t *testing.T) {
	svc, _ := newProfileService()
	if _, err := svc.SelectAgent(1, jettSelection()); err != nil {
		t.Fatalf("SelectAgent: %v", err)
	}

	if _, err := svc.UpdateRegion(1, "MOON"); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}

	profile, err := svc.UpdateRegion(1, "na")
	if err != nil {
		t.Fatalf("UpdateRegion: %v", err)
	}
	if profile.Region.Code != "NA" {
		t.Errorf("region = %q, want NA", profile.Region.Code)
	}
}

func TestHasCompleteProfile(t *testing.T) {
	svc, _ := newProfileService()

	complete, err := svc.HasCompleteProfile(1)
	if err != nil || complete {
		t.Errorf("user without profile: complete=%v err=%v, want false", complete, err)
	}

	if _, err := svc.SelectAgent(1, jettSelection()); err != nil {
		t.Fatalf("SelectAgent: %v", err)
	}
	complete, err = svc.HasCompleteProfile(1)
	if err != nil || !complete {
		t.Errorf("complete=%v err=%v, want true", complete, err)
	}
}

func TestTaxonomyCreateAgent(t *testing.T) {
	svc := NewTaxonomyService(newMemTaxonomyRepo())

	agent, err := svc.CreateAgent("Viper")
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	if agent.Category != models.CategoryController {
		t.Errorf("category = %s, want Controller", agent.Category)
	}

	if _, err := svc.CreateAgent("Viper"); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate err = %v, want ErrConflict", err)
	}
	if _, err := svc.CreateAgent("Minsc"); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown name err = %v, want ErrValidation", err)
	}
}

func TestTaxonomyCreatePlatformRankRegion(t *testing.T) {
	svc := NewTaxonomyService(newMemTaxonomyRepo())

	if _, err := svc.CreatePlatform("pc"); err != nil {
		t.Errorf("CreatePlatform is case-insensitive: %v", err)
	}
	if _, err := svc.CreatePlatform("DREAMCAST"); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}

	if _, err := svc.CreateRank("Radiant"); err != nil {
		t.Errorf("CreateRank: %v", err)
	}
	if _, err := svc.CreateRank("Wood"); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}

	if _, err := svc.CreateRegion("eu"); err != nil {
		t.Errorf("CreateRegion is case-insensitive: %v", err)
	}
	if _, err := svc.CreateRegion("MOON"); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}
