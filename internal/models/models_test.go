package models

import (
	"testing"
	"time"
)

func TestVerificationTokenWindow(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := EmailVerification{Token: "t", CreatedAt: issued}

	if !v.IsValid(issued) {
		t.Error("token invalid at issue time")
	}
	if !v.IsValid(issued.Add(VerificationTokenTTL - time.Nanosecond)) {
		t.Error("token invalid just inside the window")
	}
	// The boundary itself counts as expired.
	if v.IsValid(issued.Add(VerificationTokenTTL)) {
		t.Error("token valid at the expiry boundary")
	}
	if v.IsValid(issued.Add(VerificationTokenTTL + time.Minute)) {
		t.Error("token valid after expiry")
	}
}

func TestCapacityForKind(t *testing.T) {
	cases := []struct {
		kind     RoomKind
		capacity int
	}{
		{RoomDuo, 2},
		{RoomTrio, 3},
		{RoomFiveStack, 5},
	}
	for _, tc := range cases {
		got, ok := CapacityForKind(tc.kind)
		if !ok || got != tc.capacity {
			t.Errorf("CapacityForKind(%s) = %d, %v; want %d, true", tc.kind, got, ok, tc.capacity)
		}
	}
	if _, ok := CapacityForKind("squad"); ok {
		t.Error("unknown kind accepted")
	}
}

func TestRoomIsFull(t *testing.T) {
	room := Room{Capacity: 2}
	if room.IsFull() {
		t.Error("empty room reported full")
	}
	room.Members = []User{{}, {}}
	if !room.IsFull() {
		t.Error("room at capacity not reported full")
	}
}

func TestCategoryForAgent(t *testing.T) {
	cases := map[string]AgentCategory{
		"Omen":  CategoryController,
		"Sage":  CategorySentinel,
		"Jett":  CategoryDuelist,
		"KAY/O": CategoryInitiator,
	}
	for name, want := range cases {
		got, ok := CategoryForAgent(name)
		if !ok || got != want {
			t.Errorf("CategoryForAgent(%s) = %s, %v; want %s", name, got, ok, want)
		}
	}
	if _, ok := CategoryForAgent("Minsc"); ok {
		t.Error("unknown agent accepted")
	}
}

func TestProfileIsComplete(t *testing.T) {
	complete := Profile{
		UserID: 1, RiotID: "phantom#EU1", RegionID: 1,
		AgentID: 1, PlatformID: 1, PlayStyle: "entry fragger",
	}
	if !complete.IsComplete() {
		t.Error("fully filled profile reported incomplete")
	}

	missingRiotID := complete
	missingRiotID.RiotID = ""
	if missingRiotID.IsComplete() {
		t.Error("profile without riot id reported complete")
	}

	missingStyle := complete
	missingStyle.PlayStyle = ""
	if missingStyle.IsComplete() {
		t.Error("profile without play style reported complete")
	}
}
