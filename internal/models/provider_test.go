package models

import "testing"

func TestIsClaimable(t *testing.T) {
	tests := []struct {
		name      string
		preloaded bool
		claimed   bool
		want      bool
	}{
		{"preloaded and unclaimed", true, false, true},
		{"preloaded and claimed", true, true, false},
		{"self registered", false, true, false},
		{"neither", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Provider{IsPreloaded: tt.preloaded, IsClaimed: tt.claimed}
			if got := p.IsClaimable(); got != tt.want {
				t.Errorf("IsClaimable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProviderTypeIsValid(t *testing.T) {
	for _, pt := range ProviderTypes {
		if !pt.IsValid() {
			t.Errorf("%q should be valid", pt)
		}
	}
	for _, bad := range []ProviderType{"", "wizard", "Doctor"} {
		if bad.IsValid() {
			t.Errorf("%q should be invalid", bad)
		}
	}
}

func TestHasFeature(t *testing.T) {
	p := Provider{AccessibilityFeatures: []string{FeatureWheelchairAccess, FeatureElevator}}

	if !p.HasFeature("wheelchair_access") {
		t.Error("exact match not found")
	}
	if !p.HasFeature("ELEVATOR") {
		t.Error("feature match should be case insensitive")
	}
	if p.HasFeature(FeatureBrailleSignage) {
		t.Error("absent feature reported as present")
	}
}

func TestAppointmentTransitions(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentPending, AppointmentConfirmed, true},
		{AppointmentPending, AppointmentCancelled, true},
		{AppointmentPending, AppointmentCompleted, false},
		{AppointmentConfirmed, AppointmentCancelled, true},
		{AppointmentConfirmed, AppointmentCompleted, true},
		{AppointmentConfirmed, AppointmentConfirmed, false},
		{AppointmentCancelled, AppointmentConfirmed, false},
		{AppointmentCompleted, AppointmentCancelled, false},
	}

	for _, tt := range tests {
		a := Appointment{Status: tt.from}
		if got := a.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
