package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func ptr(f float64) *float64 { return &f }

func TestTierForPayload(t *testing.T) {
	tests := []struct {
		payload *float64
		want    PayloadTier
		ok      bool
	}{
		{nil, "", false},
		{ptr(0), TierLight, true},
		{ptr(10), TierLight, true},
		{ptr(10.001), TierMedium, true},
		{ptr(25), TierMedium, true},
		{ptr(25.01), TierHeavy, true},
		{ptr(30), TierHeavy, true},
	}

	for _, tt := range tests {
		got, ok := TierForPayload(tt.payload)
		if got != tt.want || ok != tt.ok {
			t.Errorf("TierForPayload(%v) = (%q, %v), want (%q, %v)", tt.payload, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDisasterStatus(t *testing.T) {
	d := &Disaster{ID: "D1"}
	if !d.Ongoing() || d.Status() != StatusOngoing {
		t.Errorf("expected ongoing disaster, got %s", d.Status())
	}

	end := time.Now()
	d.EndTime = &end
	if d.Ongoing() || d.Status() != StatusResolved {
		t.Errorf("expected resolved disaster, got %s", d.Status())
	}
}

func TestParseSeverity(t *testing.T) {
	if sev, ok := ParseSeverity(" high "); !ok || sev != SeverityHigh {
		t.Errorf("expected High, got %q %v", sev, ok)
	}
	if _, ok := ParseSeverity("severe"); ok {
		t.Error("expected unknown severity to be rejected")
	}
	if !SeverityCritical.AtLeast(SeverityHigh) || SeverityMedium.AtLeast(SeverityHigh) {
		t.Error("severity ordering is wrong")
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole("Editor"); !ok || r != RoleEditor {
		t.Errorf("expected editor, got %q %v", r, ok)
	}
	if _, ok := ParseRole("admin"); ok {
		t.Error("expected admin to be rejected")
	}
}

func TestReportRowJSON_NumbersNotStrings(t *testing.T) {
	row := OngoingResourceRow{
		DisasterID:       "D1",
		DisasterType:     "Flood",
		ActiveDrones:     2,
		TotalPayloadUsed: decimal.NewNullDecimal(decimal.RequireFromString("42.50")),
	}
	b, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"D_ID":"D1","Disaster_Type":"Flood","Active_Drones":2,"Total_Payload_Used":42.5}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}

	empty := MissionPerformanceRow{DisasterType: "Fire"}
	b, _ = json.Marshal(empty)
	if string(b) != `{"Disaster_Type":"Fire","Average_Success_Rate":null,"Total_Missions_Completed":0}` {
		t.Errorf("unexpected null encoding %s", b)
	}
}
