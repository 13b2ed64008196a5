package antserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/agvlog/internal/adapters/antserver"
	"github.com/example/agvlog/internal/ports/secondary"
)

func TestSubmit(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/wms/rest/missions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"retcode":0,"payload":{"acceptedmissions":["M-77"]}}`))
	}))
	defer srv.Close()

	client := antserver.NewClient(srv.URL, "secret", time.Second)
	res, err := client.Submit(context.Background(), secondary.MissionSubmission{
		Type:      secondary.MissionTypeNodeToNode,
		FromNode:  "A",
		ToNode:    "B",
		Payload:   "Default Payload",
		Reference: "ref-1",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if res.RetCode != secondary.RetCodeNoError {
		t.Errorf("RetCode = %d, want 0", res.RetCode)
	}
	if len(res.AcceptedMissionIDs) != 1 || res.AcceptedMissionIDs[0] != "M-77" {
		t.Errorf("AcceptedMissionIDs = %v, want [M-77]", res.AcceptedMissionIDs)
	}
	if gotBody["fromnode"] != "A" || gotBody["tonode"] != "B" {
		t.Errorf("submitted nodes = %v/%v, want A/B", gotBody["fromnode"], gotBody["tonode"])
	}
	if gotBody["reference"] != "ref-1" {
		t.Errorf("submitted reference = %v, want ref-1", gotBody["reference"])
	}
}

func TestSubmitRejectedRetCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"retcode":3,"payload":{"acceptedmissions":[]}}`))
	}))
	defer srv.Close()

	client := antserver.NewClient(srv.URL, "", time.Second)
	res, err := client.Submit(context.Background(), secondary.MissionSubmission{FromNode: "A", ToNode: "B"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if res.RetCode == secondary.RetCodeNoError {
		t.Error("expected non-zero retcode to pass through")
	}
}

func TestRecentMissions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wms/rest/missions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "120" {
			t.Errorf("limit = %s, want 120", got)
		}
		w.Write([]byte(`{"retcode":0,"payload":{"missions":[
			{"missionid":"M-2","state":2,"navigationstate":3,"transportstate":4,"arrivingtime":"2023-11-23T10:21:40"},
			{"missionid":"M-1","state":4,"navigationstate":0,"transportstate":8}
		]}}`))
	}))
	defer srv.Close()

	client := antserver.NewClient(srv.URL, "", time.Second)
	missions, err := client.RecentMissions(context.Background(), 120)
	if err != nil {
		t.Fatalf("RecentMissions failed: %v", err)
	}

	if len(missions) != 2 {
		t.Fatalf("got %d missions, want 2", len(missions))
	}
	if missions[0].MissionID != "M-2" || missions[0].TransportState != 4 {
		t.Errorf("missions[0] = %+v", missions[0])
	}
	if missions[1].ArrivingTime != "" {
		t.Errorf("absent arrivingtime = %q, want empty", missions[1].ArrivingTime)
	}
}

func TestVehicleDefaultsMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wms/rest/vehicles/AGV" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		// battery.info, messages and alarms deliberately absent
		w.Write([]byte(`{"state":{"vehicle.state":["runningAMission"],"errors":[]}}`))
	}))
	defer srv.Close()

	client := antserver.NewClient(srv.URL, "", time.Second)
	veh, err := client.Vehicle(context.Background(), "AGV")
	if err != nil {
		t.Fatalf("Vehicle failed: %v", err)
	}

	if got := veh.StateToken(); got != "runningAMission" {
		t.Errorf("StateToken = %q", got)
	}
	if got := veh.FirstError(); got != "" {
		t.Errorf("FirstError = %q, want empty", got)
	}
	if got := veh.FirstAlarm(); got != "" {
		t.Errorf("FirstAlarm = %q, want empty", got)
	}
	if got := veh.BatteryInfo(); got != "" {
		t.Errorf("BatteryInfo = %q, want empty", got)
	}
}

func TestNon2xxStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := antserver.NewClient(srv.URL, "", time.Second)
	if _, err := client.RecentMissions(context.Background(), 10); err == nil {
		t.Error("expected error for 502 response")
	}
	if _, err := client.Vehicle(context.Background(), "AGV"); err == nil {
		t.Error("expected error for 502 response")
	}
}

func TestAPIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q, want secret", got)
		}
		w.Write([]byte(`{"retcode":0,"payload":{"missions":[]}}`))
	}))
	defer srv.Close()

	client := antserver.NewClient(srv.URL, "secret", time.Second)
	if _, err := client.RecentMissions(context.Background(), 1); err != nil {
		t.Fatalf("RecentMissions failed: %v", err)
	}
}
