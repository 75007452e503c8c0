package hrapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zama9729/Final-HR-Nov7-sub000/internal/config"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/domain"
	"github.com/zama9729/Final-HR-Nov7-sub000/internal/hrapi"
)

// newTestClient serves both the token endpoint and the API from one
// httptest server, so the client runs its real credentials flow.
func newTestClient(t *testing.T, handler http.HandlerFunc) *hrapi.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`)
	})
	mux.Handle("/", handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.HRAPI.BaseURL = srv.URL
	cfg.HRAPI.TokenURL = srv.URL + "/oauth/token"
	cfg.HRAPI.ClientID = "test-client"
	cfg.HRAPI.ClientSecret = "test-secret"
	cfg.HRAPI.RequestTimeout = 5

	return hrapi.NewClient(cfg)
}

func TestTimesheetFetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/timesheets" {
			t.Errorf("path = %q, want /timesheets", r.URL.Path)
		}
		if got := r.URL.Query().Get("employee_id"); got != "emp-1" {
			t.Errorf("employee_id = %q, want emp-1", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("authorization = %q, want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "ts-9",
			"week_start_date": "2024-03-04",
			"week_end_date": "2024-03-10",
			"status": "draft",
			"entries": [{"id": "e1", "work_date": "2024-03-04T00:00:00", "hours": 8}],
			"holidayCalendar": [{"date": "2024-03-08", "name": "Founders Day", "state": "KA"}]
		}`)
	})

	ts, err := client.Timesheet(context.Background(), "emp-1", "2024-03-04", "2024-03-10")
	if err != nil {
		t.Fatalf("Timesheet: %v", err)
	}
	if ts.ID != "ts-9" || ts.Status != domain.TimesheetStatusDraft {
		t.Errorf("sheet = %+v, want id ts-9 status draft", ts)
	}
	if len(ts.Entries) != 1 || ts.Entries[0].Hours != 8 {
		t.Errorf("entries = %+v, want one 8h entry", ts.Entries)
	}
	if len(ts.HolidayCalendar) != 1 || ts.HolidayCalendar[0].State != "KA" {
		t.Errorf("embedded calendar = %+v", ts.HolidayCalendar)
	}
}

func TestTimesheetNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no timesheet for week", http.StatusNotFound)
	})

	_, err := client.Timesheet(context.Background(), "emp-1", "2024-03-04", "2024-03-10")
	if !errors.Is(err, hrapi.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSaveTimesheetSendsPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		var payload struct {
			EmployeeID    string                  `json:"employee_id"`
			WeekStartDate string                  `json:"week_start_date"`
			TotalHours    float64                 `json:"total_hours"`
			Entries       []domain.TimesheetEntry `json:"entries"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding save payload: %v", err)
		}
		if payload.WeekStartDate != "2024-03-04" || payload.TotalHours != 8 || len(payload.Entries) != 1 {
			t.Errorf("payload = %+v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "ts-9", "week_start_date": "2024-03-04", "week_end_date": "2024-03-10", "status": "draft", "entries": []}`)
	})

	entries := []domain.TimesheetEntry{{WorkDate: "2024-03-04", Hours: 8}}
	ts, err := client.SaveTimesheet(context.Background(), "emp-1", "2024-03-04", "2024-03-10", 8, entries)
	if err != nil {
		t.Fatalf("SaveTimesheet: %v", err)
	}
	if ts.ID != "ts-9" {
		t.Errorf("saved sheet id = %q, want ts-9", ts.ID)
	}
}

func TestSubmitTimesheet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/timesheets/ts-9/submit" {
			t.Errorf("path = %q, want /timesheets/ts-9/submit", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.SubmitTimesheet(context.Background(), "ts-9"); err != nil {
		t.Fatalf("SubmitTimesheet: %v", err)
	}
}

func TestUpstreamErrorSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "timesheet is locked", http.StatusConflict)
	})

	err := client.SubmitTimesheet(context.Background(), "ts-9")
	var apiErr *hrapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", apiErr.StatusCode)
	}
	if apiErr.Body != "timesheet is locked" {
		t.Errorf("body = %q, want upstream message", apiErr.Body)
	}
}

func TestAttendanceTimesheet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"entries": [{"work_date": "2024-03-04", "start_time_utc": "09:00", "end_time_utc": "16:30", "hours_worked": 7.5}]}`)
	})

	entries, err := client.AttendanceTimesheet(context.Background(), "emp-1", "2024-03-04", "2024-03-10")
	if err != nil {
		t.Fatalf("AttendanceTimesheet: %v", err)
	}
	if len(entries) != 1 || entries[0].HoursWorked != 7.5 {
		t.Errorf("entries = %+v, want one 7.5h record", entries)
	}
}

func TestHolidayCalendar(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("year"); got != "2024" {
			t.Errorf("year = %q, want 2024", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"holidaysByState": {"KA": [{"date": "2024-03-08", "name": "Founders Day"}]}, "states": ["KA"]}`)
	})

	cal, err := client.HolidayCalendar(context.Background(), 2024, domain.StateAll)
	if err != nil {
		t.Fatalf("HolidayCalendar: %v", err)
	}
	if len(cal.HolidaysByState["KA"]) != 1 || len(cal.States) != 1 {
		t.Errorf("calendar = %+v", cal)
	}
}
