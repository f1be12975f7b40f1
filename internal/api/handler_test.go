package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"MailBurst/internal/api"
	"MailBurst/internal/db"
	"MailBurst/internal/dispatch"
	"MailBurst/internal/models"
)

type fakeRunner struct {
	passResult models.DispatchResult
	passErr    error

	campaignResult models.DispatchResult
	campaignErr    error
	lastCampaignID string
}

func (f *fakeRunner) RunPass(ctx context.Context, now time.Time) (models.DispatchResult, error) {
	return f.passResult, f.passErr
}

func (f *fakeRunner) RunCampaign(ctx context.Context, id string, now time.Time) (models.DispatchResult, error) {
	f.lastCampaignID = id
	return f.campaignResult, f.campaignErr
}

const testCampaignID = "6fa459ea-ee8a-3ca4-894e-db77e160355e"

func TestRunDispatchPassReportsPartialFailuresAs200(t *testing.T) {
	runner := &fakeRunner{
		passResult: models.DispatchResult{
			TotalSent: 2,
			Errors:    []string{`campaign "Weekly": send to bad@x.com: mailbox unavailable`},
		},
	}
	h := &api.Handler{Dispatcher: runner, Log: zap.NewNop()}

	req := httptest.NewRequest("POST", "/dispatch/run", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("a pass with partial failures is still a successful pass, got %d", w.Code)
	}

	var res models.DispatchResult
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.TotalSent != 2 || len(res.Errors) != 1 {
		t.Errorf("expected 2 sent / 1 error, got %d / %v", res.TotalSent, res.Errors)
	}
}

func TestRunDispatchPassHardFailureIs500(t *testing.T) {
	runner := &fakeRunner{passErr: errors.New("list scheduled campaigns: db down")}
	h := &api.Handler{Dispatcher: runner, Log: zap.NewNop()}

	req := httptest.NewRequest("POST", "/dispatch/run", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("a pass that cannot begin must be a hard failure, got %d", w.Code)
	}
}

func TestSendCampaignValidatesID(t *testing.T) {
	h := &api.Handler{Dispatcher: &fakeRunner{}, Log: zap.NewNop()}

	req := httptest.NewRequest("POST", "/campaigns/not-a-uuid/send", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestSendCampaignMapsErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &db.CampaignNotFoundError{ID: testCampaignID}, http.StatusNotFound},
		{"already sent", &dispatch.StatusError{CampaignID: testCampaignID, Status: models.StatusSent}, http.StatusConflict},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner := &fakeRunner{campaignErr: tc.err}
			h := &api.Handler{Dispatcher: runner, Log: zap.NewNop()}

			req := httptest.NewRequest("POST", "/campaigns/"+testCampaignID+"/send", nil)
			w := httptest.NewRecorder()
			h.Router().ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestSendCampaignSuccess(t *testing.T) {
	runner := &fakeRunner{
		campaignResult: models.DispatchResult{TotalSent: 3, Errors: []string{}},
	}
	h := &api.Handler{Dispatcher: runner, Log: zap.NewNop()}

	req := httptest.NewRequest("POST", "/campaigns/"+testCampaignID+"/send", nil)
	w := httptest.NewRecorder()
	h.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if runner.lastCampaignID != testCampaignID {
		t.Errorf("expected dispatch of %s, got %s", testCampaignID, runner.lastCampaignID)
	}

	var res models.DispatchResult
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.TotalSent != 3 {
		t.Errorf("expected 3 sent, got %d", res.TotalSent)
	}
}
