package voice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/azspeech/azspeech/pkg/errorsx"
	"github.com/azspeech/azspeech/pkg/transport"
)

const catalog = `[
  {"Name":"A","ShortName":"en-US-JennyNeural","DisplayName":"Jenny","Locale":"en-US","LocaleName":"English (US)","Gender":"Female","VoiceType":"Neural","Status":"GA","SampleRateHertz":"24000"},
  {"Name":"B","ShortName":"de-DE-KatjaNeural","DisplayName":"Katja","Locale":"de-DE","LocaleName":"German","Gender":"Female","VoiceType":"Neural","Status":"GA","SampleRateHertz":"24000"}
]`

func TestListSendsTrialOrigin(t *testing.T) {
	var gotOrigin string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrigin = r.Header.Get("Origin")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalog))
	}))
	defer srv.Close()

	voices, err := Client{Endpoint: srv.URL}.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(voices) != 2 {
		t.Fatalf("expected 2 voices, got %d", len(voices))
	}
	if gotOrigin != transport.TrialOrigin {
		t.Fatalf("expected trial origin, got %q", gotOrigin)
	}
}

func TestListSendsSubscriptionKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := (Client{Endpoint: srv.URL, Key: "k"}).List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotKey != "k" {
		t.Fatalf("expected subscription key header, got %q", gotKey)
	}
}

func TestListNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := Client{Endpoint: srv.URL}.List(context.Background())
	if !errorsx.HasKind(err, errorsx.KindConnect) {
		t.Fatalf("expected connect kind, got %v", err)
	}
}

func TestFilters(t *testing.T) {
	voices := []Voice{
		{ShortName: "en-US-JennyNeural", Locale: "en-US"},
		{ShortName: "de-DE-KatjaNeural", Locale: "de-DE"},
	}
	if got := FilterByLocale(voices, "de-de"); len(got) != 1 || got[0].ShortName != "de-DE-KatjaNeural" {
		t.Fatalf("locale filter failed: %+v", got)
	}
	if got := FilterByName(voices, "en-US-JennyNeural"); len(got) != 1 || got[0].Locale != "en-US" {
		t.Fatalf("name filter failed: %+v", got)
	}
}
