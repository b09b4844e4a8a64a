package media

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dailydrive/dailydrive/config"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	mux := http.NewServeMux()
	mux.HandleFunc("/playlists", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Plex-Token") == "" {
			http.Error(w, "no token", http.StatusUnauthorized)
			return
		}
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{}`)
			return
		}
		fmt.Fprint(w, `{"MediaContainer":{"Metadata":[]}}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"MediaContainer":{"friendlyName":"test",`+
			`"version":"1.0","machineIdentifier":"abc123"}}`)
	})
	ts := httptest.NewServer(mux)
	cfg := &config.Config{
		Media: config.MediaConfig{URL: ts.URL, Token: "admin-token"},
	}
	return NewServer(cfg), ts
}

func TestStatus(t *testing.T) {
	s, ts := testServer(t)
	defer ts.Close()
	status := s.Status()
	if !status.Connected {
		t.Errorf("should be connected")
	}
	if status.Name != "test" || status.Version != "1.0" {
		t.Errorf("bad status: %+v", status)
	}
	if s.machine() != "abc123" {
		t.Errorf("machine id not captured")
	}
}

func TestConcurrentStatusCreate(t *testing.T) {
	s, ts := testServer(t)
	defer ts.Close()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !s.Status().Connected {
				t.Errorf("status failed")
			}
			err := s.CreatePlaylist("Daily Drive - 2026-03-10",
				[]string{"1", "2"})
			if err != nil {
				t.Errorf("create failed: %s", err)
			}
		}()
	}
	wg.Wait()
}

func TestAs(t *testing.T) {
	s, ts := testServer(t)
	defer ts.Close()
	if s.As("") != s {
		t.Errorf("empty token should return the server itself")
	}
	u := s.As("user-token")
	if u == s {
		t.Errorf("token view should be distinct")
	}
	if u.headers()["X-Plex-Token"] != "user-token" {
		t.Errorf("token not applied")
	}
	if s.headers()["X-Plex-Token"] != "admin-token" {
		t.Errorf("base token clobbered")
	}
	if !u.Status().Connected {
		t.Errorf("token view should connect")
	}
}
