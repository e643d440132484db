package directory_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"doc2file/internal/directory"
	"doc2file/internal/model"
)

func TestHTTPDirectory_GetDocumentFolderMembership(t *testing.T) {
	t.Run("posts the folder set and decodes snapshots", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody struct {
			DeveloperNames []string `json:"developer_names"`
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decoding request: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"folders":[
				{"developer_name":"hr_policies","name":"HR Policies","group_ids":["g-1","g-2"],"access":"ReadOnly"},
				{"developer_name":"sales","name":"Sales","group_ids":[],"access":"ReadWrite"}
			]}`))
		}))
		defer server.Close()

		d := directory.NewHTTPDirectory(server.URL, "secret-token", 5*time.Second)
		snapshots, err := d.GetDocumentFolderMembership([]string{"hr_policies", "sales"})
		if err != nil {
			t.Fatalf("GetDocumentFolderMembership() error = %v", err)
		}

		if gotPath != "/folders/membership" {
			t.Errorf("path = %q, want /folders/membership", gotPath)
		}
		if gotAuth != "Bearer secret-token" {
			t.Errorf("authorization = %q, want bearer token", gotAuth)
		}
		if len(gotBody.DeveloperNames) != 2 {
			t.Errorf("request names = %v, want 2", gotBody.DeveloperNames)
		}

		if len(snapshots) != 2 {
			t.Fatalf("snapshots = %d, want 2", len(snapshots))
		}
		if snapshots[0].FolderDeveloperName != "hr_policies" || snapshots[0].Access != model.AccessReadOnly {
			t.Errorf("first snapshot = %+v", snapshots[0])
		}
		if len(snapshots[0].GroupIDs) != 2 {
			t.Errorf("first snapshot groups = %v, want 2", snapshots[0].GroupIDs)
		}
		if snapshots[1].Access != model.AccessReadWrite {
			t.Errorf("second snapshot access = %q, want ReadWrite", snapshots[1].Access)
		}
	})

	t.Run("empty name set makes no request", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		d := directory.NewHTTPDirectory(server.URL, "", 5*time.Second)
		snapshots, err := d.GetDocumentFolderMembership(nil)
		if err != nil {
			t.Fatalf("GetDocumentFolderMembership() error = %v", err)
		}
		if snapshots != nil {
			t.Errorf("snapshots = %v, want nil", snapshots)
		}
		if called {
			t.Error("request made for empty name set")
		}
	})

	t.Run("non-200 responses surface the status and body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "folder service unavailable", http.StatusBadGateway)
		}))
		defer server.Close()

		d := directory.NewHTTPDirectory(server.URL, "", 5*time.Second)
		_, err := d.GetDocumentFolderMembership([]string{"hr_policies"})
		if err == nil {
			t.Fatal("GetDocumentFolderMembership() expected error for 502")
		}
	})
}
