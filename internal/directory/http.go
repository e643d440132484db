package directory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"doc2file/internal/convert"
	"doc2file/internal/model"
)

// HTTPDirectory talks to the external directory service over HTTP. One POST
// carries the whole folder set; the response is one snapshot per folder the
// directory knows about.
type HTTPDirectory struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPDirectory creates a directory client for the given base URL.
// token, when non-empty, is sent as a bearer token.
func NewHTTPDirectory(baseURL, token string, timeout time.Duration) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type membershipRequest struct {
	DeveloperNames []string `json:"developer_names"`
}

type membershipResponse struct {
	Folders []struct {
		DeveloperName string   `json:"developer_name"`
		Name          string   `json:"name"`
		GroupIDs      []string `json:"group_ids"`
		Access        string   `json:"access"`
	} `json:"folders"`
}

// GetDocumentFolderMembership fetches membership snapshots for the given
// folder developer-names in a single call.
func (d *HTTPDirectory) GetDocumentFolderMembership(devNames []string) ([]*model.MembershipSnapshot, error) {
	if len(devNames) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(membershipRequest{DeveloperNames: devNames})
	if err != nil {
		return nil, fmt.Errorf("encoding membership request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, d.baseURL+"/folders/membership", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building membership request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling directory service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("directory service returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var decoded membershipResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding membership response: %w", err)
	}

	snapshots := make([]*model.MembershipSnapshot, 0, len(decoded.Folders))
	for _, f := range decoded.Folders {
		snapshots = append(snapshots, &model.MembershipSnapshot{
			FolderDeveloperName: f.DeveloperName,
			FolderName:          f.Name,
			GroupIDs:            f.GroupIDs,
			Access:              model.AccessLevel(f.Access),
		})
	}
	return snapshots, nil
}

// Compile-time check that HTTPDirectory implements convert.DirectoryService
var _ convert.DirectoryService = (*HTTPDirectory)(nil)
