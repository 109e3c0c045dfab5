// github.com/enstw/ensfont - tooling to build the ENS Font family
// Copyright (C) 2026  enstw
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Release is the subset of a GitHub release this tooling uses.
type Release struct {
	TagName     string  `json:"tag_name"`
	PublishedAt string  `json:"published_at"`
	Body        string  `json:"body"`
	Assets      []Asset `json:"assets"`
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// ReleaseSource supplies release information for GitHub repositories.
// Client is the production implementation.
type ReleaseSource interface {
	LatestRelease(ctx context.Context, repo string) (*Release, error)
	ReleaseByTag(ctx context.Context, repo, tag string) (*Release, error)
}

// Client queries the GitHub REST API.
type Client struct {
	// HTTPClient is used for all requests.  If nil, a client with a
	// 30 second timeout is used.
	HTTPClient *http.Client

	// BaseURL overrides the API endpoint.  Empty means the public
	// GitHub API.
	BaseURL string

	// Token is an optional bearer token for authenticated requests.
	Token string
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	base := c.BaseURL
	if base == "" {
		base = "https://api.github.com"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

var errNotFound = errors.New("not found")

// LatestRelease returns the most recent release of a repository.
func (c *Client) LatestRelease(ctx context.Context, repo string) (*Release, error) {
	rel := &Release{}
	err := c.get(ctx, "/repos/"+repo+"/releases/latest", rel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", repo, err)
	}
	return rel, nil
}

// ReleaseByTag returns the release published under the given tag.
func (c *Client) ReleaseByTag(ctx context.Context, repo, tag string) (*Release, error) {
	rel := &Release{}
	err := c.get(ctx, "/repos/"+repo+"/releases/tags/"+tag, rel)
	if err != nil {
		return nil, fmt.Errorf("%s@%s: %w", repo, tag, err)
	}
	return rel, nil
}

// ReleaseTagExists reports whether a release with the given tag has
// been published in the repository.
func ReleaseTagExists(ctx context.Context, src ReleaseSource, repo, tag string) (bool, error) {
	_, err := src.ReleaseByTag(ctx, repo, tag)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	return false, err
}
