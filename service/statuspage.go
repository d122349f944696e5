package service

import (
	"context"
	"fmt"
	"net/http"

	"statuspage-geckoboard/config"
	"statuspage-geckoboard/model"
)

type IIncidentSource interface {
	FetchUnresolvedIncidents(ctx context.Context) error
	FetchComponentGroups(ctx context.Context) error
	Incidents() []model.Incident
	LookupPlatform(groupID string) (string, bool)
}

// StatuspageClient reads incidents and component groups for a single page.
type StatuspageClient struct {
	http            *http.Client
	credentialsFile string
	host            string
	pageID          string
	headers         http.Header

	platforms []model.Platform
	incidents []model.Incident
}

// NewStatuspageClient loads the statuspage section of credentialsFile. A nil
// httpClient uses a client with net/http defaults.
func NewStatuspageClient(credentialsFile string, httpClient *http.Client) (*StatuspageClient, error) {
	creds, resolved, err := config.LoadCredentials(credentialsFile, "statuspage", config.StatuspageKeys)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	headers := jsonHeader()
	headers.Set("Authorization", "OAuth "+creds["apikey"])

	return &StatuspageClient{
		http:            httpClient,
		credentialsFile: resolved,
		host:            creds["host"],
		pageID:          creds["pageid"],
		headers:         headers,
	}, nil
}

func (c *StatuspageClient) CredentialsFile() string { return c.credentialsFile }

func (c *StatuspageClient) Host() string { return c.host }

func (c *StatuspageClient) PageID() string { return c.pageID }

// Headers returns a copy of the headers sent on every request.
func (c *StatuspageClient) Headers() http.Header { return c.headers.Clone() }

func (c *StatuspageClient) Platforms() []model.Platform { return c.platforms }

func (c *StatuspageClient) Incidents() []model.Incident { return c.incidents }

func (c *StatuspageClient) endpoint(path string) string {
	return apiScheme + c.host + fmt.Sprintf("/v1/pages/%s/%s", c.pageID, path)
}

// FetchComponentGroups replaces the platform list with the page's component
// groups. On failure the list is left empty.
func (c *StatuspageClient) FetchComponentGroups(ctx context.Context) error {
	c.platforms = nil

	var groups []model.ComponentGroup
	if err := doJSON(ctx, c.http, http.MethodGet, c.endpoint("component-groups"), c.headers, nil, &groups); err != nil {
		return fmt.Errorf("fetch component groups: %w", err)
	}

	platforms := make([]model.Platform, 0, len(groups))
	for _, g := range groups {
		platforms = append(platforms, model.Platform{ID: g.ID, Name: g.Name})
	}
	c.platforms = platforms
	log.Debugf("loaded %d component groups for page %s", len(platforms), c.pageID)
	return nil
}

// FetchUnresolvedIncidents replaces the incident list with the page's
// unresolved incidents. On failure the list is left empty.
func (c *StatuspageClient) FetchUnresolvedIncidents(ctx context.Context) error {
	c.incidents = nil

	var incidents []model.Incident
	if err := doJSON(ctx, c.http, http.MethodGet, c.endpoint("incidents/unresolved"), c.headers, nil, &incidents); err != nil {
		return fmt.Errorf("fetch unresolved incidents: %w", err)
	}

	c.incidents = incidents
	log.Debugf("loaded %d unresolved incidents for page %s", len(incidents), c.pageID)
	return nil
}

// LookupPlatform returns the name of the first platform with groupID.
func (c *StatuspageClient) LookupPlatform(groupID string) (string, bool) {
	for _, p := range c.platforms {
		if p.ID == groupID {
			return p.Name, true
		}
	}
	return "", false
}
