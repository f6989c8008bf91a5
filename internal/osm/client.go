// Package osm fetches node data from the OpenStreetMap API.
package osm

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"campuscoffee/internal/pos/models"
)

// DefaultBaseURL is the public OpenStreetMap API endpoint.
const DefaultBaseURL = "https://api.openstreetmap.org"

const userAgent = "campuscoffee/1.0"

// Client fetches single nodes from the OSM API. It holds one long-lived
// http.Client with pooled connections; construct it once and share it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an OSM API client. An empty baseURL selects the public
// OSM endpoint; tests point it at a local server.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// FetchNode retrieves one node and flattens its tag set into an OsmNode.
//
// Every failure mode — 404, other HTTP errors, transport errors, malformed
// XML, a response without a node element — collapses into
// models.OsmNodeNotFoundError. The underlying cause is logged here because
// it is not preserved in the returned error.
func (c *Client) FetchNode(ctx context.Context, nodeID int64) (models.OsmNode, error) {
	u := fmt.Sprintf("%s/api/0.6/node/%d", c.baseURL, nodeID)
	c.logger.InfoContext(ctx, "fetching OSM node", "node_id", nodeID, "url", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to build OSM request", "node_id", nodeID, "error", err)
		return models.OsmNode{}, &models.OsmNodeNotFoundError{NodeID: nodeID}
	}
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "OSM node fetch failed", "node_id", nodeID, "error", err)
		return models.OsmNode{}, &models.OsmNodeNotFoundError{NodeID: nodeID}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.OsmNode{}, &models.OsmNodeNotFoundError{NodeID: nodeID}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.ErrorContext(ctx, "OSM node fetch returned error status",
			"node_id", nodeID, "status", resp.StatusCode)
		return models.OsmNode{}, &models.OsmNodeNotFoundError{NodeID: nodeID}
	}

	var doc osmResponse
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		c.logger.ErrorContext(ctx, "failed to parse OSM response", "node_id", nodeID, "error", err)
		return models.OsmNode{}, &models.OsmNodeNotFoundError{NodeID: nodeID}
	}
	if len(doc.Nodes) == 0 {
		return models.OsmNode{}, &models.OsmNodeNotFoundError{NodeID: nodeID}
	}

	return nodeFromTags(nodeID, collectTags(doc.Nodes[0])), nil
}

// OSM API response types, per the 0.6 XML format.

type osmResponse struct {
	XMLName xml.Name  `xml:"osm"`
	Nodes   []nodeXML `xml:"node"`
}

type nodeXML struct {
	ID   int64    `xml:"id,attr"`
	Lat  float64  `xml:"lat,attr"`
	Lon  float64  `xml:"lon,attr"`
	Tags []tagXML `xml:"tag"`
}

type tagXML struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

// collectTags flattens the node's tag elements into a map. Keys are unique;
// a repeated key keeps the last value, an empty key is skipped.
func collectTags(n nodeXML) map[string]string {
	tags := make(map[string]string, len(n.Tags))
	for _, t := range n.Tags {
		if t.K == "" {
			continue
		}
		tags[t.K] = t.V
	}
	return tags
}

// nodeFromTags maps well-known OSM tags onto OsmNode fields. Absent tags
// leave the field nil. The type field prefers amenity over shop over type;
// no other tags are inspected for it.
func nodeFromTags(nodeID int64, tags map[string]string) models.OsmNode {
	node := models.OsmNode{
		NodeID:      nodeID,
		Name:        tagValue(tags, "name"),
		Description: tagValue(tags, "description"),
		Campus:      tagValue(tags, "campus"),
		Street:      tagValue(tags, "addr:street"),
		HouseNumber: tagValue(tags, "addr:housenumber"),
		PostalCode:  tagValue(tags, "addr:postcode"),
		City:        tagValue(tags, "addr:city"),
	}

	for _, key := range []string{"amenity", "shop", "type"} {
		if v := tagValue(tags, key); v != nil {
			node.Type = v
			break
		}
	}
	return node
}

func tagValue(tags map[string]string, key string) *string {
	if v, ok := tags[key]; ok {
		return &v
	}
	return nil
}
