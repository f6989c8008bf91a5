package osm

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuscoffee/internal/pos/models"
)

const nodeResponse = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="CGImap">
  <node id="123" visible="true" lat="49.4094" lon="8.6947">
    <tag k="name" v="Test Cafe"/>
    <tag k="description" v="Lovely place"/>
    <tag k="amenity" v="cafe"/>
    <tag k="campus" v="ALTSTADT"/>
    <tag k="addr:street" v="Test Street"/>
    <tag k="addr:housenumber" v="12"/>
    <tag k="addr:postcode" v="69117"/>
    <tag k="addr:city" v="Heidelberg"/>
  </node>
</osm>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.URL, 5*time.Second, log)
}

func TestFetchNode(t *testing.T) {
	ctx := context.Background()

	t.Run("maps tags onto node fields", func(t *testing.T) {
		var gotPath, gotAccept string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAccept = r.Header.Get("Accept")
			w.Header().Set("Content-Type", "application/xml")
			_, _ = io.WriteString(w, nodeResponse)
		})

		node, err := client.FetchNode(ctx, 123)
		require.NoError(t, err)

		assert.Equal(t, "/api/0.6/node/123", gotPath)
		assert.Equal(t, "application/xml", gotAccept)
		assert.Equal(t, int64(123), node.NodeID)
		require.NotNil(t, node.Name)
		assert.Equal(t, "Test Cafe", *node.Name)
		require.NotNil(t, node.Description)
		assert.Equal(t, "Lovely place", *node.Description)
		require.NotNil(t, node.Type)
		assert.Equal(t, "cafe", *node.Type)
		require.NotNil(t, node.Campus)
		assert.Equal(t, "ALTSTADT", *node.Campus)
		require.NotNil(t, node.Street)
		assert.Equal(t, "Test Street", *node.Street)
		require.NotNil(t, node.HouseNumber)
		assert.Equal(t, "12", *node.HouseNumber)
		require.NotNil(t, node.PostalCode)
		assert.Equal(t, "69117", *node.PostalCode)
		require.NotNil(t, node.City)
		assert.Equal(t, "Heidelberg", *node.City)
	})

	t.Run("absent tags stay unset", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `<osm><node id="5"><tag k="name" v="Bare"/></node></osm>`)
		})

		node, err := client.FetchNode(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, node.Name)
		assert.Nil(t, node.Description)
		assert.Nil(t, node.Type)
		assert.Nil(t, node.Campus)
		assert.Nil(t, node.Street)
		assert.Nil(t, node.PostalCode)
	})

	t.Run("type prefers amenity over shop over type", func(t *testing.T) {
		cases := []struct {
			name string
			tags string
			want string
		}{
			{"amenity wins", `<tag k="amenity" v="cafe"/><tag k="shop" v="bakery"/><tag k="type" v="other"/>`, "cafe"},
			{"shop when no amenity", `<tag k="shop" v="bakery"/><tag k="type" v="other"/>`, "bakery"},
			{"type as last resort", `<tag k="type" v="vending"/>`, "vending"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
					_, _ = io.WriteString(w, `<osm><node id="9">`+tc.tags+`</node></osm>`)
				})
				node, err := client.FetchNode(ctx, 9)
				require.NoError(t, err)
				require.NotNil(t, node.Type)
				assert.Equal(t, tc.want, *node.Type)
			})
		}
	})

	t.Run("repeated tag key keeps the last value", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `<osm><node id="9"><tag k="name" v="First"/><tag k="name" v="Second"/></node></osm>`)
		})
		node, err := client.FetchNode(ctx, 9)
		require.NoError(t, err)
		require.NotNil(t, node.Name)
		assert.Equal(t, "Second", *node.Name)
	})

	t.Run("empty tag key is skipped", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `<osm><node id="9"><tag k="" v="ignored"/><tag k="name" v="Kept"/></node></osm>`)
		})
		node, err := client.FetchNode(ctx, 9)
		require.NoError(t, err)
		require.NotNil(t, node.Name)
		assert.Equal(t, "Kept", *node.Name)
	})

	t.Run("failure modes collapse into node not found", func(t *testing.T) {
		cases := []struct {
			name    string
			handler http.HandlerFunc
		}{
			{"http 404", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}},
			{"http 500", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}},
			{"http 410 gone", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusGone)
			}},
			{"malformed xml", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `<osm><node`)
			}},
			{"no node element", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `<osm version="0.6"></osm>`)
			}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				client := newTestClient(t, tc.handler)
				_, err := client.FetchNode(ctx, 77)
				var notFound *models.OsmNodeNotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, int64(77), notFound.NodeID)
			})
		}
	})

	t.Run("unreachable server reports node not found", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		client := NewClient(srv.URL, time.Second, log)

		_, err := client.FetchNode(ctx, 88)
		var notFound *models.OsmNodeNotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}
