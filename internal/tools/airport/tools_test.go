package airport

import (
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-flights/internal/tools/testdata"
)

func TestRegisterAirportTools(t *testing.T) {
	sc := newServerContext(t, testdata.NewDirectory())

	mcpSrv := mcpserver.NewMCPServer("test", "0.0.1",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	require.NoError(t, RegisterAirportTools(mcpSrv, sc))
	require.NoError(t, RegisterAirportResources(mcpSrv, sc))

	tools := mcpSrv.ListTools()
	assert.Len(t, tools, 2)
	assert.Contains(t, tools, "airport_search")
	assert.Contains(t, tools, "update_airports_database")

	assert.Equal(t, []string{"query"}, tools["airport_search"].Tool.InputSchema.Required)
}
