// ABOUTME: MCP server subcommand
// ABOUTME: Exposes capture tools over stdio for Claude Desktop integration
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/cardsnap/config"
	"github.com/harperreed/cardsnap/extract"
	"github.com/harperreed/cardsnap/handlers"
	"github.com/harperreed/cardsnap/sheet"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(database *sql.DB, extractor extract.Extractor, sheets *sheet.Client, settings *config.Settings) error {
	log.Println("Starting cardsnap MCP server...")

	captureHandlers := handlers.NewCaptureHandlers(database, extractor, sheets, settings)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cardsnap",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_contact",
		Description: "Extract contact fields from business card photos and voice notes, merged into any existing data",
	}, captureHandlers.ExtractContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compute_next_due",
		Description: "Compute the next contact due date from a last-contact date and frequency phrase",
	}, captureHandlers.ComputeNextDue)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_contact",
		Description: "Send a contact record to the configured Google Sheet and archive it locally",
	}, captureHandlers.SaveContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_captures",
		Description: "List archived contact captures, optionally filtered by name, company, or email",
	}, captureHandlers.ListCaptures)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_capture",
		Description: "Get one archived contact capture by ID",
	}, captureHandlers.GetCapture)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_fields",
		Description: "List the contact field catalog with labels, input kinds, and option lists",
	}, captureHandlers.ListFields)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
