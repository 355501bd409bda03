package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docverify/internal/adapters/driving/mcp"
	"github.com/custodia-labs/docverify/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the document workflow to AI assistants",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the document workflow over the Model Context Protocol.

The server uses the credential saved by 'docverify signin'. An assistant can
submit a file, wait for extraction, correct fields and export the verified
record. When the credential expires the session is cleared and tools report
that a new sign-in is needed.

Tools:      submit_document, await_document, update_document, export_document
Resources:  docverify://session, docverify://verified,
            docverify://history/{documentId}

Stdio is used unless --port is given:
  docverify mcp serve
  docverify mcp serve --port 8080 --host 127.0.0.1

Assistant configuration:
  {
    "mcpServers": {
      "docverify": {
        "command": "/path/to/docverify",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().String("host", "localhost", "HTTP listen host")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return fmt.Errorf("getting host flag: %w", err)
	}

	ports := &mcp.Ports{
		Auth:      authService,
		Documents: documentService,
		Export:    exportService,
		History:   historyService,
	}

	server, err := mcp.NewServer(ports, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if authService != nil && !authService.Credentials().IsAuthenticated() {
		logger.Warn("not signed in, tools will fail until 'docverify signin' is run")
	}

	if port > 0 {
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
