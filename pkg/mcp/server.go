package mcp

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"

	aoa "github.com/unowned-ai/aoa/pkg"
	"github.com/unowned-ai/aoa/pkg/app"
	pkgdb "github.com/unowned-ai/aoa/pkg/db"
	"github.com/unowned-ai/aoa/pkg/logging"
	"github.com/unowned-ai/aoa/pkg/session"
	"github.com/unowned-ai/aoa/pkg/utils"
)

// Deps is what the journaling tools need to reach the API and the stored user.
type Deps struct {
	API   app.LogsAPI
	Store app.UserStore
	Log   logging.Logger
	Now   func() time.Time
	Loc   *time.Location
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = logging.Discard()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Loc == nil {
		d.Loc = time.Local
	}
	return d
}

type AOAMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	DbPath    string
}

// NewAOAMCPServer spins up an MCP server backed by the local store at dbPath.
func NewAOAMCPServer(dbPath string, enableWAL bool, syncMode string) (*AOAMCPServer, error) {
	resolved, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	s := server.NewMCPServer(
		"AOA MCP Server",
		aoa.Version,
		server.WithLogging(),
		server.WithRecovery(),
	)

	dbConn, err := pkgdb.Open(resolved, enableWAL, syncMode)
	if err != nil {
		return nil, err
	}

	return &AOAMCPServer{
		mcpServer: s,
		db:        dbConn,
		DbPath:    resolved,
	}, nil
}

// Store returns the session store on the server's database.
func (s *AOAMCPServer) Store() *session.Store {
	return session.NewStore(s.db)
}

// RegisterAll registers every journaling tool.
func (s *AOAMCPServer) RegisterAll(d Deps) {
	RegisterTools(s.mcpServer, d)
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *AOAMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// Close cleans up allocated resources.
func (s *AOAMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		_, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: WAL checkpoint failed during close: %v\n", err)
		}
		return s.db.Close()
	}
	return nil
}
