package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/aoa/pkg/app"
	"github.com/unowned-ai/aoa/pkg/journal"
)

const noUserMessage = "No user is signed up on this machine. Run `aoa signup --name NAME --email EMAIL` or save a check-in with `aoa checkin` first."

// RegisterTools registers ping and every journaling tool on s.
func RegisterTools(s *server.MCPServer, d Deps) {
	d = d.withDefaults()
	RegisterPingTool(s)

	s.AddTool(mcp.NewTool("whoami",
		mcp.WithDescription("Returns the user signed up on this machine."),
	), whoAmIHandler(d))

	s.AddTool(mcp.NewTool("get_today",
		mcp.WithDescription("Returns today's daily log, or null when nothing was recorded yet."),
	), getTodayHandler(d))

	s.AddTool(mcp.NewTool("checkin",
		mcp.WithDescription("Records the morning check-in for today."),
		mcp.WithString("attention", mcp.Required(), mcp.Description("Where is your attention at today?")),
		mcp.WithString("obsession", mcp.Description("Are you obsessed with it?")),
		mcp.WithString("agency", mcp.Description("What agency are you taking for it today?")),
	), checkinHandler(d))

	s.AddTool(mcp.NewTool("checkout",
		mcp.WithDescription("Records the evening checkout for today."),
		mcp.WithString("til", mcp.Required(), mcp.Description("Today I learned... (be short, so you can remember)")),
		mcp.WithString("til2", mcp.Description("Anything else learned.")),
		mcp.WithString("til3", mcp.Description("Even more learned.")),
		mcp.WithString("reading", mcp.Description("What you read, watched, or listened to.")),
		mcp.WithString("links", mcp.Description("Links to keep, one per line.")),
	), checkoutHandler(d))

	s.AddTool(mcp.NewTool("list_logs",
		mcp.WithDescription("Lists the user's daily logs, most recent first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of logs to return. 0 returns all.")),
	), listLogsHandler(d, func(v journal.Views) []journal.DailyLog { return v.All }))

	s.AddTool(mcp.NewTool("reading_list",
		mcp.WithDescription("Lists the days something was read, watched, or listened to."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of logs to return. 0 returns all.")),
	), listLogsHandler(d, func(v journal.Views) []journal.DailyLog { return v.Reading }))

	s.AddTool(mcp.NewTool("link_dumps",
		mcp.WithDescription("Lists the days with saved links."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of logs to return. 0 returns all.")),
	), listLogsHandler(d, func(v journal.Views) []journal.DailyLog { return v.LinkDumps }))
}

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the AOA MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_aoa"), nil
}

func newPage(d Deps) *app.CheckinPage {
	return app.NewCheckinPage(d.API, d.Store,
		app.WithClock(d.Now),
		app.WithLocation(d.Loc),
		app.WithPageLogger(d.Log))
}

func whoAmIHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		user, err := d.Store.LoadUser(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read stored user: %v", err)), nil
		}
		if user == nil {
			return mcp.NewToolResultError(noUserMessage), nil
		}
		return jsonResult("user", user)
	}
}

func getTodayHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		page := newPage(d)
		if err := page.Bootstrap(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if page.User == nil {
			return mcp.NewToolResultError(noUserMessage), nil
		}
		if page.Err != "" {
			return mcp.NewToolResultError(page.Err), nil
		}
		return jsonResult("daily log", page.Today)
	}
}

func checkinHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		attention := stringArg(request, "attention")
		if attention == "" {
			return mcp.NewToolResultError("'attention' parameter is required and must be a non-empty string."), nil
		}

		page := newPage(d)
		if err := page.Bootstrap(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if page.User == nil {
			return mcp.NewToolResultError(noUserMessage), nil
		}
		if page.Err != "" {
			return mcp.NewToolResultError(page.Err), nil
		}
		if page.Form.Mode == journal.ModeCheckout {
			return mcp.NewToolResultError(fmt.Sprintf("Already checked in for %s. Use the checkout tool.", page.Today.LogDate)), nil
		}

		page.Form.Set(journal.KeyAttention, attention)
		page.Form.Set(journal.KeyObsession, stringArg(request, "obsession"))
		page.Form.Set(journal.KeyAgency, stringArg(request, "agency"))
		if err := page.Save(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to check in: %v", err)), nil
		}
		return jsonResult("daily log", page.Today)
	}
}

func checkoutHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		til := stringArg(request, "til")
		if til == "" {
			return mcp.NewToolResultError("'til' parameter is required and must be a non-empty string."), nil
		}

		user, err := d.Store.LoadUser(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read stored user: %v", err)), nil
		}
		if user == nil {
			return mcp.NewToolResultError(noUserMessage), nil
		}

		payload := journal.CheckoutPayload(map[string]string{
			journal.KeyTIL1:      til,
			journal.KeyTIL2:      stringArg(request, "til2"),
			journal.KeyTIL3:      stringArg(request, "til3"),
			journal.KeyReading:   stringArg(request, "reading"),
			journal.KeyLinkDumps: stringArg(request, "links"),
		})
		// The API creates the day's log when there was no check-in.
		log, err := d.API.CreateCheckoutLog(ctx, user.ID, journal.Today(d.Now(), d.Loc), payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to check out: %v", err)), nil
		}
		d.Log.Info(ctx, "checked out via mcp", "user_id", user.ID, "date", log.LogDate)
		return jsonResult("daily log", log)
	}
}

func listLogsHandler(d Deps, pick func(journal.Views) []journal.DailyLog) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dash := app.NewDashboard(d.API, d.Store, d.Log)
		if err := dash.Load(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !dash.SignedIn() {
			return mcp.NewToolResultError(noUserMessage), nil
		}
		if dash.Err != "" {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list logs: %s", dash.Err)), nil
		}

		logs := pick(dash.Views)
		if limit := intArg(request, "limit", 0); limit > 0 && limit < len(logs) {
			logs = logs[:limit]
		}
		return jsonResult("logs", logs)
	}
}
