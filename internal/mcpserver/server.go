// Package mcpserver exposes the toolset over the Model Context Protocol on
// stdio. It only translates between MCP framing and the toolset's plain
// argument/envelope contract; no domain logic lives here.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/bl4ck0w1/seclynx/internal/tools"
	"github.com/bl4ck0w1/seclynx/pkg/utils"
)

// maxOutputBytes caps a single tool response (1 MB).
const maxOutputBytes = 1 << 20

type Server struct {
	version string
	tools   *tools.Toolset
	logger  *logrus.Logger
}

func New(version string, toolset *tools.Toolset, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{version: version, tools: toolset, logger: logger}
}

// Serve starts the MCP server on stdio and blocks until the client
// disconnects.
func (s *Server) Serve() error {
	hooks := &server.Hooks{}
	hooks.AddBeforeCallTool(func(ctx context.Context, id any, message *mcp.CallToolRequest) {
		// Arguments may carry credentials or tokens pasted by the client;
		// scrub them before they reach the log.
		s.logger.WithFields(logrus.Fields{
			"tool": message.Params.Name,
			"args": utils.RedactSecrets(message.Params.Arguments),
		}).Debug("tool call")
	})

	srv := server.NewMCPServer(
		"seclynx",
		s.version,
		server.WithRecovery(),
		server.WithToolCapabilities(false),
		server.WithHooks(hooks),
	)
	s.registerTools(srv)
	return server.ServeStdio(srv)
}

func (s *Server) registerTools(srv *server.MCPServer) {
	appArg := mcp.WithString("application",
		mcp.Description("Application GUID or name"),
		mcp.Required(),
	)

	srv.AddTool(
		mcp.NewTool("search_applications",
			mcp.WithDescription("Search application profiles by name"),
			mcp.WithString("name",
				mcp.Description("Application name or name fragment"),
				mcp.Required(),
			),
			mcp.WithNumber("page", mcp.Description("Result page (0-based)")),
			mcp.WithNumber("size", mcp.Description("Results per page")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleSearchApplications,
	)

	srv.AddTool(
		mcp.NewTool("get_application_profile",
			mcp.WithDescription("Get an application's profile, scans on file and sandbox count"),
			appArg,
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetApplicationProfile,
	)

	srv.AddTool(
		mcp.NewTool("list_scans",
			mcp.WithDescription("List the scans recorded against an application"),
			appArg,
			mcp.WithString("scan_type",
				mcp.Description("Restrict to one scan type"),
				mcp.Enum("STATIC", "DYNAMIC", "MANUAL", "SCA"),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleListScans,
	)

	srv.AddTool(
		mcp.NewTool("get_findings",
			append([]mcp.ToolOption{
				mcp.WithDescription("Get one page of security findings for an application"),
				appArg,
			}, filterArgs(
				mcp.WithNumber("page", mcp.Description("Page to fetch (0-based)")),
				mcp.WithNumber("size", mcp.Description("Findings per page (max 500)")),
			)...)...,
		),
		s.handleGetFindings,
	)

	srv.AddTool(
		mcp.NewTool("get_findings_paginated",
			append([]mcp.ToolOption{
				mcp.WithDescription("Retrieve all pages of findings (bounded) with aggregate analytics; check the truncation notice"),
				appArg,
			}, filterArgs(
				mcp.WithNumber("max_pages", mcp.Description("Page ceiling (default 50)")),
				mcp.WithNumber("page_size", mcp.Description("Findings per page (default and max 500)")),
			)...)...,
		),
		s.handleGetFindingsPaginated,
	)

	srv.AddTool(
		mcp.NewTool("summarize_findings",
			append([]mcp.ToolOption{
				mcp.WithDescription("Severity/scan-type/status breakdowns over a sample of up to 1000 findings, no raw items"),
				appArg,
			}, filterArgs()...)...,
		),
		s.handleSummarizeFindings,
	)

	srv.AddTool(
		mcp.NewTool("get_sca_findings",
			mcp.WithDescription("Get one page of software-composition (SCA) findings"),
			appArg,
			mcp.WithBoolean("exploitable_only",
				mcp.Description("Only findings with an exploit observed in the wild"),
			),
			mcp.WithString("cve", mcp.Description("Filter by CVE identifier")),
			mcp.WithString("context", mcp.Description("Sandbox GUID to query instead of the policy context")),
			mcp.WithNumber("severity_gte", mcp.Description("Minimum severity 0-5")),
			mcp.WithNumber("page", mcp.Description("Page to fetch (0-based)")),
			mcp.WithNumber("size", mcp.Description("Findings per page (max 500)")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetSCAFindings,
	)

	srv.AddTool(
		mcp.NewTool("get_sca_summary",
			mcp.WithDescription("Composition-analysis risk summary (HIGH/MEDIUM/LOW) over a sample of up to 1000 SCA findings"),
			appArg,
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetSCASummary,
	)

	srv.AddTool(
		mcp.NewTool("get_policy_compliance",
			mcp.WithDescription("Get an application's policy compliance status and violating-finding breakdown"),
			appArg,
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetPolicyCompliance,
	)

	srv.AddTool(
		mcp.NewTool("list_sandboxes",
			mcp.WithDescription("List an application's development sandboxes"),
			appArg,
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleListSandboxes,
	)
}

// filterArgs are the findings filter parameters shared by the findings
// tools, plus any extra tool-specific options.
func filterArgs(extra ...mcp.ToolOption) []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithString("scan_type",
			mcp.Description("Restrict to one scan type"),
			mcp.Enum("STATIC", "DYNAMIC", "MANUAL", "SCA"),
		),
		mcp.WithNumber("severity", mcp.Description("Exact severity 0-5")),
		mcp.WithNumber("severity_gte", mcp.Description("Minimum severity 0-5")),
		mcp.WithString("cwe", mcp.Description("Comma-separated CWE ids")),
		mcp.WithNumber("cvss", mcp.Description("Exact CVSS score")),
		mcp.WithNumber("cvss_gte", mcp.Description("Minimum CVSS score")),
		mcp.WithString("cve", mcp.Description("Filter by CVE identifier")),
		mcp.WithString("context", mcp.Description("Sandbox GUID to query instead of the policy context")),
		mcp.WithBoolean("include_annotations", mcp.Description("Include triage annotations")),
		mcp.WithBoolean("include_expired", mcp.Description("Include findings past their grace period")),
		mcp.WithBoolean("new_only", mcp.Description("Only findings first seen in the latest scan")),
		mcp.WithBoolean("policy_violation_only", mcp.Description("Only findings violating policy")),
		mcp.WithString("sca_dependency_mode", mcp.Description("SCA dependency mode (DIRECT or TRANSITIVE)")),
		mcp.WithString("sca_scan_mode", mcp.Description("SCA scan mode")),
		mcp.WithReadOnlyHintAnnotation(true),
	}
	return append(opts, extra...)
}

// deliver translates the toolset envelope into MCP framing.
func (s *Server) deliver(res tools.Result) (*mcp.CallToolResult, error) {
	if !res.Success {
		return mcp.NewToolResultError(res.Error), nil
	}
	data, err := json.MarshalIndent(res.Data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("serializing result: %v", err)), nil
	}
	return mcp.NewToolResultText(truncate(string(data))), nil
}

func truncate(s string) string {
	if len(s) <= maxOutputBytes {
		return s
	}
	return s[:maxOutputBytes] + "\n... (output truncated)"
}

func (s *Server) handleSearchApplications(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	page := request.GetInt("page", 0)
	size := request.GetInt("size", 0)
	return s.deliver(s.tools.SearchApplications(ctx, name, page, size))
}

func (s *Server) handleGetApplicationProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("application", "")
	if app == "" {
		return mcp.NewToolResultError("missing required argument: application"), nil
	}
	return s.deliver(s.tools.GetApplicationProfile(ctx, app))
}

func (s *Server) handleListScans(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("application", "")
	if app == "" {
		return mcp.NewToolResultError("missing required argument: application"), nil
	}
	return s.deliver(s.tools.ListScans(ctx, app, request.GetString("scan_type", "")))
}

func (s *Server) handleGetFindings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("application", "")
	if app == "" {
		return mcp.NewToolResultError("missing required argument: application"), nil
	}
	filters, err := filtersFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page := request.GetInt("page", 0)
	size := request.GetInt("size", 50)
	return s.deliver(s.tools.GetFindings(ctx, app, filters, page, size))
}

func (s *Server) handleGetFindingsPaginated(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("application", "")
	if app == "" {
		return mcp.NewToolResultError("missing required argument: application"), nil
	}
	filters, err := filtersFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	maxPages := request.GetInt("max_pages", 0)
	pageSize := request.GetInt("page_size", 0)
	return s.deliver(s.tools.GetFindingsPaginated(ctx, app, filters, maxPages, pageSize))
}

func (s *Server) handleSummarizeFindings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("application", "")
	if app == "" {
		return mcp.NewToolResultError("missing required argument: application"), nil
	}
	filters, err := filtersFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.deliver(s.tools.SummarizeFindings(ctx, app, filters))
}

func (s *Server) handleGetSCAFindings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("application", "")
	if app == "" {
		return mcp.NewToolResultError("missing required argument: application"), nil
	}
	filters, err := filtersFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	exploitableOnly := request.GetBool("exploitable_only", false)
	page := request.GetInt("page", 0)
	size := request.GetInt("size", 50)
	return s.deliver(s.tools.GetSCAFindings(ctx, app, filters, exploitableOnly, page, size))
}

func (s *Server) handleGetSCASummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("application", "")
	if app == "" {
		return mcp.NewToolResultError("missing required argument: application"), nil
	}
	return s.deliver(s.tools.GetSCASummary(ctx, app))
}

func (s *Server) handleGetPolicyCompliance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("application", "")
	if app == "" {
		return mcp.NewToolResultError("missing required argument: application"), nil
	}
	return s.deliver(s.tools.GetPolicyCompliance(ctx, app))
}

func (s *Server) handleListSandboxes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	app := request.GetString("application", "")
	if app == "" {
		return mcp.NewToolResultError("missing required argument: application"), nil
	}
	return s.deliver(s.tools.ListSandboxes(ctx, app))
}
