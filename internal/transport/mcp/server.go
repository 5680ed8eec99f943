package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/sidenote/internal/core"
	"github.com/sandevgo/sidenote/pkg/log"
)

// Server exposes the coordinator over MCP on stdio, so an MCP-capable client
// can drive sessions and read cards.
type Server struct {
	coord core.Coordinator
	mcp   *server.MCPServer
}

func NewServer(coord core.Coordinator) *Server {
	s := &Server{
		coord: coord,
		mcp:   server.NewMCPServer(core.AppName, core.AppVersion, server.WithToolCapabilities(true)),
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcpproto.NewTool("start_session",
			mcpproto.WithDescription("Start capturing and enriching the meeting")),
		s.handleStart,
	)
	s.mcp.AddTool(
		mcpproto.NewTool("stop_session",
			mcpproto.WithDescription("Stop the current capture session")),
		s.handleStop,
	)
	s.mcp.AddTool(
		mcpproto.NewTool("list_cards",
			mcpproto.WithDescription("List all enrichment cards in insertion order")),
		s.handleListCards,
	)
	s.mcp.AddTool(
		mcpproto.NewTool("clear_cards",
			mcpproto.WithDescription("Clear all cards")),
		s.handleClearCards,
	)
	s.mcp.AddTool(
		mcpproto.NewTool("ask_question",
			mcpproto.WithDescription("Ask a question against the meeting transcript"),
			mcpproto.WithString("question",
				mcpproto.Required(),
				mcpproto.Description("The question to answer"))),
		s.handleAsk,
	)
	s.mcp.AddTool(
		mcpproto.NewTool("status",
			mcpproto.WithDescription("Report recording state and card count")),
		s.handleStatus,
	)
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting mcp server on stdio")

	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) handleStart(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	if err := s.coord.StartSession(ctx); err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	return mcpproto.NewToolResultText("recording started"), nil
}

func (s *Server) handleStop(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	if err := s.coord.StopSession(ctx); err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	return mcpproto.NewToolResultText("recording stopped"), nil
}

func (s *Server) handleListCards(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	data, err := json.MarshalIndent(s.coord.Cards(), "", "  ")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	return mcpproto.NewToolResultText(string(data)), nil
}

func (s *Server) handleClearCards(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	s.coord.ClearCards()
	return mcpproto.NewToolResultText("cards cleared"), nil
}

func (s *Server) handleAsk(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	card := s.coord.Ask(ctx, question)
	return mcpproto.NewToolResultText(card.Summary), nil
}

func (s *Server) handleStatus(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	state := "standby"
	if s.coord.Recording() {
		state = "recording"
	}
	return mcpproto.NewToolResultText(fmt.Sprintf("state: %s, cards: %d", state, len(s.coord.Cards()))), nil
}
