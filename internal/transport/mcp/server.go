// Package mcp exposes a knightmare campaign to MCP clients over stdio, so an
// agent can list levels and play them through tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/knightmare/internal/core"
	"github.com/vovakirdan/knightmare/internal/game"
	"github.com/vovakirdan/knightmare/internal/level"
)

// Profile is the default save profile for MCP play.
const Profile = "mcp"

// directions maps tool arguments to moves.
var directions = map[string]core.Point{
	"up":    core.Up,
	"down":  core.Down,
	"left":  core.Left,
	"right": core.Right,
	"skip":  core.Zero,
	"wait":  core.Zero,
}

// Server serves one campaign to one MCP client.
type Server struct {
	mu        sync.Mutex
	campaign  *game.Campaign
	session   *game.Session
	index     int
	completed bool
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server for campaign c. logger may be nil.
func NewServer(c *game.Campaign, version string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		campaign: c,
		logger:   logger,
	}

	s.mcpServer = server.NewMCPServer(
		"knightmare",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s
}

const instructions = `knightmare - a turn-based grid puzzle

GOAL: remove every enemy from the board. Each turn the player moves one cell
(or waits) and then every enemy turns and walks.

RULES:
- Things whose color equals yours are ghosts to you: you walk through them.
  Brown things interact with everything.
- Boxes and walls of another color block you. Boxes can be pushed, in chains;
  walls never move.
- Enemies die only by crushing: push one into a solid of another color or
  off the board. Potions are crushed the same way.
- Sharing a cell with a potion of another color recolors you (enemies too)
  and uses the potion up.
- Sharing a cell with an enemy of another color kills you. Walking head-on
  into an enemy that faces you kills you before it even moves.
- Enemies reverse direction when the cell ahead is solid for them.

BOARD FORMAT (one 2-char token per cell, separated by spaces, blank = empty):
  P = player, W = wall, B = box, p = potion, S = snake,
  U/D/L/R = enemy walking up/down/left/right, N = stationary enemy.
  The digit is the color: 0 white, 1 red, 2 green, 3 blue, 4 pink, 5 yellow, 6 brown.
  A cell holding several things shows the player first, then enemies; such
  cells are listed in full under the grid (row and col count from 1).

TOOLS: list_levels, start_level, state, move, undo, reset.`

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List every level with its enemy count and best completion",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListLevels)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "start_level",
		Description: "Start (or restart) a level by name or 1-based number",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level": map[string]interface{}{
					"type":        "string",
					"description": "Level name or number; empty starts the first incomplete level",
				},
			},
		},
	}, s.handleStartLevel)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "state",
		Description: "Show the current board, step count and status",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Play one or more turns. Each move is up, down, left, right or skip",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Single move",
					"enum":        []string{"up", "down", "left", "right", "skip"},
				},
				"moves": map[string]interface{}{
					"type":        "array",
					"description": "Several moves played in order; stops at the end of the level",
					"items":       map[string]interface{}{"type": "string"},
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "What you are trying to achieve with this move",
				},
			},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Take back the last turn",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleUndo)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset",
		Description: "Restart the current level",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleReset)
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio", "levels", s.campaign.Pack().Len(), "profile", s.campaign.Profile())
	return server.ServeStdio(s.mcpServer)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

func (s *Server) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	progress, err := s.campaign.Progress()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d levels (profile %s)\n", len(progress), s.campaign.Profile())
	for _, p := range progress {
		best := "not completed"
		if p.Completed {
			best = fmt.Sprintf("best %d steps", p.BestSteps)
		}
		fmt.Fprintf(&sb, "%d. %s - %d enemies - %s\n", p.Index+1, p.Name, p.Enemies, best)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleStartLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, _ := arguments(request)["level"].(string)
	index, err := s.resolve(ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.start(index); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.describe()), nil
}

// resolve turns a level name or 1-based number into a pack index.
func (s *Server) resolve(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return s.campaign.FirstIncomplete(), nil
	}
	pack := s.campaign.Pack()
	if i := pack.IndexOf(ref); i >= 0 {
		return i, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= pack.Len() {
		return n - 1, nil
	}
	return 0, fmt.Errorf("unknown level %q", ref)
}

// start opens level index. Callers hold s.mu.
func (s *Server) start(index int) error {
	session, err := s.campaign.Start(index)
	if err != nil {
		return err
	}
	s.session = session
	s.index = index
	s.completed = false
	s.logger.Debug("level started", "level", session.Name())
	return nil
}

// ensure starts the first incomplete level when nothing is being played.
// Callers hold s.mu.
func (s *Server) ensure() error {
	if s.session != nil {
		return nil
	}
	return s.start(s.campaign.FirstIncomplete())
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.describe()), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	var moves []string
	if dir, ok := args["direction"].(string); ok && dir != "" {
		moves = append(moves, dir)
	}
	if raw, ok := args["moves"].([]interface{}); ok {
		for _, m := range raw {
			if move, ok := m.(string); ok {
				moves = append(moves, move)
			}
		}
	}
	if len(moves) == 0 {
		return mcp.NewToolResultError("no move given: pass direction or moves"), nil
	}

	dirs := make([]core.Point, len(moves))
	for i, m := range moves {
		d, ok := directions[strings.ToLower(strings.TrimSpace(m))]
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown move %q", m)), nil
		}
		dirs[i] = d
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	for i, d := range dirs {
		ev, err := s.session.Move(d)
		if errors.Is(err, game.ErrLevelOver) {
			fmt.Fprintf(&sb, "move %d (%s): level is over, ignored\n", i+1, moves[i])
			break
		}
		if err != nil {
			s.logger.Error("turn failed", "level", s.session.Name(), "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		fmt.Fprintf(&sb, "move %d (%s): %s\n", i+1, moves[i], describeEvents(ev))
		if s.session.Won() {
			s.complete()
		}
	}
	sb.WriteString("\n")
	sb.WriteString(s.describe())
	return mcp.NewToolResultText(sb.String()), nil
}

// complete records the win of the current level once. Callers hold s.mu.
func (s *Server) complete() {
	if s.completed {
		return
	}
	s.completed = true
	name, steps := s.session.Name(), s.session.Steps()
	if _, err := s.campaign.Complete(name, steps); err != nil {
		s.logger.Warn("could not record completion", "level", name, "error", err)
	}
	s.logger.Info("level completed", "level", name, "steps", steps)
}

func (s *Server) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !s.session.Undo() {
		return mcp.NewToolResultError("nothing to undo"), nil
	}
	s.completed = false
	return mcp.NewToolResultText(s.describe()), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensure(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.session.Reset()
	s.completed = false
	return mcp.NewToolResultText(s.describe()), nil
}

// describe renders the session state. Callers hold s.mu.
func (s *Server) describe() string {
	b := s.session.Board()
	status := "playing"
	switch {
	case s.session.Won():
		status = "won"
		if _, ok := s.campaign.Next(s.session.Name()); ok {
			status += " - start_level the next level to continue"
		} else {
			status += " - that was the last level"
		}
	case s.session.Lost():
		status = "lost - undo or reset"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Level: %s (%d/%d)\n", s.session.Name(), s.index+1, s.campaign.Pack().Len())
	fmt.Fprintf(&sb, "Step: %d\n", s.session.Steps())
	fmt.Fprintf(&sb, "Enemies: %d/%d\n", b.EnemiesRemaining(), s.session.OriginalEnemies())
	fmt.Fprintf(&sb, "Player color: %s\n", b.PlayerColor())
	fmt.Fprintf(&sb, "Status: %s\n", status)
	sb.WriteString("Board:\n")
	sb.WriteString(renderBoard(b))
	return sb.String()
}

// renderBoard draws one token per cell showing the topmost entity of each
// stack, then lists the full contents of every stacked cell.
func renderBoard(b *level.Board) string {
	if b.Count() == 0 {
		return ""
	}
	area := b.Area()
	var sb strings.Builder
	var stacked []string
	for y := area.Y; y < area.Bottom(); y++ {
		tokens := make([]string, 0, area.W)
		for x := area.X; x < area.Right(); x++ {
			stack := b.EntitiesAt(core.Pt(x, y))
			tokens = append(tokens, level.Token(level.Topmost(stack)))
			if len(stack) > 1 {
				names := make([]string, len(stack))
				for i, e := range stack {
					names[i] = level.Token(e)
				}
				stacked = append(stacked, fmt.Sprintf("  row %d col %d: %s",
					y-area.Y+1, x-area.X+1, strings.Join(names, " + ")))
			}
		}
		if y > area.Y {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(tokens, " "))
	}
	if len(stacked) > 0 {
		sb.WriteString("\nStacked cells (bottom first):\n")
		sb.WriteString(strings.Join(stacked, "\n"))
	}
	return sb.String()
}

// describeEvents summarizes a turn for the agent.
func describeEvents(ev *level.Events) string {
	var parts []string
	add := func(verb string, set level.EntitySet) {
		if set.Len() == 0 {
			return
		}
		names := make([]string, 0, set.Len())
		for _, e := range set.Sorted() {
			names = append(names, e.String())
		}
		parts = append(parts, verb+" "+strings.Join(names, ", "))
	}
	add("killed", ev.Killed)
	add("crushed", ev.Crushed)
	add("drank", ev.Consumed)
	add("recolored", ev.Colored)
	add("moved", ev.Moved)
	if len(parts) == 0 {
		return "nothing happened"
	}
	return strings.Join(parts, "; ")
}
