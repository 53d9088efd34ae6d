package mcp

import (
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jinsei-game/jinsei/internal/game"
	"github.com/jinsei-game/jinsei/internal/save"
	"github.com/jinsei-game/jinsei/internal/web"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// baseConfig is the config template for new games, set by main.
var baseConfig = game.DefaultConfig()

// saveStore persists snapshots between tool calls, set by main. May be nil.
var saveStore *save.Store

// SetConfig sets the config template for new games.
func SetConfig(cfg game.GameConfig) {
	baseConfig = cfg
}

// SetStore sets the save store for game persistence.
func SetStore(store *save.Store) {
	saveStore = store
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(selectCardsTool(), handleSelectCards)
	s.AddTool(chooseChallengeTool(), handleChooseChallenge)
	s.AddTool(chooseInsuranceTool(), handleChooseInsurance)
	s.AddTool(answerRenewalTool(), handleAnswerRenewal)
	s.AddTool(getGameStateTool(), handleGetGameState)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new playthrough of the life simulation game. "+
			"Returns the initial state and the first pending decision."),
		mcp.WithString("player_name", mcp.Description("Player name shown in the event log")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for reproducible games (0 or omitted for random)")),
	)
}

func selectCardsTool() mcp.Tool {
	return mcp.NewTool("select_cards",
		mcp.WithDescription("Select cards from the pending candidates list. Use this when the pending decision type is 'choose_cards'."),
		mcp.WithString("indices", mcp.Required(), mcp.Description("Space-separated 0-based indices of cards to select (e.g. '0 2 3')")),
	)
}

func chooseChallengeTool() mcp.Tool {
	return mcp.NewTool("choose_challenge",
		mcp.WithDescription("Pick a challenge from the pending offer. Use this when the pending decision type is 'choose_challenge'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the challenge to attempt")),
	)
}

func chooseInsuranceTool() mcp.Tool {
	return mcp.NewTool("choose_insurance",
		mcp.WithDescription("Sign an offered insurance policy, or decline. Use this when the pending decision type is 'choose_insurance'."),
		mcp.WithNumber("index", mcp.Description("0-based index of the policy to sign")),
		mcp.WithBoolean("decline", mcp.Description("true to skip insurance this turn")),
	)
}

func answerRenewalTool() mcp.Tool {
	return mcp.NewTool("answer_renewal",
		mcp.WithDescription("Answer a term insurance renewal question. Use this when the pending decision type is 'choose_renewal'."),
		mcp.WithBoolean("answer", mcp.Required(), mcp.Description("true to renew the policy, false to let it expire")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	playerName := request.GetString("player_name", "プレイヤー")
	seed := request.GetInt("seed", 0)

	cfg := baseConfig
	cfg.Seed = int64(seed)

	sess, err := NewGameSession(cfg, saveStore, playerName)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	activeSession = sess

	return mcp.NewToolResultText(respondJSON(sess.waitForPending())), nil
}

func handleSelectCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := pendingOfType(DecisionChooseCards)
	if errResult != nil {
		return errResult, nil
	}

	indicesStr := request.GetString("indices", "")
	var indices []int
	for _, p := range strings.Fields(indicesStr) {
		idx, err := strconv.Atoi(p)
		if err != nil {
			return mcp.NewToolResultErrorf("Invalid index '%s': must be an integer.", p), nil
		}
		if idx < 0 || idx >= len(pending.Candidates) {
			return mcp.NewToolResultErrorf("Index %d out of range. Must be 0-%d.", idx, len(pending.Candidates)-1), nil
		}
		indices = append(indices, idx)
	}

	if len(indices) < pending.Min {
		return mcp.NewToolResultErrorf("Must select at least %d card(s), got %d.", pending.Min, len(indices)), nil
	}
	if pending.Max > 0 && len(indices) > pending.Max {
		return mcp.NewToolResultErrorf("Must select at most %d card(s), got %d.", pending.Max, len(indices)), nil
	}

	sess.ctrl.responseCh <- CardsResponse{Indices: indices}
	return finishTurn(sess), nil
}

func handleChooseChallenge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := pendingOfType(DecisionChooseChallenge)
	if errResult != nil {
		return errResult, nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Candidates) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Candidates)-1), nil
	}

	sess.ctrl.responseCh <- PickResponse{Index: index}
	return finishTurn(sess), nil
}

func handleChooseInsurance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, pending, errResult := pendingOfType(DecisionChooseInsurance)
	if errResult != nil {
		return errResult, nil
	}

	decline := request.GetBool("decline", false)
	index := request.GetInt("index", -1)
	if !decline && (index < 0 || index >= len(pending.Candidates)) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d, or pass decline=true.", index, len(pending.Candidates)-1), nil
	}

	sess.ctrl.responseCh <- PickResponse{Index: index, Decline: decline}
	return finishTurn(sess), nil
}

func handleAnswerRenewal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, _, errResult := pendingOfType(DecisionChooseRenewal)
	if errResult != nil {
		return errResult, nil
	}

	sess.ctrl.responseCh <- YesNoResponse{Answer: request.GetBool("answer", false)}
	return finishTurn(sess), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess := activeSession

	sess.mu.Lock()
	gameOver := sess.gameOver
	result := sess.result
	score := sess.score
	sess.mu.Unlock()

	resp := &ToolResponse{
		Events:   sess.drainEvents(),
		GameOver: gameOver,
		Result:   result,
		Score:    score,
	}
	if resp.Events == nil {
		resp.Events = []web.EventView{}
	}
	if !gameOver {
		resp.State = web.BuildStateView(sess.game)
		resp.Pending = sess.currentPending
	} else if sess.currentPending != nil {
		resp.State = sess.currentPending.State
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

// pendingOfType checks the singleton session and its current pending
// decision against the expected type.
func pendingOfType(want DecisionType) (*GameSession, *PendingDecision, *mcp.CallToolResult) {
	if activeSession == nil {
		return nil, nil, mcp.NewToolResultError("No game is running. Use start_game first.")
	}
	pending := activeSession.currentPending
	if pending == nil {
		return nil, nil, mcp.NewToolResultError("No pending decision.")
	}
	if pending.Type != want {
		return nil, nil, mcp.NewToolResultErrorf("Wrong tool: pending decision is '%s', not '%s'. Use the correct tool.", pending.Type, want)
	}
	return activeSession, pending, nil
}

// finishTurn waits for the next decision after a response was submitted.
func finishTurn(sess *GameSession) *mcp.CallToolResult {
	resp := sess.waitForPending()
	if resp.GameOver {
		activeSession = nil
	}
	return mcp.NewToolResultText(respondJSON(resp))
}
