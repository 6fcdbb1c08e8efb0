package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"monstercoup/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting an open match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

type inviteCreateRequest struct {
	MatchID string `json:"match_id"`
}

type inviteCreateResponse struct {
	Token string `json:"token"`
}

type inviteRedeemRequest struct {
	Token string `json:"token"`
}

type inviteRedeemResponse struct {
	MatchID string `json:"match_id"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc(RpcInviteCreate, rpcInviteCreate); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcInviteRedeem, rpcInviteRedeem)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	// Find any open lobby for our game.
	query := "+label.open:T +label.game:monstercoup"

	limit := 10
	authoritative := true
	minSize := 1
	maxSize := 1 // one seated player, one seat free

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("MatchList error: %v", err)
		return "", err
	}

	if len(matches) > 0 {
		resp := QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false}
		b, _ := json.Marshal(resp)
		return string(b), nil
	}

	// Create a new match; seat/owner assignment happens in MatchJoin.
	matchID, err := nk.MatchCreate(ctx, MatchNameMonsterCoup, map[string]interface{}{})
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", err
	}

	resp := QuickMatchResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	return string(b), nil
}

func rpcInviteCreate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", fmt.Errorf("authenticated user required")
	}

	var req inviteCreateRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.MatchID == "" {
		return "", fmt.Errorf("match_id is required")
	}

	token, err := inviteServiceFromEnv(ctx).CreateToken(req.MatchID, userID)
	if err != nil {
		logger.Error("rpcInviteCreate [User:%s]: %v", userID, err)
		return "", err
	}

	b, _ := json.Marshal(inviteCreateResponse{Token: token})
	return string(b), nil
}

func rpcInviteRedeem(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req inviteRedeemRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil || req.Token == "" {
		return "", fmt.Errorf("token is required")
	}

	matchID, err := inviteServiceFromEnv(ctx).Verify(req.Token)
	if err != nil {
		logger.Warn("rpcInviteRedeem: rejected token: %v", err)
		return "", err
	}

	b, _ := json.Marshal(inviteRedeemResponse{MatchID: matchID})
	return string(b), nil
}

func inviteServiceFromEnv(ctx context.Context) *app.InviteService {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	return app.NewInviteService(env["monstercoup_invite_secret"], "monstercoup", 0)
}
