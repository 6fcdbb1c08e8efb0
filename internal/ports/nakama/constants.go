package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create an open match.
	RpcQuickMatch = "quick_match"

	// RpcInviteCreate issues a signed invite token for a private match.
	RpcInviteCreate = "invite_create"

	// RpcInviteRedeem verifies an invite token and returns the match id.
	RpcInviteRedeem = "invite_redeem"

	// MatchNameMonsterCoup is the authoritative match handler name registered with Nakama.
	MatchNameMonsterCoup = "monstercoup_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame     int64 = 1
	OpDeclareAction int64 = 2
	OpRespondAction int64 = 3
	OpChooseCard    int64 = 4

	// Server -> Client events
	OpPlayerJoined   int64 = 101
	OpPlayerLeft     int64 = 102
	OpGameStarted    int64 = 103
	OpHandDealt      int64 = 104 // sent privately
	OpActionDeclared int64 = 105
	OpActionResolved int64 = 106
	OpChoiceRequired int64 = 107
	OpCardLost       int64 = 108
	OpTurnAdvanced   int64 = 109
	OpGameEnded      int64 = 110
	OpStateUpdate    int64 = 111 // public view broadcast
	OpPrivateState   int64 = 112 // private view, sent per player
	OpGameError      int64 = 113
)
