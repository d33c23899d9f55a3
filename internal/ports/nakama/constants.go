package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameCoinche is the authoritative match handler name registered with Nakama.
	MatchNameCoinche = "coinche_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlaceBid  int64 = 2
	OpPlayCard  int64 = 3

	// Server -> Client events
	OpMatchState      int64 = 101
	OpGameStarted     int64 = 102
	OpRoundStarted    int64 = 103
	OpHandDealt       int64 = 104 // send privately
	OpBidPlaced       int64 = 105
	OpContractSet     int64 = 106
	OpRoundVoided     int64 = 107
	OpCardPlayed      int64 = 108
	OpBeloteAnnounced int64 = 109
	OpTrickWon        int64 = 110
	OpRoundScored     int64 = 111
	OpGameEnded       int64 = 112
	OpGameError       int64 = 113
	OpPlayerJoined    int64 = 114
	OpPlayerLeft      int64 = 115
)
