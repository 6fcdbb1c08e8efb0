package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// botIDPrefix marks synthetic bot user ids so they are never settled
// against real wallets.
const botIDPrefix = "bot:"

// Identity is a bot profile loaded from the data folder.
type Identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

var (
	identities   []Identity
	usernameByID map[string]string
	loadOnce     sync.Once
	loadErr      error
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		usernameByID = make(map[string]string, len(identities))
		for _, id := range identities {
			usernameByID[id.UserID] = id.Username
		}
	})
	return loadErr
}

// GetIdentity returns the bot profile for a seat index, falling back to a
// generated profile when none is configured.
func GetIdentity(seat int) Identity {
	if seat >= 0 && seat < len(identities) {
		return identities[seat]
	}
	name := fmt.Sprintf("Bot%d", seat+1)
	return Identity{
		UserID:      fmt.Sprintf("%s%d", botIDPrefix, seat+1),
		Username:    name,
		DisplayName: name,
	}
}

// GetUsername returns the configured username for a bot user id, or "".
func GetUsername(userID string) string {
	return usernameByID[userID]
}

// IsBot reports whether the given user id belongs to a bot seat.
func IsBot(userID string) bool {
	if strings.HasPrefix(userID, botIDPrefix) {
		return true
	}
	_, ok := usernameByID[userID]
	return ok
}
