package composer

import (
	"strings"

	"nftforge/internal/catalog"
)

// JerseyInput carries the fields a jersey prompt depends on.
type JerseyInput struct {
	TeamID       string
	PlayerName   string
	PlayerNumber string
}

// JerseyTeamID extracts the team key from a model id such as "flamengo_home".
func JerseyTeamID(modelID string) string {
	id := strings.ToLower(strings.TrimSpace(modelID))
	if i := strings.IndexByte(id, '_'); i >= 0 {
		id = id[:i]
	}
	return id
}

// Jersey composes a catalog jersey prompt. Unknown teams return the catalog's
// CatalogMiss error.
func Jersey(cat *catalog.Catalog, in JerseyInput) (string, error) {
	tpl, err := cat.JerseyTemplate(in.TeamID)
	if err != nil {
		return "", err
	}
	return fillPlayer(tpl, in.PlayerName, in.PlayerNumber), nil
}

// ReferenceJersey fills a persisted team base prompt. The template itself is
// used as stored.
func ReferenceJersey(basePrompt, playerName, playerNumber string) string {
	return truncateWords(fillPlayer(basePrompt, playerName, playerNumber), MaxPromptLength)
}

func fillPlayer(tpl, name, number string) string {
	return Interpolate(tpl, map[string]string{
		catalog.TokenPlayerName:   strings.ToUpper(sanitizeFreeText(name)),
		catalog.TokenPlayerNumber: sanitizeFreeText(number),
	})
}
