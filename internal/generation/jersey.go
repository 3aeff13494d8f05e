package generation

import (
	"context"
	"errors"
	"strings"

	"nftforge/internal/composer"
	"nftforge/internal/domain"
	"nftforge/internal/pricing"
	"nftforge/internal/providers/openai"
)

// JerseyResult is the catalog jersey response body.
type JerseyResult struct {
	ImageB64 string  `json:"image_base64"`
	CostUSD  float64 `json:"cost_usd"`
	Prompt   string  `json:"-"`
	TeamID   string  `json:"-"`
}

// ReferenceJerseyResult is the persisted-reference jersey response body.
type ReferenceJerseyResult struct {
	ImageURL string  `json:"image_url"`
	Prompt   string  `json:"prompt"`
	CostUSD  float64 `json:"cost_usd"`
}

// GenerateJersey composes a catalog jersey and renders it at 1024x1024.
func (s *Service) GenerateJersey(ctx context.Context, req domain.JerseyRequest) (*JerseyResult, error) {
	r := s.begin(domain.KindJersey)
	req.PlayerName, req.PlayerNumber = trimPlayer(req.PlayerName, req.PlayerNumber)
	if err := domain.Validate(req); err != nil {
		return nil, r.fail(err)
	}
	quality, err := parseQuality(req.Quality)
	if err != nil {
		return nil, r.fail(err)
	}

	r.enter(StageComposing)
	teamID := composer.JerseyTeamID(req.TeamID)
	prompt, err := composer.Jersey(s.catalog, composer.JerseyInput{
		TeamID:       teamID,
		PlayerName:   req.PlayerName,
		PlayerNumber: req.PlayerNumber,
	})
	if err != nil {
		return nil, r.fail(err)
	}

	artifact, err := r.generate(ctx, openai.ImageRequest{Prompt: prompt, Size: domain.SizeSquare, Quality: quality})
	if err != nil {
		return nil, r.fail(err)
	}
	cost := roundCost(s.pricing.Cost(pricing.OpJersey, quality))
	r.done(cost)
	return &JerseyResult{ImageB64: artifact.ImageB64, CostUSD: cost, Prompt: prompt, TeamID: teamID}, nil
}

// GenerateJerseyFromReference fills the team's persisted base prompt. The
// team name is matched exactly.
func (s *Service) GenerateJerseyFromReference(ctx context.Context, req domain.ReferenceJerseyRequest) (*ReferenceJerseyResult, error) {
	r := s.begin(domain.KindJersey)
	req.PlayerName, req.PlayerNumber = trimPlayer(req.PlayerName, req.PlayerNumber)
	if err := domain.Validate(req); err != nil {
		return nil, r.fail(err)
	}
	quality, err := parseQuality(req.Quality)
	if err != nil {
		return nil, r.fail(err)
	}
	if s.teams == nil {
		return nil, r.fail(domain.Unavailablef("Team reference store not available"))
	}

	r.enter(StageComposing)
	base, err := s.teams.LoadTeamBasePrompt(ctx, req.TeamName)
	if err != nil {
		if errors.Is(err, domain.ErrReferenceMiss) {
			return nil, r.fail(domain.ReferenceMissf("No reference found for team %s", req.TeamName))
		}
		return nil, r.fail(err)
	}
	if strings.TrimSpace(base) == "" {
		return nil, r.fail(domain.ReferenceMissf("Team reference for %s has an empty base prompt", req.TeamName))
	}
	prompt := composer.ReferenceJersey(base, req.PlayerName, req.PlayerNumber)

	artifact, err := r.generate(ctx, openai.ImageRequest{Prompt: prompt, Size: domain.SizeSquare, Quality: quality})
	if err != nil {
		return nil, r.fail(err)
	}
	imageURL := artifact.ProviderURL
	if imageURL == "" {
		imageURL = "data:" + artifact.MIMEType + ";base64," + artifact.ImageB64
	}
	cost := roundCost(s.pricing.Cost(pricing.OpJersey, quality))
	r.done(cost)
	return &ReferenceJerseyResult{ImageURL: imageURL, Prompt: prompt, CostUSD: cost}, nil
}

// trimPlayer strips surrounding blanks so the required and length rules apply
// to what actually lands in the prompt.
func trimPlayer(name, number string) (string, string) {
	return strings.TrimSpace(name), strings.TrimSpace(number)
}
