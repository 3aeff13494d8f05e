package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nftforge/internal/composer"
	"nftforge/internal/domain"
	"nftforge/internal/nft"
	"nftforge/internal/pricing"
	"nftforge/internal/providers/openai"
)

// BadgeMetadata echoes the effective badge parameters.
type BadgeMetadata struct {
	TeamName    string `json:"team_name"`
	BadgeName   string `json:"badge_name"`
	BadgeNumber string `json:"badge_number"`
	Style       string `json:"style"`
	Size        string `json:"size"`
	Quality     string `json:"quality"`
	Type        string `json:"type"`
}

// BadgeResult is the single badge response body. Failed variations carry
// Success false and Error.
type BadgeResult struct {
	Success        bool          `json:"success"`
	ImageURL       string        `json:"image_url,omitempty"`
	RevisedPrompt  string        `json:"revised_prompt,omitempty"`
	OptimizedImage string        `json:"optimized_image,omitempty"`
	Metadata       BadgeMetadata `json:"metadata"`
	CostUSD        float64       `json:"cost_usd,omitempty"`
	NFT            *nft.Document `json:"nft_metadata,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// Variation pairs a requested style with its outcome.
type Variation struct {
	Style  string
	Result *BadgeResult
}

// Variations marshals as a JSON object whose keys keep request order.
type Variations []Variation

func (v Variations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.Style)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(item.Result)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Summary counts the variation outcomes.
type Summary struct {
	TotalRequested int `json:"total_requested"`
	Successful     int `json:"successful"`
	Failed         int `json:"failed"`
}

// VariationsResult is the badge fan-out response body.
type VariationsResult struct {
	TeamName    string     `json:"team_name"`
	BadgeName   string     `json:"badge_name"`
	BadgeNumber string     `json:"badge_number"`
	Variations  Variations `json:"variations"`
	Summary     Summary    `json:"summary"`
	CostUSD     float64    `json:"cost_usd"`
}

// GenerateBadge renders one badge. An unknown style falls back to modern and
// still succeeds.
func (s *Service) GenerateBadge(ctx context.Context, req domain.BadgeRequest) (*BadgeResult, error) {
	r := s.begin(domain.KindBadge)
	if err := domain.Validate(req); err != nil {
		return nil, r.fail(err)
	}
	quality, err := parseQuality(req.Quality)
	if err != nil {
		return nil, r.fail(err)
	}
	size := domain.Size(domain.Normalize(string(req.Size)))
	if size == "" {
		size = domain.SizeSquare
	}
	if !size.Valid() {
		return nil, r.fail(domain.Validationf("size must be one of 1024x1024, 1024x1792, 1792x1024"))
	}

	r.enter(StageComposing)
	style := effectiveBadgeStyle(req.Style)
	prompt, degraded := composer.Badge(s.catalog, composer.BadgeInput{
		TeamName:    req.TeamName,
		BadgeName:   req.BadgeName,
		BadgeNumber: req.BadgeNumber,
		Style:       req.Style,
	})
	r.degraded(degraded)

	artifact, err := r.generate(ctx, openai.ImageRequest{Prompt: prompt, Size: size, Quality: quality})
	if err != nil {
		return nil, r.fail(err)
	}

	cost := roundCost(s.pricing.Cost(pricing.OpBadge, quality))
	res := &BadgeResult{
		Success:        true,
		ImageURL:       artifact.ProviderURL,
		RevisedPrompt:  artifact.RevisedPrompt,
		OptimizedImage: artifact.ImageB64,
		Metadata:       badgeMetadata(req, style, size, quality),
		CostUSD:        cost,
	}
	if req.IncludeNFTMetadata {
		title := cases.Title(language.English).String(string(style))
		doc := nft.Build(nil, nft.Input{
			Kind:           domain.KindBadge,
			EntityID:       r.id,
			Name:           fmt.Sprintf("%s %s #%s", strings.TrimSpace(req.TeamName), strings.TrimSpace(req.BadgeName), strings.TrimSpace(req.BadgeNumber)),
			Description:    fmt.Sprintf("%s badge for %s", title, strings.TrimSpace(req.TeamName)),
			ImageURL:       artifact.ProviderURL,
			Team:           strings.TrimSpace(req.TeamName),
			Style:          string(style),
			PromptUsed:     prompt,
			GenerationType: "badge",
			CreatorWallet:  req.CreatorWallet,
		}, s.clock())
		res.NFT = &doc
	}
	r.done(cost)
	return res, nil
}

// GenerateBadgeVariations renders one badge per style, sequentially and in
// request order. Unknown styles reject the whole call before any generation;
// per-style failures are recorded and the loop continues.
func (s *Service) GenerateBadgeVariations(ctx context.Context, req domain.VariationsRequest) (*VariationsResult, error) {
	if err := domain.Validate(req); err != nil {
		return nil, err
	}
	styles, err := variationStyles(req.Styles)
	if err != nil {
		return nil, err
	}
	if !s.Availability().Images {
		return nil, domain.Unavailablef("Badge generator not available")
	}

	out := &VariationsResult{
		TeamName:    req.TeamName,
		BadgeName:   req.BadgeName,
		BadgeNumber: req.BadgeNumber,
		Variations:  make(Variations, 0, len(styles)),
	}
	for _, style := range styles {
		badgeReq := domain.BadgeRequest{
			TeamName:    req.TeamName,
			BadgeName:   req.BadgeName,
			BadgeNumber: req.BadgeNumber,
			Style:       style,
			Size:        req.Size,
			Quality:     req.Quality,
		}
		res, err := s.GenerateBadge(ctx, badgeReq)
		if err != nil {
			quality, _ := domain.ParseQuality(string(req.Quality))
			size := req.Size
			if size == "" {
				size = domain.SizeSquare
			}
			res = &BadgeResult{
				Success:  false,
				Metadata: badgeMetadata(badgeReq, style, size, quality),
				Error:    domain.MessageOf(err),
			}
			out.Summary.Failed++
		} else {
			out.Summary.Successful++
			out.CostUSD += res.CostUSD
		}
		out.Variations = append(out.Variations, Variation{Style: string(style), Result: res})
	}
	out.Summary.TotalRequested = len(styles)
	out.CostUSD = roundCost(out.CostUSD)
	s.logger.Info().
		Str("team", req.TeamName).
		Int("requested", out.Summary.TotalRequested).
		Int("successful", out.Summary.Successful).
		Int("failed", out.Summary.Failed).
		Msg("generation: badge variations")
	return out, nil
}

// variationStyles normalises the requested styles, dropping duplicates. An
// empty list means every known style.
func variationStyles(requested []string) ([]domain.BadgeStyle, error) {
	if len(requested) == 0 {
		return append([]domain.BadgeStyle(nil), domain.AllBadgeStyles...), nil
	}
	seen := make(map[domain.BadgeStyle]bool, len(requested))
	var styles []domain.BadgeStyle
	var invalid []string
	for _, raw := range requested {
		style := domain.BadgeStyle(domain.Normalize(raw))
		if !style.Valid() {
			invalid = append(invalid, raw)
			continue
		}
		if seen[style] {
			continue
		}
		seen[style] = true
		styles = append(styles, style)
	}
	if len(invalid) > 0 {
		valid := make([]string, 0, len(domain.AllBadgeStyles))
		for _, s := range domain.AllBadgeStyles {
			valid = append(valid, string(s))
		}
		return nil, domain.Validationf("Invalid styles: %s. Valid styles: %s", strings.Join(invalid, ", "), strings.Join(valid, ", "))
	}
	return styles, nil
}

func effectiveBadgeStyle(style domain.BadgeStyle) domain.BadgeStyle {
	s := domain.BadgeStyle(domain.Normalize(string(style)))
	if !s.Valid() {
		return domain.BadgeModern
	}
	return s
}

func badgeMetadata(req domain.BadgeRequest, style domain.BadgeStyle, size domain.Size, quality domain.Quality) BadgeMetadata {
	return BadgeMetadata{
		TeamName:    req.TeamName,
		BadgeName:   req.BadgeName,
		BadgeNumber: req.BadgeNumber,
		Style:       string(style),
		Size:        string(size),
		Quality:     string(quality),
		Type:        "badge",
	}
}
