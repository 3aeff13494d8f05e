package generation

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nftforge/internal/catalog"
	"nftforge/internal/composer"
	"nftforge/internal/domain"
	"nftforge/internal/nft"
	"nftforge/internal/providers/openai"
	"nftforge/internal/providers/vision"
)

// Reference sources reported on stadium results.
const (
	SourceLocal            = "local"
	SourceCustom           = "custom"
	SourceCustomPromptOnly = "custom_prompt_only"

	UsedCustomReference  = "custom_reference"
	UsedCustomPromptOnly = "custom_prompt_only"
	UsedCustomPrompt     = "custom_prompt"
)

// StadiumResult is the stadium response body.
type StadiumResult struct {
	Analysis        *domain.AnalysisResult `json:"analysis,omitempty"`
	ImageB64        string                 `json:"generated_image_base64"`
	ImageURL        string                 `json:"image_url,omitempty"`
	RevisedPrompt   string                 `json:"revised_prompt,omitempty"`
	ReferenceUsed   string                 `json:"reference_used"`
	ReferenceSource string                 `json:"reference_source"`
	CostUSD         float64                `json:"cost_usd"`
	PromptUsed      string                 `json:"prompt_used"`
	NFT             *nft.Document          `json:"nft_metadata,omitempty"`
}

// material is what a stadium prompt is grounded on.
type material struct {
	imageB64 string
	source   string
	used     string
	subject  string
}

// GenerateStadium serves both stadium entry points. From a stadium id the
// precedence is custom image, local reference, then prompt only; in custom
// mode a reference image is analysed and a bare prompt is used as is.
func (s *Service) GenerateStadium(ctx context.Context, req domain.StadiumRequest) (*StadiumResult, error) {
	r := s.begin(domain.KindStadium)
	if err := domain.Validate(req); err != nil {
		return nil, r.fail(err)
	}
	quality, err := parseQuality(req.Quality)
	if err != nil {
		return nil, r.fail(err)
	}
	customImage, err := normalizeImageB64(req.ReferenceImageB64)
	if err != nil {
		return nil, r.fail(err)
	}
	prompt := strings.TrimSpace(req.Prompt)
	stadiumID := strings.TrimSpace(req.StadiumID)

	switch req.Mode {
	case domain.StadiumCustom:
		if prompt == "" && customImage == "" {
			return nil, r.fail(domain.Validationf("prompt or reference_image_base64 is required"))
		}
	default:
		if stadiumID == "" {
			return nil, r.fail(domain.Validationf("stadium_id is required"))
		}
	}

	r.enter(StageComposing)
	mat, err := s.resolveMaterial(ctx, req.Mode, stadiumID, req.ReferenceType, prompt, customImage)
	if err != nil {
		return nil, r.fail(err)
	}

	in := composer.StadiumInput{Subject: mat.subject, Modifiers: req.StadiumModifiers}
	var analysis *domain.AnalysisResult
	analysed := false
	if mat.imageB64 != "" {
		out := r.analyze(ctx, vision.Request{
			ImageB64:    mat.imageB64,
			Instruction: s.catalog.StadiumAnalysisInstruction(domain.Perspective(domain.Normalize(string(req.Perspective)))),
			Subject:     mat.subject,
			Fallback:    catalog.StadiumFallbackDescription(mat.subject),
		})
		res := out.Result()
		analysis = &res
		analysed = out.Attempted()
		in.Analysis = res.ArchitecturalDescription
		in.CustomAdditions = prompt
	} else {
		in.ClientPrompt = prompt
	}

	finalPrompt, degraded := composer.Stadium(s.catalog, in)
	r.degraded(degraded)

	size := domain.SizeSquare
	if quality == domain.QualityHD {
		size = domain.SizePortrait
	}
	artifact, err := r.generate(ctx, openai.ImageRequest{Prompt: finalPrompt, Size: size, Quality: quality})
	if err != nil {
		return nil, r.fail(err)
	}

	cost := roundCost(s.pricing.StadiumTotal(quality, analysed))
	res := &StadiumResult{
		Analysis:        analysis,
		ImageB64:        artifact.ImageB64,
		ImageURL:        artifact.ProviderURL,
		RevisedPrompt:   artifact.RevisedPrompt,
		ReferenceUsed:   mat.used,
		ReferenceSource: mat.source,
		CostUSD:         cost,
		PromptUsed:      finalPrompt,
	}
	if req.IncludeNFTMetadata {
		doc := nft.Build(nil, nft.Input{
			Kind:           domain.KindStadium,
			EntityID:       r.id,
			Name:           stadiumTitle(mat.subject) + " Stadium",
			Description:    stadiumDescription(in),
			ImageURL:       artifact.ProviderURL,
			Team:           stadiumTitle(mat.subject),
			Style:          string(styleOrDefault(req.GenerationStyle)),
			PromptUsed:     finalPrompt,
			GenerationType: "stadium_" + mat.source,
			CreatorWallet:  req.CreatorWallet,
		}, s.clock())
		res.NFT = &doc
	}
	r.done(cost)
	return res, nil
}

func (s *Service) resolveMaterial(ctx context.Context, mode domain.StadiumMode, stadiumID, refType, prompt, customImage string) (material, error) {
	if mode == domain.StadiumCustom {
		if customImage != "" {
			return material{imageB64: customImage, source: SourceCustom, used: UsedCustomReference, subject: "custom"}, nil
		}
		return material{source: SourceCustomPromptOnly, used: UsedCustomPrompt, subject: "custom"}, nil
	}

	if customImage != "" {
		return material{imageB64: customImage, source: SourceCustom, used: UsedCustomReference, subject: stadiumID}, nil
	}
	if s.stadiums != nil {
		ref, err := s.stadiums.LoadStadiumReference(ctx, stadiumID, refType)
		switch {
		case err == nil:
			return material{imageB64: ref.ImageB64, source: SourceLocal, used: ref.StadiumID + "/" + ref.Filename, subject: stadiumID}, nil
		case !errors.Is(err, domain.ErrReferenceMiss):
			return material{}, err
		}
	}
	if prompt != "" {
		return material{source: SourceCustom, used: UsedCustomPromptOnly, subject: stadiumID}, nil
	}
	return material{}, domain.ReferenceMissf("No reference found for %s and no custom reference/prompt provided", stadiumID)
}

func styleOrDefault(style domain.GenerationStyle) domain.GenerationStyle {
	if s := domain.GenerationStyle(domain.Normalize(string(style))); s != "" {
		return s
	}
	return domain.StyleRealistic
}

func stadiumTitle(subject string) string {
	return cases.Title(language.BrazilianPortuguese).String(strings.ReplaceAll(subject, "_", " "))
}

func stadiumDescription(in composer.StadiumInput) string {
	desc := in.Analysis
	if desc == "" {
		desc = in.ClientPrompt
	}
	if desc == "" {
		desc = catalog.StadiumFallbackDescription(in.Subject)
	}
	if r := []rune(desc); len(r) > 500 {
		desc = string(r[:500])
	}
	return desc
}
