package generation

import (
	"context"
	"errors"
	"time"

	"nftforge/internal/domain"
	"nftforge/internal/pricing"
	"nftforge/internal/providers/vision"
)

// JerseyAnalysisResult is the /analyze-jersey response body. Analysis is nil
// when the model could not produce the strict JSON object.
type JerseyAnalysisResult struct {
	Analysis  *domain.JerseyAnalysis `json:"analysis"`
	SourceTag string                 `json:"source_tag"`
	Reason    string                 `json:"reason,omitempty"`
	CostUSD   float64                `json:"cost_usd"`
}

// AnalyzeJersey asks the vision model for the structured description of a
// jersey photo. It makes no image call.
func (s *Service) AnalyzeJersey(ctx context.Context, req domain.JerseyAnalysisRequest) (*JerseyAnalysisResult, error) {
	if err := domain.Validate(req); err != nil {
		return nil, err
	}
	image, err := normalizeImageB64(req.ImageB64)
	if err != nil {
		return nil, err
	}
	if s.vision == nil || !s.vision.HasCredentials() {
		return nil, domain.Unavailablef("Vision analyzer not available")
	}

	start := time.Now()
	analysis, out := s.vision.AnalyzeJersey(ctx, vision.Request{
		ImageB64:    image,
		Instruction: s.catalog.JerseyAnalysisInstruction(req.Sport, req.View),
		Subject:     "jersey",
	})
	if out.Attempted() {
		var callErr error
		if out.Status != vision.StatusOK {
			callErr = errors.New(out.Reason)
		}
		s.metrics.RecordUpstream("openrouter", time.Since(start), callErr)
	}

	res := &JerseyAnalysisResult{
		Analysis:  analysis,
		SourceTag: out.Result().SourceTag,
		Reason:    out.Reason,
	}
	if out.Attempted() {
		res.CostUSD = roundCost(s.pricing.Cost(pricing.OpVision, domain.QualityStandard))
	}
	return res, nil
}
