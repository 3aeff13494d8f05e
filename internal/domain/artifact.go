package domain

// AnalysisResult is the vision output used to enrich a stadium prompt. It
// lives only for the duration of one request.
type AnalysisResult struct {
	ArchitecturalDescription string `json:"architectural_description"`
	SourceTag                string `json:"source_tag"`
}

// SourceTagFallback marks an analysis produced from the fallback description.
const SourceTagFallback = "fallback"

// Degraded reports whether the analysis came from the fallback path.
func (a AnalysisResult) Degraded() bool { return a.SourceTag == SourceTagFallback }

// GenerationArtifact is the image produced by the image provider.
type GenerationArtifact struct {
	ImageBytes    []byte
	ImageB64      string
	ProviderURL   string
	RevisedPrompt string
	MIMEType      string
	Width         int
	Height        int
	CostUSD       float64
}

// NumberStyle describes how a jersey number is rendered.
type NumberStyle struct {
	Font        string `json:"font"`
	FillPattern string `json:"fillPattern"`
	Outline     string `json:"outline"`
}

// JerseyAnalysis is the strict JSON object the vision model returns for a
// jersey photo.
type JerseyAnalysis struct {
	DominantColors []string    `json:"dominantColors"`
	Pattern        string      `json:"pattern"`
	NumberStyle    NumberStyle `json:"numberStyle"`
	NamePlacement  string      `json:"namePlacement"`
	Collar         string      `json:"collar"`
	Sleeves        string      `json:"sleeves"`
	Style          string      `json:"style"`
	Texture        string      `json:"texture"`
	Logos          string      `json:"logos"`
	View           string      `json:"view"`
}

// StadiumInfo describes one stadium reference folder.
type StadiumInfo struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	AvailableReferences []string `json:"available_references"`
}

// StadiumReference is a loaded reference image.
type StadiumReference struct {
	StadiumID string
	Filename  string
	ImageB64  string
}
