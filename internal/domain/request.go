package domain

// JerseyRequest generates a jersey from the in-process catalog.
type JerseyRequest struct {
	TeamID       string  `json:"model_id" validate:"required"`
	PlayerName   string  `json:"player_name" validate:"required,max=20"`
	PlayerNumber string  `json:"player_number" validate:"required,max=3"`
	Quality      Quality `json:"quality"`
	View         View    `json:"view" validate:"omitempty,oneof=front back"`
	Sport        Sport   `json:"sport" validate:"omitempty,oneof=soccer basketball football"`
}

// ReferenceJerseyRequest generates a jersey from a persisted team base prompt.
type ReferenceJerseyRequest struct {
	TeamName     string  `json:"teamName" validate:"required"`
	PlayerName   string  `json:"player_name" validate:"required,max=20"`
	PlayerNumber string  `json:"player_number" validate:"required,max=3"`
	Quality      Quality `json:"quality"`
	View         View    `json:"view" validate:"omitempty,oneof=front back"`
	Sport        Sport   `json:"sport" validate:"omitempty,oneof=soccer basketball football"`
}

// StadiumMode distinguishes the two stadium entry points.
type StadiumMode string

const (
	// StadiumFromReference starts from a stadium id with a local reference folder.
	StadiumFromReference StadiumMode = "from_reference"
	// StadiumCustom starts from a free-form prompt and optional reference image.
	StadiumCustom StadiumMode = "custom"
)

// StadiumModifiers are the optional scene modifiers. Unknown values are
// dropped by the composer rather than rejected.
type StadiumModifiers struct {
	Perspective     Perspective     `json:"perspective"`
	Atmosphere      Atmosphere      `json:"atmosphere"`
	TimeOfDay       TimeOfDay       `json:"time_of_day"`
	Weather         Weather         `json:"weather"`
	GenerationStyle GenerationStyle `json:"generation_style"`
}

// StadiumRequest generates a stadium scene. Either StadiumID (with a local
// reference), Prompt or ReferenceImageB64 must yield material.
type StadiumRequest struct {
	Mode               StadiumMode `json:"-"`
	StadiumID          string      `json:"stadium_id" validate:"omitempty,max=120"`
	ReferenceType      string      `json:"reference_type" validate:"omitempty,max=60"`
	Prompt             string      `json:"prompt" validate:"omitempty,max=4000"`
	ReferenceImageB64  string      `json:"reference_image_base64"`
	Quality            Quality     `json:"quality"`
	IncludeNFTMetadata bool        `json:"include_nft_metadata"`
	CreatorWallet      string      `json:"creator_wallet" validate:"omitempty,eth_addr"`
	StadiumModifiers
}

// BadgeRequest generates a single badge.
type BadgeRequest struct {
	TeamName           string     `json:"team_name" validate:"required,max=80"`
	BadgeName          string     `json:"badge_name" validate:"required,max=60"`
	BadgeNumber        string     `json:"badge_number" validate:"required,max=10"`
	Style              BadgeStyle `json:"style"`
	Size               Size       `json:"size"`
	Quality            Quality    `json:"quality"`
	IncludeNFTMetadata bool       `json:"include_nft_metadata"`
	CreatorWallet      string     `json:"creator_wallet" validate:"omitempty,eth_addr"`
}

// VariationsRequest fans a badge out across several styles.
type VariationsRequest struct {
	TeamName    string   `json:"team_name" validate:"required,max=80"`
	BadgeName   string   `json:"badge_name" validate:"required,max=60"`
	BadgeNumber string   `json:"badge_number" validate:"required,max=10"`
	Styles      []string `json:"styles"`
	Size        Size     `json:"size"`
	Quality     Quality  `json:"quality"`
}

// JerseyAnalysisRequest asks the vision model to describe a jersey photo.
type JerseyAnalysisRequest struct {
	ImageB64 string `json:"image_base64" validate:"required"`
	Sport    Sport  `json:"sport" validate:"omitempty,oneof=soccer basketball football"`
	View     View   `json:"view" validate:"omitempty,oneof=front back"`
}
