package nft

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nftforge/internal/domain"
)

const (
	// DefaultGenerator names the model credited in the Generator attribute.
	DefaultGenerator = "DALL-E 3"
	// DefaultCreator is credited when no wallet is supplied.
	DefaultCreator = "nftforge"

	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// Input carries the request facts a fresh document is filled from.
type Input struct {
	Kind           domain.Kind
	EntityID       string
	Name           string
	Description    string
	ImageURL       string
	CloudinaryURL  string
	Team           string
	Style          string
	PromptUsed     string
	GenerationType string
	Generator      string
	CreatorWallet  string
}

// Build returns the canonical document for in, keeping every value already
// present on existing. Only updatedAt always changes; building a document
// from its own output is otherwise a fixed point.
func Build(existing *Document, in Input, now time.Time) Document {
	var doc Document
	if existing != nil {
		doc = cloneDocument(*existing)
	}
	stamp := now.UTC().Format(timestampLayout)
	wallet := NormalizeWallet(in.CreatorWallet)

	fillString(&doc.Name, in.Name)
	fillString(&doc.Description, in.Description)
	fillString(&doc.ImageURL, in.ImageURL)
	if doc.CloudinaryURL == nil && strings.TrimSpace(in.CloudinaryURL) != "" {
		doc.CloudinaryURL = ptr(strings.TrimSpace(in.CloudinaryURL))
	}
	if doc.TokenID == nil {
		doc.TokenID = nullJSON()
	}
	if doc.BlockchainTokenID == nil {
		doc.BlockchainTokenID = nullJSON()
	}
	fillString(&doc.Status, "draft")
	fillBool(&doc.IsMinted, false)

	if doc.Blockchain == nil {
		doc.Blockchain = &Blockchain{}
	}
	if doc.Blockchain.ChainID == nil {
		doc.Blockchain.ChainID = nullJSON()
	}
	if doc.Blockchain.TokenID == nil {
		doc.Blockchain.TokenID = nullJSON()
	}

	if len(doc.Attributes) == 0 {
		doc.Attributes = defaultAttributes(in)
	}

	fillString(&doc.CreatedAt, stamp)
	doc.UpdatedAt = ptr(stamp)

	if doc.Metadata == nil {
		doc.Metadata = &Metadata{}
	}
	fillFrom(&doc.Metadata.Name, doc.Name)
	fillFrom(&doc.Metadata.Description, doc.Description)
	fillFrom(&doc.Metadata.Image, doc.ImageURL)
	if len(doc.Metadata.Attributes) == 0 {
		doc.Metadata.Attributes = append([]Attribute(nil), doc.Attributes...)
	}
	if doc.Metadata.Properties == nil {
		doc.Metadata.Properties = &Properties{}
	}
	props := doc.Metadata.Properties
	fillString(&props.CreatedBy, firstNonEmpty(wallet, DefaultCreator))
	fillFrom(&props.CreatedAt, doc.CreatedAt)
	fillString(&props.Team, in.Team)
	fillString(&props.Style, in.Style)

	if doc.Creator == nil {
		doc.Creator = &Creator{}
	}
	fillString(&doc.Creator.Wallet, wallet)
	fillFrom(&doc.CreatorWallet, doc.Creator.Wallet)

	if doc.Marketplace == nil {
		doc.Marketplace = &Marketplace{}
	}
	fillBool(&doc.Marketplace.IsListable, true)
	fillBool(&doc.Marketplace.CanTrade, true)
	fillBool(&doc.Marketplace.Verified, true)
	fillBool(&doc.Marketplace.IsListed, false)

	fillString(&doc.PromptUsed, in.PromptUsed)
	fillString(&doc.Style, in.Style)
	fillString(&doc.GenerationType, firstNonEmpty(in.GenerationType, string(in.Kind)))
	fillBool(&doc.SyncedFromChain, false)

	if id := strings.TrimSpace(in.EntityID); id != "" {
		switch in.Kind {
		case domain.KindBadge:
			fillString(&doc.BadgeID, id)
		case domain.KindStadium:
			fillString(&doc.StadiumID, id)
		case domain.KindJersey:
			fillString(&doc.JerseyID, id)
		}
	}
	return doc
}

// NormalizeWallet returns the EIP-55 checksummed form of a hex address, or
// the trimmed input when it is not one.
func NormalizeWallet(wallet string) string {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" || !common.IsHexAddress(wallet) {
		return wallet
	}
	return common.HexToAddress(wallet).Hex()
}

func defaultAttributes(in Input) []Attribute {
	title := cases.Title(language.English)
	kind := string(in.Kind)
	if kind == "" {
		kind = "artwork"
	}
	return []Attribute{
		{TraitType: "Team", Value: firstNonEmpty(in.Team, "Unknown")},
		{TraitType: "Style", Value: title.String(firstNonEmpty(in.Style, "standard"))},
		{TraitType: "Type", Value: title.String(kind)},
		{TraitType: "Generator", Value: firstNonEmpty(in.Generator, DefaultGenerator)},
	}
}

func cloneDocument(d Document) Document {
	out := d
	if d.Blockchain != nil {
		b := *d.Blockchain
		out.Blockchain = &b
	}
	if d.Metadata != nil {
		m := *d.Metadata
		m.Attributes = append([]Attribute(nil), d.Metadata.Attributes...)
		if d.Metadata.Properties != nil {
			p := *d.Metadata.Properties
			m.Properties = &p
		}
		out.Metadata = &m
	}
	out.Attributes = append([]Attribute(nil), d.Attributes...)
	if d.Creator != nil {
		c := *d.Creator
		out.Creator = &c
	}
	if d.Marketplace != nil {
		mk := *d.Marketplace
		out.Marketplace = &mk
	}
	return out
}

func fillString(dst **string, value string) {
	if *dst != nil {
		return
	}
	if value = strings.TrimSpace(value); value != "" {
		*dst = ptr(value)
	}
}

func fillFrom(dst **string, src *string) {
	if *dst == nil && src != nil {
		*dst = ptr(*src)
	}
}

func fillBool(dst **bool, value bool) {
	if *dst == nil {
		*dst = ptr(value)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func ptr[T any](v T) *T { return &v }

func nullJSON() []byte { return []byte("null") }
