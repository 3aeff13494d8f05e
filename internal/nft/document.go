// Package nft builds the canonical NFT metadata document consumed by the
// downstream mint and sync tooling. Field order in the structs below is the
// key order of the serialized document.
package nft

import (
	"bytes"
	"encoding/json"
)

// Document is the canonical NFT record. Pointer fields distinguish "absent"
// from zero values so existing records keep what they carry.
type Document struct {
	Name              *string         `json:"name"`
	Description       *string         `json:"description"`
	ImageURL          *string         `json:"imageUrl"`
	CloudinaryURL     *string         `json:"cloudinaryUrl"`
	TokenID           json.RawMessage `json:"tokenId"`
	BlockchainTokenID json.RawMessage `json:"blockchainTokenId"`
	Status            *string         `json:"status"`
	IsMinted          *bool           `json:"isMinted"`
	Blockchain        *Blockchain     `json:"blockchain"`
	Metadata          *Metadata       `json:"metadata"`
	Attributes        []Attribute     `json:"attributes"`
	Creator           *Creator        `json:"creator"`
	CreatorWallet     *string         `json:"creatorWallet"`
	OwnerAddress      *string         `json:"ownerAddress"`
	Marketplace       *Marketplace    `json:"marketplace"`
	PromptUsed        *string         `json:"promptUsed"`
	Style             *string         `json:"style"`
	GenerationType    *string         `json:"generationType"`
	CreatedAt         *string         `json:"createdAt"`
	UpdatedAt         *string         `json:"updatedAt"`
	SyncedFromChain   *bool           `json:"syncedFromBlockchain"`
	SyncedAt          *string         `json:"syncedAt"`
	BadgeID           *string         `json:"badgeId,omitempty"`
	StadiumID         *string         `json:"stadiumId,omitempty"`
	JerseyID          *string         `json:"jerseyId,omitempty"`
}

// Blockchain facts are only ever copied from an existing record.
type Blockchain struct {
	ChainID         json.RawMessage `json:"chainId"`
	Network         *string         `json:"network"`
	ContractAddress *string         `json:"contractAddress"`
	TokenID         json.RawMessage `json:"tokenId"`
	Owner           *string         `json:"owner"`
	MintedAt        *string         `json:"mintedAt"`
	SyncedAt        *string         `json:"syncedAt"`
}

type Metadata struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Image       *string     `json:"image"`
	Attributes  []Attribute `json:"attributes"`
	Properties  *Properties `json:"properties"`
}

type Properties struct {
	CreatedBy *string `json:"created_by"`
	CreatedAt *string `json:"created_at"`
	Team      *string `json:"team"`
	Style     *string `json:"style"`
}

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

type Creator struct {
	Wallet *string `json:"wallet"`
}

type Marketplace struct {
	IsListable *bool `json:"isListable"`
	CanTrade   *bool `json:"canTrade"`
	Verified   *bool `json:"verified"`
	IsListed   *bool `json:"isListed"`
}

// Marshal encodes doc without HTML escaping so image URLs stay readable.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Parse decodes a stored record.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
