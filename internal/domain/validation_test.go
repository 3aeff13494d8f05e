package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJerseyRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     JerseyRequest
		wantMsg string
	}{
		{
			name: "valid",
			req:  JerseyRequest{TeamID: "flamengo", PlayerName: "pedro", PlayerNumber: "9"},
		},
		{
			name:    "missing name",
			req:     JerseyRequest{TeamID: "flamengo", PlayerNumber: "9"},
			wantMsg: "player_name is required",
		},
		{
			name:    "name too long",
			req:     JerseyRequest{TeamID: "flamengo", PlayerName: "abcdefghijklmnopqrstu", PlayerNumber: "9"},
			wantMsg: "player_name must be at most 20 characters",
		},
		{
			name:    "number too long",
			req:     JerseyRequest{TeamID: "flamengo", PlayerName: "pedro", PlayerNumber: "1000"},
			wantMsg: "player_number must be at most 3 characters",
		},
		{
			name:    "bad view",
			req:     JerseyRequest{TeamID: "flamengo", PlayerName: "pedro", PlayerNumber: "9", View: "side"},
			wantMsg: "view must be one of [front, back]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.req)
			if tc.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}
}

func TestValidateWalletAddress(t *testing.T) {
	req := BadgeRequest{TeamName: "Flamengo", BadgeName: "CHAMPION", BadgeNumber: "1", CreatorWallet: "not-a-wallet"}

	err := Validate(req)

	require.Error(t, err)
	assert.Equal(t, "creator_wallet must be a valid wallet address", err.Error())

	req.CreatorWallet = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	assert.NoError(t, Validate(req))
}

func TestParseQuality(t *testing.T) {
	q, ok := ParseQuality("")
	assert.True(t, ok)
	assert.Equal(t, QualityStandard, q)

	q, ok = ParseQuality(" HD ")
	assert.True(t, ok)
	assert.Equal(t, QualityHD, q)

	_, ok = ParseQuality("ultra")
	assert.False(t, ok)
}
