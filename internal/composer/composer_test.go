package composer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nftforge/internal/catalog"
	"nftforge/internal/domain"
)

func TestJersey(t *testing.T) {
	cat := catalog.Default()

	t.Run("happy path", func(t *testing.T) {
		in := JerseyInput{TeamID: JerseyTeamID("flamengo_home"), PlayerName: "pedro", PlayerNumber: "9"}
		prompt, err := Jersey(cat, in)
		require.NoError(t, err)
		assert.Contains(t, prompt, "PEDRO")
		assert.Contains(t, prompt, "9")
		assert.Contains(t, prompt, "HORIZONTAL red and black stripes")
		assert.NotContains(t, prompt, catalog.TokenPlayerName)
		assert.NotContains(t, prompt, catalog.TokenPlayerNumber)

		again, err := Jersey(cat, in)
		require.NoError(t, err)
		assert.Equal(t, prompt, again)
	})

	t.Run("every team", func(t *testing.T) {
		for _, team := range cat.JerseyTeams() {
			prompt, err := Jersey(cat, JerseyInput{TeamID: team, PlayerName: "ana {x}", PlayerNumber: "10"})
			require.NoError(t, err, team)
			assert.Empty(t, Placeholders(prompt), team)
			assert.Contains(t, prompt, "ANA (X)", team)
			assert.LessOrEqual(t, len(prompt), MaxPromptLength, team)
		}
	})

	t.Run("unknown team", func(t *testing.T) {
		_, err := Jersey(cat, JerseyInput{TeamID: JerseyTeamID("xyz_home"), PlayerName: "a", PlayerNumber: "1"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrCatalogMiss))
		assert.Contains(t, err.Error(), "xyz")
	})
}

func TestJerseyTeamID(t *testing.T) {
	tests := map[string]string{
		"flamengo_home":      "flamengo",
		"Palmeiras_away_24":  "palmeiras",
		"santos":             "santos",
		"  BOTAFOGO_third ":  "botafogo",
	}
	for in, want := range tests {
		assert.Equal(t, want, JerseyTeamID(in), in)
	}
}

func TestReferenceJersey(t *testing.T) {
	prompt := ReferenceJersey("Back of a shirt with {PLAYER_NAME} and {PLAYER_NUMBER} {EXTRA}", "joão", "7")
	assert.Equal(t, "Back of a shirt with JOÃO and 7 {EXTRA}", prompt)
}

func TestBadge(t *testing.T) {
	cat := catalog.Default()

	prompt, degraded := Badge(cat, BadgeInput{TeamName: "Flamengo", BadgeName: "CHAMPION", BadgeNumber: "1", Style: domain.BadgeRetro})
	assert.Empty(t, degraded)
	assert.Empty(t, Placeholders(prompt))
	for _, section := range []string{"SPECIFICATIONS:", "DESIGN REQUIREMENTS:", "VISUAL ELEMENTS:", "COMPOSITION:", "TECHNICAL:", "STYLE NOTES:"} {
		assert.Contains(t, prompt, section)
	}
	assert.Contains(t, prompt, `"CHAMPION"`)
	assert.Contains(t, prompt, "red and black")
	assert.Contains(t, prompt, "Style: retro")

	fallback, degraded := Badge(cat, BadgeInput{TeamName: "Tiny FC", BadgeName: "X", BadgeNumber: "2", Style: "unknown"})
	require.Len(t, degraded, 2)
	assert.Equal(t, "style", degraded[0].Field)
	assert.Equal(t, "modern", degraded[0].Fallback)
	assert.Contains(t, fallback, "Style: modern")
	assert.Contains(t, fallback, "Tiny FC")

	_, degraded = Badge(cat, BadgeInput{TeamName: "Flamengo", BadgeName: "X", BadgeNumber: "2"})
	assert.Empty(t, degraded)
}

func TestStadiumScenarioLocalReference(t *testing.T) {
	cat := catalog.Default()
	prompt, degraded := Stadium(cat, StadiumInput{
		Subject:  "maracana",
		Analysis: "Elliptical bowl with a white tensile membrane roof",
		Modifiers: domain.StadiumModifiers{
			Perspective:     domain.PerspectiveExternal,
			Atmosphere:      domain.AtmospherePacked,
			TimeOfDay:       domain.TimeNight,
			Weather:         domain.WeatherDramatic,
			GenerationStyle: domain.StyleCinematic,
		},
	})
	assert.Empty(t, degraded)

	packed, _ := cat.AtmospherePhrase(domain.AtmospherePacked)
	night, _ := cat.TimePhrase(domain.TimeNight)
	storm, _ := cat.WeatherPhrase(domain.WeatherDramatic)
	assert.Contains(t, prompt, "SPECIFIC: "+packed+", "+night+", "+storm+".")
	assert.Contains(t, prompt, "Elliptical bowl")
	assert.Contains(t, prompt, "STYLE: cinematic")
	assert.True(t, strings.HasSuffix(prompt, ClosingSentinel))
	assert.LessOrEqual(t, len(prompt), MaxPromptLength)
	assert.Empty(t, Placeholders(prompt))
}

func TestStadiumPromptOnlyDropsUnknownModifiers(t *testing.T) {
	cat := catalog.Default()
	prompt, degraded := Stadium(cat, StadiumInput{
		Subject:      "unknown_x",
		ClientPrompt: "a brutalist oval",
		Modifiers: domain.StadiumModifiers{
			Atmosphere: domain.AtmosphereEmpty,
			TimeOfDay:  domain.TimeSunset,
			Weather:    "foggy",
		},
	})
	empty, _ := cat.AtmospherePhrase(domain.AtmosphereEmpty)
	sunset, _ := cat.TimePhrase(domain.TimeSunset)

	assert.Contains(t, prompt, "brutalist oval")
	assert.Contains(t, prompt, "SPECIFIC: "+empty+", "+sunset+".")
	assert.NotContains(t, prompt, "foggy")
	require.Len(t, degraded, 1)
	assert.Equal(t, "weather", degraded[0].Field)
}

func TestStadiumDescriptionPrecedence(t *testing.T) {
	cat := catalog.Default()

	prompt, _ := Stadium(cat, StadiumInput{Analysis: "ANALYSIS TEXT", ClientPrompt: "PROMPT TEXT"})
	assert.Contains(t, prompt, "ANALYSIS TEXT")
	assert.NotContains(t, prompt, "PROMPT TEXT")

	prompt, _ = Stadium(cat, StadiumInput{Subject: "Mineirao"})
	assert.Contains(t, prompt, "Modern Mineirao stadium with distinctive architectural features")
	assert.NotContains(t, prompt, "SPECIFIC:")
	assert.NotContains(t, prompt, "CUSTOM:")
}

func TestStadiumUnknownStyleFallsBackToRealistic(t *testing.T) {
	cat := catalog.Default()
	fallback, degraded := Stadium(cat, StadiumInput{ClientPrompt: "oval", Modifiers: domain.StadiumModifiers{GenerationStyle: "watercolor"}})
	realistic, none := Stadium(cat, StadiumInput{ClientPrompt: "oval", Modifiers: domain.StadiumModifiers{GenerationStyle: domain.StyleRealistic}})
	assert.Equal(t, realistic, fallback)
	assert.Len(t, degraded, 1)
	assert.Empty(t, none)
}

func TestStadiumCustomAdditionsTruncated(t *testing.T) {
	cat := catalog.Default()
	custom := strings.Repeat("b", 500)
	prompt, _ := Stadium(cat, StadiumInput{ClientPrompt: "oval", CustomAdditions: custom})
	assert.Contains(t, prompt, "CUSTOM: "+strings.Repeat("b", MaxCustomAdditions)+"\n")
	assert.NotContains(t, prompt, strings.Repeat("b", MaxCustomAdditions+1))
}

func TestStadiumLengthCap(t *testing.T) {
	cat := catalog.Default()
	huge := strings.Repeat("sweeping concrete arches {and} glass ", 400)

	for _, perspective := range []domain.Perspective{domain.PerspectiveExternal, domain.PerspectiveInternal, domain.PerspectiveMixed} {
		for _, style := range []domain.GenerationStyle{domain.StyleRealistic, domain.StyleCinematic, domain.StyleDramatic} {
			prompt, _ := Stadium(cat, StadiumInput{
				Analysis:        huge,
				CustomAdditions: huge,
				Modifiers: domain.StadiumModifiers{
					Perspective: perspective, GenerationStyle: style,
					Atmosphere: domain.AtmospherePacked, TimeOfDay: domain.TimeDay, Weather: domain.WeatherClear,
				},
			})
			assert.LessOrEqual(t, len(prompt), MaxPromptLength)
			assert.True(t, strings.HasSuffix(prompt, "\n"+ClosingSentinel))
			assert.Empty(t, Placeholders(prompt))
		}
	}
}

func TestFitLines(t *testing.T) {
	short := fitLines([]string{"a", "b"}, ClosingSentinel)
	assert.Equal(t, "a\nb\n"+ClosingSentinel, short)

	line := strings.Repeat("x", 2000)
	out := fitLines([]string{line, line, "tail"}, ClosingSentinel)
	assert.Equal(t, line+"\n"+ClosingSentinel, out)

	long := strings.Repeat("word ", 1000)
	out = fitLines([]string{long}, ClosingSentinel)
	assert.LessOrEqual(t, len(out), MaxPromptLength)
	assert.True(t, strings.HasSuffix(out, "word\n"+ClosingSentinel))
}
