package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"nftforge/internal/catalog"
	"nftforge/internal/composer"
	"nftforge/internal/domain"
)

// newPromptCmd previews composed prompts without calling any provider.
func newPromptCmd(cat *catalog.Catalog) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt a request would send to the image model",
	}

	var player, number string
	jersey := &cobra.Command{
		Use:   "jersey <model_id>",
		Short: "Catalog jersey prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := composer.Jersey(cat, composer.JerseyInput{
				TeamID:       composer.JerseyTeamID(args[0]),
				PlayerName:   player,
				PlayerNumber: number,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}
	jersey.Flags().StringVar(&player, "player", "PLAYER", "player name")
	jersey.Flags().StringVar(&number, "number", "10", "player number")

	var badgeName, badgeNumber, style string
	badge := &cobra.Command{
		Use:   "badge <team_name>",
		Short: "Badge prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, degraded := composer.Badge(cat, composer.BadgeInput{
				TeamName:    args[0],
				BadgeName:   badgeName,
				BadgeNumber: badgeNumber,
				Style:       domain.BadgeStyle(style),
			})
			printPrompt(cmd.OutOrStdout(), cmd.ErrOrStderr(), prompt, degraded)
			return nil
		},
	}
	badge.Flags().StringVar(&badgeName, "name", "CHAMPION", "badge name")
	badge.Flags().StringVar(&badgeNumber, "number", "1", "badge number")
	badge.Flags().StringVar(&style, "style", string(domain.BadgeModern), "badge style")

	var (
		description string
		mods        struct{ perspective, atmosphere, timeOfDay, weather, style string }
	)
	stadium := &cobra.Command{
		Use:   "stadium <stadium_id>",
		Short: "Stadium prompt from a description or a bare stadium id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, degraded := composer.Stadium(cat, composer.StadiumInput{
				Subject:      args[0],
				ClientPrompt: description,
				Modifiers: domain.StadiumModifiers{
					Perspective:     domain.Perspective(mods.perspective),
					Atmosphere:      domain.Atmosphere(mods.atmosphere),
					TimeOfDay:       domain.TimeOfDay(mods.timeOfDay),
					Weather:         domain.Weather(mods.weather),
					GenerationStyle: domain.GenerationStyle(mods.style),
				},
			})
			printPrompt(cmd.OutOrStdout(), cmd.ErrOrStderr(), prompt, degraded)
			return nil
		},
	}
	stadium.Flags().StringVar(&description, "description", "", "architectural description")
	stadium.Flags().StringVar(&mods.perspective, "perspective", "", "external, internal, mixed")
	stadium.Flags().StringVar(&mods.atmosphere, "atmosphere", "", "packed, half_full, empty")
	stadium.Flags().StringVar(&mods.timeOfDay, "time-of-day", "", "day, night, sunset")
	stadium.Flags().StringVar(&mods.weather, "weather", "", "clear, dramatic, cloudy")
	stadium.Flags().StringVar(&mods.style, "generation-style", "", "realistic, cinematic, dramatic")

	cmd.AddCommand(jersey, badge, stadium)
	return cmd
}

func printPrompt(out, errOut io.Writer, prompt string, degraded []composer.Degradation) {
	for _, d := range degraded {
		fmt.Fprintf(errOut, "note: %s %q replaced by %q\n", d.Field, d.Value, d.Fallback)
	}
	fmt.Fprintln(out, prompt)
}
