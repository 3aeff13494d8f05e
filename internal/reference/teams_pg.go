package reference

import (
	"context"
	"fmt"

	"nftforge/internal/domain"
	"nftforge/internal/infra"
	"nftforge/internal/sqlinline"
)

// PostgresTeamStore reads team prompts from the team_references table through
// marked sqlinline queries.
type PostgresTeamStore struct {
	sql infra.SQLExecutor
}

func NewPostgresTeamStore(sql infra.SQLExecutor) *PostgresTeamStore {
	return &PostgresTeamStore{sql: sql}
}

func (s *PostgresTeamStore) LoadTeamBasePrompt(ctx context.Context, teamName string) (string, error) {
	var prompt string
	err := s.sql.QueryRow(ctx, sqlinline.QSelectTeamBasePrompt, teamName).Scan(&prompt)
	if infra.IsNoRows(err) {
		return "", domain.ReferenceMissf("No reference found for team %s", teamName)
	}
	if err != nil {
		return "", fmt.Errorf("reference: select team %s: %w", teamName, err)
	}
	return prompt, nil
}

func (s *PostgresTeamStore) PutTeamBasePrompt(ctx context.Context, teamName, basePrompt string) error {
	if _, err := s.sql.Exec(ctx, sqlinline.QUpsertTeamBasePrompt, teamName, basePrompt); err != nil {
		return fmt.Errorf("reference: upsert team %s: %w", teamName, err)
	}
	return nil
}

// EnsureSchema creates the team_references table when missing.
func (s *PostgresTeamStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.sql.Exec(ctx, sqlinline.QCreateTeamReferences); err != nil {
		return fmt.Errorf("reference: create team_references: %w", err)
	}
	return nil
}

func (s *PostgresTeamStore) Ping(ctx context.Context) error {
	var one int
	return s.sql.QueryRow(ctx, sqlinline.QPing).Scan(&one)
}
