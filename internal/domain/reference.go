package domain

import "context"

// TeamReferenceStore resolves persisted per-team jersey prompt templates.
type TeamReferenceStore interface {
	// LoadTeamBasePrompt returns the template verbatim, or an error matching
	// ErrReferenceMiss when the team has none.
	LoadTeamBasePrompt(ctx context.Context, teamName string) (string, error)
}

// TeamReferenceWriter upserts team references. Only operator tooling uses it.
type TeamReferenceWriter interface {
	PutTeamBasePrompt(ctx context.Context, teamName, basePrompt string) error
}

// StadiumReferenceStore resolves on-disk stadium reference images.
type StadiumReferenceStore interface {
	// LoadStadiumReference returns the preferred image for the stadium, or an
	// error matching ErrReferenceMiss when none exists.
	LoadStadiumReference(ctx context.Context, stadiumID, referenceType string) (*StadiumReference, error)
	ListStadiums(ctx context.Context) ([]StadiumInfo, error)
}
