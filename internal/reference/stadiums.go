// Package reference answers the read-only reference lookups of the
// generation pipeline: stadium photographs on disk and persisted team
// jersey prompts.
package reference

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nftforge/internal/domain"
)

// imageExtensions lists accepted reference formats in preference order.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// StadiumStore reads stadium reference folders laid out as
// <root>/<stadium_id>/*.{jpg,jpeg,png,webp}.
type StadiumStore struct {
	root string
}

// NewStadiumStore returns a store rooted at root. The directory does not need
// to exist; a missing root behaves like an empty catalog of references.
func NewStadiumStore(root string) (*StadiumStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("reference: stadium root is required")
	}
	return &StadiumStore{root: root}, nil
}

// Root returns the configured directory.
func (s *StadiumStore) Root() string { return s.root }

// LoadStadiumReference returns the preferred image for stadiumID. When
// referenceType is set, files whose name contains it are tried first.
func (s *StadiumStore) LoadStadiumReference(ctx context.Context, stadiumID, referenceType string) (*domain.StadiumReference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := sanitizeSegment(stadiumID)
	if err != nil {
		return nil, domain.Validationf("stadium_id is invalid")
	}
	dir := filepath.Join(s.root, id)
	files, err := imageFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.ReferenceMissf("No local reference found for %s", id)
	}

	candidates := files
	if rt := strings.ToLower(strings.TrimSpace(referenceType)); rt != "" {
		var typed []string
		for _, f := range files {
			if strings.Contains(strings.ToLower(f), rt) {
				typed = append(typed, f)
			}
		}
		candidates = append(typed, files...)
	}

	for _, name := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil || len(data) == 0 {
			continue
		}
		return &domain.StadiumReference{
			StadiumID: id,
			Filename:  name,
			ImageB64:  base64.StdEncoding.EncodeToString(data),
		}, nil
	}
	return nil, domain.ReferenceMissf("No readable reference found for %s", id)
}

// ListStadiums lists every stadium folder with at least one image.
func (s *StadiumStore) ListStadiums(ctx context.Context) ([]domain.StadiumInfo, error) {
	dirs, err := subdirectories(s.root)
	if err != nil {
		return nil, err
	}
	title := cases.Title(language.BrazilianPortuguese)
	out := make([]domain.StadiumInfo, 0, len(dirs))
	for _, id := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files, err := imageFiles(filepath.Join(s.root, id))
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}
		sort.Strings(files)
		out = append(out, domain.StadiumInfo{
			ID:                  id,
			Name:                title.String(displayName(id)),
			AvailableReferences: files,
		})
	}
	return out, nil
}

// TeamFolders lists team directories under the image references root. It only
// backs the /teams introspection endpoint.
type TeamFolders struct {
	root string
}

func NewTeamFolders(root string) *TeamFolders {
	return &TeamFolders{root: strings.TrimSpace(root)}
}

// List returns the sorted folder names; a missing root yields none.
func (t *TeamFolders) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t == nil || t.root == "" {
		return nil, nil
	}
	return subdirectories(t.root)
}

// imageFiles returns reference file names in dir ordered by extension
// preference then name. A missing directory, or a plain file where the
// directory should be, yields none.
func imageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}
		return nil, fmt.Errorf("reference: read %s: %w", dir, err)
	}
	rank := func(name string) int {
		ext := strings.ToLower(filepath.Ext(name))
		for i, e := range imageExtensions {
			if ext == e {
				return i
			}
		}
		return -1
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || rank(e.Name()) < 0 {
			continue
		}
		files = append(files, e.Name())
	}
	sort.SliceStable(files, func(i, j int) bool {
		ri, rj := rank(files[i]), rank(files[j])
		if ri != rj {
			return ri < rj
		}
		return files[i] < files[j]
	})
	return files, nil
}

func subdirectories(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}
		return nil, fmt.Errorf("reference: read %s: %w", root, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// sanitizeSegment normalises an id and refuses anything that is not a single
// path segment inside the root.
func sanitizeSegment(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("reference: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	cleaned := filepath.ToSlash(filepath.Clean(key))
	if cleaned == "." || cleaned == ".." || strings.Contains(cleaned, "/") {
		return "", errors.New("reference: invalid key")
	}
	return cleaned, nil
}

func displayName(id string) string {
	return strings.Join(strings.FieldsFunc(id, func(r rune) bool { return r == '_' || r == '-' }), " ")
}
