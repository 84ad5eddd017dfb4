package domain

import (
	"errors"
	"strconv"
	"strings"

	"tvGuideBff/internal/shared/normalization"
)

var (
	ErrMissingUser     = errors.New("favorite without user_email")
	ErrMissingTarget   = errors.New("favorite needs movie_id or tvshow_id")
	ErrAmbiguousTarget = errors.New("favorite cannot reference both movie_id and tvshow_id")
	ErrInvalidTarget   = errors.New("favorite id must be a positive integer")
	ErrMissingTitle    = errors.New("favorite without title")
)

// Target kinds, also used as event metadata.
const (
	KindMovie  = "movie"
	KindTVShow = "tvshow"
)

// Favorite links a user to exactly one movie or tv show. Ids accept numbers or numeric strings.
type Favorite struct {
	UserEmail string                `json:"user_email,omitempty"`
	MovieID   normalization.FlexInt `json:"movie_id,omitzero"`
	TVShowID  normalization.FlexInt `json:"tvshow_id,omitzero"`
	Title     string                `json:"title,omitempty"`
}

// Normalize trims free-text fields in place.
func (f *Favorite) Normalize() {
	f.UserEmail = strings.TrimSpace(f.UserEmail)
	f.Title = strings.TrimSpace(f.Title)
}

// ValidateTarget enforces the exactly-one-of rule on movie_id and tvshow_id.
func (f Favorite) ValidateTarget() error {
	switch {
	case f.MovieID.Valid && f.TVShowID.Valid:
		return ErrAmbiguousTarget
	case !f.MovieID.Valid && !f.TVShowID.Valid:
		return ErrMissingTarget
	case f.MovieID.Valid && f.MovieID.Value <= 0, f.TVShowID.Valid && f.TVShowID.Value <= 0:
		return ErrInvalidTarget
	}
	return nil
}

// ValidateAdd checks a favorite about to be created; a title is required.
func (f Favorite) ValidateAdd() error {
	if err := f.ValidateRemove(); err != nil {
		return err
	}
	if strings.TrimSpace(f.Title) == "" {
		return ErrMissingTitle
	}
	return nil
}

// ValidateRemove checks a favorite about to be deleted; the title is optional.
func (f Favorite) ValidateRemove() error {
	if strings.TrimSpace(f.UserEmail) == "" {
		return ErrMissingUser
	}
	return f.ValidateTarget()
}

// Kind reports which target the favorite references, or "" when invalid.
func (f Favorite) Kind() string {
	switch {
	case f.MovieID.Valid && !f.TVShowID.Valid:
		return KindMovie
	case f.TVShowID.Valid && !f.MovieID.Valid:
		return KindTVShow
	default:
		return ""
	}
}

// TargetID returns the referenced id as text, or "" when the target is invalid.
func (f Favorite) TargetID() string {
	switch f.Kind() {
	case KindMovie:
		return strconv.FormatInt(f.MovieID.Value, 10)
	case KindTVShow:
		return strconv.FormatInt(f.TVShowID.Value, 10)
	default:
		return ""
	}
}
