package pagecmd

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagebuilder/internal/brandkits"
	"github.com/goliatone/go-pagebuilder/internal/sections"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound   = errors.New("pagecmd: no open builder session for page")
	ErrBrandkitsDisabled = errors.New("pagecmd: brandkits feature disabled")
	ErrMarkdownDisabled  = errors.New("pagecmd: markdown feature disabled")
)

// Session is the part of a builder session the page commands drive.
type Session interface {
	Save(ctx context.Context) error
	ApplyBrandkit(ctx context.Context, kit brandkits.Brandkit, req brandkits.ApplyRequest) (brandkits.Result, error)
	ImportMarkdown(ctx context.Context, source []byte, index int) (sections.Section, error)
}

// Sessions resolves the open session for a page.
type Sessions interface {
	Session(pageID uuid.UUID) (Session, bool)
}

// SessionsFunc adapts a function into Sessions.
type SessionsFunc func(pageID uuid.UUID) (Session, bool)

func (f SessionsFunc) Session(pageID uuid.UUID) (Session, bool) {
	return f(pageID)
}

// BrandkitSource loads brandkits by id.
type BrandkitSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*brandkits.Brandkit, error)
}

func lookup(sessions Sessions, pageID uuid.UUID) (Session, error) {
	if sessions == nil {
		return nil, ErrSessionNotFound
	}
	session, ok := sessions.Session(pageID)
	if !ok || session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// requiredID rejects uuid.Nil; validation.Required treats any UUID as set.
func requiredID(code string) validation.Rule {
	return validation.By(func(value any) error {
		if id, _ := value.(uuid.UUID); id == uuid.Nil {
			return validation.NewError(code, "a valid identifier is required")
		}
		return nil
	})
}
