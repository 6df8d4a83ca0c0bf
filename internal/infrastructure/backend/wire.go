package backend

import (
	"bytes"
	"encoding/json"

	"github.com/devnexus/marketplace-console/internal/core/domain"
)

// The backend is inconsistent about envelopes: some routes answer
// {success, data}, some put the record at the top level, auth answers
// {accessToken, user}. Everything below funnels those shapes into one
// contract so nothing past this package sees the ambiguity.

type userDTO struct {
	ID        string   `json:"id"`
	MongoID   string   `json:"_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Avatar    string   `json:"avatar"`
	Verified  bool     `json:"verified"`
	Role      string   `json:"role"`
	Interests []string `json:"interests"`
}

func (d *userDTO) toDomain() *domain.User {
	if d == nil {
		return nil
	}
	id := d.ID
	if id == "" {
		id = d.MongoID
	}
	if id == "" && d.Email == "" {
		return nil
	}
	role, ok := domain.ParseRole(d.Role)
	if !ok {
		role = domain.RoleUser
	}
	interests := d.Interests
	if interests == nil {
		interests = []string{}
	}
	return &domain.User{
		ID:        id,
		Name:      d.Name,
		Email:     d.Email,
		Avatar:    d.Avatar,
		Verified:  d.Verified,
		Role:      role,
		Interests: interests,
	}
}

// envelope captures the common wrappers around a payload.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	User    json.RawMessage `json:"user"`
	Project json.RawMessage `json:"project"`
	Files   []string        `json:"files"`
	Paths   []string        `json:"paths"`

	ID      string `json:"id"`
	MongoID string `json:"_id"`

	AccessToken string `json:"accessToken"`

	Count       int `json:"count"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`

	raw json.RawMessage
}

func (e *envelope) UnmarshalJSON(b []byte) error {
	type plain envelope
	var p plain
	if len(bytes.TrimSpace(b)) > 0 && bytes.TrimSpace(b)[0] == '{' {
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
	}
	*e = envelope(p)
	e.raw = append(json.RawMessage(nil), b...)
	return nil
}

func present(m json.RawMessage) bool {
	t := bytes.TrimSpace(m)
	return len(t) > 0 && !bytes.Equal(t, []byte("null"))
}

// user prefers the explicit user key, then data, then the body itself.
func (e *envelope) user() *domain.User {
	for _, candidate := range []json.RawMessage{e.User, e.Data, e.raw} {
		if !present(candidate) {
			continue
		}
		var d userDTO
		if json.Unmarshal(candidate, &d) != nil {
			continue
		}
		if u := d.toDomain(); u != nil {
			return u
		}
	}
	return nil
}

// projectID finds the created record's id wherever the backend put it.
func (e *envelope) projectID() string {
	if e.MongoID != "" {
		return e.MongoID
	}
	if e.ID != "" {
		return e.ID
	}
	for _, nested := range []json.RawMessage{e.Data, e.Project} {
		if !present(nested) {
			continue
		}
		var ids struct {
			ID      string `json:"id"`
			MongoID string `json:"_id"`
		}
		if json.Unmarshal(nested, &ids) == nil {
			if ids.MongoID != "" {
				return ids.MongoID
			}
			if ids.ID != "" {
				return ids.ID
			}
		}
	}
	return ""
}

// paths returns the paths stored by this upload only. A project media
// object echoed back (thumbnail, screenshots) is already known to the
// caller and is never reported as new.
func (e *envelope) paths() []string {
	if present(e.Data) {
		var list []string
		if json.Unmarshal(e.Data, &list) == nil {
			return list
		}
		var media struct {
			Files []string `json:"files"`
			Paths []string `json:"paths"`
		}
		if json.Unmarshal(e.Data, &media) == nil {
			if len(media.Files) > 0 {
				return media.Files
			}
			if len(media.Paths) > 0 {
				return media.Paths
			}
		}
	}
	if len(e.Files) > 0 {
		return e.Files
	}
	return e.Paths
}

// decodeList reads a collection from data or from a bare array body.
func decodeList[T any](e *envelope) ([]T, error) {
	src := e.raw
	if present(e.Data) {
		src = e.Data
	}
	if !present(src) || bytes.TrimSpace(src)[0] != '[' {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(src, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeOne[T any](e *envelope) (*T, error) {
	src := e.raw
	for _, nested := range []json.RawMessage{e.Data, e.Project} {
		if present(nested) {
			src = nested
			break
		}
	}
	var out T
	if err := json.Unmarshal(src, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func decodePage[T any](e *envelope) (*domain.Page[T], error) {
	items, err := decodeList[T](e)
	if err != nil {
		return nil, err
	}
	page := &domain.Page[T]{
		Items:       items,
		Count:       e.Count,
		Total:       e.Total,
		TotalPages:  e.TotalPages,
		CurrentPage: e.CurrentPage,
	}
	if page.Count == 0 {
		page.Count = len(items)
	}
	if page.Total == 0 {
		page.Total = len(items)
	}
	return page, nil
}

// projectPayload is the create/update body; the backend reads req.body.data.
type projectPayload struct {
	Data domain.DraftProject `json:"data"`
}

func newProjectPayload(d domain.DraftProject) projectPayload {
	d.ID = ""
	return projectPayload{Data: d}
}
