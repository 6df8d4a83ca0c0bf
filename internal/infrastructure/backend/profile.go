package backend

import (
	"context"
	"net/http"

	"github.com/devnexus/marketplace-console/internal/core/ports"
)

const avatarFormField = "avatar"

type profileUpdateRequest struct {
	Name      string    `json:"name,omitempty"`
	Interests *[]string `json:"interests,omitempty"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
}

func (c *Client) UpdateProfile(ctx context.Context, in ports.ProfileUpdate) error {
	body := profileUpdateRequest{Name: in.Name}
	if in.Interests != nil {
		body.Interests = &in.Interests
	}
	return c.sendJSON(ctx, "profile_update", http.MethodPut, pathProfile, body, nil)
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := passwordRequest{CurrentPassword: current, Password: next}
	return c.sendJSON(ctx, "profile_password", http.MethodPut, pathProfile+"/password", body, nil)
}

func (c *Client) UploadAvatar(ctx context.Context, file ports.Upload) error {
	return c.sendFiles(ctx, "profile_avatar_upload", pathProfile+"/avatar", avatarFormField, []ports.Upload{file}, nil)
}

func (c *Client) DeleteAvatar(ctx context.Context) error {
	return c.sendJSON(ctx, "profile_avatar_delete", http.MethodDelete, pathProfile+"/avatar", nil, nil)
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.sendJSON(ctx, "profile_delete", http.MethodDelete, pathProfile, nil, nil)
}
