package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
)

const (
	pathProjects   = "/api/projects"
	mediaFormField = "media"
)

func projectPath(id string, suffix ...string) string {
	p := pathProjects + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func (c *Client) Create(ctx context.Context, draft domain.DraftProject) (string, error) {
	var env envelope
	if err := c.sendJSON(ctx, "project_create", http.MethodPost, pathProjects, newProjectPayload(draft), &env); err != nil {
		return "", err
	}
	id := env.projectID()
	if id == "" {
		return "", &domain.BackendError{Status: http.StatusCreated, Message: "malformed response: created project has no id"}
	}
	return id, nil
}

func (c *Client) Update(ctx context.Context, id string, draft domain.DraftProject) error {
	return c.sendJSON(ctx, "project_update", http.MethodPut, projectPath(id), newProjectPayload(draft), nil)
}

func (c *Client) UploadMedia(ctx context.Context, id string, files []ports.Upload) ([]string, error) {
	var env envelope
	if err := c.sendFiles(ctx, "project_media", projectPath(id, "media"), mediaFormField, files, &env); err != nil {
		return nil, err
	}
	paths := env.paths()
	if len(paths) == 0 {
		return nil, &domain.BackendError{Status: http.StatusOK, Message: "malformed response: upload returned no paths"}
	}
	return paths, nil
}

func (c *Client) Submit(ctx context.Context, id string) error {
	return c.sendJSON(ctx, "project_submit", http.MethodPost, projectPath(id, "submit"), nil, nil)
}

func (c *Client) Get(ctx context.Context, id string) (*domain.Project, error) {
	var env envelope
	if err := c.getJSON(ctx, "project_get", projectPath(id), nil, &env); err != nil {
		return nil, err
	}
	p, err := decodeOne[domain.Project](&env)
	if err != nil {
		return nil, &domain.BackendError{Status: http.StatusOK, Message: "malformed response: " + err.Error()}
	}
	return p, nil
}

// ListOwnByStatus lists the current user's projects in one status tab.
func (c *Client) ListOwnByStatus(ctx context.Context, status domain.ProjectStatus) ([]domain.Project, error) {
	var env envelope
	q := url.Values{"owner": {"me"}}
	if err := c.getJSON(ctx, "project_list_status", pathProjects+"/status/"+url.PathEscape(string(status)), q, &env); err != nil {
		return nil, err
	}
	items, err := decodeList[domain.Project](&env)
	if err != nil {
		return nil, &domain.BackendError{Status: http.StatusOK, Message: "malformed response: " + err.Error()}
	}
	return items, nil
}
