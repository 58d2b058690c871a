package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	apperrors "hr-tracker/internal/common/errors"
	"hr-tracker/internal/models"
)

type titlesData struct {
	Titles []models.JobTitle `json:"titles"`
}

type jobTitleData struct {
	JobTitle models.JobTitle `json:"jobTitle"`
}

func titlePath(id string) string {
	return "/jobs/jobs/" + url.PathEscape(id)
}

// ListActiveJobTitles returns the titles offered to applicants.
func (c *Client) ListActiveJobTitles(ctx context.Context) ([]models.JobTitle, error) {
	var data titlesData
	if _, err := c.doJSON(ctx, "list-active-job-titles", http.MethodGet, "/jobs/jobs", nil, titlesSchema, &data); err != nil {
		return nil, err
	}
	return data.Titles, nil
}

// ListAllJobTitles includes inactive titles.
func (c *Client) ListAllJobTitles(ctx context.Context) ([]models.JobTitle, error) {
	var data titlesData
	if _, err := c.doJSON(ctx, "list-all-job-titles", http.MethodGet, "/jobs/jobs/all", nil, titlesSchema, &data); err != nil {
		return nil, err
	}
	return data.Titles, nil
}

func cleanTitle(operation, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.NewValidationFailedError(operation, map[string]string{"title": "error-job-title-required"})
	}
	return title, nil
}

// CreateJobTitle trims title; a blank title is rejected without a request.
func (c *Client) CreateJobTitle(ctx context.Context, title string) (*models.JobTitle, error) {
	title, err := cleanTitle("create-job-title", title)
	if err != nil {
		return nil, err
	}
	var data jobTitleData
	body := map[string]string{"title": title}
	if _, err := c.doJSON(ctx, "create-job-title", http.MethodPost, "/jobs/jobs", body, jobTitleSchema, &data); err != nil {
		return nil, err
	}
	return &data.JobTitle, nil
}

// UpdateJobTitle renames a title, with the same trimming as CreateJobTitle.
func (c *Client) UpdateJobTitle(ctx context.Context, id, title string) (*models.JobTitle, error) {
	title, err := cleanTitle("update-job-title", title)
	if err != nil {
		return nil, err
	}
	var data jobTitleData
	body := map[string]string{"title": title}
	if _, err := c.doJSON(ctx, "update-job-title", http.MethodPut, titlePath(id), body, jobTitleSchema, &data); err != nil {
		return nil, err
	}
	return &data.JobTitle, nil
}

func (c *Client) SetJobTitleStatus(ctx context.Context, id string, active bool) (*models.JobTitle, error) {
	var data jobTitleData
	body := map[string]bool{"isActive": active}
	if _, err := c.doJSON(ctx, "set-job-title-status", http.MethodPatch, titlePath(id)+"/status", body, jobTitleSchema, &data); err != nil {
		return nil, err
	}
	return &data.JobTitle, nil
}

// DeleteJobTitle returns the server's confirmation message.
func (c *Client) DeleteJobTitle(ctx context.Context, id string) (string, error) {
	resp, err := c.doJSON(ctx, "delete-job-title", http.MethodDelete, titlePath(id), nil, "", nil)
	if err != nil {
		return "", err
	}
	return resp.message, nil
}
