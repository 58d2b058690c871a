package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"
	"regexp"

	apperrors "hr-tracker/internal/common/errors"
	"hr-tracker/internal/models"
)

// DefaultExportFilename is used when the server names no file.
const DefaultExportFilename = "HR_Applications_Export.xlsx"

var (
	filenamePattern = regexp.MustCompile(`filename="(.+)"`)
	errEmptyExport  = stderrors.New("server returned an empty file")
)

type applicationsData struct {
	Applications []models.Application `json:"applications"`
}

func (c *Client) ListApplications(ctx context.Context) ([]models.Application, error) {
	var data applicationsData
	if _, err := c.doJSON(ctx, "list-applications", http.MethodGet, "/applications", nil, applicationsSchema, &data); err != nil {
		return nil, err
	}
	return data.Applications, nil
}

// ListApplicationsByStatus asks the server for one status.
func (c *Client) ListApplicationsByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error) {
	var data applicationsData
	path := "/applications/status/" + url.PathEscape(string(status))
	if _, err := c.doJSON(ctx, "list-applications-by-status", http.MethodGet, path, nil, applicationsSchema, &data); err != nil {
		return nil, err
	}
	return data.Applications, nil
}

func (c *Client) ApplicationStats(ctx context.Context) (*models.ApplicationStats, error) {
	var stats models.ApplicationStats
	if _, err := c.doJSON(ctx, "application-stats", http.MethodGet, "/applications/stats", nil, statsSchema, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Export is a spreadsheet produced by the server.
type Export struct {
	Filename string
	Data     []byte
}

// ExportApplications downloads every application as a spreadsheet.
func (c *Client) ExportApplications(ctx context.Context) (*Export, error) {
	resp, err := c.send(ctx, "export-applications", http.MethodGet, "/applications/export",
		nil, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err != nil {
		return nil, err
	}
	if len(resp.body) == 0 {
		return nil, apperrors.NewExportFailedError(errEmptyExport)
	}
	return &Export{
		Filename: ExportFilename(resp.header.Get("Content-Disposition")),
		Data:     resp.body,
	}, nil
}

// ExportFilename reads filename="..." from a Content-Disposition header.
func ExportFilename(contentDisposition string) string {
	if m := filenamePattern.FindStringSubmatch(contentDisposition); m != nil {
		return m[1]
	}
	return DefaultExportFilename
}
