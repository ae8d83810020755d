package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"heritageguard/internal/config"
	models "heritageguard/internal/domain/models/docsystem"
	remote "heritageguard/internal/domain/remote/docsystem"
)

type documentGateway struct {
	client *Client
}

// NewDocumentGateway returns the REST implementation of the document
// CRUD collaborator.
func NewDocumentGateway(client *Client) remote.DocumentGateway {
	return &documentGateway{client: client}
}

func (g *documentGateway) List(ctx context.Context, page remote.ListPage) (*remote.PagedDocuments, error) {
	size := page.Size
	if size <= 0 {
		size = config.DefaultPageSize
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("size", strconv.Itoa(size))
	if page.Sort != "" {
		query.Set("sort", page.Sort)
	}

	var result remote.PagedDocuments
	if err := g.client.getJSON(ctx, "/site-documents", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *documentGateway) ListBySite(ctx context.Context, siteID string) ([]models.Document, error) {
	var docs []models.Document
	if err := g.client.getJSON(ctx, "/site-documents/site/"+url.PathEscape(siteID), nil, &docs); err != nil {
		return nil, err
	}
	g.client.logCall("documents fetched", "site_id", siteID, "count", len(docs))
	return docs, nil
}

func (g *documentGateway) Upload(ctx context.Context, siteID string, file models.CandidateFile, meta models.UploadMetadata, onProgress remote.ProgressFunc) (*models.Document, error) {
	// The form is assembled in memory so the total length is known and
	// per-byte progress can be reported against it.
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	part, err := createFilePart(writer, file)
	if err != nil {
		return nil, wrapTransport("build upload form", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, wrapTransport(fmt.Sprintf("read %s", file.Name), err)
	}

	fields := map[string]string{
		"description": meta.Description,
		"category":    meta.Category,
		"uploadDate":  meta.UploadDate,
		"isPublic":    strconv.FormatBool(meta.IsPublic),
	}
	if meta.Language != "" {
		fields["language"] = meta.Language
	}
	if meta.FolderID != nil {
		fields["folderId"] = *meta.FolderID
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, wrapTransport("build upload form", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, wrapTransport("build upload form", err)
	}

	body := &progressReader{
		reader:     bytes.NewReader(form.Bytes()),
		total:      int64(form.Len()),
		onProgress: onProgress,
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.client.baseURL+"/site-documents/upload/"+url.PathEscape(siteID), body)
	if err != nil {
		return nil, wrapTransport("build request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = int64(form.Len())

	var doc models.Document
	if err := g.client.do(req, &doc); err != nil {
		return nil, err
	}
	g.client.logCall("document uploaded", "site_id", siteID, "file", file.Name, "id", doc.ID)
	return &doc, nil
}

func (g *documentGateway) Update(ctx context.Context, id string, patch *models.DocumentPatch) (*models.Document, error) {
	var doc models.Document
	if err := g.client.sendJSON(ctx, http.MethodPut, "/site-documents/"+url.PathEscape(id), patch, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (g *documentGateway) Delete(ctx context.Context, id string) error {
	return g.client.sendJSON(ctx, http.MethodDelete, "/site-documents/"+url.PathEscape(id), nil, nil)
}

// createFilePart writes the "file" part header with the candidate's
// declared MIME type instead of the generic octet-stream default.
func createFilePart(writer *multipart.Writer, file models.CandidateFile) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	contentType := file.MIMEType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	return writer.CreatePart(header)
}

// progressReader reports how much of the request body has been read by
// the transport, as an integer percentage.
type progressReader struct {
	reader     io.Reader
	total      int64
	sent       int64
	lastPct    int
	onProgress remote.ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.sent += int64(n)
		if r.onProgress != nil && r.total > 0 {
			pct := int(r.sent * 100 / r.total)
			if pct > 100 {
				pct = 100
			}
			if pct != r.lastPct {
				r.lastPct = pct
				r.onProgress(pct)
			}
		}
	}
	return n, err
}
