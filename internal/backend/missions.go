package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/diewo77/go-missions/internal/mission"
)

// User is the identity returned by the auth endpoints.
type User struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Nom      string   `json:"nom"`
	Prenom   string   `json:"prenom"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles"`
}

// LoginResponse is the answer of POST /api/auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Upload is one file of an attachment batch.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// PDF is a downloaded document.
type PDF struct {
	Filename string
	Data     []byte
}

func recordPath(f mission.Family, id uint) string {
	return fmt.Sprintf("/api/%s/%d", f.Collection(), id)
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	in := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", in, &out); err != nil {
		return LoginResponse{}, err
	}
	if strings.TrimSpace(out.Token) == "" {
		return LoginResponse{}, fmt.Errorf("login: empty token in response")
	}
	return out, nil
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (User, error) {
	var out User
	err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", token, nil, &out)
	return out, err
}

// List fetches one status bucket of a family, e.g. "en-cours" or "mes-mandats".
func (c *Client) List(ctx context.Context, token string, f mission.Family, bucket string) ([]mission.Record, error) {
	path := "/api/" + f.Collection() + "/" + url.PathEscape(bucket)
	var out []mission.Record
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []mission.Record{}
	}
	return out, nil
}

// Get fetches the full record, associations included.
func (c *Client) Get(ctx context.Context, token string, f mission.Family, id uint) (mission.Record, error) {
	var out mission.Record
	err := c.doJSON(ctx, http.MethodGet, recordPath(f, id), token, nil, &out)
	return out, err
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, token string, f mission.Family, in mission.Input) (mission.Record, error) {
	var out mission.Record
	err := c.doJSON(ctx, http.MethodPost, "/api/"+f.Collection(), token, in, &out)
	return out, err
}

// Update replaces the editable fields of a record.
func (c *Client) Update(ctx context.Context, token string, f mission.Family, id uint, in mission.Input) (mission.Record, error) {
	var out mission.Record
	err := c.doJSON(ctx, http.MethodPut, recordPath(f, id), token, in, &out)
	return out, err
}

// Confirm moves a record past confirmation.
func (c *Client) Confirm(ctx context.Context, token string, f mission.Family, id uint) error {
	return c.transition(ctx, token, f, id, "confirmer", nil)
}

// Reject takes a record out of the normal flow. The resulting status is the
// backend's decision.
func (c *Client) Reject(ctx context.Context, token string, f mission.Family, id uint, motif string) error {
	var in any
	if m := strings.TrimSpace(motif); m != "" {
		in = map[string]string{"motif": m}
	}
	return c.transition(ctx, token, f, id, "rejeter", in)
}

// Execute starts a confirmed record.
func (c *Client) Execute(ctx context.Context, token string, f mission.Family, id uint) error {
	return c.transition(ctx, token, f, id, "executer", nil)
}

// Complete closes a running record.
func (c *Client) Complete(ctx context.Context, token string, f mission.Family, id uint) error {
	return c.transition(ctx, token, f, id, "achever", nil)
}

func (c *Client) transition(ctx context.Context, token string, f mission.Family, id uint, verb string, in any) error {
	return c.doJSON(ctx, http.MethodPost, recordPath(f, id)+"/"+verb, token, in, nil)
}

// PDF downloads the printable document of a record.
func (c *Client) PDF(ctx context.Context, token string, f mission.Family, id uint) (PDF, error) {
	path := recordPath(f, id) + "/pdf"
	resp, err := c.send(ctx, call{method: http.MethodGet, path: path, token: token, accept: "application/pdf"})
	if err != nil {
		return PDF{}, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return PDF{}, fmt.Errorf("read %s: %w", path, err)
	}
	name := fmt.Sprintf("%s-%d.pdf", f, id)
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return PDF{Filename: name, Data: data}, nil
}

// UploadAttachments sends every file of the batch in one multipart request,
// each under the "files" field.
func (c *Client) UploadAttachments(ctx context.Context, token string, id uint, files []Upload) error {
	if len(files) == 0 {
		return fmt.Errorf("upload attachments: no file")
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, escapeQuotes(f.Name)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("upload attachments: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("upload attachments: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("upload attachments: %w", err)
	}
	path := recordPath(mission.FamilyOrdre, id) + "/justificatifs"
	return c.do(ctx, call{
		method:      http.MethodPost,
		path:        path,
		token:       token,
		body:        &buf,
		contentType: mw.FormDataContentType(),
		accept:      "application/json",
	}, nil)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

// Users lists the staff that can be assigned to a mandat.
func (c *Client) Users(ctx context.Context, token string) ([]mission.Person, error) {
	var out []mission.Person
	err := c.doJSON(ctx, http.MethodGet, "/api/referentiel/users", token, nil, &out)
	return out, err
}

// Villes lists the destination cities.
func (c *Client) Villes(ctx context.Context, token string) ([]mission.Ville, error) {
	var out []mission.Ville
	err := c.doJSON(ctx, http.MethodGet, "/api/referentiel/villes", token, nil, &out)
	return out, err
}

// Ressources lists the assignable resources.
func (c *Client) Ressources(ctx context.Context, token string) ([]mission.Ressource, error) {
	var out []mission.Ressource
	err := c.doJSON(ctx, http.MethodGet, "/api/referentiel/ressources", token, nil, &out)
	return out, err
}
