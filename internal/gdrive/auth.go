// Package gdrive wraps the Google Drive and Sheets APIs behind a single
// authorized service.  The OAuth grant lives in a credentials.json /
// token.json pair on disk: credentials.json identifies the OAuth client and
// token.json stores the authorized-user refresh token obtained once via the
// authtoken command.
package gdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for the stored grant.  Drive covers folder management,
// uploads and export rendering; Spreadsheets covers roster creation.
var Scopes = []string{drive.DriveScope, sheets.SpreadsheetsScope}

// Service bundles the Drive and Sheets clients plus the root folder that
// anchors the photo archive.
type Service struct {
	Drive  *drive.Service
	Sheets *sheets.Service
	Root   string // Drive folder ID under which month/day folders are created
}

// New builds an authorized Service from the stored credential pair.  It
// fails when either file is missing or unreadable; the deployment must run
// the authtoken command first.
func New(ctx context.Context, credentialsPath, tokenPath, rootFolderID string) (*Service, error) {
	cfg, err := LoadOAuthConfig(credentialsPath)
	if err != nil {
		return nil, err
	}
	tok, err := LoadToken(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w (run the authtoken command first)", tokenPath, err)
	}
	client := cfg.Client(ctx, tok)

	ds, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	ss, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Service{Drive: ds, Sheets: ss, Root: rootFolderID}, nil
}

// LoadOAuthConfig parses the OAuth client description (installed or web)
// from credentials.json.
func LoadOAuthConfig(path string) (*oauth2.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadToken reads a stored oauth2 token from token.json.
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes a token to disk with owner-only permissions.  Used by
// the authtoken command after the authorization flow completes.
func SaveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
