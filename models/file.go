// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// File is the metadata of an uploaded spreadsheet. The raw bytes are kept
// either in Content (database backend) or behind StorageKey (blob backends)
// and are never serialized to JSON.
type File struct {
	ID             string    `json:"id"`
	UserID         int64     `json:"user"`
	OriginalName   string    `json:"originalname"`
	MimeType       string    `json:"mimetype"`
	Size           int64     `json:"size"`
	ChartGenerated bool      `json:"chartGenerated"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Content    []byte `json:"-"`
	StorageKey string `json:"-"`
}

// TableName returns the name of the database table
// associated with the File model.
func (f File) TableName() string {
	return "files"
}

// FileContent is what a download returns.
type FileContent struct {
	FileName string
	MimeType string
	Content  []byte
}

// Row is one parsed spreadsheet row keyed by header name. Values are
// float64, bool or string. Blank cells are absent.
type Row map[string]any

// ParsedData is the tabular content extracted from the first sheet of a File.
// Columns keeps the header order, which Row maps cannot.
type ParsedData struct {
	ID        int64     `json:"-"`
	FileID    string    `json:"fileId"`
	UserID    int64     `json:"user"`
	Columns   []string  `json:"columns"`
	Rows      []Row     `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadRequest carries one multipart upload into the ingestion pipeline.
type UploadRequest struct {
	UserID   int64
	FileName string
	MimeType string
	Size     int64
	Content  []byte
}

// UploadResult is returned by a successful upload.
type UploadResult struct {
	File       File `json:"file"`
	ParsedRows int  `json:"parsedRows"`
}
