package entities

import (
	"errors"
	"fmt"
)

// DocumentStatus is the upload lifecycle of a single file.
//
//	pending -> uploading -> success | error
//
// A document that uploaded but could not be linked to its order moves from
// success to error. Nothing ever returns to pending or uploading.
type DocumentStatus string

const (
	DocumentStatusPending   DocumentStatus = "pending"
	DocumentStatusUploading DocumentStatus = "uploading"
	DocumentStatusSuccess   DocumentStatus = "success"
	DocumentStatusError     DocumentStatus = "error"
)

var ErrInvalidDocumentTransition = errors.New("invalid document transition")

type DocumentState struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Size     int64          `json:"size"`
	MimeType string         `json:"mime_type"`
	Status   DocumentStatus `json:"status"`
	Progress *int           `json:"progress,omitempty"`
	Path     string         `json:"path,omitempty"`
	URL      string         `json:"url,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func NewPendingDocument(id, name string, size int64, mimeType string) DocumentState {
	return DocumentState{ID: id, Name: name, Size: size, MimeType: mimeType, Status: DocumentStatusPending}
}

func (d DocumentState) clone() DocumentState {
	if d.Progress != nil {
		p := *d.Progress
		d.Progress = &p
	}
	return d
}

func canTransition(from, to DocumentStatus) bool {
	switch from {
	case DocumentStatusPending:
		return to == DocumentStatusUploading || to == DocumentStatusError
	case DocumentStatusUploading:
		return to == DocumentStatusSuccess || to == DocumentStatusError
	case DocumentStatusSuccess:
		return to == DocumentStatusError
	}
	return false
}

// StartUpload moves a pending document to uploading with zero progress.
func (d DocumentState) StartUpload() (DocumentState, error) {
	if !canTransition(d.Status, DocumentStatusUploading) {
		return d, fmt.Errorf("%w: %s -> %s", ErrInvalidDocumentTransition, d.Status, DocumentStatusUploading)
	}
	zero := 0
	d.Status = DocumentStatusUploading
	d.Progress = &zero
	d.Error = ""
	return d, nil
}

// Succeed records the remote storage path of an uploaded document.
func (d DocumentState) Succeed(path, url string) (DocumentState, error) {
	if path == "" {
		return d, fmt.Errorf("%w: success without path", ErrInvalidDocumentTransition)
	}
	if !canTransition(d.Status, DocumentStatusSuccess) {
		return d, fmt.Errorf("%w: %s -> %s", ErrInvalidDocumentTransition, d.Status, DocumentStatusSuccess)
	}
	full := 100
	d.Status = DocumentStatusSuccess
	d.Progress = &full
	d.Path = path
	d.URL = url
	d.Error = ""
	return d, nil
}

// Fail marks the document as failed with a user-facing message.
func (d DocumentState) Fail(message string) (DocumentState, error) {
	if message == "" {
		return d, fmt.Errorf("%w: error without message", ErrInvalidDocumentTransition)
	}
	if !canTransition(d.Status, DocumentStatusError) {
		return d, fmt.Errorf("%w: %s -> %s", ErrInvalidDocumentTransition, d.Status, DocumentStatusError)
	}
	d.Status = DocumentStatusError
	d.Progress = nil
	d.Error = message
	return d, nil
}
