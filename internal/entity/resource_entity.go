package entity

import (
	"path/filepath"
	"strings"
	"time"
)

type ResourceType string

const (
	ResourceTypePdf   ResourceType = "pdf"
	ResourceTypePpt   ResourceType = "ppt"
	ResourceTypeVideo ResourceType = "video"
)

// Resource is a reference document added to a session library.
// It is never edited after creation, only removed.
type Resource struct {
	Id        string
	Type      ResourceType
	Title     string
	Content   string
	CreatedAt time.Time
}

// InferResourceType guesses the type from a file name extension only.
// Unknown extensions fall back to pdf.
func InferResourceType(fileName string) ResourceType {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ppt", ".pptx":
		return ResourceTypePpt
	case ".mp4", ".avi", ".srt", ".vtt":
		return ResourceTypeVideo
	default:
		return ResourceTypePdf
	}
}

func ParseResourceType(value string) (ResourceType, bool) {
	switch ResourceType(strings.ToLower(strings.TrimSpace(value))) {
	case ResourceTypePdf:
		return ResourceTypePdf, true
	case ResourceTypePpt:
		return ResourceTypePpt, true
	case ResourceTypeVideo:
		return ResourceTypeVideo, true
	}
	return "", false
}
