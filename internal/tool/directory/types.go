package directory

import (
	"fmt"
	"strings"
)

// ListDirectoryRequest is the decoded argument set of list_directory.
type ListDirectoryRequest struct {
	Path string `mapstructure:"path" json:"path,omitempty"`
}

func (r *ListDirectoryRequest) String() string {
	if r.Path == "" {
		return "."
	}
	return r.Path
}

// DirectoryEntry represents a single entry in a directory listing
type DirectoryEntry struct {
	Name  string
	Size  int64
	IsDir bool
}

// ListDirectoryResponse holds the immediate children of the listed directory, sorted by name.
type ListDirectoryResponse struct {
	Path    string
	Entries []DirectoryEntry
}

// Format renders one line per entry: "name: file_size=N bytes, is_dir=bool".
func (r *ListDirectoryResponse) Format() string {
	lines := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		lines = append(lines, fmt.Sprintf("%s: file_size=%d bytes, is_dir=%t", e.Name, e.Size, e.IsDir))
	}
	return strings.Join(lines, "\n")
}
