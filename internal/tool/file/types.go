package file

// -- Read File --

type ReadFileRequest struct {
	Path string `mapstructure:"path" json:"path"`
}

func (r *ReadFileRequest) String() string { return r.Path }

type ReadFileResponse struct {
	Content      string
	AbsolutePath string
	// Truncated is set when Content holds only the leading MaxReadChars characters.
	Truncated bool
}

// -- Write File --

type WriteFileRequest struct {
	Path    string `mapstructure:"path" json:"path"`
	Content string `mapstructure:"content" json:"content"`
}

func (r *WriteFileRequest) String() string { return r.Path }

type WriteFileResponse struct {
	AbsolutePath string
	BytesWritten int
	Created      bool
}
