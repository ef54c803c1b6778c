package texture

import "fmt"

// Kind says where a photo's bytes come from.
type Kind uint8

const (
	Remote Kind = iota // fetched over HTTP(S)
	Local              // a file the user picked this session
)

// Source is a photo reference. Local sources are only meaningful for the
// running process; nothing persists them.
type Source struct {
	Kind Kind
	Ref  string
}

// DefaultSource returns the placeholder photo for frame id. The seed makes
// every frame's default differ.
func DefaultSource(id int) Source {
	return Source{Kind: Remote, Ref: fmt.Sprintf("https://picsum.photos/seed/%d/400/400", id)}
}

// LocalSource references a file on disk.
func LocalSource(path string) Source {
	return Source{Kind: Local, Ref: path}
}

func (s Source) String() string {
	if s.Kind == Local {
		return "file:" + s.Ref
	}
	return s.Ref
}
