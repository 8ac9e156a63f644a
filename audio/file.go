package audio

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/transcription"
)

// FileSource reads encoded audio files into recordings.
type FileSource struct {
	fs afero.Fs
}

// NewFileSource returns a source reading from fs. A nil fs reads from the
// operating system.
func NewFileSource(fs afero.Fs) *FileSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileSource{fs: fs}
}

// Load turns paths into a recording. One path yields a single recording.
// Several paths yield one chunk per file in argument order; with overlap set,
// every chunk after the first is marked as starting with audio that repeats
// the end of its predecessor.
func (s *FileSource) Load(paths []string, overlap bool) (Recording, error) {
	if len(paths) == 0 {
		return Recording{}, errors.MissingField("files")
	}

	if len(paths) == 1 {
		data, err := s.read(paths[0])
		if err != nil {
			return Recording{}, err
		}
		return Single(data), nil
	}

	chunks := make([]transcription.Chunk, len(paths))
	for i, p := range paths {
		data, err := s.read(p)
		if err != nil {
			return Recording{}, err
		}
		chunks[i] = transcription.Chunk{
			Index:             i,
			Data:              data,
			HasLeadingOverlap: overlap && i > 0,
		}
	}
	return Chunked(chunks), nil
}

func (s *FileSource) read(path string) ([]byte, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, errors.InvalidInput("file", fmt.Sprintf("cannot open %s", path)).WithCause(err)
	}
	if info.IsDir() {
		return nil, errors.InvalidInput("file", fmt.Sprintf("%s is a directory", path))
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, errors.InvalidInput("file", fmt.Sprintf("cannot read %s", path)).WithCause(err)
	}
	if len(data) == 0 {
		return nil, errors.InvalidInput("file", fmt.Sprintf("%s is empty", path))
	}
	return data, nil
}
