package audio

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/transcription"
)

func memFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fs
}

func TestRecording(t *testing.T) {
	single := Single([]byte("abc"))
	if single.IsChunked() {
		t.Error("expected single recording")
	}
	if single.Size() != 3 || single.Chunks() != nil {
		t.Errorf("unexpected single recording %+v", single)
	}

	chunked := Chunked([]transcription.Chunk{{Index: 0, Data: []byte("ab")}, {Index: 1, Data: []byte("cde")}})
	if !chunked.IsChunked() {
		t.Error("expected chunked recording")
	}
	if chunked.Size() != 5 {
		t.Errorf("expected size 5, got %d", chunked.Size())
	}
	if chunked.Data() != nil {
		t.Error("expected no single payload")
	}

	if !Chunked([]transcription.Chunk{}).IsChunked() {
		t.Error("an empty chunk list is still a chunked recording")
	}
}

func TestFileSource_Single(t *testing.T) {
	src := NewFileSource(memFS(t, map[string]string{"/rec/a.mp3": "AAAA"}))

	rec, err := src.Load([]string{"/rec/a.mp3"}, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.IsChunked() {
		t.Fatal("expected single recording for one file")
	}
	if string(rec.Data()) != "AAAA" {
		t.Errorf("unexpected payload %q", rec.Data())
	}
}

func TestFileSource_Chunked(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/rec/1.mp3": "one",
		"/rec/2.mp3": "two",
		"/rec/3.mp3": "three",
	})
	paths := []string{"/rec/1.mp3", "/rec/2.mp3", "/rec/3.mp3"}

	tests := []struct {
		name    string
		overlap bool
		want    []bool
	}{
		{"with overlap", true, []bool{false, true, true}},
		{"without overlap", false, []bool{false, false, false}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := NewFileSource(fs).Load(paths, tc.overlap)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			chunks := rec.Chunks()
			if len(chunks) != 3 {
				t.Fatalf("expected 3 chunks, got %d", len(chunks))
			}
			for i, c := range chunks {
				if c.Index != i {
					t.Errorf("chunk %d has index %d", i, c.Index)
				}
				if c.HasLeadingOverlap != tc.want[i] {
					t.Errorf("chunk %d overlap = %v, want %v", i, c.HasLeadingOverlap, tc.want[i])
				}
			}
			if string(chunks[2].Data) != "three" {
				t.Errorf("unexpected data %q", chunks[2].Data)
			}
		})
	}
}

func TestFileSource_Errors(t *testing.T) {
	fs := memFS(t, map[string]string{"/rec/a.mp3": "A", "/rec/empty.mp3": ""})
	if err := fs.MkdirAll("/rec/dir", 0o755); err != nil {
		t.Fatal(err)
	}
	src := NewFileSource(fs)

	tests := []struct {
		name  string
		paths []string
		code  errors.ErrorCode
	}{
		{"no files", nil, errors.ErrCodeMissingField},
		{"missing file", []string{"/rec/nope.mp3"}, errors.ErrCodeInvalidInput},
		{"directory", []string{"/rec/dir"}, errors.ErrCodeInvalidInput},
		{"empty file", []string{"/rec/empty.mp3"}, errors.ErrCodeInvalidInput},
		{"one bad chunk", []string{"/rec/a.mp3", "/rec/nope.mp3"}, errors.ErrCodeInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := src.Load(tc.paths, false)
			if !errors.IsCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestNewFileSource_DefaultsToOS(t *testing.T) {
	if _, ok := NewFileSource(nil).fs.(*afero.OsFs); !ok {
		t.Error("expected OS filesystem by default")
	}
}
