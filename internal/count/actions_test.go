package count

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dtnitsch/wordfreq/models"
	"github.com/urfave/cli/v2"
)

var errWrite = errors.New("write failed")

// failingWriter accepts writes until one contains marker.
type failingWriter struct {
	bytes.Buffer
	marker string
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if strings.Contains(string(p), w.marker) {
		return 0, errWrite
	}
	return w.Buffer.Write(p)
}

func TestPrintResult(t *testing.T) {
	result := &models.Result{
		NumChunks:   1,
		Workers:     1,
		TotalWords:  3,
		UniqueStems: 2,
		Language:    "en",
		Entries:     []models.RankedEntry{{Stem: "fox", Count: 2}, {Stem: "dog", Count: 1}},
	}

	tests := []struct {
		name    string
		marker  string
		wantErr bool
	}{
		{name: "all lines written", marker: "never printed"},
		{name: "totals write fails", marker: "Total words", wantErr: true},
		{name: "language write fails", marker: "Language", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &failingWriter{marker: tt.marker}
			c := cli.NewContext(&cli.App{Writer: w}, nil, nil)

			err := printResult(c, result, 0)
			if tt.wantErr {
				if !errors.Is(err, errWrite) {
					t.Errorf("printResult() error = %v, want %v", err, errWrite)
				}
				return
			}
			if err != nil {
				t.Fatalf("printResult() error = %v", err)
			}
			if !strings.Contains(w.String(), "Language: en") {
				t.Errorf("output missing language:\n%s", w.String())
			}
		})
	}
}
