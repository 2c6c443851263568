package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pdfoutline"
	"github.com/fwojciec/pdfoutline/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestDiscoverPDFs(t *testing.T) {
	t.Parallel()

	t.Run("finds pdf files case-insensitively in name order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, filepath.Join(dir, "b.pdf"))
		touch(t, filepath.Join(dir, "A.PDF"))
		touch(t, filepath.Join(dir, "notes.txt"))
		touch(t, filepath.Join(dir, "persona.json"))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.pdf"), 0755))

		names, err := fs.DiscoverPDFs(dir)

		require.NoError(t, err)
		assert.Equal(t, []string{"A.PDF", "b.pdf"}, names)
	})

	t.Run("returns empty for directory without pdfs", func(t *testing.T) {
		t.Parallel()

		names, err := fs.DiscoverPDFs(t.TempDir())

		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("returns not found for missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := fs.DiscoverPDFs(filepath.Join(t.TempDir(), "missing"))

		assert.Equal(t, pdfoutline.ENOTFOUND, pdfoutline.ErrorCode(err))
	})
}

func TestOutputName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "report.json", fs.OutputName("report.pdf"))
	assert.Equal(t, "REPORT.json", fs.OutputName("REPORT.PDF"))
	assert.Equal(t, "my.pdf.notes.json", fs.OutputName("my.pdf.notes.pdf"))
}

func TestLoadPersona(t *testing.T) {
	t.Parallel()

	t.Run("loads persona and job verbatim", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), fs.PersonaFile)
		require.NoError(t, os.WriteFile(path, []byte(`{
			"persona": {"role": "Food Contractor"},
			"job_to_be_done": {"task": "Prepare a vegetarian buffet"},
			"challenge_info": {"id": "x"}
		}`), 0644))

		p, err := fs.LoadPersona(path)

		require.NoError(t, err)
		assert.JSONEq(t, `{"role": "Food Contractor"}`, string(p.Persona))
		assert.JSONEq(t, `{"task": "Prepare a vegetarian buffet"}`, string(p.JobToBeDone))
	})

	t.Run("returns not found for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.LoadPersona(filepath.Join(t.TempDir(), fs.PersonaFile))

		assert.Equal(t, pdfoutline.ENOTFOUND, pdfoutline.ErrorCode(err))
	})

	t.Run("returns invalid for malformed json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), fs.PersonaFile)
		require.NoError(t, os.WriteFile(path, []byte(`{"persona":`), 0644))

		_, err := fs.LoadPersona(path)

		assert.Equal(t, pdfoutline.EINVALID, pdfoutline.ErrorCode(err))
	})

	t.Run("returns invalid when job is missing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), fs.PersonaFile)
		require.NoError(t, os.WriteFile(path, []byte(`{"persona":{"role":"x"}}`), 0644))

		_, err := fs.LoadPersona(path)

		assert.Equal(t, pdfoutline.EINVALID, pdfoutline.ErrorCode(err))
	})
}

func TestWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes outline with two-space indent and raw unicode", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "out")
		w := fs.NewWriter(dir)

		path, err := w.WriteOutline("file01.pdf", &pdfoutline.DocumentResult{
			Title:   "Café & Co",
			Outline: pdfoutline.Outline{{Level: pdfoutline.H1, Text: "Menü", Page: 1}},
		})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "file01.json"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		expected := "{\n" +
			"  \"title\": \"Café & Co\",\n" +
			"  \"outline\": [\n" +
			"    {\n" +
			"      \"level\": \"H1\",\n" +
			"      \"text\": \"Menü\",\n" +
			"      \"page\": 1\n" +
			"    }\n" +
			"  ]\n" +
			"}\n"
		assert.Equal(t, expected, string(data))
	})

	t.Run("leaves html characters in headings unescaped", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		path, err := w.WriteOutline("a.pdf", &pdfoutline.DocumentResult{
			Title:   "Plan",
			Outline: pdfoutline.Outline{{Level: pdfoutline.H1, Text: "R&D <Budget>", Page: 2}},
		})

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"text": "R&D <Budget>"`)
	})

	t.Run("writes report with four-space indent", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		path, err := w.WriteReport("out.json", &pdfoutline.RankingReport{})

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n    \"metadata\": {")
	})

	t.Run("replaces existing file and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		_, err := w.WriteJSON("a.json", map[string]int{"v": 1}, "")
		require.NoError(t, err)

		_, err = w.WriteJSON("a.json", map[string]int{"v": 2}, "")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "a.json"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(data))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("rejects names with path separators", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewWriter(t.TempDir()).WriteJSON("../escape.json", 1, "")

		assert.Equal(t, pdfoutline.EINVALID, pdfoutline.ErrorCode(err))
	})
}
