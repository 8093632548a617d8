package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecraft/extractor/pkg/logger"
)

func TestValidateAccepts(t *testing.T) {
	v := NewFileValidator(logger.NewTestLogger(), &Config{
		MaxFileSize:       1024,
		AllowedExtensions: []string{".txt", ".csv"},
	})

	info, err := v.Validate([]byte("hello world"), "notes.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", info.Filename)
	assert.Equal(t, int64(11), info.Size)
	assert.Equal(t, ".txt", info.Extension)
	assert.True(t, strings.HasPrefix(info.DetectedMime, "text/plain"))
}

func TestValidateSizeLimit(t *testing.T) {
	v := NewFileValidator(logger.NewTestLogger(), &Config{MaxFileSize: 10})

	_, err := v.Validate([]byte("this is more than ten bytes"), "big.txt", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestValidateExtensionAllowList(t *testing.T) {
	v := NewFileValidator(logger.NewTestLogger(), &Config{
		MaxFileSize:       1024,
		AllowedExtensions: []string{".pdf"},
	})

	_, err := v.Validate([]byte("x"), "script.exe", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestValidateEmptyAllowListAdmitsAll(t *testing.T) {
	v := NewFileValidator(logger.NewTestLogger(), &Config{MaxFileSize: 1024})

	_, err := v.Validate([]byte("anything"), "weird.xyz", "")
	assert.NoError(t, err)
}

func TestValidateNoExtension(t *testing.T) {
	v := NewFileValidator(logger.NewTestLogger(), &Config{
		MaxFileSize:       1024,
		AllowedExtensions: []string{".txt"},
	})

	// The allow-list only applies when the name has an extension; bare
	// names still route to the generic extractor downstream.
	info, err := v.Validate([]byte("content"), "Makefile", "")
	require.NoError(t, err)
	assert.Equal(t, "", info.Extension)
}

func TestValidateMimeMismatchWarnsOnly(t *testing.T) {
	log := logger.NewTestLogger()
	v := NewFileValidator(log, &Config{MaxFileSize: 1024})

	// Plain text declared as PDF: accepted, but flagged.
	_, err := v.Validate([]byte("just plain text"), "fake.pdf", "application/pdf")
	require.NoError(t, err)

	var warned bool
	for _, e := range log.Entries() {
		if e.Level == "WARN" && strings.Contains(e.Message, "MIME") {
			warned = true
		}
	}
	assert.True(t, warned, "mismatch must be logged, not rejected")
}

func TestValidateDeclaredMimeParams(t *testing.T) {
	log := logger.NewTestLogger()
	v := NewFileValidator(log, &Config{MaxFileSize: 1024})

	_, err := v.Validate([]byte("plain text body"), "a.txt", "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Empty(t, log.Entries(), "parameters are stripped before comparison")
}

func TestValidateNilConfigDefaults(t *testing.T) {
	v := NewFileValidator(logger.NewTestLogger(), nil)

	_, err := v.Validate([]byte("tiny"), "a.bin", "")
	assert.NoError(t, err)
}
