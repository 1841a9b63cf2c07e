package renderer

import (
	"context"
	"os"
	"path/filepath"

	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/domain/document"
	"github.com/billcraft/billcraft/internal/logger"
)

// ShareTarget receives a finished artifact together with a title and a
// descriptive text, the shape a platform share sheet expects
type ShareTarget interface {
	Share(ctx context.Context, artifact *document.Artifact, title, text string) error
}

// SaveArtifact writes an artifact into dir under its deterministic file
// name and returns the written path
func SaveArtifact(artifact *document.Artifact, dir string) (string, error) {
	if artifact == nil || len(artifact.Bytes) == 0 {
		return "", ierr.NewError("no artifact to save").
			Mark(ierr.ErrInvalidOperation)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", ierr.WithError(err).
			WithMessagef("failed to create output directory %s", dir).
			Mark(ierr.ErrSystem)
	}

	path := filepath.Join(dir, artifact.FileName)
	if err := os.WriteFile(path, artifact.Bytes, 0o644); err != nil {
		return "", ierr.WithError(err).
			WithMessagef("failed to save artifact %s", path).
			Mark(ierr.ErrSystem)
	}

	return path, nil
}

// FileShareTarget is a ShareTarget that lands the shared file in a local
// directory, standing in for a platform share sheet
type FileShareTarget struct {
	dir string
	log *logger.Logger
}

func NewFileShareTarget(dir string, log *logger.Logger) ShareTarget {
	return &FileShareTarget{dir: dir, log: log}
}

func (t *FileShareTarget) Share(_ context.Context, artifact *document.Artifact, title, text string) error {
	path, err := SaveArtifact(artifact, t.dir)
	if err != nil {
		return err
	}
	t.log.Infow("shared artifact",
		"path", path,
		"title", title,
		"text", text,
	)
	return nil
}
