// Package output places generated models inside a Dart project.
package output

import (
	"os"
	"path"
	"path/filepath"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/dartyper/internal/config"
	"github.com/mcncl/dartyper/internal/errors"
	"github.com/mcncl/dartyper/internal/models"
)

// ProjectMarker identifies the root of a Dart package.
const ProjectMarker = "pubspec.yaml"

// BuildFilePath returns the slash-separated, project-relative path of the
// file holding baseName's model. With subfolders enabled every model gets
// its own folder.
//
//	lib/data/models/user/user_response.dart
func BuildFilePath(cfg config.OutputConfig, baseName string, role models.Role) string {
	return buildPath(cfg, cfg.BaseFolder, baseName, role)
}

// BuildCollectionFilePath is BuildFilePath with the models grouped under a
// folder named after the collection.
//
//	lib/data/models/auth/login/login_request.dart
func BuildCollectionFilePath(cfg config.OutputConfig, collection, baseName string, role models.Role) string {
	return buildPath(cfg, path.Join(cfg.BaseFolder, strcase.ToSnake(collection)), baseName, role)
}

func buildPath(cfg config.OutputConfig, dir, baseName string, role models.Role) string {
	folder := strcase.ToSnake(baseName)
	if cfg.GenerateSubfolders {
		dir = path.Join(dir, folder)
	}
	return path.Join(dir, fileName(folder, role))
}

func fileName(folder string, role models.Role) string {
	if role == models.RoleNeutral {
		return folder + ".dart"
	}
	return folder + "_" + role.String() + ".dart"
}

// FindProjectRoot walks up from start to the nearest directory containing
// pubspec.yaml.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.NewOutputError("failed to resolve project directory", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectMarker)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			return "", errors.NewOutputError("no "+ProjectMarker+" found above "+start, errors.ErrNoProjectRoot)
		}
		dir = parent
	}
}
