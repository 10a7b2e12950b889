package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// FileScenePrefix marks scene IDs that refer to a JSON file in the scenes directory
const FileScenePrefix = "file:"

// FileGroup is the default group for discovered scene files
const FileGroup = "Scene Files"

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// DiscoverSceneFiles scans dir for *.json scene files. A missing directory
// yields an empty list.
func DiscoverSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan scenes directory")
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Skip broken files, keep listing the rest
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a scene file
// without building the scene
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:          FileScenePrefix + base,
		DisplayName: titleCase(base),
		Group:       FileGroup,
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, errors.Wrap(err, "failed to read scene file")
	}

	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, errors.Wrap(err, "invalid scene JSON")
	}

	if meta.Name != "" {
		info.DisplayName = meta.Name
	}
	if meta.Group != "" {
		info.Group = meta.Group
	}
	info.Description = meta.Description
	return info, nil
}

// ListAllScenes returns the built-in scenes followed by the files in dir,
// grouped by category. Built-in scenes come first, other groups alphabetically.
func ListAllScenes(dir string) (ScenesResponse, error) {
	files, err := DiscoverSceneFiles(dir)
	if err != nil {
		return ScenesResponse{}, errors.Wrap(err, "failed to list scene files")
	}

	all := append(ListScenes(), files...)
	byGroup := lo.GroupBy(all, func(info SceneInfo) string {
		return info.Group
	})

	groupNames := lo.Without(lo.Keys(byGroup), BuiltinGroup)
	sort.Strings(groupNames)
	if _, ok := byGroup[BuiltinGroup]; ok {
		groupNames = append([]string{BuiltinGroup}, groupNames...)
	}

	response := ScenesResponse{Groups: []SceneGroup{}}
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: byGroup[name]})
	}
	return response, nil
}

// CreateByID builds either a built-in scene or, for IDs starting with
// FileScenePrefix, the matching JSON file in dir
func CreateByID(id, dir string, seed int64, cameraOverride geometry.CameraConfig) (*Scene, error) {
	name, isFile := strings.CutPrefix(id, FileScenePrefix)
	if !isFile {
		return Create(id, seed, cameraOverride)
	}

	// Only plain file names inside dir
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, errors.Wrapf(ErrUnknownScene, "invalid scene file name %q", name)
	}
	path := filepath.Join(dir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(ErrUnknownScene, "no scene file %s", path)
	}
	return LoadFile(path, cameraOverride)
}

// titleCase converts a filename-style string to title case
// e.g., "glass-spheres" -> "Glass Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
