package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	builtinGroup = "Built-in Scenes"
	fileGroup    = "Scene Files"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to JSON file (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

var builtinDescriptions = map[string]string{
	"default": "Three spheres on a yellow ground, the blue one a mirror",
	"mirrors": "Two facing mirror spheres over a reflective floor",
}

// ListBuiltinScenes returns metadata for every registered scene
func ListBuiltinScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range Names() {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			Name:        name,
			DisplayName: titleCase(name),
			Description: builtinDescriptions[name],
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	return scenes
}

// ListFileScenes scans dir for JSON scene files. A missing directory yields
// an empty list.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name and description of a JSON scene file,
// falling back to values derived from the file name
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("file:%s", nameWithoutExt),
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       fileGroup,
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, err
	}

	if header.Name != "" {
		sceneInfo.Name = header.Name
		sceneInfo.DisplayName = header.Name
	}
	sceneInfo.Description = header.Description

	return sceneInfo, nil
}

// ListAllScenes returns built-in scenes and the scene files in dir, grouped
// with built-in scenes first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: ListBuiltinScenes(),
	})
	if len(fileScenes) > 0 {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   fileGroup,
			Scenes: fileScenes,
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-hall" -> "Mirror Hall"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
