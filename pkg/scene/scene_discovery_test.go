package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"mirror-corridor", "Mirror Corridor"},
		{"three_spheres", "Three Spheres"},
		{"default", "Default"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata(t *testing.T) {
	testCases := []struct {
		file     string
		content  string
		expected SceneInfo
	}{
		{
			file:    "named.json",
			content: `{"name": "Hall of Mirrors", "description": "Lots of bounces"}`,
			expected: SceneInfo{
				ID:          "file:named",
				Name:        "Hall of Mirrors",
				DisplayName: "Hall of Mirrors",
				Description: "Lots of bounces",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
		{
			file:    "red_ball.json",
			content: `{"primitives": []}`,
			expected: SceneInfo{
				ID:          "file:red_ball",
				Name:        "Red Ball", // From filename
				DisplayName: "Red Ball",
				Group:       "Scene Files",
				Type:        "file",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatalf("Failed to write temp file: %v", err)
			}

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}

			tc.expected.FilePath = path
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestListFileScenes(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.json":      `{"name": "Bravo"}`,
		"a.json":      `{"name": "Alpha"}`,
		"broken.json": `{"name": `,
		"notes.txt":   `not a scene`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	scenes, err := ListFileScenes(dir)
	if err != nil {
		t.Fatalf("ListFileScenes() error: %v", err)
	}

	// The broken file is skipped and results are sorted by display name
	if len(scenes) != 2 || scenes[0].Name != "Alpha" || scenes[1].Name != "Bravo" {
		t.Errorf("Expected [Alpha Bravo], got %+v", scenes)
	}
}

func TestListFileScenes_MissingDirectory(t *testing.T) {
	scenes, err := ListFileScenes(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Errorf("ListFileScenes() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	response, err := ListAllScenes(filepath.Join("..", "..", "scenes"))
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(response.Groups) == 0 || response.Groups[0].Name != "Built-in Scenes" {
		t.Fatalf("Expected built-in scenes first, got %+v", response.Groups)
	}

	builtIn := response.Groups[0].Scenes
	if len(builtIn) != len(Names()) {
		t.Errorf("Built-in scenes count = %d, want %d", len(builtIn), len(Names()))
	}

	for _, group := range response.Groups {
		for _, scene := range group.Scenes {
			if scene.ID == "" || scene.DisplayName == "" {
				t.Errorf("Scene missing ID or display name: %+v", scene)
			}
			if scene.Type != "builtin" && scene.Type != "file" {
				t.Errorf("Invalid scene type: %s", scene.Type)
			}
			if scene.Type == "file" && scene.FilePath == "" {
				t.Error("File scene missing FilePath")
			}
		}
	}
}
