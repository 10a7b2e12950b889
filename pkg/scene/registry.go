package scene

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene or a discovered scene file
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Group       string `json:"group"`              // Grouping category
	Seeded      bool   `json:"seeded"`             // Layout depends on the seed
	FilePath    string `json:"filePath,omitempty"` // Scene file (file scenes only)
}

// BuiltinGroup is the group of every registered scene
const BuiltinGroup = "Built-in Scenes"

type sceneFactory func(seed int64, cameraOverride geometry.CameraConfig) (*Scene, error)

type builtinScene struct {
	info   SceneInfo
	create sceneFactory
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{ID: "default", DisplayName: "Default", Group: BuiltinGroup, Description: "Four spheres on a large ground sphere"},
		create: func(_ int64, override geometry.CameraConfig) (*Scene, error) {
			return NewDefaultScene(override)
		},
	},
	{
		info: SceneInfo{ID: "defocus", DisplayName: "Defocus", Group: BuiltinGroup, Description: "Diffuse, glass and metal spheres with strong depth of field"},
		create: func(_ int64, override geometry.CameraConfig) (*Scene, error) {
			return NewDefocusScene(override)
		},
	},
	{
		info: SceneInfo{ID: "sphere-grid", DisplayName: "Sphere Grid", Group: BuiltinGroup, Description: "10x10 grid of colored metal spheres under a sphere light"},
		create: func(_ int64, override geometry.CameraConfig) (*Scene, error) {
			return NewSphereGridScene(override)
		},
	},
	{
		info: SceneInfo{ID: "random", DisplayName: "Random Spheres", Group: BuiltinGroup, Description: "Field of random small spheres around three large ones", Seeded: true},
		create: func(seed int64, override geometry.CameraConfig) (*Scene, error) {
			return NewRandomScene(seed, override)
		},
	},
	{
		info: SceneInfo{ID: "random-lights", DisplayName: "Random Spheres (lit)", Group: BuiltinGroup, Description: "Random spheres under a black sky lit by an emissive sphere", Seeded: true},
		create: func(seed int64, override geometry.CameraConfig) (*Scene, error) {
			return NewRandomLightsScene(seed, override)
		},
	},
}

// ListScenes returns every built-in scene in registration order
func ListScenes() []SceneInfo {
	return lo.Map(builtinScenes, func(b builtinScene, _ int) SceneInfo {
		return b.info
	})
}

// SceneNames returns the IDs of the built-in scenes
func SceneNames() []string {
	return lo.Map(builtinScenes, func(b builtinScene, _ int) string {
		return b.info.ID
	})
}

// Create builds the named built-in scene. Non-zero fields of cameraOverride
// replace the scene's camera defaults; seed only affects seeded scenes.
func Create(name string, seed int64, cameraOverride geometry.CameraConfig) (*Scene, error) {
	entry, found := lo.Find(builtinScenes, func(b builtinScene) bool {
		return b.info.ID == name
	})
	if !found {
		return nil, errors.Wrapf(ErrUnknownScene, "%q (available: %v)", name, SceneNames())
	}

	s, err := entry.create(seed, cameraOverride)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create scene %q", name)
	}
	return s, nil
}
