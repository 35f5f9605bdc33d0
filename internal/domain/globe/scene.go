package globe

import "github.com/okian/rootsroads/internal/domain/dataset"

// Scene is the globe view: a textured sphere, its markers, the interaction
// controller and the camera.
type Scene struct {
	TextureURL string
	Markers    []Marker
	Controller *Controller
	Camera     *Camera
}

// NewScene builds the globe for ds in a viewport of width x height pixels.
func NewScene(ds *dataset.Dataset, textureURL string, width, height int) *Scene {
	return &Scene{
		TextureURL: textureURL,
		Markers:    BuildMarkers(ds),
		Controller: NewController(),
		Camera:     NewCamera(width, height),
	}
}
