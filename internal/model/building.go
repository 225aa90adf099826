package model

// Building is pure reference data grouping rooms by location.
type Building struct {
	ID          uint64  `json:"id"`                   // buildings.id
	Name        string  `json:"name"`                 // buildings.name
	Address     string  `json:"address"`              // buildings.address
	Description string  `json:"description"`          // buildings.description
	ImagePath   *string `json:"image_path,omitempty"` // buildings.image_path (nullable)
}
