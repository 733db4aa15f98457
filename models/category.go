package models

// Category is a listing category. The hierarchy is a single level deep:
// a category either is a root or points at a root via ParentID.
type Category struct {
	ID       string  `json:"id" bson:"_id,omitempty"`
	Name     string  `json:"name" bson:"name"`
	ParentID *string `json:"parentID,omitempty" bson:"parentID,omitempty"`
}

// CategoryCount pairs a category label with how many products it holds.
type CategoryCount struct {
	Label string `json:"label"`
	ID    string `json:"id"`
	Count int    `json:"count"`
}
