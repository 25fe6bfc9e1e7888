package models

// Person is an interviewer. Created on first reference by name; identity is
// immutable after creation, display attributes may change.
type Person struct {
	ID          string `bson:"id" json:"id"`
	DisplayName string `bson:"displayName" json:"displayName"`
	Color       string `bson:"color" json:"color"` // display color tag, e.g. "#7bd389"
}
