package models

// Note is a free-form day annotation, keyed by date (one note per day).
type Note struct {
	Date    string `bson:"date" json:"date"` // key, "2006-01-02"
	Content string `bson:"content" json:"content"`
	Color   string `bson:"color" json:"color"`
}
