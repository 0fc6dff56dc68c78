package model

import "time"

type Movie struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Slug        string    `json:"slug" bson:"slug"`
	Description string    `json:"description" bson:"description"`
	Genre       Genre     `json:"genre" bson:"genre"`
	Director    Director  `json:"director" bson:"director"`
	ImagePath   string    `json:"image_path,omitempty" bson:"image_path,omitempty"`
	Featured    bool      `json:"featured" bson:"featured"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

type Genre struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}

type Director struct {
	Name  string     `json:"name" bson:"name"`
	Bio   string     `json:"bio" bson:"bio"`
	Birth *time.Time `json:"birth,omitempty" bson:"birth,omitempty"`
	Death *time.Time `json:"death,omitempty" bson:"death,omitempty"`
}
