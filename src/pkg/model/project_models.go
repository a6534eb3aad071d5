package model

import "time"

// Project is a named collection of pages.
type Project struct {
	ID      string    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Created time.Time `json:"created" yaml:"created"`
	Updated time.Time `json:"updated" yaml:"updated"`
}

// Page owns exactly one element collection.
type Page struct {
	ID            string    `json:"id" yaml:"id"`
	ProjectID     string    `json:"project_id" yaml:"project_id"`
	Name          string    `json:"name" yaml:"name"`
	Slug          string    `json:"slug" yaml:"slug"`
	Elements      []Element `json:"elements" yaml:"elements"`
	PublishedHash string    `json:"published_hash,omitempty" yaml:"published_hash,omitempty"`
	Created       time.Time `json:"created" yaml:"created"`
	Updated       time.Time `json:"updated" yaml:"updated"`
}

// ProjectInfo contains basic information about a project.
type ProjectInfo struct {
	ID   string
	Name string
}

// PageInfo contains basic information about a page.
type PageInfo struct {
	ID            string
	ProjectID     string
	Name          string
	Slug          string
	Elements      []Element
	PublishedHash string
}

// ProjectFilter defines which ProjectInfo fields a lookup matches on.
type ProjectFilter struct {
	ID   bool
	Name bool
}

// PageFilter defines which PageInfo fields a lookup matches on or an update applies.
type PageFilter struct {
	ID            bool
	ProjectID     bool
	Name          bool
	Slug          bool
	Elements      bool
	PublishedHash bool
}

// ProjectDocument is the portable file form of a project and its pages.
type ProjectDocument struct {
	Version int     `json:"version" yaml:"version"`
	Project Project `json:"project" yaml:"project"`
	Pages   []Page  `json:"pages" yaml:"pages"`
}
