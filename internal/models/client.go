package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// Client is a registered donor.
type Client struct {
	DefaultModel
	Username  string     `gorm:"uniqueIndex"`
	Donations []Donation `json:"-"`
	Favorites []*Animal  `json:"-" gorm:"many2many:client_favorites"`
}

func (Client) Self() string {
	return "Client"
}

func (Client) Export() (json.RawMessage, error) {
	return export[Client]()
}

func (c *Client) BeforeSave(_ *gorm.DB) error {
	c.Username = strings.TrimSpace(c.Username)

	return nil
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.Username == "" {
		return ErrClientUsernameEmpty
	}

	return c.DefaultModel.BeforeCreate(tx)
}
