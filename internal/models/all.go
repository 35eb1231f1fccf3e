package models

// Registry contains all resources in the order in which they can be
// deleted without violating foreign key constraints.
var Registry = []Model{
	Allocation{},
	Donation{},
	Animal{},
	Client{},
	Habitat{},
}
