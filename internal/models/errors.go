package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Habitat errors
var (
	ErrHabitatNameNotUnique      = errors.New("the habitat name must be unique")
	ErrHabitatNameEmpty          = errors.New("the habitat name must not be empty")
	ErrHabitatFoodSupplyNegative = errors.New("the food supply of a habitat must not be negative")
)

// Client errors
var (
	ErrClientUsernameNotUnique = errors.New("this username is already taken")
	ErrClientUsernameEmpty     = errors.New("the username must not be empty")
)

// Donation errors
var (
	ErrDonationAmountNotPositive = errors.New("the donation amount must be positive")
	ErrAllocationAmountNegative  = errors.New("the allocated amount must not be negative")
)

// Animal errors
var (
	ErrAnimalNameEmpty = errors.New("the animal name must not be empty")
)
